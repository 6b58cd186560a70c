package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/radianlabs/precalc/core/lesson"
	"github.com/radianlabs/precalc/core/user"
)

func Test_lessonApi_index(t *testing.T) {
	env := setup(t)
	usr := createUser(t, env.usrRepo, "awe", "awe@test.cd", "s3cret", user.StudentRoles, true)
	token := getToken(t, usr)

	t.Run("no token", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/lessons")
		env.server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	tests := []struct {
		name       string
		path       string
		wantCode   int
		wantTitles []string
	}{
		{name: "full catalog", path: "/v1/lessons", wantCode: http.StatusOK, wantTitles: []string{"Radians and the Unit Circle", "Graphs of Sine and Cosine"}},
		{name: "chapter filter", path: "/v1/lessons?chapter=5", wantCode: http.StatusOK, wantTitles: []string{"Radians and the Unit Circle"}},
		{name: "search filter", path: "/v1/lessons?search=amplitude", wantCode: http.StatusOK, wantTitles: []string{"Graphs of Sine and Cosine"}},
		{name: "search misses", path: "/v1/lessons?search=matrices", wantCode: http.StatusOK, wantTitles: []string{}},
		{name: "bad chapter", path: "/v1/lessons?chapter=abc", wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, token)
			env.server.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.Bytes())
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			var idx lesson.Index
			if err := json.Unmarshal(rec.Body.Bytes(), &idx); err != nil {
				t.Fatalf("unmarshalling index: %v", err)
			}
			if idx.Course != "Precalculus" {
				t.Errorf("course = %q; want %q", idx.Course, "Precalculus")
			}
			titles := make([]string, 0, len(idx.Lessons))
			for _, lsn := range idx.Lessons {
				titles = append(titles, lsn.Title)
			}
			if len(titles) != len(tt.wantTitles) {
				t.Fatalf("titles = %v; want %v", titles, tt.wantTitles)
			}
			for i := range titles {
				if titles[i] != tt.wantTitles[i] {
					t.Errorf("titles = %v; want %v", titles, tt.wantTitles)
					break
				}
			}
		})
	}
}

func Test_lessonApi_retrieve(t *testing.T) {
	env := setup(t)
	usr := createUser(t, env.usrRepo, "awe", "awe@test.cd", "s3cret", user.StudentRoles, true)
	token := getToken(t, usr)

	t.Run("ok", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/lessons/precalc/chapter-5/radians.json", token)
		env.server.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, http.StatusOK, rec.Body.Bytes())
		}
		var doc lesson.Document
		if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
			t.Fatalf("unmarshalling document: %v", err)
		}
		if doc.Title != "Radians and the Unit Circle" {
			t.Errorf("title = %q; want %q", doc.Title, "Radians and the Unit Circle")
		}
		if len(doc.Pages) != 3 {
			t.Errorf("pages = %d; want 3", len(doc.Pages))
		}
	})

	notFound := []httpTest{
		{name: "unknown lesson", path: "/v1/lessons/precalc/chapter-5/nope.json"},
		{name: "non-json path", path: "/v1/lessons/precalc/chapter-5/notes.txt"},
	}
	for _, tt := range notFound {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, token)
			env.server.ServeHTTP(rec, req)
			checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: []byte(`{"error": "not found"}`)}, rec)
		})
	}
}

func Test_server_rawLesson(t *testing.T) {
	env := setup(t)

	t.Run("ok without auth", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/lessons/precalc/chapter-5/radians.json")
		env.server.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		ok, err := jsonBytesEqual(t, rec.Body.Bytes(), []byte(testRadiansJSON))
		if err != nil {
			t.Fatalf("jsonBytesEqual() failed to compare; err %v", err)
		}
		if !ok {
			t.Error("raw lesson does not match the authored file")
		}
	})

	t.Run("unknown file", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/lessons/precalc/chapter-5/nope.json")
		env.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusNotFound)
		}
	})
}

func Test_lessonApi_checkAnswer(t *testing.T) {
	env := setup(t)
	usr := createUser(t, env.usrRepo, "awe", "awe@test.cd", "s3cret", user.StudentRoles, true)
	token := getToken(t, usr)

	tests := []httpTest{
		{
			name:     "missing fields",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"path": "this field is required", "question_id": "this field is required"}`),
		},
		{
			name:     "unknown question",
			body:     []byte(`{"path": "precalc/chapter-5/radians.json", "question_id": "nope", "x": "\\pi/6"}`),
			wantCode: http.StatusNotFound,
			wantData: []byte(`{"error": "not found"}`),
		},
		{
			name:     "correct in plain spelling",
			body:     []byte(`{"path": "precalc/chapter-5/radians.json", "question_id": "q1", "x": "PI/6"}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"correct": true}`),
		},
		{
			name:     "wrong answer",
			body:     []byte(`{"path": "precalc/chapter-5/radians.json", "question_id": "q1", "x": "\\pi/3"}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"correct": false}`),
		},
		{
			name:     "empty answer",
			body:     []byte(`{"path": "precalc/chapter-5/radians.json", "question_id": "q1", "x": "  "}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"correct": false}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/lessons/answers", token, tt.body)
			env.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
