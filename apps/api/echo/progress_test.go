package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/radianlabs/precalc/core/progress"
	"github.com/radianlabs/precalc/core/user"
)

const testLessonURL = "/v1/progress/precalc/chapter-5/radians.json"

func Test_progressApi_loadAndSave(t *testing.T) {
	env := setup(t)
	usr := createUser(t, env.usrRepo, "awe", "awe@test.cd", "s3cret", user.StudentRoles, true)
	token := getToken(t, usr)

	t.Run("no token", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, testLessonURL)
		env.server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	t.Run("load defaults", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, testLessonURL, token)
		env.server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusOK,
			wantData: []byte(`{"pageIndex": 0, "questionAnswers": {}, "visibleHints": {}, "questionResults": {}, "desmosGraphStatus": {}, "desmosGraphStates": {}}`),
		}, rec)
	})

	t.Run("unknown lesson", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/progress/precalc/chapter-5/nope.json", token)
		env.server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: []byte(`{"error": "not found"}`)}, rec)
	})

	t.Run("save clamps and echoes", func(t *testing.T) {
		body := []byte(`{"pageIndex": 99, "questionAnswers": {"q1": {"x": "\\pi/6", "y": ""}}, "questionResults": {"q1": {"submitted": true, "isCorrect": true}}}`)
		req, rec := newAuthRequest(http.MethodPut, testLessonURL, token, body)
		env.server.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, http.StatusOK, rec.Body.Bytes())
		}
		var p progress.LessonProgress
		if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
			t.Fatalf("unmarshalling progress: %v", err)
		}
		if p.PageIndex != 2 {
			t.Errorf("pageIndex = %d; want 2 (clamped to last page)", p.PageIndex)
		}
		if !p.QuestionResults["q1"].IsCorrect {
			t.Error("question result was not kept")
		}

		// load returns what got stored
		req, rec = newAuthRequest(http.MethodGet, testLessonURL, token)
		env.server.ServeHTTP(rec, req)
		var loaded progress.LessonProgress
		if err := json.Unmarshal(rec.Body.Bytes(), &loaded); err != nil {
			t.Fatalf("unmarshalling progress: %v", err)
		}
		if loaded.PageIndex != 2 {
			t.Errorf("stored pageIndex = %d; want 2", loaded.PageIndex)
		}
	})

	t.Run("corrupt payload falls back to defaults", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, testLessonURL, token, []byte(`"not an object"`))
		env.server.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, http.StatusOK, rec.Body.Bytes())
		}
		var p progress.LessonProgress
		if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
			t.Fatalf("unmarshalling progress: %v", err)
		}
		if p.PageIndex != 0 || len(p.QuestionResults) != 0 {
			t.Errorf("corrupt payload should reset to defaults; got %+v", p)
		}
	})

	t.Run("reset", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, testLessonURL, token)
		env.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusNoContent)
		}

		// deleting what is already gone still succeeds
		req, rec = newAuthRequest(http.MethodDelete, testLessonURL, token)
		env.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusNoContent)
		}
	})
}

func Test_progressApi_advanceAndRetreat(t *testing.T) {
	env := setup(t)
	usr := createUser(t, env.usrRepo, "awe", "awe@test.cd", "s3cret", user.StudentRoles, true)
	token := getToken(t, usr)

	advance := func(t *testing.T) *struct {
		code int
		body []byte
	} {
		t.Helper()
		req, rec := newAuthRequest(http.MethodPost, "/v1/progress/advance/precalc/chapter-5/radians.json", token)
		env.server.ServeHTTP(rec, req)
		return &struct {
			code int
			body []byte
		}{rec.Code, rec.Body.Bytes()}
	}

	// page 0 has no gate
	res := advance(t)
	if res.code != http.StatusOK {
		t.Fatalf("failed! code = %v; wantCode %v; body %s", res.code, http.StatusOK, res.body)
	}
	var p progress.LessonProgress
	if err := json.Unmarshal(res.body, &p); err != nil {
		t.Fatalf("unmarshalling progress: %v", err)
	}
	if p.PageIndex != 1 {
		t.Fatalf("pageIndex = %d; want 1", p.PageIndex)
	}

	// page 1 requires q1 to be answered correctly
	res = advance(t)
	if res.code != http.StatusConflict {
		t.Fatalf("failed! code = %v; wantCode %v; body %s", res.code, http.StatusConflict, res.body)
	}
	var blocked BlockedResponse
	if err := json.Unmarshal(res.body, &blocked); err != nil {
		t.Fatalf("unmarshalling blocked response: %v", err)
	}
	if !blocked.Blocked || blocked.Reason == "" {
		t.Errorf("blocked response = %+v; want blocked with a reason", blocked)
	}

	// record a correct result, the gate opens
	body := []byte(`{"pageIndex": 1, "questionResults": {"q1": {"submitted": true, "isCorrect": true}}}`)
	req, rec := newAuthRequest(http.MethodPut, testLessonURL, token, body)
	env.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, http.StatusOK, rec.Body.Bytes())
	}

	res = advance(t)
	if res.code != http.StatusOK {
		t.Fatalf("failed! code = %v; wantCode %v; body %s", res.code, http.StatusOK, res.body)
	}
	if err := json.Unmarshal(res.body, &p); err != nil {
		t.Fatalf("unmarshalling progress: %v", err)
	}
	if p.PageIndex != 2 {
		t.Fatalf("pageIndex = %d; want 2", p.PageIndex)
	}

	// the last page blocks further advancement
	res = advance(t)
	if res.code != http.StatusConflict {
		t.Fatalf("failed! code = %v; wantCode %v; body %s", res.code, http.StatusConflict, res.body)
	}

	// retreat walks back, then no-ops at page zero
	retreat := func(t *testing.T) progress.LessonProgress {
		t.Helper()
		req, rec := newAuthRequest(http.MethodPost, "/v1/progress/retreat/precalc/chapter-5/radians.json", token)
		env.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, http.StatusOK, rec.Body.Bytes())
		}
		var p progress.LessonProgress
		if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
			t.Fatalf("unmarshalling progress: %v", err)
		}
		return p
	}
	if p := retreat(t); p.PageIndex != 1 {
		t.Errorf("pageIndex = %d; want 1", p.PageIndex)
	}
	if p := retreat(t); p.PageIndex != 0 {
		t.Errorf("pageIndex = %d; want 0", p.PageIndex)
	}
	if p := retreat(t); p.PageIndex != 0 {
		t.Errorf("pageIndex = %d; want 0 (no-op)", p.PageIndex)
	}
}

func Test_progressApi_navigation(t *testing.T) {
	env := setup(t)
	usr := createUser(t, env.usrRepo, "awe", "awe@test.cd", "s3cret", user.StudentRoles, true)
	token := getToken(t, usr)

	t.Run("defaults to empty state", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/progress/navigation", token)
		env.server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: []byte(`{"view": ""}`)}, rec)
	})

	t.Run("missing view is rejected", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/progress/navigation", token, []byte(`{"lessonPath": "precalc/chapter-5/radians.json"}`))
		env.server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusBadRequest, wantData: []byte(`{"view": "view is required"}`)}, rec)
	})

	t.Run("round trip", func(t *testing.T) {
		state := []byte(`{"view": "lesson", "lessonPath": "precalc/chapter-5/radians.json"}`)
		req, rec := newAuthRequest(http.MethodPut, "/v1/progress/navigation", token, state)
		env.server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: state}, rec)

		req, rec = newAuthRequest(http.MethodGet, "/v1/progress/navigation", token)
		env.server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: state}, rec)
	})
}
