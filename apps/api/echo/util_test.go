package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"
	"testing/fstest"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/radianlabs/precalc/core"
	"github.com/radianlabs/precalc/core/lesson"
	"github.com/radianlabs/precalc/core/progress"
	"github.com/radianlabs/precalc/core/user"
	emailsvc "github.com/radianlabs/precalc/services/email"
	inmemdb "github.com/radianlabs/precalc/storage/database/inmem"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

func TestMain(m *testing.M) {
	core.Conf.Debug = false
	core.Conf.TestMode = true
	os.Exit(m.Run())
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

// nopLogger satisfies core.Logger; handler tests assert on responses, not logs.
type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

const (
	testIndexJSON = `{
	  "course": "Precalculus",
	  "lessons": [
	    {"id": "radians", "title": "Radians and the Unit Circle", "chapter": 5, "summary": "Angle measure in radians", "path": "precalc/chapter-5/radians.json"},
	    {"id": "graphs", "title": "Graphs of Sine and Cosine", "chapter": 6, "summary": "Amplitude and period", "path": "precalc/chapter-6/graphs.json"}
	  ]
	}`

	testRadiansJSON = `{
	  "id": "radians",
	  "title": "Radians and the Unit Circle",
	  "chapter": "5",
	  "objectives": ["Convert between degrees and radians"],
	  "pages": [
	    {"id": "p1", "title": "Intro", "blocks": [{"type": "text", "text": "Welcome"}]},
	    {"id": "p2", "title": "Check", "blocks": [
	      {"type": "question", "id": "q1", "prompt": "Convert 30°", "acceptableAnswers": ["\\pi/6"], "requireCorrectBeforeAdvance": true}
	    ]},
	    {"id": "p3", "title": "Done", "blocks": [{"type": "text", "text": "Nice"}]}
	  ]
	}`

	testGraphsJSON = `{
	  "id": "graphs",
	  "title": "Graphs of Sine and Cosine",
	  "chapter": "6",
	  "objectives": [],
	  "pages": [{"id": "p1", "title": "Sine", "blocks": [{"type": "katex", "expression": "y = \\sin x"}]}]
	}`
)

func testLessonFS() fstest.MapFS {
	return fstest.MapFS{
		"precalc/index.json":             {Data: []byte(testIndexJSON)},
		"precalc/chapter-5/radians.json": {Data: []byte(testRadiansJSON)},
		"precalc/chapter-6/graphs.json":  {Data: []byte(testGraphsJSON)},
	}
}

type testEnv struct {
	server  Server
	usrSvc  *user.Service
	usrRepo user.Repository
	prgSvc  *progress.Service
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	db := inmemdb.Open()
	usrRepo := inmemdb.NewUserRepository(db)
	usrSvc := user.NewService(usrRepo, emailsvc.NewConsoleServiceMock())

	lessonSvc := lesson.NewService(testLessonFS())
	prgSvc := progress.NewService(inmemdb.NewProgressRepository(db), lessonSvc)

	server := NewServer(ServerDeps{
		Logger:      nopLogger{},
		UserSvc:     usrSvc,
		LessonSvc:   lessonSvc,
		ProgressSvc: prgSvc,
	})
	return &testEnv{server: server, usrSvc: usrSvc, usrRepo: usrRepo, prgSvc: prgSvc}
}

func createUser(
	t *testing.T,
	repo user.Repository,
	uname, email, pwd string,
	roles []string,
	isActive bool,
) user.User {
	t.Helper()
	now := time.Now().UTC()
	usr := user.User{
		ID:        uname + "-id",
		Username:  uname,
		Email:     email,
		Roles:     roles,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %s; wantData %s", rec.Body.Bytes(), tt.wantData)
	}
}
