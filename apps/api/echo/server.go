package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/radianlabs/precalc/core"
	"github.com/radianlabs/precalc/core/lesson"
	"github.com/radianlabs/precalc/core/progress"
	"github.com/radianlabs/precalc/core/user"
)

type (
	// ServerDeps holds the Server's dependencies.
	ServerDeps struct {
		Logger      core.Logger
		UserSvc     *user.Service
		LessonSvc   *lesson.Service
		ProgressSvc *progress.Service
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps ServerDeps
		app  *echo.Echo

		// errCh receives errors from the listener;
		// shutdownCh receives OS signals and app-triggered shutdown requests.
		errCh      chan error
		shutdownCh chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:       deps,
		app:        echo.New(),
		errCh:      make(chan error, 1),
		shutdownCh: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !core.Conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.signalShutdown)
	s.app.Debug = core.Conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)
	s.app.GET("/health", health)

	// raw lesson files, same shape the authoring tool produces
	s.app.GET("/lessons/*", s.rawLesson)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerUserAPI(v1, jwt, s.deps.UserSvc)
	registerLessonAPI(v1, jwt, s.deps.LessonSvc)
	registerProgressAPI(v1, jwt, s.deps.ProgressSvc)
	registerPracticeAPI(v1, jwt)
}

func (s *server) Start() {
	signal.Notify(s.shutdownCh, os.Interrupt, syscall.SIGTERM)
	s.errCh <- s.app.Start(core.Conf.Server.Addr())
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errCh
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdownCh
}

// signalShutdown requests a graceful shutdown on integrity issues.
func (s *server) signalShutdown() {
	s.shutdownCh <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+core.Conf.AppName+" API!")
}

func health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (s *server) rawLesson(ctx echo.Context) error {
	raw, err := s.deps.LessonSvc.Raw(ctx.Param("*"))
	if err != nil {
		return errHttpNotFound
	}
	return ctx.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, raw)
}
