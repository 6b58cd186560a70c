package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/radianlabs/precalc/apps/api/echo"
	"github.com/radianlabs/precalc/core"
	"github.com/radianlabs/precalc/core/lesson"
	"github.com/radianlabs/precalc/core/progress"
	"github.com/radianlabs/precalc/core/user"
	appfs "github.com/radianlabs/precalc/fs"
	emailsvc "github.com/radianlabs/precalc/services/email"
	logsvc "github.com/radianlabs/precalc/services/logger"
	"github.com/radianlabs/precalc/storage/database"
	sqlxrepos "github.com/radianlabs/precalc/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		core.Conf,
	)
	logger.Enable(!core.Conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		core.Conf,
	)
	dbLogger.Enable(!core.Conf.Debug)

	// set up DB
	db, err := setUpDB()
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	usrSvc := user.NewService(sqlxrepos.NewUserRepository(db), mailSvc)

	lessonFS, err := lessonContentFS()
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading lesson content: %v", err), err)
	}
	lessonSvc := lesson.NewService(lessonFS)
	progressSvc := progress.NewService(sqlxrepos.NewProgressRepository(db), lessonSvc)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", core.Conf.Build))
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Logger:      logger,
			UserSvc:     usrSvc,
			LessonSvc:   lessonSvc,
			ProgressSvc: progressSvc,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), core.Conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB() (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(core.Conf); err != nil {
		return nil, err
	}

	db, err := database.Open(core.Conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return sqlx.NewDb(db, "postgres"), nil
}

// lessonContentFS serves the embedded lesson content by default;
// LESSONCONTENTDIR points it at a working copy during authoring.
func lessonContentFS() (fs.FS, error) {
	if dir := core.Conf.LessonContentDir; dir != "" {
		return os.DirFS(dir), nil
	}
	return appfs.LessonContent()
}
