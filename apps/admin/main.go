package main

import (
	"io/fs"
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/radianlabs/precalc/core"
	appfs "github.com/radianlabs/precalc/fs"
	"github.com/radianlabs/precalc/storage/database"
	sqlxrepos "github.com/radianlabs/precalc/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up DB
	db, err := database.Open(core.Conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	lessonFS, err := lessonContentFS()
	errAndDie(err)

	// start CLI
	cli := commandLine{
		db:       db,
		usrRepo:  sqlxrepos.NewUserRepository(sqlx.NewDb(db, "postgres")),
		lessonFS: lessonFS,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func lessonContentFS() (fs.FS, error) {
	if dir := core.Conf.LessonContentDir; dir != "" {
		return os.DirFS(dir), nil
	}
	return appfs.LessonContent()
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
