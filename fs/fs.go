// Package appfs embeds the database migrations and the authored lesson
// content so a deployment is a single binary.
package appfs

import (
	"embed"
	"io/fs"
)

//go:embed migrations content
var FS embed.FS

// LessonContent roots the embedded FS at the lesson content directory;
// lesson paths like "precalc/index.json" resolve against it.
func LessonContent() (fs.FS, error) {
	return fs.Sub(FS, "content/lessons")
}
