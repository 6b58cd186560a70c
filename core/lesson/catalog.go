package lesson

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

type (
	// Summary is one catalog entry of the lesson index file.
	Summary struct {
		ID      string `json:"id"`
		Title   string `json:"title"`
		Chapter int    `json:"chapter"`
		Summary string `json:"summary,omitempty"`
		Path    string `json:"path"`
	}

	// Index is the course catalog (content/lessons/precalc/index.json).
	Index struct {
		Course  string    `json:"course"`
		Lessons []Summary `json:"lessons"`
	}
)

// ParseIndex decodes the catalog file. Unlike lesson documents the index is
// maintained alongside the code, so a broken index is an error rather than
// something to silently degrade.
func ParseIndex(raw []byte) (Index, error) {
	var idx Index
	if err := json.Unmarshal(raw, &idx); err != nil {
		return Index{}, errors.Wrap(err, "decoding lesson index")
	}
	if idx.Lessons == nil {
		idx.Lessons = []Summary{}
	}
	return idx, nil
}

// Filter returns the catalog entries matching the given chapter (0 matches
// all) and search term (case-insensitive match on title or summary).
func (idx Index) Filter(chapter int, term string) []Summary {
	term = strings.ToLower(strings.TrimSpace(term))

	matches := []Summary{}
	for _, lsn := range idx.Lessons {
		if chapter != 0 && lsn.Chapter != chapter {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(lsn.Title), term) &&
			!strings.Contains(strings.ToLower(lsn.Summary), term) {
			continue
		}
		matches = append(matches, lsn)
	}
	return matches
}

// FindByPath looks a catalog entry up by its lesson file path.
func (idx Index) FindByPath(path string) (Summary, bool) {
	for _, lsn := range idx.Lessons {
		if lsn.Path == path {
			return lsn, true
		}
	}
	return Summary{}, false
}
