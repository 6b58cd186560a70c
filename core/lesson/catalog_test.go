package lesson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testIndexJSON = []byte(`{
  "course": "Precalculus",
  "lessons": [
    {"id": "ch5-angles", "title": "Angles and Radian Measure", "chapter": 5, "summary": "Degrees, radians and arc length.", "path": "precalc/chapter-5/angles.json"},
    {"id": "ch5-unit-circle", "title": "The Unit Circle", "chapter": 5, "summary": "Special angles and coordinates.", "path": "precalc/chapter-5/unit-circle.json"},
    {"id": "ch6-graphs", "title": "Graphs of Sine and Cosine", "chapter": 6, "summary": "Amplitude, period and phase shift.", "path": "precalc/chapter-6/graphs.json"}
  ]
}`)

func TestParseIndex(t *testing.T) {
	t.Run("valid index", func(t *testing.T) {
		idx, err := ParseIndex(testIndexJSON)
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, "Precalculus", idx.Course)
		assert.Len(t, idx.Lessons, 3)
	})

	t.Run("broken index is an error", func(t *testing.T) {
		if _, err := ParseIndex([]byte("{nope")); err == nil {
			t.Error("failed! want error for broken index")
		}
	})

	t.Run("missing lessons default to empty", func(t *testing.T) {
		idx, err := ParseIndex([]byte(`{"course": "Precalculus"}`))
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, []Summary{}, idx.Lessons)
	})
}

func TestIndexFilter(t *testing.T) {
	idx, err := ParseIndex(testIndexJSON)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		chapter int
		term    string
		wantIDs []string
	}{
		{"no filter", 0, "", []string{"ch5-angles", "ch5-unit-circle", "ch6-graphs"}},
		{"by chapter", 5, "", []string{"ch5-angles", "ch5-unit-circle"}},
		{"by term in title", 0, "unit", []string{"ch5-unit-circle"}},
		{"by term in summary", 0, "arc length", []string{"ch5-angles"}},
		{"term is case-insensitive", 0, "SINE", []string{"ch6-graphs"}},
		{"chapter and term", 5, "circle", []string{"ch5-unit-circle"}},
		{"no match", 9, "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotIDs := []string{}
			for _, lsn := range idx.Filter(tt.chapter, tt.term) {
				gotIDs = append(gotIDs, lsn.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestIndexFindByPath(t *testing.T) {
	idx, err := ParseIndex(testIndexJSON)
	if err != nil {
		t.Fatal(err)
	}

	lsn, ok := idx.FindByPath("precalc/chapter-5/unit-circle.json")
	assert.True(t, ok)
	assert.Equal(t, "ch5-unit-circle", lsn.ID)

	_, ok = idx.FindByPath("precalc/chapter-5/missing.json")
	assert.False(t, ok)
}
