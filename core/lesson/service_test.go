package lesson

import (
	"testing"
	"testing/fstest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newTestService() *Service {
	return NewService(fstest.MapFS{
		"precalc/index.json": &fstest.MapFile{Data: testIndexJSON},
		"precalc/chapter-5/unit-circle.json": &fstest.MapFile{Data: []byte(`{
			"title": "The Unit Circle",
			"pages": [
				{"id": "p1", "title": "Coordinates", "blocks": [
					{"type": "question", "id": "q1", "prompt": "sin(\\pi/6)?", "acceptableAnswers": ["1/2"]}
				]},
				{"id": "p2", "title": "Practice", "blocks": []}
			]
		}`)},
		"precalc/chapter-5/broken.json": &fstest.MapFile{Data: []byte("{not json")},
	})
}

func TestServiceIndex(t *testing.T) {
	svc := newTestService()

	idx, err := svc.Index()
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "Precalculus", idx.Course)

	lessons, err := svc.Search(5, "circle")
	if err != nil {
		t.Fatal(err)
	}
	if assert.Len(t, lessons, 1) {
		assert.Equal(t, "ch5-unit-circle", lessons[0].ID)
	}
}

func TestServiceGet(t *testing.T) {
	svc := newTestService()

	t.Run("valid lesson", func(t *testing.T) {
		doc, err := svc.Get("precalc/chapter-5/unit-circle.json")
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, "The Unit Circle", doc.Title)
		assert.Len(t, doc.Pages, 2)

		count, err := svc.PageCount("precalc/chapter-5/unit-circle.json")
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, 2, count)
	})

	t.Run("malformed lesson degrades, never errors", func(t *testing.T) {
		doc, err := svc.Get("precalc/chapter-5/broken.json")
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, []Page{}, doc.Pages)
	})

	t.Run("missing lesson", func(t *testing.T) {
		_, err := svc.Get("precalc/chapter-5/missing.json")
		if errors.Cause(err) != ErrNotFound {
			t.Errorf("failed! err = %v; want ErrNotFound", err)
		}
	})
}

func TestServiceRawPathValidation(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name string
		path string
	}{
		{"absolute path", "/etc/passwd"},
		{"traversal", "../go.mod"},
		{"inner traversal", "precalc/../../secret.json"},
		{"non json", "precalc/index.txt"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Raw(tt.path); errors.Cause(err) != ErrNotFound {
				t.Errorf("failed! err = %v; want ErrNotFound", err)
			}
		})
	}
}

func TestServiceFindQuestion(t *testing.T) {
	svc := newTestService()

	q, err := svc.FindQuestion("precalc/chapter-5/unit-circle.json", "q1")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, []string{"1/2"}, q.AcceptableAnswers)

	if _, err := svc.FindQuestion("precalc/chapter-5/unit-circle.json", "nope"); errors.Cause(err) != ErrNotFound {
		t.Errorf("failed! err = %v; want ErrNotFound", err)
	}
}
