package lesson

import (
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

const indexPath = "precalc/index.json"

var (
	// errors
	ErrNotFound = errors.New("lesson not found")
)

// Service reads and validates lesson content from a content file system
// (the embedded content by default, a directory override in dev).
// Documents are parsed on every read; the index is cached after first use.
type Service struct {
	fsys fs.FS

	mu  sync.Mutex
	idx *Index
}

func NewService(fsys fs.FS) *Service {
	return &Service{fsys: fsys}
}

// Index returns the course catalog.
func (svc *Service) Index() (Index, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.idx != nil {
		return *svc.idx, nil
	}

	raw, err := fs.ReadFile(svc.fsys, indexPath)
	if err != nil {
		return Index{}, errors.Wrap(err, "reading lesson index")
	}
	idx, err := ParseIndex(raw)
	if err != nil {
		return Index{}, err
	}
	svc.idx = &idx
	return idx, nil
}

// Search filters the catalog by chapter (0 = all) and a free search term.
func (svc *Service) Search(chapter int, term string) ([]Summary, error) {
	idx, err := svc.Index()
	if err != nil {
		return nil, err
	}
	return idx.Filter(chapter, term), nil
}

// Raw returns the authored JSON bytes of a lesson file, unvalidated.
func (svc *Service) Raw(path string) ([]byte, error) {
	if !validLessonPath(path) {
		return nil, ErrNotFound
	}
	raw, err := fs.ReadFile(svc.fsys, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "reading lesson file %s", path)
	}
	return raw, nil
}

// Get returns the validated document for a lesson file. A malformed file
// degrades to a (possibly empty) document; only a missing file is an error.
func (svc *Service) Get(path string) (Document, error) {
	raw, err := svc.Raw(path)
	if err != nil {
		return Document{}, err
	}
	return ParseDocument(raw), nil
}

// FindQuestion resolves a question block by lesson path and question id.
func (svc *Service) FindQuestion(path, questionID string) (Block, error) {
	doc, err := svc.Get(path)
	if err != nil {
		return Block{}, err
	}
	block, ok := doc.FindQuestion(questionID)
	if !ok {
		return Block{}, ErrNotFound
	}
	return block, nil
}

// PageCount returns the number of pages of a lesson document.
func (svc *Service) PageCount(path string) (int, error) {
	doc, err := svc.Get(path)
	if err != nil {
		return 0, err
	}
	return len(doc.Pages), nil
}

// validLessonPath fences reads into the content FS: a clean, relative
// .json path with no traversal.
func validLessonPath(path string) bool {
	return fs.ValidPath(path) &&
		strings.HasSuffix(path, ".json") &&
		!strings.Contains(path, "..")
}
