package server

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ziadkadry99/doxynav/internal/navtree"
)

// Source holds the navigation document served by the API and reloads it from
// disk on request. It is safe for concurrent use.
type Source struct {
	path    string
	resolve bool

	mu      sync.RWMutex
	doc     *navtree.Document
	version int
}

// NewSource returns a Source for the navtreedata.js file at path. When
// resolve is set, deferred child scripts next to the file are inlined on
// every load. An empty path gives a Source that only accepts Set.
func NewSource(path string, resolve bool) *Source {
	return &Source{path: path, resolve: resolve}
}

// Path returns the file the source loads from.
func (s *Source) Path() string { return s.path }

// Load reads and parses the file. On failure the previously loaded document
// stays current.
func (s *Source) Load() error {
	if s.path == "" {
		return fmt.Errorf("source has no file")
	}
	src, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", s.path, err)
	}
	doc, err := navtree.Load(src)
	if err != nil {
		return fmt.Errorf("loading %s: %w", s.path, err)
	}
	if s.resolve {
		doc, err = navtree.Resolve(os.DirFS(filepath.Dir(s.path)), doc)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", s.path, err)
		}
	}
	s.Set(doc)
	return nil
}

// Set replaces the current document.
func (s *Source) Set(doc *navtree.Document) {
	s.mu.Lock()
	s.doc = doc
	s.version++
	s.mu.Unlock()
}

// Current returns the loaded document and its version, or nil before the
// first successful load. Callers must not modify the document.
func (s *Source) Current() (*navtree.Document, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc, s.version
}
