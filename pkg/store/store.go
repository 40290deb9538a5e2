// Package store owns the fold tree of every open document.
//
// A document's tree is built when it opens, discarded and rebuilt on every
// change, and dropped when it closes. Readers always see a complete tree.
package store

import (
	"slices"
	"sync"

	"github.com/yaklabco/gofold/pkg/foldtree"
)

// Document is an open document and its current fold tree.
type Document struct {
	ID       string
	Language string
	Version  int
	Tree     *foldtree.Tree
}

// Store maps document IDs to fold trees.
// It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	markers foldtree.MarkerTable
	docs    map[string]*Document
}

// New creates an empty Store that parses with markers.
// A nil table uses the built-in markers.
func New(markers foldtree.MarkerTable) *Store {
	if markers == nil {
		markers = foldtree.DefaultMarkers()
	}
	return &Store{
		markers: markers,
		docs:    make(map[string]*Document),
	}
}

// Open builds and stores the tree for a document.
// Documents in a language without markers are ignored and Open returns false.
// Opening an already-open document replaces its tree.
func (s *Store) Open(id string, lines []string, language string) bool {
	if !s.markers.Supports(language) {
		return false
	}

	tree := foldtree.ParseWith(lines, s.markers.Lookup(language))

	s.mu.Lock()
	defer s.mu.Unlock()

	version := 1
	if prev, ok := s.docs[id]; ok {
		version = prev.Version + 1
	}
	s.docs[id] = &Document{ID: id, Language: language, Version: version, Tree: tree}
	return true
}

// Change discards the document's tree and rebuilds it from lines.
// A change that moves the document to an unsupported language closes it.
func (s *Store) Change(id string, lines []string, language string) bool {
	if !s.markers.Supports(language) {
		s.Close(id)
		return false
	}
	return s.Open(id, lines, language)
}

// Close drops the document's tree. It reports whether the document was open.
func (s *Store) Close(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.docs[id]
	delete(s.docs, id)
	return ok
}

// Tree returns the current tree for id, or nil if the document is not open.
func (s *Store) Tree(id string) *foldtree.Tree {
	doc := s.Document(id)
	if doc == nil {
		return nil
	}
	return doc.Tree
}

// Document returns a copy of the stored document, or nil.
func (s *Store) Document(id string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil
	}
	out := *doc
	return &out
}

// IDs returns the open document IDs in sorted order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of open documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Supports reports whether documents in language are tracked.
func (s *Store) Supports(language string) bool {
	return s.markers.Supports(language)
}
