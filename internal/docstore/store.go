// Package docstore holds the in-memory document set served over MCP.
//
// The set of document IDs is fixed when the store is created. Documents can be
// listed, read and edited in place, but never added or removed.
package docstore

import (
	"strings"
	"sync"
)

// Document is a single seeded document.
type Document struct {
	ID      string
	Content string
}

var seed = []Document{
	{ID: "deposition.md", Content: "This deposition covers the testimony of Angela Smith, P.E."},
	{ID: "report.pdf", Content: "The report details the state of a 20m condenser tower."},
	{ID: "financials.docx", Content: "These financials outline the project's budget and expenditures."},
	{ID: "outlook.pdf", Content: "This document presents the projected future performance of the system."},
	{ID: "plan.md", Content: "The plan outlines the steps for the project's implementation."},
	{ID: "spec.txt", Content: "These specifications define the technical requirements for the equipment."},
}

// Seed returns a copy of the documents every new default store starts with.
func Seed() []Document {
	out := make([]Document, len(seed))
	copy(out, seed)
	return out
}

// Store is a fixed-key, mutable-content document mapping.
// It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	order []string
	docs  map[string]string
}

// New creates a store holding docs in the given order.
// A repeated ID keeps its first position and its last content.
func New(docs []Document) *Store {
	s := &Store{
		order: make([]string, 0, len(docs)),
		docs:  make(map[string]string, len(docs)),
	}
	for _, d := range docs {
		if _, ok := s.docs[d.ID]; !ok {
			s.order = append(s.order, d.ID)
		}
		s.docs[d.ID] = d.Content
	}
	return s
}

// NewDefault creates a store holding the default seed.
func NewDefault() *Store {
	return New(seed)
}

// List returns all document IDs in seed order.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// Len returns the number of documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Read returns the current content of the document with the given ID.
func (s *Store) Read(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.docs[id]
	if !ok {
		return "", &NotFoundError{ID: id}
	}
	return content, nil
}

// Edit replaces every literal occurrence of oldText with newText in the
// document with the given ID. Matching is exact and case-sensitive.
// When oldText does not occur the content is left as is.
func (s *Store) Edit(id, oldText, newText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, ok := s.docs[id]
	if !ok {
		return &NotFoundError{ID: id}
	}
	s.docs[id] = strings.ReplaceAll(content, oldText, newText)
	return nil
}
