package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stroppy-io/docs-mcp/internal/docstore"
)

func TestReadDoc(t *testing.T) {
	h := &docHandlers{store: docstore.NewDefault()}

	for _, d := range docstore.Seed() {
		result, err := h.readDoc(context.Background(), toolArgs{"doc_id": d.ID})
		require.NoError(t, err)
		assert.False(t, result.IsError, d.ID)
		assert.Equal(t, d.Content, resultText(result), d.ID)
	}
}

func TestReadDoc_NotFound(t *testing.T) {
	h := &docHandlers{store: docstore.NewDefault()}

	result, err := h.readDoc(context.Background(), toolArgs{"doc_id": "missing.txt"})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(result), "missing.txt")
	assert.Contains(t, resultText(result), "not found")
}

func TestEditDoc(t *testing.T) {
	store := docstore.NewDefault()
	h := &docHandlers{store: store}

	result, err := h.editDoc(context.Background(), toolArgs{
		"doc_id":     "plan.md",
		"old_string": "implementation",
		"new_string": "execution",
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Empty(t, result.Content)

	read, err := h.readDoc(context.Background(), toolArgs{"doc_id": "plan.md"})
	require.NoError(t, err)
	assert.Equal(t, "The plan outlines the steps for the project's execution.", resultText(read))
}

func TestEditDoc_NotFound(t *testing.T) {
	store := docstore.NewDefault()
	h := &docHandlers{store: store}

	result, err := h.editDoc(context.Background(), toolArgs{
		"doc_id":     "missing.txt",
		"old_string": "a",
		"new_string": "b",
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(result), "missing.txt")

	ids := make([]string, 0, len(docstore.Seed()))
	for _, d := range docstore.Seed() {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, ids, store.List())
}

func TestEditDoc_NoMatchKeepsContent(t *testing.T) {
	store := docstore.NewDefault()
	h := &docHandlers{store: store}

	result, err := h.editDoc(context.Background(), toolArgs{
		"doc_id":     "spec.txt",
		"old_string": "SPECIFICATIONS",
		"new_string": "specs",
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	content, err := store.Read("spec.txt")
	require.NoError(t, err)
	assert.Equal(t, "These specifications define the technical requirements for the equipment.", content)
}
