package main

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stroppy-io/docs-mcp/internal/docstore"
)

const (
	toolReadDoc = "read_doc_contents"
	toolEditDoc = "edit_document"
)

// docHandlers binds the document store to the MCP tools, resources and
// prompts that expose it.
type docHandlers struct {
	store *docstore.Store
}

// readDoc returns the contents of a document.
func (h *docHandlers) readDoc(_ context.Context, args toolArgs) (*mcp.CallToolResult, error) {
	content, err := h.store.Read(args["doc_id"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(content), nil
}

// editDoc replaces every occurrence of old_string with new_string.
// A successful edit returns no content.
func (h *docHandlers) editDoc(_ context.Context, args toolArgs) (*mcp.CallToolResult, error) {
	if err := h.store.Edit(args["doc_id"], args["old_string"], args["new_string"]); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return &mcp.CallToolResult{Content: []mcp.Content{}}, nil
}
