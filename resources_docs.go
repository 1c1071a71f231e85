package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	docsListURI   = "docs://documents"
	docsURIPrefix = docsListURI + "/"
)

//go:embed instructions.md
var instructions string

// listDocuments returns the IDs of all documents as a JSON array.
func (h *docHandlers) listDocuments(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(h.store.List())
	if err != nil {
		return nil, fmt.Errorf("encode document list: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      docsListURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// fetchDocument returns the contents of the document addressed by
// docs://documents/{doc_id}.
func (h *docHandlers) fetchDocument(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	content, err := h.store.Read(docIDFromURI(request))
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/plain",
			Text:     content,
		},
	}, nil
}

// docIDFromURI prefers the variable matched by the server's URI template and
// falls back to the unescaped remainder of the URI.
func docIDFromURI(request mcp.ReadResourceRequest) string {
	switch id := request.Params.Arguments["doc_id"].(type) {
	case string:
		return id
	case []string:
		if len(id) > 0 {
			return id[0]
		}
	}
	raw := strings.TrimPrefix(request.Params.URI, docsURIPrefix)
	if id, err := url.PathUnescape(raw); err == nil {
		return id
	}
	return raw
}
