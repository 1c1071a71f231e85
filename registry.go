package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/stroppy-io/docs-mcp/internal/docstore"
)

// paramSpec describes one string parameter of a tool or prompt.
type paramSpec struct {
	Name        string
	Description string
	Required    bool
}

// toolArgs holds validated string arguments keyed by parameter name.
// Optional parameters that were not sent are present with "".
type toolArgs map[string]string

type toolFunc func(ctx context.Context, args toolArgs) (*mcp.CallToolResult, error)

type toolEntry struct {
	Name        string
	Description string
	Params      []paramSpec
	Handler     toolFunc
}

type resourceEntry struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
	Handler     server.ResourceHandlerFunc
}

type templateEntry struct {
	URITemplate string
	Name        string
	Description string
	MIMEType    string
	Handler     server.ResourceTemplateHandlerFunc
}

type promptEntry struct {
	Name        string
	Description string
	Args        []paramSpec
	Render      func(args map[string]string) string
}

// registry is the full set of handlers the server exposes, kept as data so
// it can be inspected and tested without a transport.
type registry struct {
	tools     []toolEntry
	resources []resourceEntry
	templates []templateEntry
	prompts   []promptEntry
}

func newRegistry(store *docstore.Store) *registry {
	h := &docHandlers{store: store}

	return &registry{
		tools: []toolEntry{
			{
				Name:        toolReadDoc,
				Description: "Reads the contents of a document and return its contents as a string.",
				Params: []paramSpec{
					{Name: "doc_id", Description: "The ID of the document to read.", Required: true},
				},
				Handler: h.readDoc,
			},
			{
				Name:        toolEditDoc,
				Description: "Edits a document by replacing a string in the document content with a new string.",
				Params: []paramSpec{
					{Name: "doc_id", Description: "The ID of the document that will be edited.", Required: true},
					{Name: "old_string", Description: "The string to be replaced in the document. Must match exactly, including whitespace.", Required: true},
					{Name: "new_string", Description: "The string to replace the old string with.", Required: true},
				},
				Handler: h.editDoc,
			},
		},
		resources: []resourceEntry{
			{
				URI:         docsListURI,
				Name:        "Documents",
				Description: "IDs of every document in the store.",
				MIMEType:    "application/json",
				Handler:     h.listDocuments,
			},
		},
		templates: []templateEntry{
			{
				URITemplate: docsURIPrefix + "{doc_id}",
				Name:        "Document",
				Description: "Contents of a single document.",
				MIMEType:    "text/plain",
				Handler:     h.fetchDocument,
			},
		},
		prompts: []promptEntry{
			{
				Name:        promptFormat,
				Description: "Reformats a document into markdown format.",
				Args: []paramSpec{
					{Name: "doc_id", Description: "The ID of the document to format.", Required: true},
				},
				Render: func(args map[string]string) string { return formatPromptText(args["doc_id"]) },
			},
			{
				Name:        promptSummarize,
				Description: "Summarizes the contents of a document.",
				Args: []paramSpec{
					{Name: "doc_id", Description: "The ID of the document to summarize.", Required: true},
				},
				Render: func(args map[string]string) string { return summarizePromptText(args["doc_id"]) },
			},
		},
	}
}

// register adds every entry to the MCP server.
func (r *registry) register(s *server.MCPServer) {
	s.AddTools(r.serverTools()...)
	s.AddResources(r.serverResources()...)
	s.AddResourceTemplates(r.serverResourceTemplates()...)
	s.AddPrompts(r.serverPrompts()...)
}

func (r *registry) serverTools() []server.ServerTool {
	out := make([]server.ServerTool, 0, len(r.tools))
	for _, e := range r.tools {
		out = append(out, server.ServerTool{Tool: e.tool(), Handler: e.handler()})
	}
	return out
}

func (r *registry) serverResources() []server.ServerResource {
	out := make([]server.ServerResource, 0, len(r.resources))
	for _, e := range r.resources {
		out = append(out, server.ServerResource{
			Resource: mcp.NewResource(e.URI, e.Name,
				mcp.WithResourceDescription(e.Description),
				mcp.WithMIMEType(e.MIMEType),
			),
			Handler: e.Handler,
		})
	}
	return out
}

func (r *registry) serverResourceTemplates() []server.ServerResourceTemplate {
	out := make([]server.ServerResourceTemplate, 0, len(r.templates))
	for _, e := range r.templates {
		out = append(out, server.ServerResourceTemplate{
			Template: mcp.NewResourceTemplate(e.URITemplate, e.Name,
				mcp.WithTemplateDescription(e.Description),
				mcp.WithTemplateMIMEType(e.MIMEType),
			),
			Handler: e.Handler,
		})
	}
	return out
}

func (r *registry) serverPrompts() []server.ServerPrompt {
	out := make([]server.ServerPrompt, 0, len(r.prompts))
	for _, e := range r.prompts {
		out = append(out, server.ServerPrompt{Prompt: e.prompt(), Handler: e.handler()})
	}
	return out
}

// tool builds the mcp.Tool schema from the entry's parameter list.
func (e toolEntry) tool() mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(e.Description)}
	for _, p := range e.Params {
		popts := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			popts = append(popts, mcp.Required())
		}
		opts = append(opts, mcp.WithString(p.Name, popts...))
	}
	return mcp.NewTool(e.Name, opts...)
}

func (e toolEntry) handler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := validateToolArgs(e.Params, request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return e.Handler(ctx, args)
	}
}

// validateToolArgs checks that every required parameter was sent as a string.
// Empty strings are accepted.
func validateToolArgs(params []paramSpec, request mcp.CallToolRequest) (toolArgs, error) {
	args := make(toolArgs, len(params))
	for _, p := range params {
		if !p.Required {
			args[p.Name] = request.GetString(p.Name, "")
			continue
		}
		v, err := request.RequireString(p.Name)
		if err != nil {
			return nil, err
		}
		args[p.Name] = v
	}
	return args, nil
}

func (e promptEntry) prompt() mcp.Prompt {
	opts := []mcp.PromptOption{mcp.WithPromptDescription(e.Description)}
	for _, a := range e.Args {
		aopts := []mcp.ArgumentOption{mcp.ArgumentDescription(a.Description)}
		if a.Required {
			aopts = append(aopts, mcp.RequiredArgument())
		}
		opts = append(opts, mcp.WithArgument(a.Name, aopts...))
	}
	return mcp.NewPrompt(e.Name, opts...)
}

func (e promptEntry) handler() server.PromptHandlerFunc {
	return func(_ context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		args, err := validatePromptArgs(e.Args, request.Params.Arguments)
		if err != nil {
			return nil, err
		}
		return mcp.NewGetPromptResult(e.Description, []mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(e.Render(args))),
		}), nil
	}
}

func validatePromptArgs(params []paramSpec, sent map[string]string) (map[string]string, error) {
	args := make(map[string]string, len(params))
	for _, p := range params {
		v, ok := sent[p.Name]
		if !ok && p.Required {
			return nil, fmt.Errorf("required argument %q not found", p.Name)
		}
		args[p.Name] = v
	}
	return args, nil
}
