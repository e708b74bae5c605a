// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes a Credenda reading session for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/credenda/internal/reader"
	"github.com/starford/credenda/internal/view"
)

// Resource URIs.
const (
	TogglesURI   = "credenda://toggles"
	LocationsURI = "credenda://locations"
)

// Server wraps the MCP server around a single reading session.
type Server struct {
	mcp     *server.MCPServer
	svc     *reader.Service
	session *reader.Session
	logger  *slog.Logger
}

// New creates a new MCP server with all Credenda tools registered. The
// session starts at the index with every section shown.
func New(svc *reader.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{svc: svc, logger: logger}
	s.session = reader.NewSession(svc, reader.SinkFunc(s.present), view.AllSections())

	s.mcp = server.NewMCPServer(
		"Credenda",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("navigate",
		mcp.WithDescription("Move the reading session to a location and return its view. "+
			"Locations are / (index), /article/{n} and /daily/{service}. "+
			"Read the credenda://locations resource for the full contract."),
		mcp.WithString("location", mcp.Required(), mcp.Description("Location to open, e.g. /article/7")),
	), s.navigate)

	s.mcp.AddTool(mcp.NewTool("set_toggles",
		mcp.WithDescription("Show or hide article sections and re-render the current location. "+
			"Omitted toggles keep their current value."),
		mcp.WithBoolean("scripture", mcp.Description("Show scripture proofs")),
		mcp.WithBoolean("notes", mcp.Description("Show historical notes")),
		mcp.WithBoolean("commentary", mcp.Description("Show commentary and footnote references")),
	), s.setToggles)

	s.mcp.AddTool(mcp.NewTool("search",
		mcp.WithDescription("Case-insensitive search across all articles. "+
			"An empty query returns to the current location."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.search)

	s.mcp.AddTool(mcp.NewTool("list_articles",
		mcp.WithDescription("List the articles in index order without moving the session."),
	), s.listArticles)

	s.mcp.AddResource(
		mcp.NewResource(TogglesURI, "Section Toggles",
			mcp.WithResourceDescription("Current show/hide state of scripture, notes and commentary."),
			mcp.WithMIMEType("application/json"),
		),
		s.readTogglesResource,
	)

	s.mcp.AddResource(
		mcp.NewResource(LocationsURI, "Reading Contract",
			mcp.WithResourceDescription("Location grammar and view-model returned by every tool."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readLocationsResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// present is the session sink: connected clients are told the toggles
// resource may have changed.
func (s *Server) present(out reader.Output) {
	s.logger.Debug("mcp: view applied",
		slog.String("location", out.Location),
		slog.String("view", string(out.View.Kind)))
	s.mcp.SendNotificationToAllClients("notifications/resources/updated", map[string]any{
		"uri": TogglesURI,
	})
}

func (s *Server) navigate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	location, err := req.RequireString("location")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return viewResult(s.session.Navigate(ctx, location))
}

func (s *Server) setToggles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t := s.session.State().Toggles
	args := req.GetArguments()
	if _, ok := args["scripture"]; ok {
		t.ShowScripture = req.GetBool("scripture", t.ShowScripture)
	}
	if _, ok := args["notes"]; ok {
		t.ShowNotes = req.GetBool("notes", t.ShowNotes)
	}
	if _, ok := args["commentary"]; ok {
		t.ShowCommentary = req.GetBool("commentary", t.ShowCommentary)
	}
	return viewResult(s.session.SetToggles(ctx, t))
}

func (s *Server) search(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return viewResult(s.session.SetQuery(ctx, query))
}

type articleItem struct {
	Location string `json:"location"`
	Label    string `json:"label"`
}

func (s *Server) listArticles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out := s.svc.Render(ctx, "/", s.session.State().Toggles)
	contents, _ := out.View.Block(view.BlockContents)

	items := make([]articleItem, 0, len(contents.Links))
	for _, l := range contents.Links {
		items = append(items, articleItem{Location: l.Href, Label: l.Label})
	}
	if len(items) == 0 {
		return mcp.NewToolResultError("article index unavailable"), nil
	}
	data, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) readTogglesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(s.session.State().Toggles)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      TogglesURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) readLocationsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      LocationsURI,
			MIMEType: "text/markdown",
			Text:     LocationContract,
		},
	}, nil
}

// viewResult encodes a session output. A superseded render is reported
// as such instead of returning a view the session no longer shows.
func viewResult(out reader.Output, applied bool) (*mcp.CallToolResult, error) {
	if !applied {
		return mcp.NewToolResultText("superseded by a newer request"), nil
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
