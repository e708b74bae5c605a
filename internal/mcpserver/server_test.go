package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/credenda/internal/content"
	"github.com/starford/credenda/internal/models"
	"github.com/starford/credenda/internal/reader"
	"github.com/starford/credenda/internal/search"
	"github.com/starford/credenda/internal/testutil"
	"github.com/starford/credenda/internal/view"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	dir, store := testutil.TestContent(t)
	testutil.WriteArticles(t, dir,
		models.Article{
			Number:     6,
			Title:      "Of the Sufficiency of the Holy Scriptures",
			Text:       "Holy Scripture containeth all things necessary to salvation.",
			Scripture:  []string{"2 Timothy 3:15-17"},
			Commentary: "Scripture is the final rule [1].",
			Notes:      "Compare the Council of Trent.",
			Footnotes:  []models.Footnote{{Number: 1, Text: "Jewel, Apology"}},
		},
		models.Article{Number: 7, Title: "Of the Old Testament"},
	)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	fetcher := content.NewFetcher(store, logger, nil)
	svc := reader.NewService(fetcher, search.NewEngine(fetcher, 39, nil), logger, nil)
	return New(svc, logger)
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// Handlers are called directly; mcp-go has no in-process call helper.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "navigate":
		result, err = srv.navigate(ctx, req)
	case "set_toggles":
		result, err = srv.setToggles(ctx, req)
	case "search":
		result, err = srv.search(ctx, req)
	case "list_articles":
		result, err = srv.listArticles(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func resultOutput(t *testing.T, r *mcp.CallToolResult) reader.Output {
	t.Helper()
	if r.IsError {
		t.Fatalf("tool returned error: %s", resultText(r))
	}
	var out reader.Output
	if err := json.Unmarshal([]byte(resultText(r)), &out); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	return out
}

func TestNavigate(t *testing.T) {
	srv := testServer(t)

	out := resultOutput(t, callTool(t, srv, "navigate", map[string]any{"location": "/article/6"}))
	if out.View.Kind != view.KindArticle {
		t.Fatalf("kind = %q", out.View.Kind)
	}
	if srv.session.State().Location != "/article/6" {
		t.Errorf("session location = %q", srv.session.State().Location)
	}
	if srv.session.Current().Location != "/article/6" {
		t.Errorf("current output location = %q", srv.session.Current().Location)
	}
}

func TestNavigate_MissingLocation(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "navigate", map[string]any{})
	if !r.IsError {
		t.Error("expected error for missing location")
	}
}

func TestNavigate_NotFound(t *testing.T) {
	srv := testServer(t)
	out := resultOutput(t, callTool(t, srv, "navigate", map[string]any{"location": "/article/40"}))
	if out.View.Kind != view.KindNotFound {
		t.Errorf("kind = %q, want not_found", out.View.Kind)
	}
}

func TestSetToggles_PartialUpdate(t *testing.T) {
	srv := testServer(t)
	_ = callTool(t, srv, "navigate", map[string]any{"location": "/article/6"})

	out := resultOutput(t, callTool(t, srv, "set_toggles", map[string]any{"notes": false}))
	if out.Toggles.ShowNotes {
		t.Error("notes should be hidden")
	}
	if !out.Toggles.ShowScripture || !out.Toggles.ShowCommentary {
		t.Errorf("omitted toggles must keep their value: %+v", out.Toggles)
	}
	if _, ok := out.View.Block(view.BlockNotes); ok {
		t.Error("notes block rendered while hidden")
	}
	if _, ok := out.View.Block(view.BlockScripture); !ok {
		t.Error("scripture block missing")
	}
	if out.Location != "/article/6" {
		t.Errorf("toggles must re-render the current location, got %q", out.Location)
	}
}

func TestSearch(t *testing.T) {
	srv := testServer(t)

	out := resultOutput(t, callTool(t, srv, "search", map[string]any{"query": "JEWEL"}))
	if out.View.Kind != view.KindSearch {
		t.Fatalf("kind = %q", out.View.Kind)
	}
	results, _ := out.View.Block(view.BlockResults)
	if len(results.Links) != 1 || results.Links[0].Href != "/article/6" {
		t.Errorf("results = %+v", results.Links)
	}

	// Empty query returns to the routed view.
	out = resultOutput(t, callTool(t, srv, "search", map[string]any{"query": ""}))
	if out.View.Kind != view.KindIndex {
		t.Errorf("kind = %q, want index", out.View.Kind)
	}
}

func TestListArticles(t *testing.T) {
	srv := testServer(t)
	_ = callTool(t, srv, "navigate", map[string]any{"location": "/article/7"})

	r := callTool(t, srv, "list_articles", map[string]any{})
	var items []articleItem
	if err := json.Unmarshal([]byte(resultText(r)), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 || items[0].Location != "/article/6" || items[1].Label != "7. Of the Old Testament" {
		t.Errorf("items = %+v", items)
	}
	if srv.session.State().Location != "/article/7" {
		t.Error("list_articles must not move the session")
	}
}

func TestTogglesResource(t *testing.T) {
	srv := testServer(t)
	_ = callTool(t, srv, "set_toggles", map[string]any{"commentary": false})

	contents, err := srv.readTogglesResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("unexpected contents type %T", contents[0])
	}
	if !strings.Contains(tc.Text, `"show_commentary":false`) || !strings.Contains(tc.Text, `"show_notes":true`) {
		t.Errorf("toggles resource = %s", tc.Text)
	}
}

func TestLocationsResource(t *testing.T) {
	srv := testServer(t)
	contents, err := srv.readLocationsResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	tc := contents[0].(mcp.TextResourceContents)
	if !strings.Contains(tc.Text, "/article/{n}") {
		t.Error("contract should describe article locations")
	}
}
