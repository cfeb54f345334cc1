package mcpserver

import (
	"context"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/avwhitaker/scout/internal/research"
	"github.com/avwhitaker/scout/internal/search"
)

func newTestServer() (*Server, *research.Controller) {
	provider := &search.StaticProvider{Hits: []search.Hit{
		{Title: "A", URL: "https://example.com/a"},
		{Title: "B", URL: "https://example.com/b"},
	}}
	c := research.NewController(research.Deps{
		Providers: []search.Provider{provider},
		Fetcher: research.FetchFunc(func(ctx context.Context, url string) (string, error) {
			return "<html><body>Climate policy news from Geneva, 2024-01-15. Officials announced progress.</body></html>", nil
		}),
	})
	return New(c, "test"), c
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

func TestStartResearchTool(t *testing.T) {
	s, c := newTestServer()

	res, err := s.handleStartResearch(context.Background(),
		callRequest("start_research", map[string]any{"query": "climate policy"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}
	c.Wait()

	var status research.Status
	if err := jsoniter.UnmarshalFromString(resultText(t, res), &status); err != nil {
		t.Fatalf("response is not a status: %v", err)
	}
	if status.Query != "climate policy" {
		t.Errorf("query = %q", status.Query)
	}
	if len(c.Results()) != 2 {
		t.Errorf("got %d results, want 2", len(c.Results()))
	}
}

func TestStartResearchRequiresQuery(t *testing.T) {
	s, _ := newTestServer()
	res, err := s.handleStartResearch(context.Background(),
		callRequest("start_research", map[string]any{}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError {
		t.Error("missing query accepted")
	}
}

func TestUpdateParametersToolRejectsOutOfRange(t *testing.T) {
	release := make(chan struct{})
	c := research.NewController(research.Deps{
		Providers: []search.Provider{&search.StaticProvider{Hits: []search.Hit{
			{Title: "A", URL: "https://example.com/a"},
		}}},
		Fetcher: research.FetchFunc(func(ctx context.Context, url string) (string, error) {
			<-release
			return "<html><body>Climate policy news.</body></html>", nil
		}),
	})
	s := New(c, "test")

	if _, err := s.handleStartResearch(context.Background(),
		callRequest("start_research", map[string]any{"query": "climate"})); err != nil {
		t.Fatal(err)
	}

	// Task is running; an out-of-range field must be rejected through the
	// tool layer, not just the invalid-state path.
	res, err := s.handleUpdateParameters(context.Background(),
		callRequest("update_parameters", map[string]any{"depth": float64(99)}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError {
		t.Error("out-of-range depth accepted on a running task")
	}
	if out := resultText(t, res); !strings.Contains(out, "depth") {
		t.Errorf("rejection does not name the bad field: %s", out)
	}

	// An in-range update on the same running task applies.
	res, err = s.handleUpdateParameters(context.Background(),
		callRequest("update_parameters", map[string]any{"depth": float64(7)}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Errorf("valid update rejected: %s", resultText(t, res))
	}

	if err := c.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	close(release)
	c.Wait()
}

func TestUpdateParametersToolInvalidState(t *testing.T) {
	s, c := newTestServer()
	if _, err := s.handleStartResearch(context.Background(),
		callRequest("start_research", map[string]any{"query": "climate"})); err != nil {
		t.Fatal(err)
	}
	c.Wait() // terminal now, so any update is invalid-state

	res, err := s.handleUpdateParameters(context.Background(),
		callRequest("update_parameters", map[string]any{"depth": float64(5)}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError {
		t.Error("update on a completed task accepted")
	}
}

func TestGetResultsTool(t *testing.T) {
	s, c := newTestServer()
	if _, err := s.handleStartResearch(context.Background(),
		callRequest("start_research", map[string]any{"query": "climate policy"})); err != nil {
		t.Fatal(err)
	}
	c.Wait()

	res, err := s.handleGetResults(context.Background(),
		callRequest("get_results", map[string]any{"format": "markdown"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	out := resultText(t, res)
	if !strings.Contains(out, "# Research Results: climate policy") {
		t.Errorf("markdown export missing header: %q", out[:60])
	}
}

func TestDetectAnomaliesTool(t *testing.T) {
	s, _ := newTestServer()

	res, err := s.handleDetectAnomalies(context.Background(),
		callRequest("detect_anomalies", map[string]any{
			"series": []any{10.0, 11.0, 9.0, 10.0, 52.0, 10.0, 9.0},
		}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}
	out := resultText(t, res)
	if !strings.Contains(out, `"index": 4`) {
		t.Errorf("anomaly response missing the outlier index: %s", out)
	}

	res, err = s.handleDetectAnomalies(context.Background(),
		callRequest("detect_anomalies", map[string]any{"series": "not an array"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError {
		t.Error("malformed series accepted")
	}
}

func TestSemanticSearchTool(t *testing.T) {
	s, c := newTestServer()
	if _, err := s.handleStartResearch(context.Background(),
		callRequest("start_research", map[string]any{"query": "climate policy"})); err != nil {
		t.Fatal(err)
	}
	c.Wait()

	res, err := s.handleSemanticSearch(context.Background(),
		callRequest("semantic_search", map[string]any{"query": "climate policy", "top_k": float64(1)}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	out := resultText(t, res)
	if !strings.Contains(out, "example.com") {
		t.Errorf("semantic search returned no documents: %s", out)
	}
}
