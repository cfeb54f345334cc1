package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/avwhitaker/scout/internal/report"
)

func (s *Server) registerResultTools() {
	s.mcp.AddTool(mcp.NewTool("get_results",
		mcp.WithDescription("Export collected results"),
		mcp.WithString("format",
			mcp.Description("Output format"),
			mcp.DefaultString("json"),
			mcp.Enum("json", "markdown", "html", "text"),
		),
	), s.handleGetResults)

	s.mcp.AddTool(mcp.NewTool("search_results",
		mcp.WithDescription("Search within collected results"),
		mcp.WithString("query", mcp.Required(), mcp.Description("Substring to look for")),
		mcp.WithNumber("min_relevance", mcp.Description("Minimum relevance score"), mcp.DefaultNumber(0), mcp.Min(0), mcp.Max(1)),
	), s.handleSearchResults)

	s.mcp.AddTool(mcp.NewTool("analyze_results",
		mcp.WithDescription("Corpus statistics with relevance and credibility distributions"),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(report.Analyze(s.controller.Results()))
	})

	s.mcp.AddTool(mcp.NewTool("get_statistics",
		mcp.WithDescription("Session statistics: task status, cache size, failed URLs"),
	), s.handleGetStatistics)

	s.mcp.AddTool(mcp.NewTool("reanalyze_results",
		mcp.WithDescription("Re-score all collected results under the current parameters"),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		results := s.controller.ReAnalyze()
		return jsonResult(map[string]any{"status": "success", "reanalyzed": len(results)})
	})
}

func (s *Server) handleGetResults(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := req.GetString("format", "json")
	out, err := report.Format(s.controller.Status().Query, s.controller.Results(), format)
	if err != nil {
		return errResult(err)
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleSearchResults(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return errResult(err)
	}
	minRelevance := req.GetFloat("min_relevance", 0)
	matches := s.controller.SearchResults(query, minRelevance)
	return jsonResult(map[string]any{
		"status":  "success",
		"count":   len(matches),
		"matches": matches,
	})
}

func (s *Server) handleGetStatistics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats := map[string]any{
		"status":          s.controller.Status(),
		"current_results": len(s.controller.Results()),
		"failed_urls":     len(s.controller.FailedURLs()),
	}
	if c := s.controller.Cache(); c != nil {
		if n, err := c.Len(); err == nil {
			stats["cached_documents"] = n
		}
		stats["cache_ttl"] = c.TTL().String()
	}
	return jsonResult(stats)
}
