package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/avwhitaker/scout/internal/credibility"
	"github.com/avwhitaker/scout/internal/graph"
	"github.com/avwhitaker/scout/internal/osint"
)

func (s *Server) registerIntelligenceTools() {
	s.mcp.AddTool(mcp.NewTool("semantic_search",
		mcp.WithDescription("Rank collected documents by TF-IDF cosine similarity to a query"),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
		mcp.WithNumber("top_k", mcp.Description("Number of matches"), mcp.DefaultNumber(5), mcp.Min(1), mcp.Max(50)),
	), s.handleSemanticSearch)

	s.mcp.AddTool(mcp.NewTool("score_source_credibility",
		mcp.WithDescription("Score a source URL's credibility with a factor breakdown"),
		mcp.WithString("url", mcp.Required(), mcp.Description("Source URL")),
		mcp.WithString("content", mcp.Description("Page content, when available")),
	), s.handleScoreCredibility)

	s.mcp.AddTool(mcp.NewTool("build_knowledge_graph",
		mcp.WithDescription("Build the entity co-occurrence graph over collected results"),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g := s.buildGraph()
		return jsonResult(map[string]any{
			"node_count": g.NodeCount(),
			"edge_count": g.EdgeCount(),
			"nodes":      g.Nodes(),
			"edges":      g.Edges(),
		})
	})

	s.mcp.AddTool(mcp.NewTool("get_intelligence_score",
		mcp.WithDescription("Overall research quality score with breakdown"),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(osint.IntelligenceScore(s.controller.Results()))
	})

	s.mcp.AddTool(mcp.NewTool("rank_influence",
		mcp.WithDescription("Rank entities by propagated centrality over the knowledge graph"),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(osint.Influence(s.buildGraph()))
	})

	s.mcp.AddTool(mcp.NewTool("detect_communities",
		mcp.WithDescription("Group entities into connected components over strong edges"),
		mcp.WithNumber("min_weight", mcp.Description("Minimum edge weight"), mcp.DefaultNumber(1), mcp.Min(1)),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		minWeight := int(req.GetFloat("min_weight", 1))
		return jsonResult(osint.Communities(s.buildGraph(), minWeight))
	})

	s.mcp.AddTool(mcp.NewTool("analyze_timeline",
		mcp.WithDescription("Cluster collected documents by extracted date mentions"),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(osint.BuildTimeline(s.documentTexts()))
	})

	s.mcp.AddTool(mcp.NewTool("extract_locations",
		mcp.WithDescription("Extract location mentions per collected document"),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(osint.LocationsByDocument(s.documentTexts()))
	})

	s.mcp.AddTool(mcp.NewTool("detect_anomalies",
		mcp.WithDescription("Flag outliers in a numeric series by Z-score"),
		mcp.WithArray("series", mcp.Required(), mcp.Description("Numeric series to inspect")),
		mcp.WithNumber("threshold", mcp.Description("Z-score threshold"), mcp.DefaultNumber(2)),
	), s.handleDetectAnomalies)
}

func (s *Server) buildGraph() *graph.Graph {
	results := s.controller.Results()
	sets := make([][]string, len(results))
	for i, r := range results {
		sets[i] = r.Entities
	}
	return graph.Build(sets)
}

func (s *Server) documentTexts() map[string]string {
	docs := make(map[string]string)
	for _, r := range s.controller.Results() {
		docs[r.Doc.URL] = r.Doc.Text
	}
	return docs
}

func (s *Server) handleSemanticSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return errResult(err)
	}
	topK := int(req.GetFloat("top_k", 5))

	results := s.controller.Results()
	ids := make([]string, len(results))
	texts := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.Doc.URL
		texts[i] = r.Doc.Text
	}
	ix := s.controller.SemanticIndex()
	ix.Build(ids, texts)

	return jsonResult(map[string]any{
		"status":  "success",
		"matches": ix.Search(query, topK),
	})
}

func (s *Server) handleScoreCredibility(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := req.RequireString("url")
	if err != nil {
		return errResult(err)
	}
	content := req.GetString("content", "")

	// Standalone scoring has no query alignment or task domain history;
	// neutral values keep the factor weights honest.
	return jsonResult(credibility.Score(url, content, 0.5, false))
}

func (s *Server) handleDetectAnomalies(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := req.Params.Arguments.(map[string]any)
	raw, ok := args["series"].([]any)
	if !ok {
		return mcp.NewToolResultError("series must be an array of numbers"), nil
	}
	series := make([]float64, 0, len(raw))
	for _, v := range raw {
		f, ok := v.(float64)
		if !ok {
			return mcp.NewToolResultError("series must be an array of numbers"), nil
		}
		series = append(series, f)
	}

	threshold := req.GetFloat("threshold", osint.DefaultZScoreThreshold)
	return jsonResult(map[string]any{
		"status":    "success",
		"anomalies": osint.Anomalies(series, threshold),
	})
}
