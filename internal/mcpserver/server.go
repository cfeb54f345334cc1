// Package mcpserver exposes the research pipeline as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/avwhitaker/scout/internal/logging"
	"github.com/avwhitaker/scout/internal/research"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Server wires a research controller to the MCP tool surface.
type Server struct {
	controller *research.Controller
	mcp        *server.MCPServer
}

// New builds the MCP server and registers every tool.
func New(controller *research.Controller, version string) *Server {
	s := &Server{
		controller: controller,
		mcp: server.NewMCPServer(
			"Scout Research",
			version,
			server.WithToolCapabilities(true),
			server.WithRecovery(),
		),
	}
	s.registerLifecycleTools()
	s.registerResultTools()
	s.registerIntelligenceTools()
	return s
}

// ServeStdio blocks serving MCP over stdin/stdout.
func (s *Server) ServeStdio() error {
	logging.Info("mcp server listening on stdio")
	return server.ServeStdio(s.mcp)
}

// jsonResult marshals v as an indented JSON tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func errResult(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func (s *Server) registerLifecycleTools() {
	s.mcp.AddTool(mcp.NewTool("start_research",
		mcp.WithDescription("Start a new research task for a query"),
		mcp.WithString("query", mcp.Required(), mcp.Description("Research topic or question")),
		mcp.WithNumber("depth", mcp.Description("Research depth"), mcp.DefaultNumber(3), mcp.Min(1), mcp.Max(10)),
		mcp.WithNumber("max_results", mcp.Description("Maximum documents to collect"), mcp.DefaultNumber(10), mcp.Min(5), mcp.Max(100)),
		mcp.WithNumber("relevance_threshold", mcp.Description("Low-relevance flag threshold"), mcp.DefaultNumber(0.5), mcp.Min(0), mcp.Max(1)),
		mcp.WithNumber("detail_level", mcp.Description("Summary detail level"), mcp.DefaultNumber(5), mcp.Min(1), mcp.Max(10)),
		mcp.WithString("source_type", mcp.Description("Preferred source type"), mcp.DefaultString("web")),
		mcp.WithString("output_format", mcp.Description("Default output format"), mcp.DefaultString("markdown")),
	), s.handleStartResearch)

	s.mcp.AddTool(mcp.NewTool("get_research_status",
		mcp.WithDescription("Get current task state and progress counters"),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(s.controller.Status())
	})

	s.mcp.AddTool(mcp.NewTool("pause_research",
		mcp.WithDescription("Pause the running research task"),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := s.controller.Pause(); err != nil {
			return errResult(err)
		}
		return jsonResult(s.controller.Status())
	})

	s.mcp.AddTool(mcp.NewTool("resume_research",
		mcp.WithDescription("Resume a paused research task"),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := s.controller.Resume(); err != nil {
			return errResult(err)
		}
		return jsonResult(s.controller.Status())
	})

	s.mcp.AddTool(mcp.NewTool("stop_research",
		mcp.WithDescription("Stop the research task, keeping collected results"),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := s.controller.Stop(); err != nil {
			return errResult(err)
		}
		return jsonResult(s.controller.Status())
	})

	s.mcp.AddTool(mcp.NewTool("update_parameters",
		mcp.WithDescription("Change task parameters mid-run; applied atomically"),
		mcp.WithNumber("depth", mcp.Min(1), mcp.Max(10)),
		mcp.WithNumber("max_results", mcp.Min(5), mcp.Max(100)),
		mcp.WithNumber("relevance_threshold", mcp.Min(0), mcp.Max(1)),
		mcp.WithNumber("detail_level", mcp.Min(1), mcp.Max(10)),
		mcp.WithString("source_type", mcp.Description("Preferred source type")),
		mcp.WithString("output_format", mcp.Description("Default output format")),
	), s.handleUpdateParameters)
}

func (s *Server) handleStartResearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return errResult(err)
	}

	params := research.DefaultParameters(query)
	params.Depth = int(req.GetFloat("depth", float64(params.Depth)))
	params.MaxResults = int(req.GetFloat("max_results", float64(params.MaxResults)))
	params.RelevanceThreshold = req.GetFloat("relevance_threshold", params.RelevanceThreshold)
	params.DetailLevel = int(req.GetFloat("detail_level", float64(params.DetailLevel)))
	params.SourceType = req.GetString("source_type", params.SourceType)
	params.OutputFormat = req.GetString("output_format", params.OutputFormat)

	// A finished previous task gives way to the new one.
	if s.controller.Status().State != research.Idle.String() {
		if err := s.controller.Reset(); err != nil {
			return errResult(err)
		}
	}
	if err := s.controller.Start(context.Background(), params); err != nil {
		return errResult(err)
	}
	return jsonResult(s.controller.Status())
}

func (s *Server) handleUpdateParameters(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := req.Params.Arguments.(map[string]any)

	var u research.Update
	if v, ok := args["depth"].(float64); ok {
		n := int(v)
		u.Depth = &n
	}
	if v, ok := args["max_results"].(float64); ok {
		n := int(v)
		u.MaxResults = &n
	}
	if v, ok := args["relevance_threshold"].(float64); ok {
		u.RelevanceThreshold = &v
	}
	if v, ok := args["detail_level"].(float64); ok {
		n := int(v)
		u.DetailLevel = &n
	}
	if v, ok := args["source_type"].(string); ok {
		u.SourceType = &v
	}
	if v, ok := args["output_format"].(string); ok {
		u.OutputFormat = &v
	}

	if err := s.controller.UpdateParameters(u); err != nil {
		return errResult(err)
	}
	return jsonResult(s.controller.Status())
}
