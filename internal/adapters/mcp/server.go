// Package mcp exposes the assistant as a Model Context Protocol server so
// AI agents can list, resolve and execute maintenance actions as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"winmate/internal/sysinfo"
	"winmate/pkg/catalog"
	"winmate/pkg/domain"
	"winmate/pkg/executor"
	"winmate/pkg/ports"
	"winmate/pkg/router"
)

// Server wraps the application core as an MCP server.
type Server struct {
	catalog   *catalog.Catalog
	router    *router.Router
	executor  *executor.Executor
	collector *sysinfo.Collector
	journal   ports.Journal
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server and registers its tools.
func NewServer(version string, cat *catalog.Catalog, rt *router.Router, exec *executor.Executor, collector *sysinfo.Collector, journal ports.Journal) *Server {
	s := &Server{
		catalog:   cat,
		router:    rt,
		executor:  exec,
		collector: collector,
		journal:   journal,
		mcpServer: server.NewMCPServer("winmate-mcp", version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_actions",
		mcp.WithDescription("List all registered maintenance actions with their IDs, groups and danger flags."),
	), s.handleListActions)

	s.mcpServer.AddTool(mcp.NewTool("resolve_request",
		mcp.WithDescription("Map a natural language maintenance request to an ordered plan of action IDs without executing anything."),
		mcp.WithString("request", mcp.Required(), mcp.Description("The user's request, e.g. 'my pc is slow'")),
	), s.handleResolveRequest)

	s.mcpServer.AddTool(mcp.NewTool("execute_actions",
		mcp.WithDescription("Execute a list of action IDs in order. Dangerous actions are skipped unless confirm is true."),
		mcp.WithString("actions", mcp.Required(), mcp.Description("JSON array of action IDs to execute")),
		mcp.WithBoolean("confirm", mcp.Description("Set true to allow dangerous actions to run")),
	), s.handleExecuteActions)

	s.mcpServer.AddTool(mcp.NewTool("system_status",
		mcp.WithDescription("Collect a snapshot of system health: CPU, memory, disks and uptime."),
	), s.handleSystemStatus)

	s.mcpServer.AddTool(mcp.NewTool("recent_journal",
		mcp.WithDescription("Return the most recent journal entries, oldest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of entries (default 20)")),
	), s.handleRecentJournal)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleListActions(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.catalog.Summaries())
}

func (s *Server) handleResolveRequest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	text, _ := args["request"].(string)
	if text == "" {
		return mcp.NewToolResultError("request must not be empty"), nil
	}

	plan := s.router.Resolve(ctx, text)
	summaries := make([]domain.ActionSummary, len(plan))
	for i, a := range plan {
		summaries[i] = a.Summary()
	}
	return jsonResult(summaries)
}

func (s *Server) handleExecuteActions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	raw, _ := args["actions"].(string)
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return mcp.NewToolResultError("actions must be a JSON array of action IDs"), nil
	}
	if len(ids) == 0 {
		return mcp.NewToolResultError("actions must not be empty"), nil
	}

	var plan []domain.Action
	for _, id := range ids {
		action, ok := s.catalog.Lookup(id)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown action %q", id)), nil
		}
		plan = append(plan, action)
	}

	confirm := executor.DenyAll
	if ok, _ := args["confirm"].(bool); ok {
		confirm = executor.ConfirmAll
	}

	records := s.executor.RunPlan(ctx, plan, confirm)
	return jsonResult(map[string]any{
		"records": records,
		"summary": executor.Summarize(records),
	})
}

func (s *Server) handleSystemStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.collector.Collect(ctx))
}

func (s *Server) handleRecentJournal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.journal == nil {
		return mcp.NewToolResultError("journal is not configured"), nil
	}

	limit := 20
	if v, ok := request.GetArguments()["limit"].(float64); ok && v > 0 {
		limit = int(v)
	}

	lines, err := s.journal.Recent(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("read journal: %v", err)), nil
	}
	return jsonResult(lines)
}
