// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes date parsing tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/BenjaminIrwin/scatexparser/internal/parseservice"
	"github.com/BenjaminIrwin/scatexparser/internal/recognize"
)

// Server wraps the MCP server with parsing tools.
type Server struct {
	mcp *server.MCPServer
	svc *parseservice.Service
}

// New creates a new MCP server with all parsing tools registered.
func New(svc *parseservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"ScatexParser",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("parse_date",
		mcp.WithDescription("Parse a natural-language date or time expression into a "+
			"structured expression tree and, when possible, a concrete [start, end] interval. "+
			"The expression JSON format is documented by the get_expression_format tool and "+
			"the scatex://expression-format resource."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The expression to parse (e.g. '3 days ago', 'next Monday')")),
		mcp.WithString("anchor", mcp.Description("Optional RFC 3339 anchor instant; defaults to the current time")),
	), s.parseDate)

	s.mcp.AddTool(mcp.NewTool("list_locales",
		mcp.WithDescription("List the active and supported locale codes."),
	), s.listLocales)

	s.mcp.AddTool(mcp.NewTool("get_history",
		mcp.WithDescription("List recently parsed expressions, most recent first."),
		mcp.WithString("locale", mcp.Description("Optional locale filter (e.g. 'en')")),
		mcp.WithNumber("limit", mcp.Description("Maximum entries to return (default 20)")),
	), s.getHistory)

	s.mcp.AddTool(mcp.NewTool("get_expression_format",
		mcp.WithDescription("Returns the expression tree JSON format produced by parse_date."),
	), s.getExpressionFormat)

	// Resource: expression format documentation.
	s.mcp.AddResource(
		mcp.NewResource("scatex://expression-format", "Expression Format",
			mcp.WithResourceDescription("JSON encoding of parsed temporal expression trees."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readExpressionFormatResource,
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

func (s *Server) parseDate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	anchor := time.Now()
	if raw, err := req.RequireString("anchor"); err == nil && raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("anchor must be RFC 3339: %v", err)), nil
		}
		anchor = t
	}

	res, err := s.svc.Parse(ctx, text, anchor)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !res.Matched {
		return mcp.NewToolResultText("no date expression recognized"), nil
	}
	out, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listLocales(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(map[string]any{
		"active":    s.svc.Languages(),
		"supported": recognize.Supported(),
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	locale := ""
	if l, err := req.RequireString("locale"); err == nil {
		locale = l
	}
	limit := 20
	if n, err := req.RequireFloat("limit"); err == nil && n > 0 {
		limit = int(n)
	}

	entries, err := s.svc.History(ctx, locale, limit, 0)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("no history"), nil
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%d\t%s\t%s\t%s\thits=%d\n", e.ID, e.Locale, e.Period, e.Input, e.Hits)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) getExpressionFormat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(ExpressionFormatContract), nil
}

func (s *Server) readExpressionFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "scatex://expression-format",
			MIMEType: "text/markdown",
			Text:     ExpressionFormatContract,
		},
	}, nil
}
