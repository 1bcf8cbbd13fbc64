// Package mcpserver exposes the Sundry backend as a single MCP tool using the
// official MCP Go SDK (github.com/modelcontextprotocol/go-sdk).
//
// The server advertises one tool, get_context, whose description embeds the
// user's current source listing. The listing is fetched live on every
// tools/list request — there is no cache, so an unreachable backend fails the
// listing with the client's wrapped error.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sundrylabs/sundry-mcp/internal/version"
)

// Server wires the dispatcher and the live tool listing into an mcp.Server.
type Server struct {
	backend    Backend
	dispatcher *Dispatcher
	mcp        *mcp.Server
}

// New creates a ready-to-serve Server bound to the given backend.
func New(backend Backend) *Server {
	s := &Server{
		backend:    backend,
		dispatcher: NewDispatcher(backend),
	}

	srv := mcp.NewServer(
		&mcp.Implementation{Name: "sundry", Version: version.Version},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        ToolName,
		Description: toolGuidance,
		InputSchema: queryInputSchema(),
	}, s.handleGetContext)

	srv.AddReceivingMiddleware(s.refreshToolListing)

	s.mcp = srv
	return s
}

// MCP returns the underlying SDK server, used by the HTTP transport and by
// tests to connect in-memory sessions.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// Run serves the MCP protocol over stdio until the channel closes or ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// handleGetContext adapts a get_context invocation onto the dispatcher and
// wraps the result as a single text content block.
func (s *Server) handleGetContext(ctx context.Context, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
	text, err := s.dispatcher.Dispatch(ctx, req.Params.Name, args)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// refreshToolListing intercepts tools/list, fetches the current sources and
// rewrites the tool description before the listing is returned. A backend
// failure fails the whole listing.
func (s *Server) refreshToolListing(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		if method != "tools/list" {
			return next(ctx, method, req)
		}

		srcs, err := s.backend.FetchSources(ctx)
		if err != nil {
			return nil, err
		}

		res, err := next(ctx, method, req)
		if err != nil {
			return nil, err
		}

		listing, ok := res.(*mcp.ListToolsResult)
		if !ok {
			return res, nil
		}

		desc, err := buildDescription(srcs.Sources)
		if err != nil {
			return nil, err
		}
		// The SDK lists pointers to the registered tool, which other
		// in-flight requests may be reading. Swap in a copy instead of
		// writing through the shared pointer.
		for i, tool := range listing.Tools {
			if tool.Name == ToolName {
				cp := *tool
				cp.Description = desc
				listing.Tools[i] = &cp
			}
		}
		return listing, nil
	}
}
