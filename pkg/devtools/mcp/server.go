// Package mcp exposes a Recorder's live tree snapshot and turn history
// as MCP resources, so an AI agent (or any MCP client) can inspect a
// running reconciler from the outside. Grounded on the teacher's
// MCPServer wrapper, rewritten at a fraction of the size since this
// core has only a tree and a turn log to expose, not a full widget/
// router/composable surface.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/arborview/vdomx/pkg/devtools"
)

// Server wraps an MCP SDK server exposing one devtools.Recorder's
// state over the Model Context Protocol.
type Server struct {
	server   *mcp.Server
	recorder *devtools.Recorder

	mu sync.RWMutex
}

// NewServer creates an MCP server over rec. The server is created but
// not started; call Run to begin accepting connections over stdio.
func NewServer(rec *devtools.Recorder) (*Server, error) {
	if rec == nil {
		return nil, fmt.Errorf("mcp: recorder cannot be nil")
	}

	impl := &mcp.Implementation{Name: "vdomx-devtools", Version: "1.0.0"}
	s := &Server{server: mcp.NewServer(impl, &mcp.ServerOptions{}), recorder: rec}

	s.server.AddResource(
		&mcp.Resource{
			URI:         "vdomx://tree",
			Name:        "tree",
			Description: "Live native tree snapshot",
			MIMEType:    "application/json",
		},
		s.readTree,
	)
	s.server.AddResource(
		&mcp.Resource{
			URI:         "vdomx://turns",
			Name:        "turns",
			Description: "Recent reconciler turn history",
			MIMEType:    "application/json",
		},
		s.readTurns,
	)

	return s, nil
}

// treeResource is the JSON shape returned by the vdomx://tree resource.
type treeResource struct {
	Tree      *devtools.Node `json:"tree"`
	Timestamp time.Time      `json:"timestamp"`
}

func (s *Server) readTree(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.mu.RLock()
	rec := s.recorder
	s.mu.RUnlock()

	data, err := json.MarshalIndent(treeResource{Tree: rec.Snapshot(), Timestamp: time.Now()}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("mcp: marshal tree resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{URI: req.Params.URI, MIMEType: "application/json", Text: string(data)}},
	}, nil
}

// turnsResource is the JSON shape returned by the vdomx://turns
// resource.
type turnsResource struct {
	Turns []devtools.Turn `json:"turns"`
}

func (s *Server) readTurns(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.mu.RLock()
	rec := s.recorder
	s.mu.RUnlock()

	data, err := json.MarshalIndent(turnsResource{Turns: rec.Turns()}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("mcp: marshal turns resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{URI: req.Params.URI, MIMEType: "application/json", Text: string(data)}},
	}, nil
}

// Run connects the server over stdio and blocks until the client
// disconnects, ctx is cancelled, or the transport errors.
func (s *Server) Run(ctx context.Context) error {
	session, err := s.server.Connect(ctx, &mcp.StdioTransport{}, nil)
	if err != nil {
		return fmt.Errorf("mcp: connect stdio transport: %w", err)
	}
	if err := session.Wait(); err != nil {
		return fmt.Errorf("mcp: stdio session ended with error: %w", err)
	}
	return nil
}
