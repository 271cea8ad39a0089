// Package mcp implements the Model Context Protocol (MCP) server for
// latexmcp using the mcp-go library.
//
// The server exposes four tools to AI assistants: compile_latex,
// validate_latex, pdf_info, and cleanup. It communicates via
// stdin/stdout using JSON-RPC 2.0 as specified by the MCP standard,
// which is why nothing in this process may ever write to stdout except
// the protocol itself.
package mcp

import (
	"fmt"

	"latexmcp/internal/config"
	"latexmcp/internal/logging"

	"github.com/mark3labs/mcp-go/server"
)

// Version is the server version reported during the MCP handshake.
const Version = "0.1.0"

const serverName = "latexmcp"

// Server wraps an mcp-go stdio server with the application config and
// logger.
type Server struct {
	config    *config.Config
	logger    *logging.AppLogger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(cfg *config.Config, logger *logging.AppLogger) *Server {
	return &Server{
		config: cfg,
		logger: logger,
	}
}

// Start registers the tools and serves the stdio transport. It blocks
// until the client closes the connection or the process is signalled.
func (s *Server) Start() error {
	s.logger.Info("Initializing MCP server",
		"engine", s.config.Engine,
		"compileTimeoutSeconds", s.config.CompileTimeoutSeconds,
	)

	s.mcpServer = server.NewMCPServer(
		serverName,
		Version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
		server.WithRecovery(),
	)

	s.registerTools()

	s.logger.Info("MCP server created, starting stdio communication")
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the MCP server.
func (s *Server) Stop() error {
	s.logger.Info("Stopping MCP server")
	// mcp-go tears the stdio transport down when its context ends.
	return nil
}
