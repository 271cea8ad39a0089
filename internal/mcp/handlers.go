package mcp

import (
	"context"
	"time"

	"latexmcp/internal/cleanup"
	"latexmcp/internal/compiler"
	"latexmcp/internal/pdfinfo"
	"latexmcp/internal/validator"

	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers turn request-level problems into tool error results and
// domain outcomes into rendered text. They never return a Go error:
// the transport reserves those for protocol failures.

func (s *Server) handleCompileLatex(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	defer s.logger.LogPerformance("compile_latex", start)

	texPath, err := req.RequireString("tex_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	outputDir := req.GetString("output_dir", "")
	engine := req.GetString("engine", s.config.Engine)
	timeoutSeconds := req.GetInt("timeout", s.config.CompileTimeoutSeconds)

	s.logger.Debug("compile_latex called",
		"texPath", texPath,
		"outputDir", outputDir,
		"engine", engine,
		"timeoutSeconds", timeoutSeconds,
	)

	result, err := compiler.Compile(ctx, compiler.Request{
		TexPath:   texPath,
		OutputDir: outputDir,
		Engine:    engine,
		Timeout:   time.Duration(timeoutSeconds) * time.Second,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !result.Success {
		s.logger.Warn("Compilation failed",
			"texPath", texPath,
			"timedOut", result.TimedOut,
			"error", result.ErrorMessage,
		)
	}
	return mcp.NewToolResultText(renderCompile(result)), nil
}

func (s *Server) handleValidateLatex(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	defer s.logger.LogPerformance("validate_latex", start)

	filePath, err := req.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mode, err := validator.ParseMode(req.GetString("mode", "quick"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Debug("validate_latex called", "filePath", filePath, "mode", mode.String())

	result, err := validator.ValidateFile(filePath, mode)
	if err != nil {
		// Unreadable input is not a failed validation.
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(renderValidation(result)), nil
}

func (s *Server) handlePDFInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	defer s.logger.LogPerformance("pdf_info", start)

	filePath, err := req.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	includeText := req.GetBool("include_text", false)
	password := req.GetString("password", "")

	s.logger.Debug("pdf_info called", "filePath", filePath, "includeText", includeText)

	result, err := pdfinfo.Extract(filePath, pdfinfo.Options{
		IncludeText: includeText,
		Password:    password,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(renderPDFInfo(result, includeText)), nil
}

func (s *Server) handleCleanup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	defer s.logger.LogPerformance("cleanup", start)

	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cleanupReq := cleanup.Request{
		Path:         path,
		Extensions:   stringSliceArg(req, "extensions"),
		DryRun:       req.GetBool("dry_run", false),
		Recursive:    req.GetBool("recursive", false),
		CreateBackup: req.GetBool("create_backup", false),
		BackupDir:    s.config.BackupDir,
	}

	s.logger.Debug("cleanup called",
		"path", path,
		"dryRun", cleanupReq.DryRun,
		"recursive", cleanupReq.Recursive,
		"createBackup", cleanupReq.CreateBackup,
	)

	result, err := cleanup.Clean(cleanupReq)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Info("Cleanup finished",
		"path", path,
		"cleaned", len(result.Cleaned),
		"dryRun", result.DryRun,
	)
	return mcp.NewToolResultText(renderCleanup(result)), nil
}

// stringSliceArg reads an optional array argument. Non-string entries
// are dropped rather than rejected: clients disagree on how strictly
// they follow the schema.
func stringSliceArg(req mcp.CallToolRequest, key string) []string {
	raw, ok := req.GetArguments()[key]
	if !ok {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil
	}

	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
