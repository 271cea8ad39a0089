package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// registerTools declares the four tool schemas and binds their
// handlers.
func (s *Server) registerTools() {
	compileTool := mcp.NewTool("compile_latex",
		mcp.WithDescription("Compile LaTeX files to PDF with comprehensive error handling"),
		mcp.WithString("tex_path",
			mcp.Required(),
			mcp.Description("Path to the .tex file to compile"),
		),
		mcp.WithString("output_dir",
			mcp.Description("Directory for output (defaults to same as input)"),
		),
		mcp.WithString("engine",
			mcp.Description("LaTeX engine to use (pdflatex, xelatex, or lualatex)"),
		),
		mcp.WithNumber("timeout",
			mcp.Description("Maximum seconds to wait for compilation"),
		),
	)
	s.mcpServer.AddTool(compileTool, s.handleCompileLatex)

	validateTool := mcp.NewTool("validate_latex",
		mcp.WithDescription("Validate LaTeX structure without full compilation"),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the .tex file to validate"),
		),
		mcp.WithString("mode",
			mcp.Description("Validation mode: quick checks structure only, strict adds style warnings"),
			mcp.Enum("quick", "strict"),
			mcp.DefaultString("quick"),
		),
	)
	s.mcpServer.AddTool(validateTool, s.handleValidateLatex)

	pdfInfoTool := mcp.NewTool("pdf_info",
		mcp.WithDescription("Extract PDF metadata and information without compilation"),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the PDF file to analyze"),
		),
		mcp.WithBoolean("include_text",
			mcp.Description("Extract text content from PDF pages"),
			mcp.DefaultBool(false),
		),
		mcp.WithString("password",
			mcp.Description("Password for encrypted PDFs (optional)"),
		),
	)
	s.mcpServer.AddTool(pdfInfoTool, s.handlePDFInfo)

	cleanupTool := mcp.NewTool("cleanup",
		mcp.WithDescription("Clean LaTeX auxiliary files (.aux, .log, .out, etc.) from directories or individual files"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to .tex file or directory to clean"),
		),
		mcp.WithArray("extensions",
			mcp.Description("List of file extensions to clean (defaults to common auxiliary files)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Show what would be cleaned without removing files"),
			mcp.DefaultBool(false),
		),
		mcp.WithBoolean("recursive",
			mcp.Description("Clean subdirectories recursively"),
			mcp.DefaultBool(false),
		),
		mcp.WithBoolean("create_backup",
			mcp.Description("Create backup of files before deletion"),
			mcp.DefaultBool(false),
		),
	)
	s.mcpServer.AddTool(cleanupTool, s.handleCleanup)
}
