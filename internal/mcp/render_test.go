package mcp

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"latexmcp/internal/cleanup"
	"latexmcp/internal/compiler"
	"latexmcp/internal/pdfinfo"
	"latexmcp/internal/validator"

	"github.com/stretchr/testify/assert"
)

func TestRenderCompileSuccess(t *testing.T) {
	out := renderCompile(compiler.Result{
		Success:    true,
		OutputPath: "/tmp/doc.pdf",
		Duration:   1250 * time.Millisecond,
	})

	assert.True(t, strings.HasPrefix(out, "✓ LaTeX compilation successful!\n"))
	assert.Contains(t, out, "Output: /tmp/doc.pdf\n")
	assert.Contains(t, out, "Compilation time: 1.25s\n")
	assert.NotContains(t, out, "Log content")
}

func TestRenderCompileFailure(t *testing.T) {
	out := renderCompile(compiler.Result{
		ErrorMessage: "pdflatex failed with exit code 1",
		Log:          "raw log text",
		LogErrors: []compiler.LogError{
			{Message: "Undefined control sequence.", Line: 3},
			{Message: "Emergency stop."},
		},
	})

	assert.True(t, strings.HasPrefix(out, "✗ LaTeX compilation failed\n"))
	assert.Contains(t, out, "Error: pdflatex failed with exit code 1\n")
	assert.Contains(t, out, "Log errors (2):\n")
	assert.Contains(t, out, "  • Undefined control sequence. (line 3)\n")
	assert.Contains(t, out, "  • Emergency stop.\n")
	assert.Contains(t, out, "Log content:\nraw log text")
}

func TestRenderValidation(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		out := renderValidation(validator.Result{Valid: true, Duration: 2 * time.Millisecond})

		assert.True(t, strings.HasPrefix(out, "✓ Valid LaTeX syntax\n"))
		assert.Contains(t, out, "No errors found\n")
		assert.Contains(t, out, "Validation time: 0.002s\n")
	})

	t.Run("invalid with warnings", func(t *testing.T) {
		res := validator.Result{
			Errors: []validator.Finding{
				{Kind: validator.MissingEndDocument, Offset: -1},
			},
			Warnings: []string{"no section structure found in document"},
		}
		out := renderValidation(res)

		assert.True(t, strings.HasPrefix(out, "✗ Invalid LaTeX syntax\n"))
		assert.Contains(t, out, "Errors found (1):\n")
		assert.Contains(t, out, `  • missing \end{document}`+"\n")
		assert.Contains(t, out, "Warnings (1):\n")
		assert.Contains(t, out, "  • no section structure found in document\n")
	})
}

func TestRenderPDFInfo(t *testing.T) {
	res := pdfinfo.Result{
		Success:      true,
		Path:         "/tmp/doc.pdf",
		SizeBytes:    2048,
		PageCount:    2,
		Version:      "1.7",
		Title:        "A Paper",
		CreationDate: "2024-01-02T03:04:05Z",
		Pages: []pdfinfo.PageDimensions{
			{Width: 612, Height: 792, Unit: "pt"},
			{Width: 595.276, Height: 841.89, Unit: "pt"},
		},
	}
	out := renderPDFInfo(res, false)

	assert.True(t, strings.HasPrefix(out, "✓ PDF info extracted successfully\n"))
	assert.Contains(t, out, "Pages: 2\n")
	assert.Contains(t, out, "File size: 2048 bytes\n")
	assert.Contains(t, out, "PDF version: 1.7\n")
	assert.Contains(t, out, "Encrypted: No\n")
	assert.Contains(t, out, "  Page 1: 612.0 x 792.0 pt\n")
	assert.Contains(t, out, "  Page 2: 595.3 x 841.9 pt\n")
	assert.Contains(t, out, "Title: A Paper\n")
	assert.Contains(t, out, "Created: 2024-01-02T03:04:05Z\n")
	assert.NotContains(t, out, "Author:", "empty fields are omitted")
}

func TestRenderPDFInfoText(t *testing.T) {
	res := pdfinfo.Result{
		Success:   true,
		PageCount: 2,
		Text:      []string{strings.Repeat("a", 150), "   "},
	}
	out := renderPDFInfo(res, true)

	assert.Contains(t, out, "Text content:\n")
	assert.Contains(t, out, "  Page 1: "+strings.Repeat("a", 100)+"...\n")
	assert.Contains(t, out, "  Page 2: [No text content]\n")
}

func TestRenderPDFInfoFailure(t *testing.T) {
	out := renderPDFInfo(pdfinfo.Result{ErrorMessage: "not a valid PDF file"}, false)

	assert.True(t, strings.HasPrefix(out, "✗ PDF info extraction failed\n"))
	assert.Contains(t, out, "Error: not a valid PDF file\n")
}

func TestRenderCleanup(t *testing.T) {
	t.Run("dry run", func(t *testing.T) {
		out := renderCleanup(cleanup.Result{
			Success:    true,
			DryRun:     true,
			WouldClean: []string{"/p/a.aux", "/p/a.log"},
			TexPath:    "/p/a.tex",
		})

		assert.True(t, strings.HasPrefix(out, "✓ Cleanup dry run completed\n"))
		assert.Contains(t, out, "Would clean 2 files:\n")
		assert.Contains(t, out, "  • /p/a.aux\n")
		assert.Contains(t, out, "Cleaned around: /p/a.tex\n")
	})

	t.Run("real run with backup", func(t *testing.T) {
		out := renderCleanup(cleanup.Result{
			Success:       true,
			Cleaned:       []string{"/p/a.aux"},
			DirPath:       "/p",
			BackupCreated: true,
			BackupDir:     "/p/backup_p_20240102_030405",
		})

		assert.True(t, strings.HasPrefix(out, "✓ Cleanup completed successfully\n"))
		assert.Contains(t, out, "Files cleaned: 1\n")
		assert.Contains(t, out, "Cleaned directory: /p\n")
		assert.Contains(t, out, "Backup created: /p/backup_p_20240102_030405\n")
	})

	t.Run("nothing to clean", func(t *testing.T) {
		out := renderCleanup(cleanup.Result{Success: true})
		assert.Contains(t, out, "No files needed cleaning\n")
	})
}

func TestRenderCleanupTruncatesLongLists(t *testing.T) {
	var files []string
	for i := 0; i < 25; i++ {
		files = append(files, fmt.Sprintf("/p/file%02d.aux", i))
	}
	out := renderCleanup(cleanup.Result{Success: true, Cleaned: files})

	assert.Contains(t, out, "  • /p/file09.aux\n")
	assert.NotContains(t, out, "  • /p/file10.aux\n")
	assert.Contains(t, out, "  ... and 15 more\n")
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", excerpt("short", 100))
	assert.Equal(t, "ab", excerpt("  ab  ", 100))
	assert.Equal(t, "abc...", excerpt("abcdef", 3))
	// Rune-safe truncation.
	assert.Equal(t, "éé...", excerpt("ééééé", 2))
}
