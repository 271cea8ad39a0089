package mcp

import (
	"fmt"
	"strings"

	"latexmcp/internal/cleanup"
	"latexmcp/internal/compiler"
	"latexmcp/internal/pdfinfo"
	"latexmcp/internal/validator"
)

// Render functions turn result structs into the plain-text tool
// responses. They are pure so the formats can be tested directly.

const maxListedFiles = 10

func renderCompile(res compiler.Result) string {
	var b strings.Builder

	if res.Success {
		b.WriteString("✓ LaTeX compilation successful!\n")
		fmt.Fprintf(&b, "Output: %s\n", res.OutputPath)
	} else {
		b.WriteString("✗ LaTeX compilation failed\n")
		if res.ErrorMessage != "" {
			fmt.Fprintf(&b, "Error: %s\n", res.ErrorMessage)
		}
	}
	fmt.Fprintf(&b, "Compilation time: %.2fs\n", res.Duration.Seconds())

	if len(res.LogErrors) > 0 {
		fmt.Fprintf(&b, "Log errors (%d):\n", len(res.LogErrors))
		for _, le := range res.LogErrors {
			if le.Line > 0 {
				fmt.Fprintf(&b, "  • %s (line %d)\n", le.Message, le.Line)
			} else {
				fmt.Fprintf(&b, "  • %s\n", le.Message)
			}
		}
	}

	if !res.Success && res.Log != "" {
		fmt.Fprintf(&b, "\nLog content:\n%s", res.Log)
	}
	return b.String()
}

func renderValidation(res validator.Result) string {
	var b strings.Builder

	if res.Valid {
		b.WriteString("✓ Valid LaTeX syntax\n")
		b.WriteString("No errors found\n")
	} else {
		b.WriteString("✗ Invalid LaTeX syntax\n")
		fmt.Fprintf(&b, "Errors found (%d):\n", len(res.Errors))
		for _, msg := range res.ErrorMessages() {
			fmt.Fprintf(&b, "  • %s\n", msg)
		}
	}

	if len(res.Warnings) > 0 {
		fmt.Fprintf(&b, "Warnings (%d):\n", len(res.Warnings))
		for _, warning := range res.Warnings {
			fmt.Fprintf(&b, "  • %s\n", warning)
		}
	}

	fmt.Fprintf(&b, "Validation time: %.3fs\n", res.Duration.Seconds())
	return b.String()
}

func renderPDFInfo(res pdfinfo.Result, includeText bool) string {
	var b strings.Builder

	if !res.Success {
		b.WriteString("✗ PDF info extraction failed\n")
		if res.ErrorMessage != "" {
			fmt.Fprintf(&b, "Error: %s\n", res.ErrorMessage)
		}
		fmt.Fprintf(&b, "Extraction time: %.3fs\n", res.Duration.Seconds())
		return b.String()
	}

	b.WriteString("✓ PDF info extracted successfully\n")
	fmt.Fprintf(&b, "File: %s\n", res.Path)
	fmt.Fprintf(&b, "Pages: %d\n", res.PageCount)
	fmt.Fprintf(&b, "File size: %d bytes\n", res.SizeBytes)

	if res.Version != "" {
		fmt.Fprintf(&b, "PDF version: %s\n", res.Version)
	}
	if res.Encrypted {
		b.WriteString("Encrypted: Yes\n")
	} else {
		b.WriteString("Encrypted: No\n")
	}

	if len(res.Pages) > 0 {
		b.WriteString("Dimensions:\n")
		for i, dims := range res.Pages {
			fmt.Fprintf(&b, "  Page %d: %.1f x %.1f %s\n", i+1, dims.Width, dims.Height, dims.Unit)
		}
	}

	if res.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", res.Title)
	}
	if res.Author != "" {
		fmt.Fprintf(&b, "Author: %s\n", res.Author)
	}
	if res.Subject != "" {
		fmt.Fprintf(&b, "Subject: %s\n", res.Subject)
	}
	if res.Keywords != "" {
		fmt.Fprintf(&b, "Keywords: %s\n", res.Keywords)
	}
	if res.Producer != "" {
		fmt.Fprintf(&b, "Producer: %s\n", res.Producer)
	}
	if res.Creator != "" {
		fmt.Fprintf(&b, "Creator: %s\n", res.Creator)
	}
	if res.CreationDate != "" {
		fmt.Fprintf(&b, "Created: %s\n", res.CreationDate)
	}
	if res.ModificationDate != "" {
		fmt.Fprintf(&b, "Modified: %s\n", res.ModificationDate)
	}

	if includeText && len(res.Text) > 0 {
		b.WriteString("\nText content:\n")
		for i, text := range res.Text {
			if strings.TrimSpace(text) != "" {
				fmt.Fprintf(&b, "  Page %d: %s\n", i+1, excerpt(text, 100))
			} else {
				fmt.Fprintf(&b, "  Page %d: [No text content]\n", i+1)
			}
		}
	}

	fmt.Fprintf(&b, "Extraction time: %.3fs\n", res.Duration.Seconds())
	return b.String()
}

func renderCleanup(res cleanup.Result) string {
	var b strings.Builder

	if res.DryRun {
		b.WriteString("✓ Cleanup dry run completed\n")
		if len(res.WouldClean) > 0 {
			fmt.Fprintf(&b, "Would clean %d files:\n", len(res.WouldClean))
			writeFileList(&b, res.WouldClean)
		} else {
			b.WriteString("No files to clean\n")
		}
	} else {
		b.WriteString("✓ Cleanup completed successfully\n")
		if len(res.Cleaned) > 0 {
			fmt.Fprintf(&b, "Files cleaned: %d\n", len(res.Cleaned))
			writeFileList(&b, res.Cleaned)
		} else {
			b.WriteString("No files needed cleaning\n")
		}
	}

	if res.TexPath != "" {
		fmt.Fprintf(&b, "Cleaned around: %s\n", res.TexPath)
	} else if res.DirPath != "" {
		fmt.Fprintf(&b, "Cleaned directory: %s\n", res.DirPath)
	}

	if res.BackupCreated {
		fmt.Fprintf(&b, "Backup created: %s\n", res.BackupDir)
	}

	fmt.Fprintf(&b, "Cleanup time: %.3fs\n", res.Duration.Seconds())
	return b.String()
}

func writeFileList(b *strings.Builder, files []string) {
	for i, file := range files {
		if i == maxListedFiles {
			fmt.Fprintf(b, "  ... and %d more\n", len(files)-maxListedFiles)
			break
		}
		fmt.Fprintf(b, "  • %s\n", file)
	}
}

// excerpt returns the first n runes of s, marking truncation.
func excerpt(s string, n int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n]) + "..."
}
