// Package texfile provides shared file handling for the LaTeX tools:
// path validation, extension taxonomies, encoding-tolerant reading, and
// sibling lookup for build artifacts.
package texfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExtensions are the extensions recognised as LaTeX sources.
var SourceExtensions = []string{".tex", ".latex", ".ltx"}

// AuxiliaryExtensions are build artifacts the cleanup tool may remove.
var AuxiliaryExtensions = []string{
	".aux", ".log", ".out", ".fls", ".fdb_latexmk", ".toc", ".lof", ".lot",
	".bbl", ".blg", ".nav", ".snm", ".vrb", ".idx", ".ilg", ".ind", ".glo",
	".gls", ".glg", ".synctex.gz", ".figlist", ".fpl", ".makefile", ".run.xml",
}

// OutputExtensions are compiler outputs.
var OutputExtensions = []string{".pdf", ".dvi", ".ps"}

// ProtectedExtensions must never be removed by cleanup, regardless of
// what the caller asks for.
var ProtectedExtensions = []string{
	".tex", ".pdf", ".bib", ".sty", ".cls", ".dtx", ".ins", ".png", ".jpg",
	".jpeg", ".gif", ".svg", ".eps", ".ps", ".txt", ".md", ".py", ".sh", ".bat",
}

// HasExtension reports whether the file name ends with one of the given
// extensions, case-insensitively. Unlike filepath.Ext it matches
// compound extensions such as ".synctex.gz".
func HasExtension(name string, extensions []string) bool {
	lower := strings.ToLower(filepath.Base(name))
	for _, ext := range extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// IsSource reports whether path names a LaTeX source file.
func IsSource(path string) bool {
	return HasExtension(path, SourceExtensions)
}

// IsAuxiliary reports whether path names a LaTeX build artifact.
func IsAuxiliary(path string) bool {
	return HasExtension(path, AuxiliaryExtensions)
}

// IsOutput reports whether path names a compiler output file.
func IsOutput(path string) bool {
	return HasExtension(path, OutputExtensions)
}

// IsProtected reports whether path must be kept by cleanup.
func IsProtected(path string) bool {
	return HasExtension(path, ProtectedExtensions)
}

// ValidationResult describes the outcome of a path check. It is a value,
// not an error: callers that want full detail (the MCP handlers) render
// it, callers that only need pass/fail use Validate.
type ValidationResult struct {
	Valid        bool
	ErrorMessage string
	Path         string
	Exists       bool
	Readable     bool
	SizeBytes    int64
}

// ValidatePath checks that path names an existing, readable regular
// file, optionally restricted to the given extensions.
func ValidatePath(path string, allowedExtensions []string) ValidationResult {
	res := ValidationResult{Path: path}

	if strings.TrimSpace(path) == "" {
		res.ErrorMessage = "file path cannot be empty"
		return res
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			res.ErrorMessage = fmt.Sprintf("file not found: %s", path)
		} else {
			res.ErrorMessage = fmt.Sprintf("cannot access path: %s", path)
		}
		return res
	}
	res.Exists = true

	if info.IsDir() {
		res.ErrorMessage = "path is a directory, not a file"
		return res
	}
	res.SizeBytes = info.Size()

	f, err := os.Open(path)
	if err != nil {
		res.ErrorMessage = fmt.Sprintf("file is not readable: %s", path)
		return res
	}
	f.Close()
	res.Readable = true

	if len(allowedExtensions) > 0 && !HasExtension(path, allowedExtensions) {
		res.ErrorMessage = fmt.Sprintf("file extension %q not allowed, expected one of %v",
			filepath.Ext(path), allowedExtensions)
		return res
	}

	res.Valid = true
	return res
}

// Validate is the error-returning form of ValidatePath.
func Validate(path string, allowedExtensions []string) error {
	if res := ValidatePath(path, allowedExtensions); !res.Valid {
		return fmt.Errorf("%s", res.ErrorMessage)
	}
	return nil
}

// Stem returns the file name without its (single) extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// StemSiblings returns all regular files in path's directory that share
// its stem, sorted by name. This is how auxiliary files of a .tex source
// are located.
func StemSiblings(path string) ([]string, error) {
	dir := filepath.Dir(path)
	stem := Stem(path)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var siblings []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name != stem && strings.HasPrefix(name, stem+".") {
			siblings = append(siblings, filepath.Join(dir, name))
		}
	}
	sort.Strings(siblings)
	return siblings, nil
}

// ResolveOutputDir returns outputDir, or the source file's directory
// when outputDir is empty.
func ResolveOutputDir(texPath, outputDir string) string {
	if outputDir == "" {
		return filepath.Dir(texPath)
	}
	return outputDir
}

// EnsureDir creates dir (and parents) when missing.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
