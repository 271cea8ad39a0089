package validator

import (
	"regexp"
	"time"

	"latexmcp/internal/texfile"
)

// Structure patterns, compiled once at package init and read-only
// afterwards.
// Whitespace between a marker and its brace group is accepted, so
// the presence checks tolerate it.
var (
	documentClassPattern = regexp.MustCompile(`\\documentclass\s*(?:\[.*?\])?\s*\{.*?\}`)
	beginDocumentPattern = regexp.MustCompile(`\\begin\s*\{document\}`)
	endDocumentPattern   = regexp.MustCompile(`\\end\s*\{document\}`)
)

// Check runs every structural check over the document text and
// aggregates the findings. Findings are appended in a fixed order
// (document class, begin-document, end-document, braces, environments)
// so two runs over identical text produce identical results. The
// presence checks do not short-circuit each other.
//
// Check accepts any text, including empty or binary garbage, and always
// returns a Result.
func Check(text string, mode Mode) Result {
	return CheckWithPolicy(text, mode, ClampAndContinue)
}

// CheckWithPolicy is Check with an explicit brace recovery policy.
func CheckWithPolicy(text string, mode Mode, policy BracePolicy) Result {
	start := time.Now()

	var errs []Finding

	if !documentClassPattern.MatchString(text) {
		errs = append(errs, Finding{Kind: MissingDocumentClass, Offset: -1})
	}
	if !beginDocumentPattern.MatchString(text) {
		errs = append(errs, Finding{Kind: MissingBeginDocument, Offset: -1})
	}
	if !endDocumentPattern.MatchString(text) {
		errs = append(errs, Finding{Kind: MissingEndDocument, Offset: -1})
	}

	braces := ScanBraces(text, policy)
	for _, offset := range braces.StrayClosings {
		errs = append(errs, Finding{Kind: UnbalancedBraces, Offset: offset, Delta: -1})
	}
	if braces.FinalDepth > 0 {
		errs = append(errs, Finding{Kind: UnbalancedBraces, Offset: -1, Delta: braces.FinalDepth})
	}

	errs = append(errs, MatchEnvironments(text)...)

	var warnings []string
	if mode == Strict {
		warnings = strictWarnings(text)
	}

	return Result{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
		Duration: time.Since(start),
	}
}

// ValidateFile reads a LaTeX source file and validates it. The returned
// error covers the file-level failures only (missing file, wrong
// extension, unreadable content); findings in the document itself live
// in the Result.
func ValidateFile(path string, mode Mode) (Result, error) {
	if err := texfile.Validate(path, texfile.SourceExtensions); err != nil {
		return Result{}, err
	}

	text, err := texfile.ReadText(path)
	if err != nil {
		return Result{}, err
	}

	return Check(text, mode), nil
}
