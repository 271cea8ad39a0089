package validator

import (
	"fmt"
	"regexp"
	"strings"
)

// packageRule flags a command or environment that needs a package the
// document never loads.
type packageRule struct {
	command   string
	display   string   // human-readable package name(s)
	satisfies []string // any of these packages silences the warning
	usage     *regexp.Regexp
}

var packageRules = buildPackageRules()

func buildPackageRules() []packageRule {
	specs := []struct {
		command   string
		display   string
		satisfies []string
	}{
		{"tikzpicture", "tikz", []string{"tikz"}},
		{"includegraphics", "graphicx", []string{"graphicx"}},
		{"href", "hyperref", []string{"hyperref"}},
		{"url", "url or hyperref", []string{"url", "hyperref"}},
		{"lstlisting", "listings", []string{"listings"}},
		{"algorithm", "algorithm", []string{"algorithm"}},
		{"align", "amsmath", []string{"amsmath"}},
		{"gather", "amsmath", []string{"amsmath"}},
		{"multirow", "multirow", []string{"multirow"}},
		{"multicolumn", "array or tabularx", []string{"array", "tabularx"}},
	}

	rules := make([]packageRule, 0, len(specs))
	for _, s := range specs {
		rules = append(rules, packageRule{
			command:   s.command,
			display:   s.display,
			satisfies: s.satisfies,
			usage:     regexp.MustCompile(`\\(?:begin\s*\{\s*)?` + s.command),
		})
	}
	return rules
}

var (
	usepackagePattern = regexp.MustCompile(`\\usepackage(?:\[[^\]]*\])?\{([^}]*)\}`)
	titlePattern      = regexp.MustCompile(`\\title\s*\{`)
	authorPattern     = regexp.MustCompile(`\\author\s*\{`)
	maketitlePattern  = regexp.MustCompile(`\\maketitle`)
	blankLinesPattern = regexp.MustCompile(`\n[ \t]*\n[ \t]*\n`)
)

// usedPackages collects every package named in a \usepackage argument,
// splitting comma-separated lists.
func usedPackages(text string) map[string]bool {
	pkgs := make(map[string]bool)
	for _, m := range usepackagePattern.FindAllStringSubmatch(text, -1) {
		for _, name := range strings.Split(m[1], ",") {
			if name = strings.TrimSpace(name); name != "" {
				pkgs[name] = true
			}
		}
	}
	return pkgs
}

// strictWarnings runs the heuristic style checks. They surface likely
// problems but never affect validity, and their order is fixed so
// output is reproducible.
func strictWarnings(text string) []string {
	var warnings []string

	pkgs := usedPackages(text)
	for _, rule := range packageRules {
		if !rule.usage.MatchString(text) {
			continue
		}
		loaded := false
		for _, pkg := range rule.satisfies {
			if pkgs[pkg] {
				loaded = true
				break
			}
		}
		if !loaded {
			warnings = append(warnings, fmt.Sprintf(
				"command/environment %q used but package %q not included",
				rule.command, rule.display))
		}
	}

	if titlePattern.MatchString(text) && authorPattern.MatchString(text) &&
		!maketitlePattern.MatchString(text) {
		warnings = append(warnings, `title and author defined but \maketitle not called`)
	}

	if blankLinesPattern.MatchString(text) {
		warnings = append(warnings, "multiple consecutive blank lines detected")
	}

	if !strings.Contains(text, `\section`) && !strings.Contains(text, `\chapter`) &&
		!strings.Contains(text, `\subsection`) {
		warnings = append(warnings, "no section structure found in document")
	}

	return warnings
}
