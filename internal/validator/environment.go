package validator

import "regexp"

// environmentPattern matches \begin{name} and \end{name} in a single
// scan so both token kinds are seen in document order. Environment
// names are letters plus an optional star (itemize, align*, ...).
var environmentPattern = regexp.MustCompile(`\\(begin|end)\{([A-Za-z]+\*?)\}`)

type envEntry struct {
	name   string
	offset int
}

// MatchEnvironments checks \begin/\end nesting with a LIFO stack.
// Matching is positional, not name-based: a same-named close always
// pops the nearest enclosing entry, so identically named nested
// environments resolve correctly and crossing closes are reported.
//
// A mismatched \end records a finding and pops only the top entry; the
// stack is never unwound further, so nested mismatches surface
// individually instead of cascading. Entries left on the stack at the
// end of the scan each yield an unclosed finding.
func MatchEnvironments(text string) []Finding {
	matches := environmentPattern.FindAllStringSubmatchIndex(text, -1)

	var stack []envEntry
	var findings []Finding

	for _, m := range matches {
		token := text[m[2]:m[3]]
		name := text[m[4]:m[5]]
		offset := m[0]

		if token == "begin" {
			stack = append(stack, envEntry{name: name, offset: offset})
			continue
		}

		if len(stack) == 0 {
			findings = append(findings, Finding{
				Kind:   UnmatchedEnvironment,
				Env:    name,
				Offset: offset,
			})
			continue
		}

		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.name != name {
			findings = append(findings, Finding{
				Kind:   UnmatchedEnvironment,
				Env:    name,
				Offset: offset,
			})
		}
	}

	for _, e := range stack {
		findings = append(findings, Finding{
			Kind:     UnmatchedEnvironment,
			Env:      e.name,
			Offset:   e.offset,
			Unclosed: true,
		})
	}

	return findings
}
