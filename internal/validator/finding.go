// Package validator implements structural validation of LaTeX sources
// without invoking a compiler: document skeleton presence checks, brace
// balance scanning, and LIFO environment matching.
//
// Every check classifies; none of them can fail. Problems in the input
// are returned as findings, and only file-level I/O (handled by callers
// through texfile) produces errors.
package validator

import (
	"fmt"
	"time"
)

// Mode selects how much work Check does.
type Mode int

const (
	// Quick reports error-level findings only.
	Quick Mode = iota
	// Strict additionally runs heuristic style checks that populate
	// the warnings list. Warnings never affect validity.
	Strict
)

func (m Mode) String() string {
	switch m {
	case Quick:
		return "quick"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts the wire-level mode string. Anything other than
// "quick" or "strict" is rejected.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "quick":
		return Quick, nil
	case "strict":
		return Strict, nil
	default:
		return Quick, fmt.Errorf("invalid validation mode %q (expected \"quick\" or \"strict\")", s)
	}
}

// Kind identifies a class of structural problem.
type Kind int

const (
	MissingDocumentClass Kind = iota
	MissingBeginDocument
	MissingEndDocument
	UnbalancedBraces
	UnmatchedEnvironment
)

func (k Kind) String() string {
	switch k {
	case MissingDocumentClass:
		return "MissingDocumentClass"
	case MissingBeginDocument:
		return "MissingBeginDocument"
	case MissingEndDocument:
		return "MissingEndDocument"
	case UnbalancedBraces:
		return "UnbalancedBraces"
	case UnmatchedEnvironment:
		return "UnmatchedEnvironment"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Finding is one structural problem. Findings are produced during a
// scan and never mutated afterwards.
type Finding struct {
	Kind Kind

	// Env is the environment name for UnmatchedEnvironment findings.
	Env string

	// Offset is the byte offset of the problem in the document text,
	// or -1 when the finding has no single position (a missing marker,
	// a surplus of unclosed braces).
	Offset int

	// Delta is the leftover brace depth for an UnbalancedBraces
	// finding without a position; -1 marks a stray closing brace.
	Delta int

	// Unclosed distinguishes a \begin without \end (true) from an
	// \end without a matching \begin (false).
	Unclosed bool
}

// Message renders the finding for humans. The original document is not
// needed to produce a full report.
func (f Finding) Message() string {
	switch f.Kind {
	case MissingDocumentClass:
		return `missing \documentclass command`
	case MissingBeginDocument:
		return `missing \begin{document}`
	case MissingEndDocument:
		return `missing \end{document}`
	case UnbalancedBraces:
		if f.Offset >= 0 {
			return fmt.Sprintf("unmatched closing brace at offset %d", f.Offset)
		}
		return fmt.Sprintf("unbalanced braces: %d unclosed", f.Delta)
	case UnmatchedEnvironment:
		if f.Unclosed {
			return fmt.Sprintf("unclosed environment %q (\\begin at offset %d)", f.Env, f.Offset)
		}
		return fmt.Sprintf("\\end{%s} at offset %d without matching \\begin", f.Env, f.Offset)
	default:
		return fmt.Sprintf("unknown finding %v", f.Kind)
	}
}

// Result aggregates one validation pass. Valid is true exactly when
// Errors is empty; Warnings are only populated in Strict mode.
type Result struct {
	Valid    bool
	Errors   []Finding
	Warnings []string
	Duration time.Duration
}

// ErrorMessages renders all error findings in order.
func (r Result) ErrorMessages() []string {
	msgs := make([]string, 0, len(r.Errors))
	for _, f := range r.Errors {
		msgs = append(msgs, f.Message())
	}
	return msgs
}
