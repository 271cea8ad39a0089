package validator

// BracePolicy controls recovery when a closing brace appears at depth
// zero. ClampAndContinue keeps scanning so every anomaly is reported;
// StopAtFirst returns after the first stray closing brace.
type BracePolicy int

const (
	ClampAndContinue BracePolicy = iota
	StopAtFirst
)

// BraceReport is the outcome of a brace balance scan.
type BraceReport struct {
	// Balanced is true when the final depth is zero and no closing
	// brace was ever seen at depth zero.
	Balanced bool

	// FinalDepth is the number of opening braces left unclosed at the
	// end of the scan. Never negative: stray closings clamp to zero.
	FinalDepth int

	// StrayClosings holds the byte offset of every closing brace seen
	// at depth zero, in document order.
	StrayClosings []int
}

// ScanBraces counts unescaped braces in text. A brace preceded by an
// odd number of backslashes is literal and not counted. Empty text is
// balanced at depth zero. The scan is pure and cannot fail.
func ScanBraces(text string, policy BracePolicy) BraceReport {
	depth := 0
	var stray []int

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '{' && c != '}' {
			continue
		}
		if braceEscaped(text, i) {
			continue
		}
		if c == '{' {
			depth++
			continue
		}
		if depth == 0 {
			stray = append(stray, i)
			if policy == StopAtFirst {
				return BraceReport{FinalDepth: 0, StrayClosings: stray}
			}
			continue // clamp and keep scanning
		}
		depth--
	}

	return BraceReport{
		Balanced:      depth == 0 && len(stray) == 0,
		FinalDepth:    depth,
		StrayClosings: stray,
	}
}

// braceEscaped reports whether the brace at offset i follows an odd
// number of backslashes. "\{" is escaped, "\\{" is not.
func braceEscaped(text string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && text[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}
