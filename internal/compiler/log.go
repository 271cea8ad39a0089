package compiler

import (
	"regexp"
	"strconv"
	"strings"
)

// LogError is one error block extracted from an engine .log file.
type LogError struct {
	Message string
	// Line is the source line reported by the engine ("l.42" marker),
	// or 0 when the log did not name one.
	Line int
}

// maxLogErrors caps extraction; nonstopmode logs can repeat one error
// hundreds of times.
const maxLogErrors = 20

var logLinePattern = regexp.MustCompile(`^l\.(\d+)`)

// ParseLog extracts the "!"-prefixed error messages from a LaTeX log.
// Each error line may be followed within a few lines by an "l.<n>"
// marker naming the source line; when present it is attached to the
// preceding error.
func ParseLog(logText string) []LogError {
	if logText == "" {
		return nil
	}

	lines := strings.Split(logText, "\n")
	var errs []LogError

	for i := 0; i < len(lines) && len(errs) < maxLogErrors; i++ {
		line := lines[i]
		if !strings.HasPrefix(line, "! ") {
			continue
		}

		entry := LogError{Message: strings.TrimSpace(strings.TrimPrefix(line, "!"))}

		// Look a short window ahead for the l.<n> location marker.
		for j := i + 1; j < len(lines) && j <= i+6; j++ {
			if m := logLinePattern.FindStringSubmatch(lines[j]); m != nil {
				if n, err := strconv.Atoi(m[1]); err == nil {
					entry.Line = n
				}
				break
			}
			// A following error ends the window.
			if strings.HasPrefix(lines[j], "! ") {
				break
			}
		}

		errs = append(errs, entry)
	}

	return errs
}
