package pdfinfo

import (
	"fmt"
	"strings"
)

// FormatDate converts a PDF date string (D:YYYYMMDDHHmmSSOHH'mm') to
// ISO 8601. Date-only values get a midnight UTC time. Values that do
// not look like PDF dates are returned unchanged.
func FormatDate(raw string) string {
	if raw == "" {
		return ""
	}

	s := strings.TrimPrefix(raw, "D:")
	if len(s) < 8 || !allDigits(s[:8]) {
		return raw
	}

	year, month, day := s[0:4], s[4:6], s[6:8]

	if len(s) < 14 || !allDigits(s[8:14]) {
		return fmt.Sprintf("%s-%s-%sT00:00:00Z", year, month, day)
	}

	hour, minute, second := s[8:10], s[10:12], s[12:14]
	tz := formatTimezone(s[14:])
	return fmt.Sprintf("%s-%s-%sT%s:%s:%s%s", year, month, day, hour, minute, second, tz)
}

// formatTimezone renders the offset suffix. PDF writes minutes after
// an apostrophe (+02'00'); anything unrecognized is treated as UTC.
func formatTimezone(tz string) string {
	if tz == "" || (tz[0] != '+' && tz[0] != '-') {
		return "Z"
	}

	sign := string(tz[0])

	hours := "00"
	if len(tz) >= 3 && allDigits(tz[1:3]) {
		hours = tz[1:3]
	}

	minutes := "00"
	if idx := strings.IndexByte(tz, '\''); idx >= 0 && len(tz) >= idx+3 && allDigits(tz[idx+1:idx+3]) {
		minutes = tz[idx+1 : idx+3]
	}

	// A zero offset of either sign is UTC.
	if hours == "00" && minutes == "00" {
		return "Z"
	}
	return sign + hours + ":" + minutes
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
