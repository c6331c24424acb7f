// Package textnorm canonicalizes raw document text for similarity comparison.
package textnorm

import "strings"

// Normalize lower-cases text, collapses whitespace runs (including
// newlines and tabs) into single spaces, strips every character outside
// [a-z0-9 ] and trims the result. Total on any input and idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))

	space := true // swallow leading whitespace
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
			space = false
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			space = false
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f':
			if !space {
				b.WriteByte(' ')
				space = true
			}
		default:
			// punctuation and other symbols are dropped
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// Lines splits raw text into trimmed, non-empty lines, preserving order.
func Lines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, ln := range raw {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}
