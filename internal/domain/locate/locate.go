// Package locate finds the line of a document that best matches a set
// of subject name aliases.
//
// Transcripts and syllabi arrive OCR-noisy and inconsistently spaced,
// so exact substring matching fails on minor character corruption.
// Matching is partial-ratio fuzzy scoring: the best alignment of the
// shorter string inside the longer one, case-insensitive, on a 0-100
// scale. A single global best match is kept rather than all matches
// above a threshold, which avoids ambiguity when one subject name is a
// substring of another's.
package locate

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Match is the result of a subject lookup. LineIndex is -1 and Score 0
// when no candidate was found.
type Match struct {
	LineIndex int
	Line      string
	Score     int
}

// NoMatch is returned for empty input.
var NoMatch = Match{LineIndex: -1, Line: "", Score: 0}

// Subject finds the best-matching line for any of the given aliases.
// Each line is scored as the maximum partial ratio across aliases; the
// global maximum wins and ties keep the first-encountered line.
func Subject(lines []string, aliases []string) Match {
	if len(lines) == 0 || len(aliases) == 0 {
		return NoMatch
	}

	lowered := make([]string, 0, len(aliases))
	for _, a := range aliases {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			lowered = append(lowered, a)
		}
	}
	if len(lowered) == 0 {
		return NoMatch
	}

	best := NoMatch
	for i, line := range lines {
		lineLower := strings.ToLower(line)
		score := 0
		for _, alias := range lowered {
			if s := fuzzy.PartialRatio(alias, lineLower); s > score {
				score = s
			}
		}
		// Strictly-greater keeps the lowest index on ties.
		if score > best.Score {
			best = Match{LineIndex: i, Line: line, Score: score}
		}
	}
	if best.LineIndex == -1 {
		return NoMatch
	}
	return best
}

// Window returns the slice of lines within radius of center, clamped to
// the document bounds. The returned slice aliases the input.
func Window(lines []string, center, radius int) []string {
	if len(lines) == 0 || center < 0 || center >= len(lines) {
		return nil
	}
	lo := center - radius
	if lo < 0 {
		lo = 0
	}
	hi := center + radius + 1
	if hi > len(lines) {
		hi = len(lines)
	}
	return lines[lo:hi]
}
