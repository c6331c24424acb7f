// Package grades defines the accepted letter-grade tokens and their ordering.
package grades

import "strings"

// DefaultMinimum is the lowest grade accepted when no override is configured.
const DefaultMinimum = "C"

// rank orders the letter scale. Higher is better. EX and P are valid
// tokens but carry no rank; see MeetsRequirement.
var rank = map[string]int{
	"A+": 13, "A": 12, "A-": 11,
	"B+": 10, "B": 9, "B-": 8,
	"C+": 7, "C": 6, "C-": 5,
	"D+": 4, "D": 3, "D-": 2,
	"F": 1,
}

// unranked tokens are accepted as outcomes but excluded from the numeric order.
var unranked = map[string]bool{
	"EX": true,
	"P":  true,
}

// Valid reports whether token is an accepted grade, ranked or not.
func Valid(token string) bool {
	g := Canonical(token)
	if _, ok := rank[g]; ok {
		return true
	}
	return unranked[g]
}

// Ranked reports whether token participates in the letter-scale order.
func Ranked(token string) bool {
	_, ok := rank[Canonical(token)]
	return ok
}

// Rank returns the position of token in the letter scale, or 0 if unranked.
func Rank(token string) int {
	return rank[Canonical(token)]
}

// Canonical upper-cases and trims a grade token.
func Canonical(token string) string {
	return strings.ToUpper(strings.TrimSpace(token))
}

// All returns every accepted token, ranked tokens first in descending order.
func All() []string {
	return []string{
		"A+", "A", "A-",
		"B+", "B", "B-",
		"C+", "C", "C-",
		"D+", "D", "D-",
		"F", "EX", "P",
	}
}

// MeetsRequirement reports whether grade satisfies the minimum passing
// grade. Unrecognized tokens fail. EX and P denote exemption/pass
// outcomes and satisfy any minimum; they cannot be compared on the
// numeric scale, but a transcript recording them asserts completion.
func MeetsRequirement(grade, minimum string) bool {
	g := Canonical(grade)
	if unranked[g] {
		return true
	}
	gr, ok := rank[g]
	if !ok {
		return false
	}
	min, ok := rank[Canonical(minimum)]
	if !ok {
		min = rank[DefaultMinimum]
	}
	return gr >= min
}
