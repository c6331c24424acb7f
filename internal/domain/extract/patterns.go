package extract

import (
	"regexp"
	"strconv"
)

// Credits beyond this are treated as malformed captures, not values.
const maxCreditValue = 100

// creditPattern is one structural strategy for reading a credit-hour
// count out of a line. Patterns are evaluated in declaration order, so
// adding or removing one is a data change.
type creditPattern struct {
	name string
	re   *regexp.Regexp
}

// creditPatterns in priority order: unit suffix, label prefix, CH prefix.
var creditPatterns = []creditPattern{
	{"unit_suffix", regexp.MustCompile(`(?i)\b(\d+)\s*(?:credit\s*hours?|credits?|cr\.)`)},
	{"label_prefix", regexp.MustCompile(`(?i)\bcredits?:\s*(\d+)\b`)},
	{"ch_prefix", regexp.MustCompile(`(?i)\bCH:\s*(\d+)\b`)},
}

// matchCredits runs the pattern strategies against one line. Malformed
// or out-of-range captures are discarded and the next strategy tried.
func matchCredits(line string) (int, bool) {
	for _, p := range creditPatterns {
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if n, ok := parseCredits(m[1]); ok {
			return n, true
		}
	}
	return 0, false
}

// parseCredits converts a numeric capture, discarding malformed or
// out-of-range values.
func parseCredits(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > maxCreditValue {
		return 0, false
	}
	return n, true
}

// tokenSplit separates candidate grade tokens in a line or a model answer.
var tokenSplit = regexp.MustCompile(`[\s,;:.|/()\[\]]+`)

// firstNumber pulls the leading integer out of a generative answer.
var firstNumber = regexp.MustCompile(`\d+`)
