// Package extract pulls structured fields (letter grade, credit hours)
// out of the lines surrounding a located subject.
//
// Both extractions share one shape: locate the subject, give up if the
// match is weaker than the minimum score, then search a small window of
// nearby lines with an ordered list of strategies. Structural pattern
// matching always runs first; the generative fallback is slower and
// less deterministic, so it is attempted only after every pattern
// missed. A subject that cannot be located yields none-found for both
// fields, never a default value.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/credeq/credeq/internal/domain/grades"
	"github.com/credeq/credeq/internal/domain/locate"
	"github.com/credeq/credeq/internal/domain/textnorm"
	"github.com/credeq/credeq/pkg/metrics"
)

// Default extraction configuration constants.
const (
	defaultMinMatchScore = 80
	defaultWindowRadius  = 3

	// Snippet bounds for the generative grade prompt, centered on the
	// first verbatim alias occurrence.
	snippetBefore = 600
	snippetAfter  = 800
	// Fallback prefix length when no alias occurs verbatim.
	snippetFallbackLen = 4000
)

// Generator is the generative text-extraction collaborator. Responses
// are expected to be bounded and deterministically decoded.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithMinMatchScore sets the minimum fuzzy-match score a subject lookup
// must reach before a window is trusted.
func WithMinMatchScore(score int) Option {
	return func(e *Extractor) {
		if score >= 0 && score <= 100 {
			e.minMatch = score
		}
	}
}

// WithWindowRadius sets the number of lines searched around a match.
func WithWindowRadius(radius int) Option {
	return func(e *Extractor) {
		if radius >= 0 {
			e.windowRadius = radius
		}
	}
}

// WithGenerator enables the generative fallback. Without it, extraction
// ends after the structural strategies.
func WithGenerator(g Generator) Option {
	return func(e *Extractor) {
		e.generator = g
	}
}

// WithGenerateMaxTokens bounds fallback response length.
func WithGenerateMaxTokens(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxTokens = n
		}
	}
}

// Extractor reads grades and credit-hour counts from document text.
type Extractor struct {
	minMatch     int
	windowRadius int
	generator    Generator
	maxTokens    int
}

// New creates an Extractor with default thresholds.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		minMatch:     defaultMinMatchScore,
		windowRadius: defaultWindowRadius,
		maxTokens:    16,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Grade extracts the letter grade for the subject from transcript text.
// The boolean is false when no grade was found.
func (e *Extractor) Grade(ctx context.Context, text string, aliases []string) (string, bool) {
	lines := textnorm.Lines(text)
	m := locate.Subject(lines, aliases)
	metrics.RecordSubjectMatchScore(float64(m.Score))
	if m.LineIndex < 0 || m.Score < e.minMatch {
		metrics.RecordExtractionMiss("grade")
		return "", false
	}

	// Locality first: the matched line itself, then the joined window.
	if g, ok := matchGrade(m.Line); ok {
		return g, true
	}
	window := locate.Window(lines, m.LineIndex, e.windowRadius)
	if g, ok := matchGrade(strings.Join(window, " ")); ok {
		return g, true
	}

	if g, ok := e.gradeFallback(ctx, text, aliases); ok {
		return g, true
	}

	metrics.RecordExtractionMiss("grade")
	return "", false
}

// Credits extracts the credit-hour count for the subject from course
// text. The boolean is false when no count was found.
func (e *Extractor) Credits(ctx context.Context, text string, aliases []string) (int, bool) {
	lines := textnorm.Lines(text)
	m := locate.Subject(lines, aliases)
	metrics.RecordSubjectMatchScore(float64(m.Score))
	if m.LineIndex < 0 || m.Score < e.minMatch {
		metrics.RecordExtractionMiss("credits")
		return 0, false
	}

	window := locate.Window(lines, m.LineIndex, e.windowRadius)
	for _, line := range window {
		if n, ok := matchCredits(line); ok {
			return n, true
		}
	}

	if n, ok := e.creditsFallback(ctx, window, aliases); ok {
		return n, true
	}

	metrics.RecordExtractionMiss("credits")
	return 0, false
}

// matchGrade scans the candidate tokens of text for the first member of
// the accepted grade set.
func matchGrade(text string) (string, bool) {
	for _, tok := range tokenSplit.Split(text, -1) {
		if tok == "" {
			continue
		}
		g := grades.Canonical(tok)
		if grades.Valid(g) {
			return g, true
		}
	}
	return "", false
}

// gradeFallback asks the generative collaborator for the grade, using a
// localized snippet of the transcript. Failures degrade to none-found.
func (e *Extractor) gradeFallback(ctx context.Context, text string, aliases []string) (string, bool) {
	if e.generator == nil || len(aliases) == 0 {
		return "", false
	}
	metrics.RecordGenerativeFallback("grade")

	snippet := subjectSnippet(text, aliases)
	prompt := fmt.Sprintf(`You are given a snippet of a student's academic transcript.

Your task:
- Find the final letter grade that the student obtained for the subject %q.
- Only consider letter grades in this set: %s.
- Return ONLY the grade (for example: A+, B, C-, F).
- If you cannot find the grade for this subject, reply with: NONE

Transcript snippet:
%s`, aliases[0], strings.Join(grades.All(), ", "), snippet)

	answer, err := e.generator.Generate(ctx, prompt, e.maxTokens)
	if err != nil {
		return "", false
	}

	answer = strings.ToUpper(strings.TrimSpace(answer))
	for _, tok := range tokenSplit.Split(answer, -1) {
		if grades.Valid(tok) {
			return grades.Canonical(tok), true
		}
	}
	return "", false
}

// creditsFallback asks the generative collaborator for the credit-hour
// count using the bounded extraction window.
func (e *Extractor) creditsFallback(ctx context.Context, window []string, aliases []string) (int, bool) {
	if e.generator == nil || len(aliases) == 0 {
		return 0, false
	}
	metrics.RecordGenerativeFallback("credits")

	prompt := fmt.Sprintf(`Extract the CREDIT HOURS for the subject %q from the text below.
If you cannot find the credit hours, return "NONE".
Return ONLY the number.

Text:
%s`, aliases[0], strings.Join(window, "\n"))

	answer, err := e.generator.Generate(ctx, prompt, e.maxTokens)
	if err != nil {
		return 0, false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	if strings.Contains(answer, "none") {
		return 0, false
	}
	answer = strings.ReplaceAll(answer, "credit hours", "")
	answer = strings.ReplaceAll(answer, "credits", "")
	if num := firstNumber.FindString(answer); num != "" {
		if n, ok := parseCredits(num); ok {
			return n, true
		}
	}
	return 0, false
}

// subjectSnippet returns a localized slice of text around the first
// verbatim alias occurrence, or a bounded prefix when none occurs.
func subjectSnippet(text string, aliases []string) string {
	lower := strings.ToLower(text)
	idx := -1
	for _, alias := range aliases {
		alias = strings.ToLower(strings.TrimSpace(alias))
		if alias == "" {
			continue
		}
		if i := strings.Index(lower, alias); i != -1 {
			idx = i
			break
		}
	}

	if idx == -1 {
		if len(text) > snippetFallbackLen {
			return text[:snippetFallbackLen]
		}
		return text
	}

	start := idx - snippetBefore
	if start < 0 {
		start = 0
	}
	end := idx + snippetAfter
	if end > len(text) {
		end = len(text)
	}
	return text[start:end]
}
