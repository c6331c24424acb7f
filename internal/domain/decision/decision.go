// Package decision turns the three extracted signals into an
// approve/reject verdict with an auditable reasoning record.
package decision

import (
	"strings"

	"github.com/credeq/credeq/internal/domain/grades"
)

// Application types. Only credit transfers carry a suggested grade.
const (
	TypeCreditTransfer  = "credit transfer"
	TypeCreditExemption = "credit exemption"
)

// Verdict is the binary outcome of an analysis.
type Verdict string

const (
	Approve Verdict = "approve"
	Reject  Verdict = "reject"
)

// Reasoning is the immutable audit trail assembled once per request.
// Pointer fields are nil when the value was none-found.
type Reasoning struct {
	Subject             string  `json:"subject"`
	SimilarityPercent   float64 `json:"similarity_percent"`
	SimilarityOK        bool    `json:"similarity_ok"`
	DetectedGrade       *string `json:"detected_grade"`
	GradeOK             bool    `json:"grade_ok"`
	DetectedCreditHours *int    `json:"detected_credit_hours"`
	CreditOK            bool    `json:"credit_ok"`
}

// Thresholds are the fixed rule constants, named and overridable.
type Thresholds struct {
	SimilarityMin   float64
	MinPassingGrade string
	MinCreditHours  int
}

// DefaultThresholds returns the standard rule constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SimilarityMin:   80,
		MinPassingGrade: grades.DefaultMinimum,
		MinCreditHours:  3,
	}
}

// Input carries the signals the rules evaluate. GradeFound/CreditsFound
// distinguish none-found from zero values.
type Input struct {
	Subject      string
	Similarity   float64
	Grade        string
	GradeFound   bool
	Credits      int
	CreditsFound bool
	AppType      string
}

// Result bundles the verdict, its reasoning, and the suggested
// equivalent grade (nil unless an approved credit transfer).
type Result struct {
	Verdict                  Verdict
	Reasoning                Reasoning
	SuggestedEquivalentGrade *string
}

// Engine applies the fixed thresholds. Pure: identical inputs always
// yield identical outputs.
type Engine struct {
	thresholds Thresholds
}

// New creates an Engine with the given thresholds.
func New(t Thresholds) *Engine {
	if t.MinPassingGrade == "" {
		t.MinPassingGrade = grades.DefaultMinimum
	}
	return &Engine{thresholds: t}
}

// Decide evaluates the three signals and assembles the reasoning record.
// The verdict is the logical AND of the three _ok flags.
func (e *Engine) Decide(in Input) Result {
	simOK := in.Similarity >= e.thresholds.SimilarityMin
	gradeOK := in.GradeFound && grades.MeetsRequirement(in.Grade, e.thresholds.MinPassingGrade)
	creditOK := in.CreditsFound && in.Credits >= e.thresholds.MinCreditHours

	r := Reasoning{
		Subject:           in.Subject,
		SimilarityPercent: in.Similarity,
		SimilarityOK:      simOK,
		GradeOK:           gradeOK,
		CreditOK:          creditOK,
	}
	if in.GradeFound {
		g := grades.Canonical(in.Grade)
		r.DetectedGrade = &g
	}
	if in.CreditsFound {
		c := in.Credits
		r.DetectedCreditHours = &c
	}

	verdict := Reject
	if simOK && gradeOK && creditOK {
		verdict = Approve
	}

	var suggested *string
	if verdict == Approve && strings.EqualFold(strings.TrimSpace(in.AppType), TypeCreditTransfer) {
		g := grades.DefaultMinimum
		if in.GradeFound {
			g = grades.Canonical(in.Grade)
		}
		suggested = &g
	}

	return Result{
		Verdict:                  verdict,
		Reasoning:                r,
		SuggestedEquivalentGrade: suggested,
	}
}
