package extract_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/credeq/credeq/internal/domain/extract"
	. "github.com/smartystreets/goconvey/convey"
)

// stubGenerator returns a canned answer and records prompts.
type stubGenerator struct {
	answer  string
	err     error
	prompts []string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string, _ int) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

const transcript = `SUNWAY UNIVERSITY
Academic Transcript
MTH1114 Computer Mathematics 4 3.50 A+
ENG1044 English for Computer Technology Studies 3 3.00 B
CSC1024 Programming Principles 4 4.00 A-
Total Credit Hours Earned: 11`

const syllabus = `Course Description
Computer Mathematics
3 credit hours
Topics: sets, logic, graphs, matrices
Assessment Methods: exams and assignments`

func TestGrade(t *testing.T) {
	Convey("Given a transcript and subject aliases", t, func() {
		ctx := context.Background()
		e := extract.New()

		Convey("When the subject line carries a grade token", func() {
			g, ok := e.Grade(ctx, transcript, []string{"Computer Mathematics"})

			Convey("Then the grade on the matched line should win", func() {
				So(ok, ShouldBeTrue)
				So(g, ShouldEqual, "A+")
			})
		})

		Convey("When the grade sits on a neighboring line", func() {
			text := "CS101 Intro to Computing\nFinal grade: A-\nSemester 1"
			g, ok := e.Grade(ctx, text, []string{"Intro to Computing"})

			Convey("Then the window search should find it", func() {
				So(ok, ShouldBeTrue)
				So(g, ShouldEqual, "A-")
			})
		})

		Convey("When the subject does not occur in the text", func() {
			g, ok := e.Grade(ctx, transcript, []string{"Quantum Chromodynamics"})

			Convey("Then extraction should return none-found", func() {
				So(ok, ShouldBeFalse)
				So(g, ShouldEqual, "")
			})
		})

		Convey("When the text is empty", func() {
			_, ok := e.Grade(ctx, "", []string{"Computer Mathematics"})
			So(ok, ShouldBeFalse)
		})

		Convey("When patterns miss and a generator is configured", func() {
			gen := &stubGenerator{answer: "The grade is B+."}
			eg := extract.New(extract.WithGenerator(gen))
			// No grade token anywhere near the subject line.
			text := "Intro to Computing\nresults pending\nsee registrar"
			g, ok := eg.Grade(ctx, text, []string{"Intro to Computing"})

			Convey("Then the first valid token of the answer should be accepted", func() {
				So(ok, ShouldBeTrue)
				So(g, ShouldEqual, "B+")
				So(len(gen.prompts), ShouldEqual, 1)
				So(gen.prompts[0], ShouldContainSubstring, "Intro to Computing")
			})
		})

		Convey("When the generator answers NONE", func() {
			gen := &stubGenerator{answer: "NONE"}
			eg := extract.New(extract.WithGenerator(gen))
			text := "Intro to Computing\nresults pending"
			_, ok := eg.Grade(ctx, text, []string{"Intro to Computing"})

			Convey("Then extraction should return none-found", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When the generator fails", func() {
			gen := &stubGenerator{err: errors.New("model timeout")}
			eg := extract.New(extract.WithGenerator(gen))
			text := "Intro to Computing\nresults pending"
			_, ok := eg.Grade(ctx, text, []string{"Intro to Computing"})

			Convey("Then the failure should degrade to none-found", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When patterns match, the generator should never be called", func() {
			gen := &stubGenerator{answer: "F"}
			eg := extract.New(extract.WithGenerator(gen))
			g, ok := eg.Grade(ctx, transcript, []string{"Programming Principles"})

			So(ok, ShouldBeTrue)
			So(g, ShouldEqual, "A-")
			So(gen.prompts, ShouldBeEmpty)
		})
	})
}

func TestCredits(t *testing.T) {
	Convey("Given course text and subject aliases", t, func() {
		ctx := context.Background()
		e := extract.New()

		Convey("When a unit-suffix pattern is in the window", func() {
			n, ok := e.Credits(ctx, syllabus, []string{"Computer Mathematics"})

			Convey("Then the count should be parsed", func() {
				So(ok, ShouldBeTrue)
				So(n, ShouldEqual, 3)
			})
		})

		Convey("When the label-prefix variant is used", func() {
			text := "Data Structures\nCredits: 4\nPrerequisite: none"
			n, ok := e.Credits(ctx, text, []string{"Data Structures"})
			So(ok, ShouldBeTrue)
			So(n, ShouldEqual, 4)
		})

		Convey("When the CH-prefix variant is used", func() {
			text := "Operating Systems\nCH: 3"
			n, ok := e.Credits(ctx, text, []string{"Operating Systems"})
			So(ok, ShouldBeTrue)
			So(n, ShouldEqual, 3)
		})

		Convey("When the abbreviation variant is used", func() {
			text := "Databases\n4 cr. per semester"
			n, ok := e.Credits(ctx, text, []string{"Databases"})
			So(ok, ShouldBeTrue)
			So(n, ShouldEqual, 4)
		})

		Convey("When an out-of-range capture precedes a valid one", func() {
			text := "Networking\n50000 credit hours typo\nCredits: 3"
			n, ok := e.Credits(ctx, text, []string{"Networking"})

			Convey("Then the malformed capture should be discarded, not zeroed", func() {
				So(ok, ShouldBeTrue)
				So(n, ShouldEqual, 3)
			})
		})

		Convey("When the subject cannot be located", func() {
			n, ok := e.Credits(ctx, syllabus, []string{"Underwater Basket Weaving"})
			So(ok, ShouldBeFalse)
			So(n, ShouldEqual, 0)
		})

		Convey("When the window radius excludes the credit line", func() {
			var b strings.Builder
			b.WriteString("Computer Mathematics\n")
			for i := 0; i < 5; i++ {
				b.WriteString("filler line\n")
			}
			b.WriteString("3 credit hours\n")
			narrow := extract.New(extract.WithWindowRadius(1))
			_, ok := narrow.Credits(ctx, b.String(), []string{"Computer Mathematics"})

			Convey("Then extraction should return none-found", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When patterns miss and a generator answers with a number", func() {
			gen := &stubGenerator{answer: "3 credit hours"}
			eg := extract.New(extract.WithGenerator(gen))
			text := "Computer Mathematics\ncontact hours vary"
			n, ok := eg.Credits(ctx, text, []string{"Computer Mathematics"})

			So(ok, ShouldBeTrue)
			So(n, ShouldEqual, 3)
		})

		Convey("When patterns miss and the generator answers NONE", func() {
			gen := &stubGenerator{answer: "NONE"}
			eg := extract.New(extract.WithGenerator(gen))
			text := "Computer Mathematics\ncontact hours vary"
			_, ok := eg.Credits(ctx, text, []string{"Computer Mathematics"})
			So(ok, ShouldBeFalse)
		})
	})
}

func TestMinMatchThreshold(t *testing.T) {
	Convey("Given a lowered minimum match score", t, func() {
		ctx := context.Background()

		Convey("When the alias only loosely matches", func() {
			text := "Computer Mathematic 3 credit hours A" // corrupted OCR spelling
			strict := extract.New(extract.WithMinMatchScore(100))
			loose := extract.New(extract.WithMinMatchScore(80))

			Convey("Then the strict extractor should refuse the window", func() {
				_, ok := strict.Grade(ctx, text, []string{"Computer Mathematics"})
				So(ok, ShouldBeFalse)
			})

			Convey("And the loose extractor should accept it", func() {
				g, ok := loose.Grade(ctx, text, []string{"Computer Mathematics"})
				So(ok, ShouldBeTrue)
				So(g, ShouldEqual, "A")
			})
		})
	})
}
