package decision_test

import (
	"testing"

	"github.com/credeq/credeq/internal/domain/decision"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDecide(t *testing.T) {
	Convey("Given an engine with default thresholds", t, func() {
		eng := decision.New(decision.DefaultThresholds())

		Convey("When all three signals pass", func() {
			res := eng.Decide(decision.Input{
				Subject:      "Computer Mathematics",
				Similarity:   92.5,
				Grade:        "A-",
				GradeFound:   true,
				Credits:      4,
				CreditsFound: true,
				AppType:      "Credit Exemption",
			})

			Convey("Then the verdict should be approve", func() {
				So(res.Verdict, ShouldEqual, decision.Approve)
				So(res.Reasoning.SimilarityOK, ShouldBeTrue)
				So(res.Reasoning.GradeOK, ShouldBeTrue)
				So(res.Reasoning.CreditOK, ShouldBeTrue)
				So(*res.Reasoning.DetectedGrade, ShouldEqual, "A-")
				So(*res.Reasoning.DetectedCreditHours, ShouldEqual, 4)
			})

			Convey("And an exemption should carry no suggested grade", func() {
				So(res.SuggestedEquivalentGrade, ShouldBeNil)
			})
		})

		Convey("When the grade is below the minimum", func() {
			res := eng.Decide(decision.Input{
				Similarity:   82,
				Grade:        "D",
				GradeFound:   true,
				Credits:      3,
				CreditsFound: true,
			})

			Convey("Then the verdict should be reject with grade_ok false", func() {
				So(res.Verdict, ShouldEqual, decision.Reject)
				So(res.Reasoning.SimilarityOK, ShouldBeTrue)
				So(res.Reasoning.GradeOK, ShouldBeFalse)
				So(res.Reasoning.CreditOK, ShouldBeTrue)
			})
		})

		Convey("When the verdict is the AND of the three flags", func() {
			type combo struct {
				sim     float64
				grade   string
				gFound  bool
				credits int
				cFound  bool
			}
			pass := combo{sim: 85, grade: "B", gFound: true, credits: 3, cFound: true}

			for i := 0; i < 8; i++ {
				c := pass
				if i&1 == 0 {
					c.sim = 50
				}
				if i&2 == 0 {
					c.grade = "F"
				}
				if i&4 == 0 {
					c.credits = 2
				}
				res := eng.Decide(decision.Input{
					Similarity:   c.sim,
					Grade:        c.grade,
					GradeFound:   c.gFound,
					Credits:      c.credits,
					CreditsFound: c.cFound,
				})
				expectApprove := i == 7
				if expectApprove {
					So(res.Verdict, ShouldEqual, decision.Approve)
				} else {
					So(res.Verdict, ShouldEqual, decision.Reject)
				}
			}
		})

		Convey("When grade or credits are none-found", func() {
			res := eng.Decide(decision.Input{
				Similarity: 95,
			})

			Convey("Then the flags should fail and pointers stay nil", func() {
				So(res.Verdict, ShouldEqual, decision.Reject)
				So(res.Reasoning.GradeOK, ShouldBeFalse)
				So(res.Reasoning.CreditOK, ShouldBeFalse)
				So(res.Reasoning.DetectedGrade, ShouldBeNil)
				So(res.Reasoning.DetectedCreditHours, ShouldBeNil)
			})
		})

		Convey("When the similarity sits exactly on the threshold", func() {
			res := eng.Decide(decision.Input{
				Similarity:   80,
				Grade:        "C",
				GradeFound:   true,
				Credits:      3,
				CreditsFound: true,
			})
			So(res.Reasoning.SimilarityOK, ShouldBeTrue)
			So(res.Verdict, ShouldEqual, decision.Approve)
		})

		Convey("When an exemption or pass grade is detected", func() {
			res := eng.Decide(decision.Input{
				Similarity:   90,
				Grade:        "EX",
				GradeFound:   true,
				Credits:      3,
				CreditsFound: true,
			})
			So(res.Reasoning.GradeOK, ShouldBeTrue)
			So(res.Verdict, ShouldEqual, decision.Approve)
		})
	})
}

func TestSuggestedEquivalentGrade(t *testing.T) {
	Convey("Given approved and rejected analyses", t, func() {
		eng := decision.New(decision.DefaultThresholds())

		approved := decision.Input{
			Similarity:   90,
			Grade:        "B+",
			GradeFound:   true,
			Credits:      3,
			CreditsFound: true,
		}

		Convey("When the type is credit transfer (any case)", func() {
			for _, appType := range []string{"credit transfer", "Credit Transfer", "CREDIT TRANSFER", " credit transfer "} {
				in := approved
				in.AppType = appType
				res := eng.Decide(in)
				So(res.SuggestedEquivalentGrade, ShouldNotBeNil)
				So(*res.SuggestedEquivalentGrade, ShouldEqual, "B+")
			}
		})

		Convey("When the type is not credit transfer", func() {
			in := approved
			in.AppType = "Credit Exemption"
			res := eng.Decide(in)
			So(res.SuggestedEquivalentGrade, ShouldBeNil)
		})

		Convey("When the verdict is reject", func() {
			in := approved
			in.AppType = "credit transfer"
			in.Similarity = 10
			res := eng.Decide(in)
			So(res.Verdict, ShouldEqual, decision.Reject)
			So(res.SuggestedEquivalentGrade, ShouldBeNil)
		})
	})
}

func TestCustomThresholds(t *testing.T) {
	Convey("Given an engine with stricter thresholds", t, func() {
		eng := decision.New(decision.Thresholds{
			SimilarityMin:   90,
			MinPassingGrade: "B",
			MinCreditHours:  4,
		})

		Convey("Then the defaults should not leak through", func() {
			res := eng.Decide(decision.Input{
				Similarity:   85,
				Grade:        "C+",
				GradeFound:   true,
				Credits:      3,
				CreditsFound: true,
			})
			So(res.Reasoning.SimilarityOK, ShouldBeFalse)
			So(res.Reasoning.GradeOK, ShouldBeFalse)
			So(res.Reasoning.CreditOK, ShouldBeFalse)
			So(res.Verdict, ShouldEqual, decision.Reject)
		})
	})
}
