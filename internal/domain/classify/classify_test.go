package classify_test

import (
	"testing"

	"github.com/credeq/credeq/internal/domain/classify"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Given raw document text", t, func() {
		Convey("Then syllabus keywords should mark course content", func() {
			So(classify.Classify("Course Description: covers sets and logic"), ShouldEqual, classify.CourseContent)
			So(classify.Classify("LEARNING OUTCOME 1: ..."), ShouldEqual, classify.CourseContent)
			So(classify.Classify("Weekly Schedule\nWeek 1 ..."), ShouldEqual, classify.CourseContent)
		})

		Convey("Then matching should be case-insensitive substring containment", func() {
			So(classify.Classify("see the PREREQUISITE list"), ShouldEqual, classify.CourseContent)
			So(classify.Classify("...assessment methods include..."), ShouldEqual, classify.CourseContent)
		})

		Convey("Then transcript-like text should classify as other", func() {
			transcript := "MTH1114 Computer Mathematics 4 3.50 A+\nENG1044 English 3 3.00 B"
			So(classify.Classify(transcript), ShouldEqual, classify.Other)
		})

		Convey("Then empty text should classify as other", func() {
			So(classify.Classify(""), ShouldEqual, classify.Other)
		})

		Convey("Then Kind should stringify for logs", func() {
			So(classify.CourseContent.String(), ShouldEqual, "course_content")
			So(classify.Other.String(), ShouldEqual, "other")
		})
	})
}
