// Package classify decides whether a raw document reads like course
// content (syllabus) or something else, typically a transcript.
package classify

import "strings"

// Kind is the document category the classifier distinguishes.
type Kind int

const (
	// Other covers transcript-like and unrecognized documents.
	Other Kind = iota
	// CourseContent marks syllabus/description documents.
	CourseContent
)

func (k Kind) String() string {
	if k == CourseContent {
		return "course_content"
	}
	return "other"
}

// syllabusKeywords mark a document as course content on first hit.
var syllabusKeywords = []string{
	"learning outcome",
	"course description",
	"topics",
	"prerequisite",
	"instructional methods",
	"assessment methods",
	"weekly schedule",
	"lecture plan",
	"reference materials",
}

// Classify categorizes raw text by case-insensitive substring
// containment over the fixed keyword set. First keyword found wins;
// empty text is Other.
func Classify(raw string) Kind {
	if raw == "" {
		return Other
	}
	lower := strings.ToLower(raw)
	for _, kw := range syllabusKeywords {
		if strings.Contains(lower, kw) {
			return CourseContent
		}
	}
	return Other
}
