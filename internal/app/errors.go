package service

import "errors"

// Sentinel error kinds for this package. Validation errors stop the
// pipeline before any extraction or scoring happens and map to
// client-visible failures at the API layer.
var (
	ErrMissingSubject    = errors.New("subject_name is required")
	ErrMissingFiles      = errors.New("applicant_files and sunway_files are required")
	ErrFileNotFound      = errors.New("file not found")
	ErrNoApplicantCourse = errors.New("no applicant course syllabus detected")
	ErrNoTargetCourse    = errors.New("no institution course syllabus detected")
)

// IsValidation reports whether err is a client-visible input failure.
func IsValidation(err error) bool {
	for _, kind := range []error{ErrMissingSubject, ErrMissingFiles, ErrFileNotFound, ErrNoApplicantCourse, ErrNoTargetCourse} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
