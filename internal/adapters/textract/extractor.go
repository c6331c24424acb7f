// Package textract is the boundary to the text-extraction collaborator.
// PDF-to-text conversion happens outside this service; the pipeline
// only sees already-extracted text behind the Extractor interface.
package textract

import (
	"context"
	"os"
)

// Extractor turns a file path into raw text. Implementations fail soft:
// any read or parse error yields an empty string, with the error
// returned for the caller to log but never to abort on.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// FileExtractor reads pre-extracted text files from disk. It stands in
// for the PDF conversion service in deployments where extraction runs
// as a separate step.
type FileExtractor struct{}

// NewFileExtractor creates a file-based extractor.
func NewFileExtractor() *FileExtractor {
	return &FileExtractor{}
}

// Extract reads the file at path. On error it returns an empty string
// along with the error; callers log it and carry on with empty text.
func (f *FileExtractor) Extract(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
