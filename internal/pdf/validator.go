package pdf

import (
	"os"

	"github.com/spherical/pdftext/internal/domain"
)

// Validator checks input paths before any document is opened
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// Exists reports whether path names an existing file system entry.
// Directories count; so do entries that exist but cannot be read.
func (v *Validator) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ValidatePDFPath returns a not-found error unless path exists. File type,
// readability and PDF structure are left to the extractor.
func (v *Validator) ValidatePDFPath(path string) error {
	if !v.Exists(path) {
		return domain.NotFoundError(path)
	}
	return nil
}
