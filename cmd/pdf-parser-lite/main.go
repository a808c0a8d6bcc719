package main

import (
	"os"

	"github.com/spherical/pdftext/internal/cli"
	"github.com/spherical/pdftext/internal/domain"
	"github.com/spherical/pdftext/internal/pdf"
)

const (
	version = "1.0.0"
)

// Documents without an info dictionary report only page_count in metadata.
func main() {
	os.Exit(cli.Execute(cli.Program{
		Name:    "pdf-parser-lite",
		Version: version,
		Short:   "Extract text and metadata from a PDF using a pure Go parser",
		NewExtractor: func() domain.Extractor {
			return pdf.NewLiteExtractor()
		},
	}))
}
