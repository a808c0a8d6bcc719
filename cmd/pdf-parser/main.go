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

func main() {
	os.Exit(cli.Execute(cli.Program{
		Name:    "pdf-parser",
		Version: version,
		Short:   "Extract text and metadata from a PDF using MuPDF",
		NewExtractor: func() domain.Extractor {
			return pdf.NewFitzExtractor()
		},
	}))
}
