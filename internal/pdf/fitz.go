package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/spherical/pdftext/internal/domain"
)

// FitzEngine names the MuPDF-backed extractor
const FitzEngine = "fitz"

// FitzExtractor implements domain.Extractor using go-fitz (MuPDF). MuPDF
// always exposes an info map, so metadata is never sparse; missing fields
// come back as empty strings.
type FitzExtractor struct{}

var _ domain.Extractor = (*FitzExtractor)(nil)

// NewFitzExtractor creates a new MuPDF extractor
func NewFitzExtractor() *FitzExtractor {
	return &FitzExtractor{}
}

func (e *FitzExtractor) Name() string {
	return FitzEngine
}

// Extract reads metadata and per-page text from the PDF at path
func (e *FitzExtractor) Extract(ctx context.Context, path string) (*domain.Extraction, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	metadata := fitzMetadata(doc.Metadata(), pageCount)

	text, err := joinPages(ctx, pageCount, func(pageNumber int) (string, error) {
		return doc.Text(pageNumber - 1)
	})
	if err != nil {
		return nil, err
	}

	return &domain.Extraction{
		Text:     text,
		Metadata: metadata,
	}, nil
}

// fitzMetadata maps MuPDF's info keys onto the result fields
func fitzMetadata(info map[string]string, pageCount int) domain.Metadata {
	return domain.Metadata{
		Title:            fitzField(info, "title"),
		Author:           fitzField(info, "author"),
		Subject:          fitzField(info, "subject"),
		Creator:          fitzField(info, "creator"),
		Producer:         fitzField(info, "producer"),
		CreationDate:     fitzField(info, "creationDate"),
		ModificationDate: fitzField(info, "modDate"),
		PageCount:        pageCount,
	}
}

// fitzField returns one info value. go-fitz copies each value out of a
// fixed-size NUL-padded buffer, so an absent key comes back as all NULs.
func fitzField(info map[string]string, key string) string {
	return strings.TrimRight(info[key], "\x00")
}
