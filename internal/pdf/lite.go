package pdf

import (
	"context"
	"fmt"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/spherical/pdftext/internal/domain"
)

// LiteEngine names the pure Go extractor
const LiteEngine = "ledongthuc"

// LiteExtractor implements domain.Extractor using github.com/ledongthuc/pdf.
// Documents without an /Info dictionary (or with an empty one) report
// sparse metadata holding only the page count.
type LiteExtractor struct{}

var _ domain.Extractor = (*LiteExtractor)(nil)

// NewLiteExtractor creates a new pure Go extractor
func NewLiteExtractor() *LiteExtractor {
	return &LiteExtractor{}
}

func (e *LiteExtractor) Name() string {
	return LiteEngine
}

// Extract reads metadata and per-page text from the PDF at path
func (e *LiteExtractor) Extract(ctx context.Context, path string) (*domain.Extraction, error) {
	f, r, err := lpdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	pageCount := r.NumPage()
	metadata := liteMetadata(r.Trailer().Key("Info"), pageCount)

	text, err := joinPages(ctx, pageCount, func(pageNumber int) (string, error) {
		page := r.Page(pageNumber)
		if page.V.IsNull() {
			return "", nil
		}
		return page.GetPlainText(nil)
	})
	if err != nil {
		return nil, err
	}

	return &domain.Extraction{
		Text:     text,
		Metadata: metadata,
	}, nil
}

// liteMetadata reads the trailer's info dictionary. Absent keys decode to
// empty strings via Value.Text.
func liteMetadata(info lpdf.Value, pageCount int) domain.Metadata {
	if info.Kind() != lpdf.Dict || len(info.Keys()) == 0 {
		return domain.SparseMetadata(pageCount)
	}

	return domain.Metadata{
		Title:            info.Key("Title").Text(),
		Author:           info.Key("Author").Text(),
		Subject:          info.Key("Subject").Text(),
		Creator:          info.Key("Creator").Text(),
		Producer:         info.Key("Producer").Text(),
		CreationDate:     info.Key("CreationDate").Text(),
		ModificationDate: info.Key("ModDate").Text(),
		PageCount:        pageCount,
	}
}
