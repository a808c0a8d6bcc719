package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/spherical/pdftext/internal/domain"
)

// pageTextFunc returns the text of a 1-indexed page
type pageTextFunc func(pageNumber int) (string, error)

// joinPages walks pages 1..pageCount in order and concatenates the text of
// every page that has any, each preceded by its page marker. Pages with no
// text get no marker. The result is trimmed.
func joinPages(ctx context.Context, pageCount int, pageText pageTextFunc) (string, error) {
	var b strings.Builder

	for pageNumber := 1; pageNumber <= pageCount; pageNumber++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := pageText(pageNumber)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", pageNumber, err)
		}
		if text == "" {
			continue
		}

		b.WriteString("\n")
		b.WriteString(domain.PageMarker(pageNumber))
		b.WriteString("\n")
		b.WriteString(text)
	}

	return strings.TrimSpace(b.String()), nil
}
