package domain

import "context"

// Extractor decodes a PDF on disk into text and metadata
type Extractor interface {
	// Name identifies the backing library; it is part of cache keys
	Name() string

	// Extract opens the document at path and reads every page. The document
	// handle is released before Extract returns.
	Extract(ctx context.Context, path string) (*Extraction, error)
}
