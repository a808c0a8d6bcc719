package domain

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// PageMarker formats the delimiter placed before each page's text
func PageMarker(pageNumber int) string {
	return fmt.Sprintf("--- Page %d ---", pageNumber)
}

// Metadata is the document-info record reported alongside the text.
// A sparse record carries only the page count; it is produced when the
// document has no info dictionary at all.
type Metadata struct {
	Title            string
	Author           string
	Subject          string
	Creator          string
	Producer         string
	CreationDate     string
	ModificationDate string
	PageCount        int
	Sparse           bool
}

// SparseMetadata returns a record holding only the page count
func SparseMetadata(pageCount int) Metadata {
	return Metadata{PageCount: pageCount, Sparse: true}
}

type fullMetadata struct {
	Title            string `json:"title"`
	Author           string `json:"author"`
	Subject          string `json:"subject"`
	Creator          string `json:"creator"`
	Producer         string `json:"producer"`
	CreationDate     string `json:"creation_date"`
	ModificationDate string `json:"modification_date"`
	PageCount        int    `json:"page_count"`
}

type sparseMetadata struct {
	PageCount int `json:"page_count"`
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	if m.Sparse {
		return json.Marshal(sparseMetadata{PageCount: m.PageCount})
	}
	return json.Marshal(fullMetadata{
		Title:            m.Title,
		Author:           m.Author,
		Subject:          m.Subject,
		Creator:          m.Creator,
		Producer:         m.Producer,
		CreationDate:     m.CreationDate,
		ModificationDate: m.ModificationDate,
		PageCount:        m.PageCount,
	})
}

func (m *Metadata) UnmarshalJSON(data []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	var full fullMetadata
	if err := json.Unmarshal(data, &full); err != nil {
		return err
	}
	_, hasTitle := keys["title"]
	*m = Metadata{
		Title:            full.Title,
		Author:           full.Author,
		Subject:          full.Subject,
		Creator:          full.Creator,
		Producer:         full.Producer,
		CreationDate:     full.CreationDate,
		ModificationDate: full.ModificationDate,
		PageCount:        full.PageCount,
		Sparse:           !hasTitle,
	}
	return nil
}

// Extraction is what an engine produces for a readable document
type Extraction struct {
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
}

// ExtractionResult is the JSON object written to stdout. Optional fields are
// pointers so that an empty text on success is still emitted.
type ExtractionResult struct {
	Success  bool      `json:"success"`
	Text     *string   `json:"text,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty"`
	Error    *string   `json:"error,omitempty"`
	FilePath *string   `json:"file_path,omitempty"`
}

// NewSuccessResult builds the result for a completed extraction
func NewSuccessResult(path string, ex Extraction) *ExtractionResult {
	text := ex.Text
	meta := ex.Metadata
	return &ExtractionResult{
		Success:  true,
		Text:     &text,
		Metadata: &meta,
		FilePath: &path,
	}
}

// NewFailureResult builds the result for a failed invocation. Usage errors
// carry no path.
func NewFailureResult(path string, err error) *ExtractionResult {
	msg := "extraction failed"
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		msg = err.Error()
	}
	res := &ExtractionResult{
		Success: false,
		Error:   &msg,
	}
	if KindOf(err) != ErrorKindUsage {
		res.FilePath = &path
	}
	return res
}

// WriteJSON writes the result with two-space indentation followed by a
// newline. HTML characters are left unescaped so the usage message reads
// as "<pdf_file_path>".
func (r *ExtractionResult) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
