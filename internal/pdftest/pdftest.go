// Package pdftest builds small, well-formed PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// Document describes a PDF to generate. Each entry in Pages is the text
// drawn on that page; an empty string produces a page with an empty
// content stream. A nil Info omits the /Info dictionary from the trailer,
// an empty non-nil Info writes an empty one.
type Document struct {
	Pages []string
	Info  map[string]string
}

// Bytes renders the document with a correct cross-reference table.
func (d Document) Bytes() []byte {
	var objects []string

	// 1: catalog, 2: page tree, 3: font
	pageCount := len(d.Pages)
	kids := make([]string, pageCount)
	for i := range d.Pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pageCount),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)

	for i, text := range d.Pages {
		contentID := 5 + 2*i
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", contentID),
			stream(content(text)),
		)
	}

	infoID := 0
	if d.Info != nil {
		infoID = len(objects) + 1
		objects = append(objects, infoDict(d.Info))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}

	trailer := fmt.Sprintf("/Size %d /Root 1 0 R", len(objects)+1)
	if infoID != 0 {
		trailer += fmt.Sprintf(" /Info %d 0 R", infoID)
	}
	fmt.Fprintf(&buf, "trailer\n<< %s >>\nstartxref\n%d\n%%%%EOF\n", trailer, xref)

	return buf.Bytes()
}

// WriteFile writes the document into a fresh temp dir and returns its path.
func WriteFile(t testing.TB, name string, d Document) string {
	t.Helper()
	return WriteRaw(t, name, d.Bytes())
}

// WriteRaw writes arbitrary bytes, e.g. a corrupt PDF, into a temp dir.
func WriteRaw(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// Pages returns n pages whose text is "Hello from page k".
func Pages(n int) []string {
	pages := make([]string, n)
	for i := range pages {
		pages[i] = PageText(i + 1)
	}
	return pages
}

// PageText is the text Pages draws on page k.
func PageText(k int) string {
	return fmt.Sprintf("Hello from page %d", k)
}

func content(text string) string {
	if text == "" {
		return ""
	}
	return fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", escape(text))
}

func stream(data string) string {
	return fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(data), data)
}

func infoDict(info map[string]string) string {
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("<<")
	for _, k := range keys {
		fmt.Fprintf(&b, " /%s (%s)", k, escape(info[k]))
	}
	b.WriteString(" >>")
	return b.String()
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
