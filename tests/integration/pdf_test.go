package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spherical/pdftext/internal/cli"
	"github.com/spherical/pdftext/internal/domain"
	"github.com/spherical/pdftext/internal/pdf"
	"github.com/spherical/pdftext/internal/pdftest"
)

func init() {
	// Load .env file for testing
	_ = godotenv.Load("../../.env")
}

var programs = []cli.Program{
	{Name: "pdf-parser", NewExtractor: func() domain.Extractor { return pdf.NewFitzExtractor() }},
	{Name: "pdf-parser-lite", NewExtractor: func() domain.Extractor { return pdf.NewLiteExtractor() }},
}

type output struct {
	Success  bool             `json:"success"`
	Text     string           `json:"text"`
	Metadata *domain.Metadata `json:"metadata"`
	Error    string           `json:"error"`
	FilePath string           `json:"file_path"`
}

func run(t *testing.T, p cli.Program, path string) (output, int) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var stdout, stderr bytes.Buffer
	code := cli.Run(ctx, p, []string{"--no-cache", path}, &stdout, &stderr)

	var out output
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out), "stdout: %s", stdout.String())
	return out, code
}

// TestEnginesAgree checks both CLIs honour the same contract on one file
func TestEnginesAgree(t *testing.T) {
	pages := pdftest.Pages(6)
	pages[1] = ""
	pages[4] = ""
	path := pdftest.WriteFile(t, "agree.pdf", pdftest.Document{
		Pages: pages,
		Info:  map[string]string{"Title": "Agreement", "Author": "QA"},
	})

	var results []output
	for _, p := range programs {
		out, code := run(t, p, path)
		require.Equal(t, 0, code, p.Name)
		require.True(t, out.Success, p.Name)
		results = append(results, out)
	}

	for _, out := range results {
		assert.Equal(t, 6, out.Metadata.PageCount)
		assert.Equal(t, "Agreement", out.Metadata.Title)
		assert.Equal(t, path, out.FilePath)
		assert.Equal(t, 4, strings.Count(out.Text, "--- Page "))
	}
}

// TestSamplePDF runs both engines over a real-world document when one is
// configured.
func TestSamplePDF(t *testing.T) {
	samplePath := os.Getenv("PDFTEXT_SAMPLE_PDF")
	if samplePath == "" {
		t.Skip("PDFTEXT_SAMPLE_PDF not set")
	}
	if _, err := os.Stat(samplePath); os.IsNotExist(err) {
		t.Skipf("Sample PDF not found at %s", samplePath)
	}

	var pageCounts []int
	for _, p := range programs {
		out, _ := run(t, p, samplePath)
		if !out.Success {
			t.Logf("%s could not read the sample: %s", p.Name, out.Error)
			continue
		}
		t.Logf("%s: %d pages, %d characters", p.Name, out.Metadata.PageCount, len(out.Text))
		pageCounts = append(pageCounts, out.Metadata.PageCount)
	}

	if len(pageCounts) == 2 {
		assert.Equal(t, pageCounts[0], pageCounts[1], "engines disagree on page count")
	}
}
