package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"learnhub-backend/internal/shared/telemetry"
)

const (
	mimePDF   = "application/pdf"
	mimeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimePlain = "text/plain"

	// Primary PDF extraction output shorter than this is treated as unusable
	// and triggers the fallback scraper.
	minUsableChars = 10
)

// ErrUnsupportedType is returned for MIME types outside PDF/DOCX/plain text.
var ErrUnsupportedType = errors.New("unsupported media type")

// ErrExtractionFailed is returned when no usable text could be recovered.
var ErrExtractionFailed = errors.New("extraction failed")

// Text converts an uploaded payload into plain text.
// Libraries used: github.com/ledongthuc/pdf (PDF) and
// github.com/nguyenthenguyen/docx (DOCX).
func Text(data []byte, mimeType string, fileName string) (string, error) {
	normalized := normalizeMimeType(mimeType, fileName, data)
	switch normalized {
	case mimePDF:
		return extractPDF(data)
	case mimeDOCX:
		return extractDOCX(data)
	case mimePlain:
		// Invalid byte sequences are substituted, never raised.
		return strings.ToValidUTF8(string(data), "�"), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, normalized)
	}
}

func extractPDF(data []byte) (string, error) {
	text, err := extractPDFPrimary(data)
	if err == nil && usable(text) {
		return text, nil
	}

	// Primary extraction failed or produced noise; scrape the raw byte
	// structure for text streams and literal strings.
	if err != nil {
		telemetry.Warn("extract.pdf.fallback", map[string]any{"error": err.Error()})
	}
	scraped := scrapePDF(data)
	if usable(scraped) {
		return scraped, nil
	}

	if err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrExtractionFailed, err)
	}
	return "", fmt.Errorf("%w: pdf: no usable text", ErrExtractionFailed)
}

func extractPDFPrimary(data []byte) (_ string, err error) {
	// The structural parser panics on some malformed files; a panic here
	// must still reach the fallback scraper.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf parser panic: %v", rec)
		}
	}()

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: docx: empty payload", ErrExtractionFailed)
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: docx: %v", ErrExtractionFailed, err)
	}
	defer doc.Close()

	text := stripXMLTags(doc.Editable().GetContent())
	if !usable(text) {
		return "", fmt.Errorf("%w: docx: no usable text", ErrExtractionFailed)
	}
	return text, nil
}

func usable(text string) bool {
	return len(strings.TrimSpace(text)) >= minUsableChars
}

// stripXMLTags drops markup from WordprocessingML content, inserting line
// breaks at paragraph boundaries.
func stripXMLTags(raw string) string {
	var b strings.Builder
	inTag := false
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		switch {
		case ch == '<':
			inTag = true
			if strings.HasPrefix(raw[i:], "</w:p>") {
				b.WriteByte('\n')
			}
		case ch == '>':
			inTag = false
		case !inTag:
			b.WriteByte(ch)
		}
	}
	return strings.TrimSpace(b.String())
}

func normalizeMimeType(mimeType string, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch clean {
	case "", "application/octet-stream", "application/zip":
		// Fall through to extension sniffing for permissive callers.
	default:
		return clean
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return mimePDF
	case ".docx":
		return mimeDOCX
	case ".txt":
		return mimePlain
	}

	if bytes.HasPrefix(data, []byte("%PDF")) {
		return mimePDF
	}
	return clean
}
