// Package document extracts text from files attached to a legal query.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type (only PDF and TXT allowed)")
	ErrTooLarge        = errors.New("file too large")
)

const (
	TypeText = "text/plain"
	TypePDF  = "application/pdf"
)

// DetectType resolves the content type of an upload, falling back to the
// file extension when the client sent none.
func DetectType(filename, contentType string) (string, error) {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	contentType = strings.TrimSpace(strings.ToLower(contentType))
	if contentType == "" || contentType == "application/octet-stream" {
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".txt":
			contentType = TypeText
		case ".pdf":
			contentType = TypePDF
		}
	}
	switch contentType {
	case TypeText, TypePDF:
		return contentType, nil
	default:
		return "", ErrUnsupportedType
	}
}

// Extract returns the text of content. PDFs that fail to parse fall back to
// their raw bytes when those are valid UTF-8.
func Extract(contentType string, content []byte) (string, error) {
	switch contentType {
	case TypePDF:
		text, err := extractPDF(content)
		if err == nil {
			return text, nil
		}
		if utf8.Valid(content) {
			return string(content), nil
		}
		return "", fmt.Errorf("pdf extraction failed: %w", err)
	case TypeText:
		if !utf8.Valid(content) {
			return "", fmt.Errorf("text file is not valid UTF-8")
		}
		return string(content), nil
	default:
		return "", ErrUnsupportedType
	}
}

func extractPDF(content []byte) (string, error) {
	reader := bytes.NewReader(content)
	pdfReader, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return "", err
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()

	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() || page.V.Key("Contents").Kind() == pdf.Null {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to extract
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

// Excerpt keeps the first maxWords whitespace-delimited words of text so a
// long attachment still fits the model's context. Words stand in for tokens.
// truncated reports whether anything was cut.
func Excerpt(text string, maxWords int) (excerpt string, truncated bool) {
	if maxWords <= 0 {
		return text, false
	}
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text, false
	}
	return strings.Join(words[:maxWords], " "), true
}
