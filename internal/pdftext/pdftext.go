// Package pdftext extracts plain text from uploaded PDF documents.
package pdftext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxUploadBytes caps accepted PDF uploads at 10 MB.
const MaxUploadBytes = 10 << 20

// Extract returns the concatenated plain text of every page in the document.
// The underlying reader panics on some malformed documents, so parse failures
// surface as errors either way.
func Extract(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	if len(data) == 0 {
		return "", fmt.Errorf("empty document")
	}
	if len(data) > MaxUploadBytes {
		return "", fmt.Errorf("document exceeds %d bytes", MaxUploadBytes)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to decode rather than losing the
			// rest of the document.
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	result := strings.TrimSpace(sb.String())
	if result == "" {
		return "", fmt.Errorf("no extractable text in document")
	}
	return result, nil
}
