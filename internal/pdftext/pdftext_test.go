package pdftext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_RejectsEmptyDocument(t *testing.T) {
	_, err := Extract(nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestExtract_RejectsOversizedDocument(t *testing.T) {
	_, err := Extract(make([]byte, MaxUploadBytes+1))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestExtract_MalformedDocumentReturnsError(t *testing.T) {
	// Documents with a valid header but garbage structure must come back as
	// a parse error, never a panic.
	malformed := [][]byte{
		[]byte("not a pdf at all"),
		[]byte("%PDF-1.4\n" + strings.Repeat("\x00\xff garbage ", 64)),
		[]byte("%PDF-1.7\n1 0 obj\n<< /Type /Catalog >>\ntrailer\n<< /Root 1 0 R\nstartxref\n99999\n%%EOF"),
	}

	for _, data := range malformed {
		text, err := Extract(data)
		assert.Error(t, err)
		assert.Empty(t, text)
	}
}
