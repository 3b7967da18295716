// Package document handles uploaded file ingestion: text extraction
// from PDFs ahead of AI metadata extraction.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// PDFReader extracts text from uploaded PDF documents using mupdf.
type PDFReader struct {
	logger *zap.Logger
}

// NewPDFReader creates a new PDF reader
func NewPDFReader(logger *zap.Logger) *PDFReader {
	return &PDFReader{logger: logger}
}

// ExtractText pulls the text of every page, concatenated in order.
// Pages that fail to render are skipped rather than failing the whole
// document.
func (r *PDFReader) ExtractText(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf("document file not found: %s", path)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".pdf" {
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}

	doc, err := fitz.New(path)
	if err != nil {
		r.logger.Error("Failed to open PDF", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var b strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		text, err := doc.Text(page)
		if err != nil {
			r.logger.Warn("Failed to extract page text",
				zap.String("path", path),
				zap.Int("page", page),
				zap.Error(err))
			continue
		}
		b.WriteString(text)
	}

	r.logger.Info("Extracted PDF text",
		zap.String("path", path),
		zap.Int("pages", doc.NumPage()),
		zap.Int("chars", b.Len()))
	return b.String(), nil
}

// ExtractTextFromBytes extracts text from an in-memory PDF, as
// received from a multipart upload.
func (r *PDFReader) ExtractTextFromBytes(content []byte) (string, error) {
	doc, err := fitz.NewFromMemory(content)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var b strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		text, err := doc.Text(page)
		if err != nil {
			r.logger.Warn("Failed to extract page text", zap.Int("page", page), zap.Error(err))
			continue
		}
		b.WriteString(text)
	}
	return b.String(), nil
}
