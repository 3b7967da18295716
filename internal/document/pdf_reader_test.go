package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExtractTextMissingFile(t *testing.T) {
	reader := NewPDFReader(zap.NewNop())

	_, err := reader.ExtractText(filepath.Join(t.TempDir(), "absent.pdf"))
	assert.ErrorContains(t, err, "not found")
}

func TestExtractTextUnsupportedType(t *testing.T) {
	reader := NewPDFReader(zap.NewNop())

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))

	_, err := reader.ExtractText(path)
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestExtractTextFromBytesInvalid(t *testing.T) {
	reader := NewPDFReader(zap.NewNop())

	_, err := reader.ExtractTextFromBytes([]byte("not a pdf"))
	assert.Error(t, err)
}
