package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMimeType(t *testing.T) {
	pdf := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("x"), 600)...)
	mimeType, err := ValidateMimeType(bytes.NewReader(pdf), AllowedUploadMimeTypes)
	require.NoError(t, err)
	assert.Equal(t, MimePDF, mimeType)
}

func TestValidateMimeTypeRejected(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 600)...)
	mimeType, err := ValidateMimeType(bytes.NewReader(png), []string{MimePDF, MimeText})
	assert.Error(t, err)
	assert.Equal(t, "image/png", mimeType)
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey(42, "Final Exam 2024.PDF")
	assert.True(t, strings.HasPrefix(key, "uploads/42/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	// Keys carry a random component so repeated uploads never collide.
	assert.NotEqual(t, key, ObjectKey(42, "Final Exam 2024.PDF"))
}
