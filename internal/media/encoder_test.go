package media

import (
	"strings"
	"testing"

	"github.com/angelmondragon/wandermart-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallest valid PNG header plus IHDR chunk start.
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R', 0, 0, 0, 1, 0, 0, 0, 1, 8, 6, 0, 0, 0}

func TestEncodeDataURLSniffsContent(t *testing.T) {
	enc := NewEncoder(config.MediaConfig{MaxUploadMB: 1})

	url, err := enc.EncodeDataURL(pngBytes, "photo.jpg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"), url)

	pdf := []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n")
	url, err = enc.EncodeDataURL(pdf, "licence")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:application/pdf;base64,"), url)
}

func TestEncodeDataURLRejects(t *testing.T) {
	enc := NewEncoder(config.MediaConfig{MaxUploadMB: 1})

	_, err := enc.EncodeDataURL(nil, "x.png")
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	_, err = enc.EncodeDataURL([]byte("hello there"), "notes.txt")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
	assert.Contains(t, err.Error(), "images or PDFs")

	big := make([]byte, (1<<20)+1)
	copy(big, pngBytes)
	_, err = enc.EncodeDataURL(big, "huge.png")
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestEncodeAllStopsOnFailure(t *testing.T) {
	enc := NewEncoder(config.MediaConfig{})
	urls, err := enc.EncodeAll(map[string][]byte{"a.png": pngBytes}, []string{"a.png"})
	require.NoError(t, err)
	assert.Len(t, urls, 1)

	_, err = enc.EncodeAll(map[string][]byte{"a.png": pngBytes}, []string{"a.png", "missing.png"})
	assert.Error(t, err)
}

func TestHumanReadableList(t *testing.T) {
	assert.Equal(t, "", humanReadableList(nil))
	assert.Equal(t, "a", humanReadableList([]string{"a"}))
	assert.Equal(t, "a or b", humanReadableList([]string{"a", "b"}))
	assert.Equal(t, "a, b, or c", humanReadableList([]string{"a", "b", "c"}))
}
