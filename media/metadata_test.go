package media

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMetadataReadsDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 3, 2))))
	require.NoError(t, f.Close())

	meta, err := ExtractMetadata(path)
	require.NoError(t, err)
	require.NotNil(t, meta.Width)
	assert.Equal(t, 3, *meta.Width)
	require.NotNil(t, meta.Height)
	assert.Equal(t, 2, *meta.Height)
	assert.Nil(t, meta.TakenAt) // PNGs carry no EXIF
}

func TestExtractMetadataMissingFile(t *testing.T) {
	_, err := ExtractMetadata("/does/not/exist.png")
	assert.Error(t, err)
}
