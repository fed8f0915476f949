package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestLoadImageDecodesToRGBA8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "red.png")
	writeTestPNG(t, path, 2, 3, color.NRGBA{R: 255, A: 255})

	value, err := LoadImage{Path: path}.Run()
	require.NoError(t, err)

	img := value.(*RawImage)
	assert.Equal(t, uint32(2), img.Width)
	assert.Equal(t, uint32(3), img.Height)
	require.Len(t, img.Pixels, 2*3*4)
	assert.Equal(t, []uint8{255, 0, 0, 255}, img.Pixels[:4])
}

func TestLoadImageMissingFile(t *testing.T) {
	_, err := LoadImage{Path: filepath.Join(t.TempDir(), "nope.png")}.Run()
	assert.Error(t, err)
}

func TestNewRawImageFromColor(t *testing.T) {
	img := NewRawImageFromColor([4]uint8{1, 2, 3, 4})
	assert.Equal(t, uint32(1), img.Width)
	assert.Equal(t, uint32(1), img.Height)
	assert.Equal(t, []uint8{1, 2, 3, 4}, img.Pixels)
}

func TestLoadImageCacheKeyIsExactPath(t *testing.T) {
	a := LoadImage{Path: "assets/a.png"}
	b := LoadImage{Path: "assets/./a.png"}
	// No normalization: distinct spellings are distinct keys.
	assert.NotEqual(t, a.CacheKey(), b.CacheKey())
}
