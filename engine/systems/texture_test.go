package systems

import (
	"image"
	"image/color"
	"image/png"
	stdmath "math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vicki/engine/assets"
)

type syncExecutor struct{}

func (syncExecutor) Go(task func()) {
	task()
}

func newTestTextureCache() *TextureCache {
	return NewTextureCache(assets.NewLazyCache(syncExecutor{}), nil)
}

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestTextureCacheDedupsAssetPaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diffuse.png")
	writeTestPNG(t, path)

	tc := newTestTextureCache()
	m := assets.NewAssetMap(path)

	first, err := tc.Load(m)
	require.NoError(t, err)
	assert.False(t, first.Hit)
	assert.Equal(t, uint64(0), first.ID)
	require.NotNil(t, first.Image)

	for i := 0; i < 3; i++ {
		again, err := tc.Load(m)
		require.NoError(t, err)
		assert.True(t, again.Hit)
		assert.Equal(t, first.ID, again.ID)
		assert.Nil(t, again.Image)
	}
}

func TestTextureCacheIDsAreMonotonic(t *testing.T) {
	dir := t.TempDir()
	tc := newTestTextureCache()

	var ids []uint64
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		path := filepath.Join(dir, name)
		writeTestPNG(t, path)
		response, err := tc.Load(assets.NewAssetMap(path))
		require.NoError(t, err)
		ids = append(ids, response.ID)
	}

	assert.Equal(t, []uint64{0, 1, 2}, ids)
}

func TestTextureCachePlaceholderDedup(t *testing.T) {
	tc := newTestTextureCache()
	red := assets.NewPlaceholderMap([4]uint8{255, 0, 0, 255})

	first, err := tc.Load(red)
	require.NoError(t, err)
	assert.False(t, first.Hit)
	require.NotNil(t, first.Image)
	assert.Equal(t, uint32(1), first.Image.Width)
	assert.Equal(t, []uint8{255, 0, 0, 255}, first.Image.Pixels)

	again, err := tc.Load(red)
	require.NoError(t, err)
	assert.True(t, again.Hit)
	assert.Equal(t, first.ID, again.ID)
}

func TestTextureCachePlaceholderAndAssetNeverCollide(t *testing.T) {
	path := filepath.Join(t.TempDir(), "red.png")
	writeTestPNG(t, path)

	tc := newTestTextureCache()

	asset, err := tc.Load(assets.NewAssetMap(path))
	require.NoError(t, err)
	placeholder, err := tc.Load(assets.NewPlaceholderMap([4]uint8{255, 0, 0, 255}))
	require.NoError(t, err)

	assert.NotEqual(t, asset.ID, placeholder.ID)
	assert.False(t, placeholder.Hit)
}

func TestTextureCacheDoesNotCacheFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "late.png")
	tc := newTestTextureCache()
	m := assets.NewAssetMap(path)

	_, err := tc.Load(m)
	require.Error(t, err)

	// The file shows up later; an identical request retries the load.
	writeTestPNG(t, path)
	response, err := tc.Load(m)
	require.NoError(t, err)
	assert.False(t, response.Hit)
	assert.Equal(t, uint64(0), response.ID)
}

func TestTextureCacheIDExhaustionPanics(t *testing.T) {
	tc := newTestTextureCache()
	tc.nextID = stdmath.MaxUint64

	assert.PanicsWithValue(t, ErrImageIDSpaceExhausted, func() {
		tc.Load(assets.NewPlaceholderMap([4]uint8{1, 2, 3, 4}))
	})
}
