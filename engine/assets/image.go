package assets

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	// Decoders registered for image.Decode.
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// RawImage is a decoded RGBA8 pixel buffer. Ownership passes to whoever
// registers it with the renderer; the GPU-resident copy lives there.
type RawImage struct {
	Pixels []uint8
	Width  uint32
	Height uint32
}

// NewRawImageFromColor builds the 1x1 placeholder image for a constant color.
func NewRawImageFromColor(color [4]uint8) *RawImage {
	pixels := make([]uint8, 4)
	copy(pixels, color[:])
	return &RawImage{
		Pixels: pixels,
		Width:  1,
		Height: 1,
	}
}

// LoadImage is the lazy request that decodes a texture asset from disk.
// The path must be fully resolved; equality of requests is exact path
// equality.
type LoadImage struct {
	Path string
}

func (li LoadImage) CacheKey() string {
	return "image:" + li.Path
}

func (li LoadImage) Run() (interface{}, error) {
	f, err := os.Open(li.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image '%s': %w", li.Path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image '%s': %w", li.Path, err)
	}

	bounds := src.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, src, bounds.Min, draw.Src)

	return &RawImage{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}, nil
}
