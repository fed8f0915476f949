package renderer

import (
	"github.com/spaghettifunk/vicki/engine/assets"
	"github.com/spaghettifunk/vicki/engine/core"
	"github.com/spaghettifunk/vicki/engine/renderer/components"
)

// BindlessHandle is the renderer-issued token that lets any shader
// reference a registered image by id rather than a bound slot. Opaque to
// everything but the render client that issued it.
type BindlessHandle uint32

// WindowConfig is the fixed window configuration supplied once at startup.
type WindowConfig struct {
	Title  string
	Width  uint32
	Height uint32
}

// FrameState is everything the render client needs to prepare and draw
// one frame.
type FrameState struct {
	CameraMatrices components.CameraMatrices
	WindowCfg      WindowConfig
	Input          core.InputState
}

// RenderClient is the GPU-facing boundary. Image and mesh registration
// happen once during the startup load pipeline; PrepareFrame/DrawFrame run
// every frame. PrepareFrame failures are transient: the frame loop retries
// on the next iteration, and DrawFrame is only invoked after a successful
// prepare.
type RenderClient interface {
	AddImage(image *assets.RawImage) BindlessHandle
	AddMesh(mesh *assets.PackedMesh)
	PrepareFrame(frame *FrameState) error
	DrawFrame(frame *FrameState)
}
