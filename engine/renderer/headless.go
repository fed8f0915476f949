package renderer

import (
	"github.com/spaghettifunk/vicki/engine/assets"
	"github.com/spaghettifunk/vicki/engine/core"
)

// HeadlessClient is a render client without a GPU behind it. It issues
// sequential bindless handles, retains submissions and draws nothing.
// Useful for running the frontend on machines without a backend and as a
// stand-in in tests.
type HeadlessClient struct {
	nextHandle BindlessHandle
	images     []*assets.RawImage
	meshes     []*assets.PackedMesh
	frames     uint64
}

func NewHeadlessClient() *HeadlessClient {
	return &HeadlessClient{}
}

func (hc *HeadlessClient) AddImage(image *assets.RawImage) BindlessHandle {
	handle := hc.nextHandle
	hc.nextHandle++
	hc.images = append(hc.images, image)
	core.LogDebug("registered image %dx%d as bindless handle %d", image.Width, image.Height, handle)
	return handle
}

func (hc *HeadlessClient) AddMesh(mesh *assets.PackedMesh) {
	hc.meshes = append(hc.meshes, mesh)
	core.LogInfo("ingested mesh '%s': %d vertices, %d materials, %d maps",
		mesh.UniqueID, len(mesh.Vertices), len(mesh.Materials), len(mesh.Maps))
}

func (hc *HeadlessClient) PrepareFrame(frame *FrameState) error {
	return nil
}

func (hc *HeadlessClient) DrawFrame(frame *FrameState) {
	hc.frames++
}

// Frames returns how many frames have been drawn.
func (hc *HeadlessClient) Frames() uint64 {
	return hc.frames
}
