package systems

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/vicki/engine/assets"
	"github.com/spaghettifunk/vicki/engine/core"
	"github.com/spaghettifunk/vicki/engine/renderer"
)

// fallbackColor marks maps whose asset failed to load: loud magenta.
var fallbackColor = [4]uint8{255, 0, 255, 255}

// SceneSystem drives the startup load pipeline: resolve every material map
// of a mesh through the texture cache, register misses with the renderer,
// rewrite the mesh's material slots to bindless handles and hand the mesh
// over for ingestion.
type SceneSystem struct {
	textures *TextureCache
	bindless *BindlessTable
	client   renderer.RenderClient
}

func NewSceneSystem(textures *TextureCache, bindless *BindlessTable, client renderer.RenderClient) *SceneSystem {
	return &SceneSystem{
		textures: textures,
		bindless: bindless,
		client:   client,
	}
}

// AddMesh resolves the mesh's maps, rewrites its materials in place and
// submits it to the renderer. A map whose asset fails to load is replaced
// by a magenta placeholder rather than aborting the whole scene; the
// failure is logged. Called once per mesh, before the frame loop starts.
func (ss *SceneSystem) AddMesh(mesh *assets.PackedMesh) error {
	handles := make([]renderer.BindlessHandle, len(mesh.Maps))
	for i, m := range mesh.Maps {
		handle, err := ss.resolveMap(m)
		if err != nil {
			core.LogError("map %d of mesh: %s; substituting placeholder", i, err)
			handle, err = ss.resolveMap(assets.NewPlaceholderMap(fallbackColor))
			if err != nil {
				// Placeholder resolution never touches I/O.
				return fmt.Errorf("failed to substitute placeholder: %w", err)
			}
		}
		handles[i] = handle
	}

	RewriteMaterialMaps(mesh, handles)

	mesh.UniqueID = uuid.NewString()
	ss.client.AddMesh(mesh)
	return nil
}

// resolveMap returns the bindless handle for one material map, registering
// the image with the renderer on first encounter. The ordering invariant
// lives here: a Miss registers before returning, so any later Hit for the
// same key finds its handle in the table.
func (ss *SceneSystem) resolveMap(m assets.MeshMaterialMap) (renderer.BindlessHandle, error) {
	response, err := ss.textures.Load(m)
	if err != nil {
		return 0, err
	}
	if response.Hit {
		return ss.bindless.Resolve(response.ID), nil
	}

	handle := ss.client.AddImage(response.Image)
	ss.bindless.Register(response.ID, handle)
	return handle, nil
}

// RewriteMaterialMaps replaces every material map slot's scene-local index
// with the resolved bindless handle, in place. handles must be parallel to
// mesh.Maps and every slot index in bounds; violating either is a
// precondition failure and panics. Runs exactly once per mesh.
func RewriteMaterialMaps(mesh *assets.PackedMesh, handles []renderer.BindlessHandle) {
	if len(handles) != len(mesh.Maps) {
		panic(fmt.Sprintf("resolved handle count %d does not match mesh map count %d",
			len(handles), len(mesh.Maps)))
	}
	for _, material := range mesh.Materials {
		for i, slot := range material.Maps {
			if slot >= uint32(len(handles)) {
				panic(fmt.Sprintf("material '%s' references map %d, mesh has %d maps",
					material.Name, slot, len(handles)))
			}
			material.Maps[i] = uint32(handles[slot])
		}
	}
}
