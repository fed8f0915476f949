package assets

import (
	"github.com/spaghettifunk/vicki/engine/math"
)

// MapKind discriminates the two sources a material map slot can reference.
type MapKind uint8

const (
	// MapKindAsset is a texture loaded from disk.
	MapKindAsset MapKind = iota
	// MapKindPlaceholder is a synthetic 1x1 texture built from a constant color.
	MapKindPlaceholder
)

// MeshMaterialMap identifies the image behind one entry of a mesh's map
// list: either an asset path or a 4-byte RGBA placeholder constant. Two
// maps are the same resource iff kind and payload match exactly; paths are
// not normalized.
type MeshMaterialMap struct {
	Kind  MapKind
	Path  string
	Color [4]uint8
}

func NewAssetMap(path string) MeshMaterialMap {
	return MeshMaterialMap{Kind: MapKindAsset, Path: path}
}

func NewPlaceholderMap(color [4]uint8) MeshMaterialMap {
	return MeshMaterialMap{Kind: MapKindPlaceholder, Color: color}
}

// PackedMaterial is one material of a packed mesh. Each entry of Maps is a
// scene-local index into the mesh's own map list until the scene system
// rewrites it in place to the renderer's bindless handle. The rewrite
// happens exactly once, during the load pipeline; afterwards the material
// is treated as immutable.
type PackedMaterial struct {
	Name      string
	BaseColor math.Vec4
	Roughness float32
	Metalness float32
	Maps      []uint32
}

// PackedMesh is a triangle mesh flattened for renderer ingestion.
type PackedMesh struct {
	// UniqueID is assigned by the scene system when the mesh is
	// submitted to the renderer.
	UniqueID  string
	Vertices  []math.Vertex3D
	Indices   []uint32
	Maps      []MeshMaterialMap
	Materials []*PackedMaterial
	// MaterialIDs holds one material index per triangle.
	MaterialIDs []uint32
}
