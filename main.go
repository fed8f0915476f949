/*
Vicki is a small scene viewer frontend: it loads a scene, registers its
textures with the renderer exactly once and drives the per-frame loop.
The GPU backend is pluggable; by default a headless client is used.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/vicki/engine"
	"github.com/spaghettifunk/vicki/engine/assets"
	"github.com/spaghettifunk/vicki/engine/math"
	"github.com/spaghettifunk/vicki/engine/renderer"
)

func main() {
	config, err := engine.LoadApplicationConfig("vicki.toml")
	if err != nil {
		panic(err)
	}

	client := renderer.NewHeadlessClient()

	e, err := engine.New(config, client)
	if err != nil {
		panic(err)
	}

	if err := e.Initialize(); err != nil {
		panic(err)
	}

	if err := e.LoadScene(demoScene); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	go func() {
		<-sigCh
		e.RequestClose()
	}()

	if err := e.Run(); err != nil {
		panic(err)
	}

	if err := e.Shutdown(); err != nil {
		panic(err)
	}
}

// demoScene builds a textured quad entirely from placeholder maps, so it
// renders without any asset files on disk. Real scenes come from a parser
// producing the same PackedMesh shape.
func demoScene() (*assets.PackedMesh, error) {
	white := [4]uint8{255, 255, 255, 255}
	flatNormal := [4]uint8{127, 127, 255, 255}
	gray := [4]uint8{127, 127, 127, 255}

	return &assets.PackedMesh{
		Vertices: []math.Vertex3D{
			{Position: math.NewVec3(-1, 0, -1), Normal: math.NewVec3Up(), Texcoord: math.NewVec2(0, 0)},
			{Position: math.NewVec3(1, 0, -1), Normal: math.NewVec3Up(), Texcoord: math.NewVec2(1, 0)},
			{Position: math.NewVec3(1, 0, 1), Normal: math.NewVec3Up(), Texcoord: math.NewVec2(1, 1)},
			{Position: math.NewVec3(-1, 0, 1), Normal: math.NewVec3Up(), Texcoord: math.NewVec2(0, 1)},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
		Maps: []assets.MeshMaterialMap{
			assets.NewPlaceholderMap(white),
			assets.NewPlaceholderMap(flatNormal),
			assets.NewPlaceholderMap(gray),
		},
		Materials: []*assets.PackedMaterial{
			{
				Name:      "default",
				BaseColor: math.Vec4{X: 1, Y: 1, Z: 1, W: 1},
				Roughness: 0.5,
				Maps:      []uint32{0, 1, 2},
			},
		},
		MaterialIDs: []uint32{0, 0},
	}, nil
}
