package systems

import (
	"fmt"

	"github.com/spaghettifunk/vicki/engine/renderer"
)

// BindlessTable maps a texture cache logical id to the renderer's bindless
// handle. Entries are write-once: an id is registered exactly once, on the
// cache miss that first produced it, and resolved on every later hit. The
// texture cache guarantees the miss always precedes all hits for a key, so
// a failed lookup here is a programming error, not a runtime condition.
type BindlessTable struct {
	handles map[uint64]renderer.BindlessHandle
}

func NewBindlessTable() *BindlessTable {
	return &BindlessTable{
		handles: make(map[uint64]renderer.BindlessHandle),
	}
}

// Register records the handle for an id. Registering an id twice panics.
func (bt *BindlessTable) Register(id uint64, handle renderer.BindlessHandle) {
	if existing, ok := bt.handles[id]; ok {
		panic(fmt.Sprintf("image id %d already registered as bindless handle %d", id, existing))
	}
	bt.handles[id] = handle
}

// Resolve returns the handle for a previously registered id. Resolving an
// unregistered id panics.
func (bt *BindlessTable) Resolve(id uint64) renderer.BindlessHandle {
	handle, ok := bt.handles[id]
	if !ok {
		panic(fmt.Sprintf("image id %d has no bindless handle; miss must precede hits", id))
	}
	return handle
}

// Len returns the number of registered handles.
func (bt *BindlessTable) Len() int {
	return len(bt.handles)
}
