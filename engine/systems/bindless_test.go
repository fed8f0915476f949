package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/vicki/engine/renderer"
)

func TestBindlessTableRegisterResolve(t *testing.T) {
	bt := NewBindlessTable()

	bt.Register(0, renderer.BindlessHandle(7))
	bt.Register(1, renderer.BindlessHandle(9))

	assert.Equal(t, renderer.BindlessHandle(7), bt.Resolve(0))
	assert.Equal(t, renderer.BindlessHandle(9), bt.Resolve(1))
	assert.Equal(t, 2, bt.Len())
}

func TestBindlessTableDoubleRegisterPanics(t *testing.T) {
	bt := NewBindlessTable()
	bt.Register(0, renderer.BindlessHandle(7))

	assert.Panics(t, func() {
		bt.Register(0, renderer.BindlessHandle(8))
	})
}

func TestBindlessTableResolveUnregisteredPanics(t *testing.T) {
	bt := NewBindlessTable()

	assert.Panics(t, func() {
		bt.Resolve(42)
	})
}
