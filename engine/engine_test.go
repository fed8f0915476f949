package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vicki/engine/assets"
	"github.com/spaghettifunk/vicki/engine/core"
	"github.com/spaghettifunk/vicki/engine/math"
	"github.com/spaghettifunk/vicki/engine/renderer"
	"github.com/spaghettifunk/vicki/engine/renderer/components"
)

// scriptedEvents plays back one slice of events per frame, then reports a
// close request so Run terminates.
type scriptedEvents struct {
	frames [][]core.Event
	next   int
}

func (s *scriptedEvents) PollEvents() []core.Event {
	if s.next >= len(s.frames) {
		return []core.Event{{Type: core.EVENT_CODE_CLOSE_REQUESTED}}
	}
	events := s.frames[s.next]
	s.next++
	return events
}

// scriptedClient fails PrepareFrame according to a per-frame script and
// records every submitted frame.
type scriptedClient struct {
	prepareErrs []error
	prepares    int
	draws       int
	frames      []*renderer.FrameState
}

func (c *scriptedClient) AddImage(image *assets.RawImage) renderer.BindlessHandle {
	return 0
}

func (c *scriptedClient) AddMesh(mesh *assets.PackedMesh) {}

func (c *scriptedClient) PrepareFrame(frame *renderer.FrameState) error {
	c.frames = append(c.frames, frame)
	var err error
	if c.prepares < len(c.prepareErrs) {
		err = c.prepareErrs[c.prepares]
	}
	c.prepares++
	return err
}

func (c *scriptedClient) DrawFrame(frame *renderer.FrameState) {
	c.draws++
}

func newTestEngine(events EventSource, client renderer.RenderClient, emitted *[]string) *Engine {
	return &Engine{
		events:  events,
		client:  client,
		camera:  components.NewFirstPersonCamera(math.NewVec3(0, 2, 10), 16.0/9.0),
		clock:   core.NewClock(),
		metrics: core.NewMetrics(),
		windowCfg: renderer.WindowConfig{
			Title:  "test",
			Width:  1280,
			Height: 720,
		},
		errorSink: func(text string) {
			*emitted = append(*emitted, text)
		},
	}
}

func TestRunStopsOnCloseRequest(t *testing.T) {
	client := &scriptedClient{}
	events := &scriptedEvents{frames: [][]core.Event{{}}}
	var emitted []string
	e := newTestEngine(events, client, &emitted)

	require.NoError(t, e.Run())

	// The close request latches during the second poll but that
	// iteration still completes.
	assert.Equal(t, 2, client.prepares)
	assert.Equal(t, 2, client.draws)
	assert.Empty(t, emitted)
}

func TestPrepareErrorsAreDeduplicated(t *testing.T) {
	busy := errors.New("gpu busy")
	oom := errors.New("out of device memory")
	client := &scriptedClient{
		prepareErrs: []error{busy, busy, busy, busy, busy, oom},
	}
	// Six failing frames, then the close frame succeeds.
	events := &scriptedEvents{frames: make([][]core.Event, 6)}
	var emitted []string
	e := newTestEngine(events, client, &emitted)

	require.NoError(t, e.Run())

	assert.Equal(t, 7, client.prepares)
	assert.Equal(t, []string{"gpu busy", "out of device memory"}, emitted)
	// Only the final, succeeding frame drew.
	assert.Equal(t, 1, client.draws)
}

func TestPrepareErrorLatchClearsOnRecovery(t *testing.T) {
	busy := errors.New("gpu busy")
	client := &scriptedClient{
		prepareErrs: []error{busy, nil, busy},
	}
	events := &scriptedEvents{frames: make([][]core.Event, 3)}
	var emitted []string
	e := newTestEngine(events, client, &emitted)

	require.NoError(t, e.Run())

	// The successful frame in between cleared the latch, so the same
	// message is emitted twice.
	assert.Equal(t, []string{"gpu busy", "gpu busy"}, emitted)
	assert.Equal(t, 2, client.draws)
}

func TestMouseButtonStateCarriesAcrossFrames(t *testing.T) {
	client := &scriptedClient{}
	events := &scriptedEvents{frames: [][]core.Event{
		{
			{Type: core.EVENT_CODE_MOUSE_MOVED, Data: &core.MouseEvent{PosX: 100, PosY: 50}},
			{Type: core.EVENT_CODE_BUTTON_PRESSED, Data: &core.MouseEvent{Button: core.BUTTON_LEFT}},
		},
		{}, // no events this frame
	}}
	var emitted []string
	e := newTestEngine(events, client, &emitted)

	require.NoError(t, e.Run())
	require.GreaterOrEqual(t, len(client.frames), 2)

	first := client.frames[0].Input.Mouse
	assert.Equal(t, float32(100), first.PosX)
	assert.Equal(t, float32(100), first.DeltaX)
	assert.True(t, first.IsButtonDown(core.BUTTON_LEFT))

	// The press survives the quiet frame; the delta settles to zero.
	second := client.frames[1].Input.Mouse
	assert.True(t, second.IsButtonDown(core.BUTTON_LEFT))
	assert.Equal(t, float32(0), second.DeltaX)
	assert.Equal(t, float32(100), second.PosX)
}

func TestKeyEdgesAreObservablePerFrame(t *testing.T) {
	client := &scriptedClient{}
	events := &scriptedEvents{frames: [][]core.Event{
		{{Type: core.EVENT_CODE_KEY_PRESSED, Data: &core.KeyEvent{KeyCode: core.KEY_W}}},
		{},
		{{Type: core.EVENT_CODE_KEY_RELEASED, Data: &core.KeyEvent{KeyCode: core.KEY_W}}},
	}}
	var emitted []string
	e := newTestEngine(events, client, &emitted)

	require.NoError(t, e.Run())
	require.GreaterOrEqual(t, len(client.frames), 3)

	assert.True(t, client.frames[0].Input.Keys.IsKeyPressed(core.KEY_W))
	assert.True(t, client.frames[1].Input.Keys.IsKeyDown(core.KEY_W))
	assert.False(t, client.frames[1].Input.Keys.IsKeyPressed(core.KEY_W))
	assert.True(t, client.frames[2].Input.Keys.IsKeyReleased(core.KEY_W))
}
