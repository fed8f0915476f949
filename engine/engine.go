package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/spaghettifunk/vicki/engine/assets"
	"github.com/spaghettifunk/vicki/engine/core"
	"github.com/spaghettifunk/vicki/engine/math"
	"github.com/spaghettifunk/vicki/engine/platform"
	"github.com/spaghettifunk/vicki/engine/renderer"
	"github.com/spaghettifunk/vicki/engine/renderer/components"
	"github.com/spaghettifunk/vicki/engine/systems"
)

// EventSource yields the window events queued since the last poll, without
// blocking. The platform window implements it; tests substitute a stub.
type EventSource interface {
	PollEvents() []core.Event
}

// SceneSource produces a packed mesh, typically by parsing a scene file.
// Scene parsing itself lives outside the engine.
type SceneSource func() (*assets.PackedMesh, error)

// Engine owns the startup load pipeline and the frame loop. All mutable
// state is confined to the single control thread that calls Run.
type Engine struct {
	config   *ApplicationConfig
	platform *platform.Platform
	events   EventSource
	client   renderer.RenderClient

	jobSystem    *systems.JobSystem
	assetManager *assets.AssetManager
	lazyCache    *assets.LazyCache
	textureCache *systems.TextureCache
	bindless     *systems.BindlessTable
	sceneSystem  *systems.SceneSystem

	camera    *components.FirstPersonCamera
	clock     *core.Clock
	metrics   *core.Metrics
	windowCfg renderer.WindowConfig

	running        bool
	closeRequested atomic.Bool
	lastErrorText  string
	// errorSink, when set, receives deduplicated prepare-failure text
	// instead of the logger.
	errorSink func(text string)

	keyboard       core.KeyboardState
	mouse          core.MouseState
	newMouse       core.MouseState
	keyTransitions []core.KeyTransition
}

func New(config *ApplicationConfig, client renderer.RenderClient) (*Engine, error) {
	core.LogSetLevel(config.logLevel())

	jobSystem, err := systems.NewJobSystem(4, 16)
	if err != nil {
		return nil, err
	}

	assetManager, err := assets.NewAssetManager(config.AssetBasePath)
	if err != nil {
		return nil, err
	}

	lazyCache := assets.NewLazyCache(jobSystem)
	textureCache := systems.NewTextureCache(lazyCache, assetManager)
	bindless := systems.NewBindlessTable()
	sceneSystem := systems.NewSceneSystem(textureCache, bindless, client)

	p := platform.New()
	aspectRatio := float32(config.StartWidth) / float32(config.StartHeight)

	return &Engine{
		config:       config,
		platform:     p,
		events:       p,
		client:       client,
		jobSystem:    jobSystem,
		assetManager: assetManager,
		lazyCache:    lazyCache,
		textureCache: textureCache,
		bindless:     bindless,
		sceneSystem:  sceneSystem,
		camera:       components.NewFirstPersonCamera(math.NewVec3(0.0, 2.0, 10.0), aspectRatio),
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		windowCfg: renderer.WindowConfig{
			Title:  config.Name,
			Width:  config.StartWidth,
			Height: config.StartHeight,
		},
	}, nil
}

func (e *Engine) Initialize() error {
	if err := e.platform.Startup(e.config.Name, e.config.StartWidth, e.config.StartHeight); err != nil {
		return err
	}
	if err := e.assetManager.Initialize(); err != nil {
		return err
	}
	core.LogInfo("engine initialized: %s %dx%d", e.config.Name, e.config.StartWidth, e.config.StartHeight)
	return nil
}

// LoadScene resolves a scene mesh through the texture cache and submits it
// to the renderer. Must be called before Run; a failure here aborts
// startup, since the scene cannot render without its mesh.
func (e *Engine) LoadScene(source SceneSource) error {
	mesh, err := source()
	if err != nil {
		return fmt.Errorf("failed to load scene: %w", err)
	}
	return e.sceneSystem.AddMesh(mesh)
}

// RequestClose asks the frame loop to stop after its current iteration.
// Safe to call from any goroutine.
func (e *Engine) RequestClose() {
	e.closeRequested.Store(true)
}

// Run drives the frame loop until a close request arrives. Each iteration
// drains input, advances the camera and submits one frame; prepare
// failures are retried every frame and surfaced once per distinct message.
func (e *Engine) Run() error {
	e.running = true
	e.clock.Start()

	for e.running {
		e.pumpEvents()
		if e.closeRequested.Load() {
			e.running = false
		}

		e.clock.Tick()
		delta := e.clock.Delta()

		e.keyboard.Update(e.keyTransitions)
		e.keyTransitions = e.keyTransitions[:0]

		// Fold the freshly polled snapshot into the persistent mouse
		// state, then carry the merged state forward so button edges
		// survive polling gaps.
		e.mouse.Fold(&e.newMouse)
		e.newMouse = e.mouse

		input := core.InputState{
			Mouse: e.mouse,
			Keys:  e.keyboard,
			Delta: delta,
		}

		e.camera.Update(&input)

		frame := &renderer.FrameState{
			CameraMatrices: e.camera.CalcMatrices(),
			WindowCfg:      e.windowCfg,
			Input:          input,
		}

		if err := e.client.PrepareFrame(frame); err != nil {
			e.reportPrepareError(err)
		} else {
			e.client.DrawFrame(frame)
			e.lastErrorText = ""
		}

		e.metrics.Update(delta)
	}

	core.LogInfo("frame loop stopped after %d ms avg frame time", int(e.metrics.FrameTime()))
	return nil
}

func (e *Engine) pumpEvents() {
	for _, event := range e.events.PollEvents() {
		switch event.Type {
		case core.EVENT_CODE_CLOSE_REQUESTED:
			// Latch only; the current iteration still completes.
			e.closeRequested.Store(true)
		case core.EVENT_CODE_KEY_PRESSED, core.EVENT_CODE_KEY_RELEASED:
			ke, ok := event.Data.(*core.KeyEvent)
			if !ok {
				core.LogError("wrong event payload for event type `%d`", event.Type)
				continue
			}
			e.keyTransitions = append(e.keyTransitions, core.KeyTransition{
				KeyCode: ke.KeyCode,
				Pressed: event.Type == core.EVENT_CODE_KEY_PRESSED,
			})
		case core.EVENT_CODE_MOUSE_MOVED:
			me, ok := event.Data.(*core.MouseEvent)
			if !ok {
				core.LogError("wrong event payload for event type `%d`", event.Type)
				continue
			}
			e.newMouse.PosX = me.PosX
			e.newMouse.PosY = me.PosY
		case core.EVENT_CODE_BUTTON_PRESSED, core.EVENT_CODE_BUTTON_RELEASED:
			me, ok := event.Data.(*core.MouseEvent)
			if !ok {
				core.LogError("wrong event payload for event type `%d`", event.Type)
				continue
			}
			e.newMouse.SetButton(me.Button, event.Type == core.EVENT_CODE_BUTTON_PRESSED)
		}
	}
}

// reportPrepareError surfaces a frame preparation failure, suppressing
// repeats of the same message across consecutive failing frames. The loop
// keeps running; prepare failures are transient by assumption.
func (e *Engine) reportPrepareError(err error) {
	text := err.Error()
	if text == e.lastErrorText {
		return
	}
	e.lastErrorText = text
	if e.errorSink != nil {
		e.errorSink(text)
		return
	}
	core.LogError("frame prepare failed: %s", text)
}

func (e *Engine) Shutdown() error {
	if err := e.jobSystem.Shutdown(); err != nil {
		return err
	}
	if err := e.assetManager.Shutdown(); err != nil {
		return err
	}
	if err := e.platform.Shutdown(); err != nil {
		return err
	}
	return nil
}
