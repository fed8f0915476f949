package platform

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/vicki/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Platform owns the application window and translates glfw callbacks into
// core events. Events accumulate in an internal queue until the frame loop
// drains them with PollEvents.
type Platform struct {
	Window  *glfw.Window
	pending []core.Event
}

func New() *Platform {
	return &Platform{}
}

func (p *Platform) Startup(applicationName string, width uint32, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		return err
	}
	p.Window = window

	p.Window.SetCloseCallback(p.closeCallback)
	p.Window.SetKeyCallback(p.keyCallback)
	p.Window.SetMouseButtonCallback(p.mouseButtonCallback)
	p.Window.SetCursorPosCallback(p.cursorPosCallback)
	p.Window.Show()

	return nil
}

func (p *Platform) Shutdown() error {
	glfw.Terminate()
	return nil
}

// PollEvents pumps the window system without blocking and returns every
// event queued since the previous call. The queue is cleared.
func (p *Platform) PollEvents() []core.Event {
	glfw.PollEvents()
	events := p.pending
	p.pending = nil
	return events
}

func (p *Platform) closeCallback(w *glfw.Window) {
	p.pending = append(p.pending, core.Event{
		Type: core.EVENT_CODE_CLOSE_REQUESTED,
	})
}

func (p *Platform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	keyCode, ok := keyCodes[key]
	if !ok {
		return
	}
	code := core.EVENT_CODE_KEY_RELEASED
	if action == glfw.Press {
		code = core.EVENT_CODE_KEY_PRESSED
	}
	p.pending = append(p.pending, core.Event{
		Type: code,
		Data: &core.KeyEvent{KeyCode: keyCode},
	})
}

func (p *Platform) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	var b core.Button
	switch button {
	case glfw.MouseButtonLeft:
		b = core.BUTTON_LEFT
	case glfw.MouseButtonMiddle:
		b = core.BUTTON_MIDDLE
	case glfw.MouseButtonRight:
		b = core.BUTTON_RIGHT
	default:
		b = core.BUTTON_LEFT
	}
	code := core.EVENT_CODE_BUTTON_RELEASED
	if action == glfw.Press {
		code = core.EVENT_CODE_BUTTON_PRESSED
	}
	p.pending = append(p.pending, core.Event{
		Type: code,
		Data: &core.MouseEvent{Button: b},
	})
}

func (p *Platform) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	p.pending = append(p.pending, core.Event{
		Type: core.EVENT_CODE_MOUSE_MOVED,
		Data: &core.MouseEvent{PosX: float32(xpos), PosY: float32(ypos)},
	})
}

var keyCodes = map[glfw.Key]core.KeyCode{
	glfw.KeyEscape:       core.KEY_ESCAPE,
	glfw.KeySpace:        core.KEY_SPACE,
	glfw.KeyEnter:        core.KEY_ENTER,
	glfw.KeyTab:          core.KEY_TAB,
	glfw.KeyBackspace:    core.KEY_BACKSPACE,
	glfw.KeyLeft:         core.KEY_LEFT,
	glfw.KeyUp:           core.KEY_UP,
	glfw.KeyRight:        core.KEY_RIGHT,
	glfw.KeyDown:         core.KEY_DOWN,
	glfw.KeyLeftShift:    core.KEY_LSHIFT,
	glfw.KeyRightShift:   core.KEY_RSHIFT,
	glfw.KeyLeftControl:  core.KEY_LCONTROL,
	glfw.KeyRightControl: core.KEY_RCONTROL,
	glfw.KeyA:            core.KEY_A,
	glfw.KeyB:            core.KEY_B,
	glfw.KeyC:            core.KEY_C,
	glfw.KeyD:            core.KEY_D,
	glfw.KeyE:            core.KEY_E,
	glfw.KeyF:            core.KEY_F,
	glfw.KeyG:            core.KEY_G,
	glfw.KeyH:            core.KEY_H,
	glfw.KeyI:            core.KEY_I,
	glfw.KeyJ:            core.KEY_J,
	glfw.KeyK:            core.KEY_K,
	glfw.KeyL:            core.KEY_L,
	glfw.KeyM:            core.KEY_M,
	glfw.KeyN:            core.KEY_N,
	glfw.KeyO:            core.KEY_O,
	glfw.KeyP:            core.KEY_P,
	glfw.KeyQ:            core.KEY_Q,
	glfw.KeyR:            core.KEY_R,
	glfw.KeyS:            core.KEY_S,
	glfw.KeyT:            core.KEY_T,
	glfw.KeyU:            core.KEY_U,
	glfw.KeyV:            core.KEY_V,
	glfw.KeyW:            core.KEY_W,
	glfw.KeyX:            core.KEY_X,
	glfw.KeyY:            core.KEY_Y,
	glfw.KeyZ:            core.KEY_Z,
}
