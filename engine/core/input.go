package core

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_MIDDLE
	BUTTON_RIGHT
	BUTTON_MAX_BUTTONS
)

// Key code definitions
type KeyCode uint16

const (
	KEY_BACKSPACE KeyCode = 0x08
	KEY_ENTER     KeyCode = 0x0D
	KEY_TAB       KeyCode = 0x09
	KEY_SHIFT     KeyCode = 0x10
	KEY_CONTROL   KeyCode = 0x11
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_A         KeyCode = 0x41
	KEY_B         KeyCode = 0x42
	KEY_C         KeyCode = 0x43
	KEY_D         KeyCode = 0x44
	KEY_E         KeyCode = 0x45
	KEY_F         KeyCode = 0x46
	KEY_G         KeyCode = 0x47
	KEY_H         KeyCode = 0x48
	KEY_I         KeyCode = 0x49
	KEY_J         KeyCode = 0x4A
	KEY_K         KeyCode = 0x4B
	KEY_L         KeyCode = 0x4C
	KEY_M         KeyCode = 0x4D
	KEY_N         KeyCode = 0x4E
	KEY_O         KeyCode = 0x4F
	KEY_P         KeyCode = 0x50
	KEY_Q         KeyCode = 0x51
	KEY_R         KeyCode = 0x52
	KEY_S         KeyCode = 0x53
	KEY_T         KeyCode = 0x54
	KEY_U         KeyCode = 0x55
	KEY_V         KeyCode = 0x56
	KEY_W         KeyCode = 0x57
	KEY_X         KeyCode = 0x58
	KEY_Y         KeyCode = 0x59
	KEY_Z         KeyCode = 0x5A
	KEY_LSHIFT    KeyCode = 0xA0
	KEY_RSHIFT    KeyCode = 0xA1
	KEY_LCONTROL  KeyCode = 0xA2
	KEY_RCONTROL  KeyCode = 0xA3

	KEYS_MAX_KEYS = 256
)

// KeyTransition is a single key state change drained from the platform
// during one frame.
type KeyTransition struct {
	KeyCode KeyCode
	Pressed bool
}

// KeyboardState holds the current and previous key snapshots. The previous
// snapshot is taken on every Update so per-frame edges can be queried.
type KeyboardState struct {
	current  [KEYS_MAX_KEYS]bool
	previous [KEYS_MAX_KEYS]bool
}

// Update folds one frame's worth of key transitions into the state.
// Should be called exactly once per frame with all drained transitions.
func (k *KeyboardState) Update(transitions []KeyTransition) {
	k.previous = k.current
	for _, t := range transitions {
		if t.KeyCode < KEYS_MAX_KEYS {
			k.current[t.KeyCode] = t.Pressed
		}
	}
}

func (k *KeyboardState) IsKeyDown(key KeyCode) bool {
	if key >= KEYS_MAX_KEYS {
		return false
	}
	return k.current[key]
}

func (k *KeyboardState) WasKeyDown(key KeyCode) bool {
	if key >= KEYS_MAX_KEYS {
		return false
	}
	return k.previous[key]
}

// IsKeyPressed reports a down edge during the most recent Update.
func (k *KeyboardState) IsKeyPressed(key KeyCode) bool {
	return k.IsKeyDown(key) && !k.WasKeyDown(key)
}

// IsKeyReleased reports an up edge during the most recent Update.
func (k *KeyboardState) IsKeyReleased(key KeyCode) bool {
	return !k.IsKeyDown(key) && k.WasKeyDown(key)
}

// MouseState is the pointer state carried across frames. The platform fills
// a fresh snapshot each frame; Fold merges it into the persistent state so
// that button edges are not lost between polling gaps.
type MouseState struct {
	PosX       float32
	PosY       float32
	DeltaX     float32
	DeltaY     float32
	ButtonMask uint32
}

// Fold merges the freshly polled snapshot into the persistent state,
// computing the position delta against the previous frame.
func (m *MouseState) Fold(next *MouseState) {
	m.DeltaX = next.PosX - m.PosX
	m.DeltaY = next.PosY - m.PosY
	m.PosX = next.PosX
	m.PosY = next.PosY
	m.ButtonMask = next.ButtonMask
}

func (m *MouseState) IsButtonDown(button Button) bool {
	if button >= BUTTON_MAX_BUTTONS {
		return false
	}
	return m.ButtonMask&(1<<button) != 0
}

func (m *MouseState) SetButton(button Button, pressed bool) {
	if button >= BUTTON_MAX_BUTTONS {
		return
	}
	if pressed {
		m.ButtonMask |= 1 << button
	} else {
		m.ButtonMask &^= 1 << button
	}
}

// InputState is everything the camera and game logic see for one frame:
// the folded mouse state, the keyboard snapshots and the frame delta
// in seconds.
type InputState struct {
	Mouse MouseState
	Keys  KeyboardState
	Delta float64
}
