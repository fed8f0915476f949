package core

// System internal event codes.
type EventCode uint16

const (
	// The user asked the window to close. Stops the frame loop after the
	// current iteration.
	EVENT_CODE_CLOSE_REQUESTED EventCode = 0x01

	// Keyboard key pressed. Data is *KeyEvent.
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released. Data is *KeyEvent.
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Mouse button pressed. Data is *MouseEvent.
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04

	// Mouse button released. Data is *MouseEvent.
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05

	// Mouse moved. Data is *MouseEvent with the absolute position.
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06
)

// Event is a single window/input event drained from the platform once per
// frame. The frame loop consumes the whole pending queue without blocking.
type Event struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	PosX   float32
	PosY   float32
}
