// Package controller implements the key-state interface: a 16-bit
// pressed_keys bitfield device plus an Empty stub device for unused
// controller ports.
package controller

// Key is one bit of the joypad's pressed_keys bitfield: R, L, X, A,
// RIGHT, LEFT, DOWN, UP, START, SELECT, Y, B at bits 4..=15.
type Key uint16

const (
	KeyR Key = 1 << (4 + iota)
	KeyL
	KeyX
	KeyA
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyStart
	KeySelect
	KeyY
	KeyB
)

// Device is a controller port: the one operation the CPU bus's
// joypad auto-read machinery needs from whatever is plugged in.
type Device interface {
	AutoRead() uint16
}

// Joypad is a real pad: a pressed_keys bitfield updated by the host
// frontend and sampled by auto-read.
type Joypad struct {
	pressedKeys uint16
}

// NewJoypad returns a joypad with no keys held.
func NewJoypad() *Joypad { return &Joypad{} }

// ModifyKeys applies a press/release delta:
// pressed_keys = (pressed_keys | pressed) &^ released.
func (j *Joypad) ModifyKeys(pressed, released Key) {
	j.pressedKeys = (j.pressedKeys | uint16(pressed)) &^ uint16(released)
}

// PressedKeys returns the current bitfield, mainly for tests.
func (j *Joypad) PressedKeys() uint16 { return j.pressedKeys }

// AutoRead reports the current key state, as the controller
// auto-read sequencer samples it once per frame.
func (j *Joypad) AutoRead() uint16 { return j.pressedKeys }
