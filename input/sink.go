// Package input defines the boundary to the host's input-event subsystem
// and provides a uinput-backed implementation on Linux.
package input

// Key and relative-axis codes emitted by the driver.
const (
	// KeyAuxButton is the synthetic key the hardware profile button maps
	// to at attach time (BTN_TRIGGER_HAPPY1).
	KeyAuxButton uint16 = 0x2c0

	relHWheel      uint16 = 0x06
	relHWheelHiRes uint16 = 0x0c
)

// Sink consumes the semantic input events decoded from raw frames.
type Sink interface {
	// SetupKey declares a key capability before events are emitted.
	SetupKey(code uint16) error
	// EmitScroll emits a relative horizontal-scroll event pair: a
	// low-resolution unit and its scaled high-resolution counterpart.
	EmitScroll(lo, hi int32) error
	// EmitKeyClick emits a press/release pair for a key.
	EmitKeyClick(code uint16) error
	Close() error
}

// Nop is a Sink that discards every event. Used when no event device is
// available and in tests.
type Nop struct{}

func (Nop) SetupKey(uint16) error { return nil }

func (Nop) EmitScroll(int32, int32) error { return nil }

func (Nop) EmitKeyClick(uint16) error { return nil }

func (Nop) Close() error { return nil }
