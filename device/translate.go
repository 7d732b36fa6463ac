package device

import (
	"github.com/g502-hero/g502d/input"
)

// Action is the semantic meaning of one regular input frame.
type Action int

const (
	ActionNone Action = iota
	ActionTiltLeft
	ActionTiltRight
	ActionSwitchProfile
)

// Byte 1 of a regular input report carries the upper button bank; the
// wheel tilt directions and the profile button live at fixed bits there.
const (
	maskTiltLeft  = 0x01
	maskTiltRight = 0x02
	maskAuxButton = 0x04
)

// Horizontal scroll units per tilt: one low-resolution notch and its
// high-resolution equivalent.
const (
	scrollUnitLo = 1
	scrollUnitHi = 120
)

// Translate derives exactly one action from a regular input frame. Bits
// are checked in fixed priority order, left tilt first, then right tilt,
// then the auxiliary button; only the first match fires.
func Translate(frame []byte) Action {
	if len(frame) < 2 {
		return ActionNone
	}
	switch {
	case frame[1]&maskTiltLeft != 0:
		return ActionTiltLeft
	case frame[1]&maskTiltRight != 0:
		return ActionTiltRight
	case frame[1]&maskAuxButton != 0:
		return ActionSwitchProfile
	}
	return ActionNone
}

// handleRegularEvent routes a regular input frame: tilt events go to the
// input sink, the auxiliary button advances the profile store and defers
// the config push to the outbound worker. Runs on the inbound-delivery
// path, so it never performs transport I/O itself.
func (d *Device) handleRegularEvent(frame []byte) {
	switch Translate(frame) {
	case ActionTiltLeft:
		if err := d.sink.EmitScroll(-scrollUnitLo, -scrollUnitHi); err != nil {
			d.logger.Warn("emit scroll failed", "error", err)
		}
	case ActionTiltRight:
		if err := d.sink.EmitScroll(scrollUnitLo, scrollUnitHi); err != nil {
			d.logger.Warn("emit scroll failed", "error", err)
		}
	case ActionSwitchProfile:
		d.mu.Lock()
		next, err := d.store.Next()
		if err != nil {
			d.mu.Unlock()
			// The store is seeded at attach time; an empty store here is a
			// construction bug.
			d.logger.Error("profile store empty on switch", "error", err)
			return
		}
		snap := *next
		d.mu.Unlock()

		d.logger.Info("profile switch", "index", snap.Index,
			"rate", snap.ReportRate, "dpi", snap.DPI)
		if err := d.sink.EmitKeyClick(input.KeyAuxButton); err != nil {
			d.logger.Warn("emit key failed", "error", err)
		}
		d.enqueueUpdate(snap.ReportRate, snap.DPI, snap.RGB)
	}
}
