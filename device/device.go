// Package device implements the per-device control plane: the guarded
// device context, request dispatch, response correlation and raw event
// translation.
package device

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/g502-hero/g502d/hidpp"
	"github.com/g502-hero/g502d/input"
	"github.com/g502-hero/g502d/profile"
)

// Transport delivers raw frames to the device. SendRaw blocks for the
// duration of the underlying I/O and must never be called while holding
// the device lock.
type Transport interface {
	SendRaw(frame []byte) error
	Close() error
}

// Firmware identifies the device firmware. Filled from firmware info
// responses; not required for correct operation.
type Firmware struct {
	EntityType hidpp.FirmwareType
	Entities   int
	Version    string
}

// Device bundles the profile store, the transport association and the
// outbound worker for one attached device. The mutex serializes every
// read and write of the current profile; it is held only around in-memory
// access, never around I/O.
type Device struct {
	mu    sync.Mutex
	store *profile.Store
	fw    Firmware

	transport Transport
	sink      input.Sink
	logger    *slog.Logger

	// applying enforces the at-most-one-in-flight response apply policy.
	applying atomic.Bool

	sendq chan sendRequest
	done  chan struct{}
}

type sendRequest struct {
	rate uint16
	dpi  uint16
	rgb  uint32
}

// New builds a device context around an already-opened transport.
func New(t Transport, sink input.Sink, store *profile.Store, logger *slog.Logger) *Device {
	return &Device{
		store:     store,
		transport: t,
		sink:      sink,
		logger:    logger,
		sendq:     make(chan sendRequest, 8),
		done:      make(chan struct{}),
	}
}

// Attach prepares the device: registers the auxiliary key capability with
// the event sink, disables on-board profile storage so the host owns the
// configuration, and queries firmware identification. The firmware
// response arrives later on the correlator path.
func (d *Device) Attach() error {
	if err := d.sink.SetupKey(input.KeyAuxButton); err != nil {
		return fmt.Errorf("setup aux key: %w", err)
	}

	if err := d.Submit(hidpp.FeatureOnBoardProfiles, hidpp.FuncControlOnBoardProfiles,
		hidpp.Short, []byte{hidpp.OnBoardProfilesOff}); err != nil {
		return fmt.Errorf("disable on-board profiles: %w", err)
	}

	if err := d.Submit(hidpp.FeatureFirmware, hidpp.FuncGetFirmwareInfo,
		hidpp.Short, []byte{byte(hidpp.FirmwareMainApp)}); err != nil {
		return fmt.Errorf("query firmware info: %w", err)
	}

	d.logger.Info("device attached", "profiles", d.store.Len())
	return nil
}

// Close stops the outbound worker. The transport and sink are owned by
// the caller.
func (d *Device) Close() {
	close(d.done)
}

// Current returns a snapshot of the current profile.
func (d *Device) Current() profile.Profile {
	d.mu.Lock()
	defer d.mu.Unlock()
	return *d.store.Current()
}

// Profiles returns a snapshot of all profiles in slot order.
func (d *Device) Profiles() []profile.Profile {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store.Snapshot()
}

// Firmware returns the last received firmware identification.
func (d *Device) Firmware() Firmware {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fw
}

// SwitchProfile advances the current pointer and pushes the new profile's
// stored configuration to the device, pulling it back for confirmation.
// The returned profile is the new current one.
func (d *Device) SwitchProfile() (profile.Profile, error) {
	d.mu.Lock()
	next, err := d.store.Next()
	if err != nil {
		d.mu.Unlock()
		return profile.Profile{}, err
	}
	snap := *next
	d.mu.Unlock()

	if err := d.UpdateConfig(snap.ReportRate, snap.DPI, snap.RGB); err != nil {
		return snap, err
	}
	return snap, nil
}
