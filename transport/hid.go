// Package transport opens the G502 Hero's vendor HID interface and moves
// raw frames across it.
package transport

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sstallion/go-hid"

	"github.com/g502-hero/g502d/internal/log"
)

const (
	VendorID  uint16 = 0x046d
	ProductID uint16 = 0xc08b
)

// ErrNoDevice is returned when no matching HID interface is present.
var ErrNoDevice = errors.New("transport: no G502 Hero device found")

// maxFrameSize bounds inbound reads; the protocol's largest frame is 20
// bytes, regular input reports are shorter still.
const maxFrameSize = 64

// HID is the go-hid backed transport. Sends are synchronous writes;
// inbound frames are read by a dedicated goroutine and delivered one at a
// time to the receive callback.
type HID struct {
	dev    *hid.Device
	path   string
	logger *slog.Logger
	raw    log.RawLogger

	closeOnce sync.Once
}

// Open enumerates the device's HID interfaces and opens the vendor one.
// The mouse interface (generic desktop usage) only carries input reports
// and rejects protocol commands, so it is skipped.
func Open(logger *slog.Logger, raw log.RawLogger) (*HID, error) {
	if err := hid.Init(); err != nil {
		return nil, fmt.Errorf("hid init: %w", err)
	}

	var chosen *hid.DeviceInfo
	err := hid.Enumerate(VendorID, ProductID, func(info *hid.DeviceInfo) error {
		if info.UsagePage >= 0xff00 {
			chosen = info
			return nil
		}
		// Fall back on the second interface, which exposes the vendor
		// collection on this device family.
		if chosen == nil && info.InterfaceNbr == 1 {
			chosen = info
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("hid enumerate: %w", err)
	}
	if chosen == nil {
		return nil, ErrNoDevice
	}

	dev, err := hid.OpenPath(chosen.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", chosen.Path, err)
	}

	logger.Info("opened HID interface", "path", chosen.Path,
		"usagePage", fmt.Sprintf("%#04x", chosen.UsagePage), "iface", chosen.InterfaceNbr)
	return &HID{dev: dev, path: chosen.Path, logger: logger, raw: raw}, nil
}

// SendRaw writes one output report. The leading byte of the frame is the
// report id, which is exactly the wire layout hidapi expects.
func (h *HID) SendRaw(frame []byte) error {
	h.raw.Log(false, frame)
	if _, err := h.dev.Write(frame); err != nil {
		return fmt.Errorf("hid write: %w", err)
	}
	return nil
}

// Run reads interrupt IN reports until the device is closed or read fails,
// delivering every frame to the callback. deliver is invoked on Run's
// goroutine; it must not block on device I/O.
func (h *HID) Run(deliver func([]byte)) error {
	buf := make([]byte, maxFrameSize)
	for {
		n, err := h.dev.Read(buf)
		if err != nil {
			return fmt.Errorf("hid read: %w", err)
		}
		if n == 0 {
			continue
		}
		frame := make([]byte, n)
		copy(frame, buf[:n])
		h.raw.Log(true, frame)
		deliver(frame)
	}
}

// Close closes the device handle, which also ends the Run loop.
func (h *HID) Close() error {
	var err error
	h.closeOnce.Do(func() {
		err = h.dev.Close()
		_ = hid.Exit()
	})
	return err
}
