package device

import (
	"context"
	"fmt"

	"github.com/g502-hero/g502d/hidpp"
)

// Submit encodes one command frame and hands it to the transport. The
// call blocks for the duration of the send; it must not be made while
// holding the device lock, or the correlator could stall behind device
// I/O when a response arrives concurrently.
func (d *Device) Submit(feature, function byte, kind hidpp.Kind, params []byte) error {
	frame := hidpp.New(feature, function, kind, params).Marshal()
	if err := d.transport.SendRaw(frame); err != nil {
		return fmt.Errorf("submit feature %#02x function %#02x: %w", feature, function, err)
	}
	return nil
}

// UpdateConfig pushes the given configuration to the device. A zero field
// means "no change" and triggers no submission. Each present field is SET
// and then GET to pull back the committed value; the GET response lands on
// the correlator path asynchronously, so confirmation is eventually
// consistent. Values are validated before any I/O.
func (d *Device) UpdateConfig(rate uint16, dpi uint16, rgb uint32) error {
	if rate != 0 {
		mask, err := hidpp.RateToWire(rate)
		if err != nil {
			return err
		}
		if err := d.Submit(hidpp.FeatureReportRate, hidpp.FuncSetReportRate,
			hidpp.Short, []byte{mask}); err != nil {
			return err
		}
		if err := d.Submit(hidpp.FeatureReportRate, hidpp.FuncGetReportRate,
			hidpp.Short, nil); err != nil {
			return err
		}
	}

	if dpi != 0 {
		if err := hidpp.ValidateDPI(uint32(dpi)); err != nil {
			return err
		}
		params := make([]byte, 3)
		hidpp.PutDPI(params, dpi)
		if err := d.Submit(hidpp.FeatureDPI, hidpp.FuncSetDPI,
			hidpp.Short, params); err != nil {
			return err
		}
		if err := d.Submit(hidpp.FeatureDPI, hidpp.FuncGetDPI,
			hidpp.Short, nil); err != nil {
			return err
		}
	}

	// RGB is reserved; LED control is not implemented.
	_ = rgb

	return nil
}

// enqueueUpdate defers an UpdateConfig to the outbound worker. Used from
// the inbound-delivery path, which must never block on device I/O. A full
// queue drops the request; the profile store keeps the intended values, so
// the device is merely left stale until the next push.
func (d *Device) enqueueUpdate(rate uint16, dpi uint16, rgb uint32) {
	select {
	case d.sendq <- sendRequest{rate: rate, dpi: dpi, rgb: rgb}:
	case <-d.done:
	default:
		d.logger.Warn("outbound queue full, dropping config push", "rate", rate, "dpi", dpi)
	}
}

// Run drains the outbound queue on a dedicated goroutine until the context
// is cancelled or the device is closed. Transport errors are logged and do
// not stop the worker; the profile state is left unchanged by a failed
// send and no retry is performed.
func (d *Device) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.done:
			return
		case req := <-d.sendq:
			if err := d.UpdateConfig(req.rate, req.dpi, req.rgb); err != nil {
				d.logger.Error("config push failed", "error", err)
			}
		}
	}
}
