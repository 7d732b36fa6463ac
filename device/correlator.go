package device

import (
	"github.com/g502-hero/g502d/hidpp"
)

// Classification is the correlator's verdict on an inbound frame.
type Classification int

const (
	// Ignored: not a long response, or another response is being applied.
	Ignored Classification = iota
	// RegularEvent: a short raw input frame, handed to the translator.
	RegularEvent
	// Applied: a long response matched a feature and updated the profile.
	Applied
)

func (c Classification) String() string {
	switch c {
	case RegularEvent:
		return "regular event"
	case Applied:
		return "applied"
	}
	return "ignored"
}

// regularEventSize is the length of the device's ordinary input reports
// (buttons and motion), as opposed to protocol responses.
const regularEventSize = 8

// OnInbound consumes one raw frame delivered by the transport's receive
// path. SET responses are empty handshakes; the data of interest arrives
// out of band as interrupt reports, so correlation is implicit: the
// (feature, function) pair of a response selects which profile field to
// update. There is no request id on the wire; duplicate or reordered
// responses for a feature are applied idempotently, last write wins.
//
// If a response arrives while another is still being applied it is dropped
// rather than queued, trading completeness for an inbound path that never
// waits on anything but the brief in-memory update.
func (d *Device) OnInbound(raw []byte) Classification {
	if len(raw) == regularEventSize {
		d.handleRegularEvent(raw)
		return RegularEvent
	}

	resp, err := hidpp.Decode(raw)
	if err != nil || resp.Kind() != hidpp.Long {
		return Ignored
	}

	if !d.applying.CompareAndSwap(false, true) {
		d.logger.Debug("concurrent response apply, dropping frame",
			"feature", resp.FeatureIndex)
		return Ignored
	}
	defer d.applying.Store(false)

	params := resp.Params()
	switch resp.FeatureIndex {
	case hidpp.FeatureReportRate:
		if resp.Function() != hidpp.FuncGetReportRate {
			break
		}
		hz, err := hidpp.RateFromWire(params[0])
		if err != nil {
			d.logger.Warn("report rate response with unknown mask", "mask", params[0])
			return Ignored
		}
		d.mu.Lock()
		d.store.Current().ReportRate = hz
		d.mu.Unlock()
		d.logger.Debug("report rate confirmed", "hz", hz)

	case hidpp.FeatureDPI:
		if resp.Function() != hidpp.FuncGetDPI {
			break
		}
		dpi := hidpp.DPIFromWire(params)
		d.mu.Lock()
		d.store.Current().DPI = dpi
		d.mu.Unlock()
		d.logger.Debug("dpi confirmed", "dpi", dpi)

	case hidpp.FeatureFirmware:
		d.applyFirmware(params)
	}

	return Applied
}

// applyFirmware stores the firmware identification from an info response:
// entity type, entity count, then a printable version string.
func (d *Device) applyFirmware(params []byte) {
	fw := Firmware{
		EntityType: hidpp.FirmwareType(params[0]),
		Entities:   int(params[1]),
	}
	version := params[2:]
	end := 0
	for end < len(version) && version[end] >= 0x20 && version[end] < 0x7f {
		end++
	}
	fw.Version = string(version[:end])

	d.mu.Lock()
	d.fw = fw
	d.mu.Unlock()
	d.logger.Debug("firmware info", "entity", fw.EntityType.String(), "version", fw.Version)
}
