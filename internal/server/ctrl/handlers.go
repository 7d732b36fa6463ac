package ctrl

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/g502-hero/g502d/ctrltypes"
	"github.com/g502-hero/g502d/device"
	"github.com/g502-hero/g502d/hidpp"
)

const (
	attrReportRate = "report_rate"
	attrDPI        = "dpi"
)

// AttrShow returns a handler for "attr/{name}/show": the current profile's
// stored value as a decimal string.
func AttrShow(d *device.Device) HandlerFunc {
	return func(req *Request, res *Response, logger *slog.Logger) error {
		cur := d.Current()
		switch req.Params["name"] {
		case attrReportRate:
			res.Body = strconv.FormatUint(uint64(cur.ReportRate), 10)
		case attrDPI:
			res.Body = strconv.FormatUint(uint64(cur.DPI), 10)
		default:
			return ErrNotFound(fmt.Sprintf("unknown attribute: %s", req.Params["name"]))
		}
		return nil
	}
}

// AttrStore returns a handler for "attr/{name}/store": parses the decimal
// payload, validates it, and pushes the single field to the device. The
// stored profile value changes only when the pull-back GET response is
// applied by the correlator.
func AttrStore(d *device.Device) HandlerFunc {
	return func(req *Request, res *Response, logger *slog.Logger) error {
		name := req.Params["name"]
		value, err := strconv.ParseUint(req.Payload, 10, 16)
		if err != nil {
			return ErrInvalidArgument(fmt.Sprintf("%s: not a decimal value: %q", name, req.Payload))
		}

		switch name {
		case attrReportRate:
			if value == 0 {
				// Zero has no wire encoding and doubles as UpdateConfig's
				// "no change" sentinel; without this guard the write would
				// silently succeed without submitting anything.
				return ErrInvalidArgument(hidpp.ErrUnsupportedRate.Error())
			}
			err = d.UpdateConfig(uint16(value), 0, 0)
		case attrDPI:
			// Zero is inside the valid range and maps onto UpdateConfig's
			// "no change" sentinel, so a zero write is a successful no-op.
			err = d.UpdateConfig(0, uint16(value), 0)
		default:
			return ErrNotFound(fmt.Sprintf("unknown attribute: %s", name))
		}

		switch {
		case errors.Is(err, hidpp.ErrUnsupportedRate), errors.Is(err, hidpp.ErrDPIOutOfRange):
			return ErrInvalidArgument(err.Error())
		case err != nil:
			return ErrInternal(err.Error())
		}
		logger.Info("attribute store", "attr", name, "value", value)
		return nil
	}
}

// ProfileList returns a handler for "profile/list": all profiles with the
// current one marked.
func ProfileList(d *device.Device) HandlerFunc {
	return func(req *Request, res *Response, logger *slog.Logger) error {
		cur := d.Current()
		profiles := d.Profiles()
		out := make([]ctrltypes.Profile, len(profiles))
		for i, p := range profiles {
			out[i] = ctrltypes.Profile{Index: p.Index, ReportRate: p.ReportRate, DPI: p.DPI, Current: p.Index == cur.Index}
		}
		body, err := json.Marshal(out)
		if err != nil {
			return ErrInternal(err.Error())
		}
		res.Body = string(body)
		return nil
	}
}

// ProfileSwitch returns a handler for "profile/switch": advances to the
// next profile and pushes its configuration, like the hardware button.
func ProfileSwitch(d *device.Device) HandlerFunc {
	return func(req *Request, res *Response, logger *slog.Logger) error {
		next, err := d.SwitchProfile()
		if err != nil {
			return ErrInternal(err.Error())
		}
		body, merr := json.Marshal(ctrltypes.Profile{Index: next.Index, ReportRate: next.ReportRate, DPI: next.DPI, Current: true})
		if merr != nil {
			return ErrInternal(merr.Error())
		}
		res.Body = string(body)
		logger.Info("profile switch requested", "index", next.Index)
		return nil
	}
}

// FirmwareShow returns a handler for "fw/show": the last received
// firmware identification.
func FirmwareShow(d *device.Device) HandlerFunc {
	return func(req *Request, res *Response, logger *slog.Logger) error {
		fw := d.Firmware()
		body, err := json.Marshal(ctrltypes.Firmware{
			Entity:   fw.EntityType.String(),
			Entities: fw.Entities,
			Version:  fw.Version,
		})
		if err != nil {
			return ErrInternal(err.Error())
		}
		res.Body = string(body)
		return nil
	}
}
