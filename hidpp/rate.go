package hidpp

import "errors"

// Report-rate values travel on the wire as a power-of-two bitmask; DPI as a
// big-endian 16-bit value following a one-byte sensor index. Both mappings
// reject values outside their fixed sets instead of clamping.

var (
	// ErrUnsupportedRate is returned for a report rate outside the
	// enumerated 125/250/500/1000 Hz set (or an unknown wire mask).
	ErrUnsupportedRate = errors.New("hidpp: unsupported report rate")

	// ErrDPIOutOfRange is returned for a DPI value above MaxDPI.
	ErrDPIOutOfRange = errors.New("hidpp: dpi out of range")
)

// MaxDPI is the sensor's maximum resolution.
const MaxDPI = 25600

// RateToWire translates a report rate in Hz to its wire bitmask.
func RateToWire(hz uint16) (byte, error) {
	switch hz {
	case 125:
		return 0x1, nil
	case 250:
		return 0x2, nil
	case 500:
		return 0x4, nil
	case 1000:
		return 0x8, nil
	}
	return 0, ErrUnsupportedRate
}

// RateFromWire translates a wire bitmask back to a report rate in Hz.
func RateFromWire(mask byte) (uint16, error) {
	switch mask {
	case 0x1:
		return 125, nil
	case 0x2:
		return 250, nil
	case 0x4:
		return 500, nil
	case 0x8:
		return 1000, nil
	}
	return 0, ErrUnsupportedRate
}

// ValidateDPI rejects values outside [0, MaxDPI] before any I/O happens.
func ValidateDPI(dpi uint32) error {
	if dpi > MaxDPI {
		return ErrDPIOutOfRange
	}
	return nil
}

// PutDPI writes the DPI parameter layout: a zero sensor index followed by
// the value big-endian across two bytes. params must hold at least 3 bytes.
func PutDPI(params []byte, dpi uint16) {
	params[0] = 0 // sensor index
	params[1] = byte(dpi >> 8)
	params[2] = byte(dpi)
}

// DPIFromWire reads the big-endian DPI value from a response's parameter
// bytes (bytes 1-2, after the sensor index).
func DPIFromWire(params []byte) uint16 {
	return uint16(params[1])<<8 | uint16(params[2])
}
