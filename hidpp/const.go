// Package hidpp implements the fixed-size command framing the G502 Hero
// speaks on its vendor HID interface. Requests go out as output reports,
// responses come back asynchronously as interrupt IN reports; both use the
// same two report ids.
package hidpp

import "fmt"

const (
	// Report ids. The leading byte of every frame selects the size variant.
	ShortReportID byte = 0x10
	LongReportID  byte = 0x11

	ShortReportSize = 7
	LongReportSize  = 20

	// report_id + device_index + feature_index + function byte
	headerSize = 4

	// DeviceIndexReceiver addresses the device itself rather than a paired
	// peripheral behind a receiver.
	DeviceIndexReceiver byte = 0xff

	// SoftwareID is OR'd into the low nibble of the function byte so the
	// device echoes it back in responses.
	SoftwareID byte = 0x1
)

// Feature indices. These are specific to the G502 Hero's protocol revision
// and must match the target device family exactly.
const (
	FeatureFirmware        byte = 0x03 // 0x0003
	FeatureDPI             byte = 0x0a // 0x2201
	FeatureReportRate      byte = 0x0b // 0x8060
	FeatureOnBoardProfiles byte = 0x0c
)

// Function codes per feature. The constants carry the function index in the
// high nibble already, matching the raw wire encoding.
const (
	FuncGetFirmwareInfo byte = 0x10

	FuncGetDPI byte = 0x20
	FuncSetDPI byte = 0x03

	FuncGetReportRate byte = 0x10
	FuncSetReportRate byte = 0x20

	FuncControlOnBoardProfiles byte = 0x10
	OnBoardProfilesOn          byte = 0x01
	OnBoardProfilesOff         byte = 0x02
)

// FirmwareType identifies the entity a firmware info response describes.
type FirmwareType byte

const (
	FirmwareMainApp    FirmwareType = 0
	FirmwareBootloader FirmwareType = 1
	FirmwareHardware   FirmwareType = 2
	FirmwareOptSensor  FirmwareType = 4
)

func (t FirmwareType) String() string {
	switch t {
	case FirmwareMainApp:
		return "main application"
	case FirmwareBootloader:
		return "bootloader"
	case FirmwareHardware:
		return "hardware"
	case FirmwareOptSensor:
		return "optical sensor"
	}
	return fmt.Sprintf("unknown firmware entity %02x", byte(t))
}
