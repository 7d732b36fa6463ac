package hidpp

import "errors"

// ErrMalformedFrame is returned when a raw buffer is not a well-formed
// command frame: its length matches neither size variant, or the leading
// report id does not agree with the length.
var ErrMalformedFrame = errors.New("hidpp: malformed frame")

// Kind selects the frame size variant.
type Kind int

const (
	Short Kind = iota
	Long
)

// ReportID returns the wire report id for the kind.
func (k Kind) ReportID() byte {
	if k == Long {
		return LongReportID
	}
	return ShortReportID
}

// Size returns the total frame length in bytes for the kind.
func (k Kind) Size() int {
	if k == Long {
		return LongReportSize
	}
	return ShortReportSize
}

// ParamLen returns the usable parameter length for the kind.
func (k Kind) ParamLen() int { return k.Size() - headerSize }

func (k Kind) String() string {
	if k == Long {
		return "long"
	}
	return "short"
}

// Report is a decoded or to-be-encoded command frame. The params array is
// sized for the long variant; the kind bounds how much of it is usable.
type Report struct {
	ReportID     byte
	DeviceIndex  byte
	FeatureIndex byte
	FuncClientID byte

	params [LongReportSize - headerSize]byte
	kind   Kind
}

// New builds a frame for the given feature and function. The frame is
// zero-filled, addressed to the receiver index and tagged with the software
// id. At most ParamLen bytes of params are copied; a shorter params slice
// leaves the remainder zero.
func New(feature, function byte, kind Kind, params []byte) *Report {
	r := &Report{
		ReportID:     kind.ReportID(),
		DeviceIndex:  DeviceIndexReceiver,
		FeatureIndex: feature,
		FuncClientID: function | SoftwareID,
		kind:         kind,
	}
	n := kind.ParamLen()
	if len(params) < n {
		n = len(params)
	}
	copy(r.params[:], params[:n])
	return r
}

// Kind returns the frame's size variant.
func (r *Report) Kind() Kind { return r.kind }

// Function returns the function byte with the software id tag masked off.
func (r *Report) Function() byte { return r.FuncClientID &^ SoftwareID }

// Params returns the usable parameter bytes for the frame's kind.
func (r *Report) Params() []byte { return r.params[:r.kind.ParamLen()] }

// Marshal encodes the frame into exactly Short- or LongReportSize bytes.
func (r *Report) Marshal() []byte {
	buf := make([]byte, r.kind.Size())
	buf[0] = r.ReportID
	buf[1] = r.DeviceIndex
	buf[2] = r.FeatureIndex
	buf[3] = r.FuncClientID
	copy(buf[headerSize:], r.params[:r.kind.ParamLen()])
	return buf
}

// Decode returns a typed view of a raw frame. The buffer length must be
// exactly one of the two known sizes and the leading report id must match
// that size; anything else is ErrMalformedFrame.
func Decode(buf []byte) (*Report, error) {
	var kind Kind
	switch len(buf) {
	case ShortReportSize:
		kind = Short
	case LongReportSize:
		kind = Long
	default:
		return nil, ErrMalformedFrame
	}
	if buf[0] != kind.ReportID() {
		return nil, ErrMalformedFrame
	}
	r := &Report{
		ReportID:     buf[0],
		DeviceIndex:  buf[1],
		FeatureIndex: buf[2],
		FuncClientID: buf[3],
		kind:         kind,
	}
	copy(r.params[:], buf[headerSize:])
	return r, nil
}
