package hidpp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g502-hero/g502d/hidpp"
)

func TestEncodeShortFrame(t *testing.T) {
	r := hidpp.New(hidpp.FeatureReportRate, hidpp.FuncSetReportRate, hidpp.Short, []byte{0x04})
	buf := r.Marshal()

	require.Len(t, buf, hidpp.ShortReportSize)
	assert.Equal(t, []byte{0x10, 0xff, 0x0b, 0x21, 0x04, 0x00, 0x00}, buf)
}

func TestEncodeLongFrame(t *testing.T) {
	params := []byte{0xde, 0xad, 0xbe, 0xef}
	r := hidpp.New(hidpp.FeatureDPI, hidpp.FuncGetDPI, hidpp.Long, params)
	buf := r.Marshal()

	require.Len(t, buf, hidpp.LongReportSize)
	assert.Equal(t, byte(0x11), buf[0])
	assert.Equal(t, byte(0xff), buf[1])
	assert.Equal(t, byte(0x0a), buf[2])
	assert.Equal(t, byte(0x20|0x01), buf[3])
	assert.Equal(t, params, buf[4:8])
	for i := 8; i < hidpp.LongReportSize; i++ {
		assert.Zero(t, buf[i], "byte %d should be zero-padded", i)
	}
}

func TestEncodeTruncatesOversizedParams(t *testing.T) {
	params := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	r := hidpp.New(hidpp.FeatureDPI, hidpp.FuncSetDPI, hidpp.Short, params)
	buf := r.Marshal()

	require.Len(t, buf, hidpp.ShortReportSize)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, buf[4:7])
}

func TestEncodeNilParams(t *testing.T) {
	r := hidpp.New(hidpp.FeatureReportRate, hidpp.FuncGetReportRate, hidpp.Short, nil)
	assert.Equal(t, []byte{0x10, 0xff, 0x0b, 0x11, 0x00, 0x00, 0x00}, r.Marshal())
}

func TestDecodeRoundTrip(t *testing.T) {
	for _, kind := range []hidpp.Kind{hidpp.Short, hidpp.Long} {
		t.Run(kind.String(), func(t *testing.T) {
			orig := hidpp.New(hidpp.FeatureDPI, hidpp.FuncGetDPI, kind, []byte{0x00, 0x06, 0x40})
			decoded, err := hidpp.Decode(orig.Marshal())
			require.NoError(t, err)
			assert.Equal(t, kind, decoded.Kind())
			assert.Equal(t, hidpp.FeatureDPI, decoded.FeatureIndex)
			assert.Equal(t, hidpp.FuncGetDPI, decoded.Function())
			assert.Equal(t, []byte{0x00, 0x06, 0x40}, decoded.Params()[:3])
		})
	}
}

func TestDecodeRejectsBadLengths(t *testing.T) {
	for size := 0; size <= 64; size++ {
		if size == hidpp.ShortReportSize || size == hidpp.LongReportSize {
			continue
		}
		buf := make([]byte, size)
		if size > 0 {
			buf[0] = hidpp.LongReportID
		}
		_, err := hidpp.Decode(buf)
		assert.ErrorIs(t, err, hidpp.ErrMalformedFrame, "length %d", size)
	}
}

func TestDecodeRejectsMismatchedReportID(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{"short length with long id", append([]byte{hidpp.LongReportID}, make([]byte, 6)...)},
		{"long length with short id", append([]byte{hidpp.ShortReportID}, make([]byte, 19)...)},
		{"unknown id", append([]byte{0x42}, make([]byte, 6)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hidpp.Decode(tt.buf)
			assert.ErrorIs(t, err, hidpp.ErrMalformedFrame)
		})
	}
}

func TestFunctionMasksSoftwareID(t *testing.T) {
	r := hidpp.New(hidpp.FeatureReportRate, hidpp.FuncGetReportRate, hidpp.Short, nil)
	assert.Equal(t, hidpp.FuncGetReportRate|hidpp.SoftwareID, r.FuncClientID)
	assert.Equal(t, hidpp.FuncGetReportRate, r.Function())
}
