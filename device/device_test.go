package device_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g502-hero/g502d/device"
	"github.com/g502-hero/g502d/hidpp"
	"github.com/g502-hero/g502d/profile"
)

type fakeTransport struct {
	mu     sync.Mutex
	frames [][]byte
	err    error
}

func (f *fakeTransport) SendRaw(frame []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.frames = append(f.frames, append([]byte(nil), frame...))
	return nil
}

func (f *fakeTransport) Close() error { return nil }

func (f *fakeTransport) sent() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.frames...)
}

type fakeSink struct {
	mu      sync.Mutex
	keys    []uint16
	scrolls [][2]int32
	clicks  []uint16
}

func (f *fakeSink) SetupKey(code uint16) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, code)
	return nil
}

func (f *fakeSink) EmitScroll(lo, hi int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scrolls = append(f.scrolls, [2]int32{lo, hi})
	return nil
}

func (f *fakeSink) EmitKeyClick(code uint16) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clicks = append(f.clicks, code)
	return nil
}

func (f *fakeSink) Close() error { return nil }

func (f *fakeSink) clicked() []uint16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uint16(nil), f.clicks...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDevice(t *testing.T) (*device.Device, *fakeTransport, *fakeSink) {
	t.Helper()
	store, err := profile.NewStore(profile.DefaultSeeds())
	require.NoError(t, err)
	tr := &fakeTransport{}
	sink := &fakeSink{}
	dev := device.New(tr, sink, store, discardLogger())
	t.Cleanup(dev.Close)
	return dev, tr, sink
}

func TestAttach(t *testing.T) {
	dev, tr, sink := newTestDevice(t)
	require.NoError(t, dev.Attach())

	assert.Equal(t, []uint16{0x2c0}, sink.keys)

	frames := tr.sent()
	require.Len(t, frames, 2)
	// Host takes ownership of configuration first.
	assert.Equal(t, []byte{0x10, 0xff, 0x0c, 0x11, 0x02, 0x00, 0x00}, frames[0])
	// Then firmware identification is requested.
	assert.Equal(t, []byte{0x10, 0xff, 0x03, 0x11, 0x00, 0x00, 0x00}, frames[1])
}

func TestUpdateConfigFrames(t *testing.T) {
	dev, tr, _ := newTestDevice(t)

	require.NoError(t, dev.UpdateConfig(500, 1600, 0))

	frames := tr.sent()
	require.Len(t, frames, 4)
	assert.Equal(t, []byte{0x10, 0xff, 0x0b, 0x21, 0x04, 0x00, 0x00}, frames[0], "set report rate")
	assert.Equal(t, []byte{0x10, 0xff, 0x0b, 0x11, 0x00, 0x00, 0x00}, frames[1], "get report rate")
	assert.Equal(t, []byte{0x10, 0xff, 0x0a, 0x03, 0x00, 0x06, 0x40}, frames[2], "set dpi")
	assert.Equal(t, []byte{0x10, 0xff, 0x0a, 0x21, 0x00, 0x00, 0x00}, frames[3], "get dpi")
}

func TestUpdateConfigZeroMeansNoChange(t *testing.T) {
	dev, tr, _ := newTestDevice(t)

	require.NoError(t, dev.UpdateConfig(0, 0, 0))
	assert.Empty(t, tr.sent())

	require.NoError(t, dev.UpdateConfig(1000, 0, 0))
	assert.Len(t, tr.sent(), 2, "only the rate pair should be sent")
}

func TestUpdateConfigValidatesBeforeIO(t *testing.T) {
	dev, tr, _ := newTestDevice(t)

	err := dev.UpdateConfig(300, 0, 0)
	assert.ErrorIs(t, err, hidpp.ErrUnsupportedRate)

	err = dev.UpdateConfig(0, 30000, 0)
	assert.ErrorIs(t, err, hidpp.ErrDPIOutOfRange)

	assert.Empty(t, tr.sent(), "invalid values must not reach the transport")
}

func TestUpdateConfigTransportError(t *testing.T) {
	dev, tr, _ := newTestDevice(t)
	tr.err = errors.New("device gone")

	err := dev.UpdateConfig(500, 0, 0)
	require.Error(t, err)
	assert.ErrorContains(t, err, "device gone")
}

func TestSwitchProfile(t *testing.T) {
	dev, tr, _ := newTestDevice(t)

	p, err := dev.SwitchProfile()
	require.NoError(t, err)
	assert.Equal(t, 1, p.Index)
	assert.Equal(t, uint16(250), p.ReportRate)
	assert.Equal(t, uint16(1600), p.DPI)
	assert.Equal(t, p, dev.Current())

	// The new profile's rate and DPI are pushed synchronously.
	assert.Len(t, tr.sent(), 4)
}

func TestSwitchProfileWrapsAround(t *testing.T) {
	dev, _, _ := newTestDevice(t)

	for i := 1; i <= 5; i++ {
		p, err := dev.SwitchProfile()
		require.NoError(t, err)
		assert.Equal(t, i%5, p.Index)
	}
	assert.Equal(t, 0, dev.Current().Index)
}

func TestAuxButtonDefersPushToWorker(t *testing.T) {
	dev, tr, sink := newTestDevice(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go dev.Run(ctx)

	got := dev.OnInbound([]byte{0x00, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	assert.Equal(t, device.RegularEvent, got)

	cur := dev.Current()
	assert.Equal(t, 1, cur.Index)
	assert.Equal(t, []uint16{0x2c0}, sink.clicked())

	require.Eventually(t, func() bool {
		return len(tr.sent()) == 4
	}, time.Second, 5*time.Millisecond, "worker should push the new profile")

	frames := tr.sent()
	assert.Equal(t, []byte{0x10, 0xff, 0x0b, 0x21, 0x02, 0x00, 0x00}, frames[0], "set 250 Hz")
	assert.Equal(t, []byte{0x10, 0xff, 0x0a, 0x03, 0x00, 0x06, 0x40}, frames[2], "set 1600 dpi")
}

func TestTiltEmitsScrollWithoutIO(t *testing.T) {
	dev, tr, sink := newTestDevice(t)

	dev.OnInbound([]byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	dev.OnInbound([]byte{0x00, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})

	assert.Equal(t, [][2]int32{{-1, -120}, {1, 120}}, sink.scrolls)
	assert.Empty(t, tr.sent(), "tilt handling performs no transport I/O")
	assert.Equal(t, 0, dev.Current().Index)
}
