package ctrl_test

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g502-hero/g502d/ctrltypes"
	"github.com/g502-hero/g502d/device"
	"github.com/g502-hero/g502d/hidpp"
	"github.com/g502-hero/g502d/internal/server/ctrl"
	"github.com/g502-hero/g502d/profile"
)

type fakeTransport struct {
	mu     sync.Mutex
	frames [][]byte
}

func (f *fakeTransport) SendRaw(frame []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, append([]byte(nil), frame...))
	return nil
}

func (f *fakeTransport) Close() error { return nil }

func (f *fakeTransport) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

type nopSink struct{}

func (nopSink) SetupKey(uint16) error       { return nil }
func (nopSink) EmitScroll(_, _ int32) error { return nil }
func (nopSink) EmitKeyClick(uint16) error   { return nil }
func (nopSink) Close() error                { return nil }

func newTestServer(t *testing.T) (*ctrl.Server, *device.Device, *fakeTransport) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := profile.NewStore(profile.DefaultSeeds())
	require.NoError(t, err)
	tr := &fakeTransport{}
	dev := device.New(tr, nopSink{}, store, logger)
	t.Cleanup(dev.Close)

	srv := ctrl.New(ctrl.Config{Addr: "127.0.0.1:0"}, logger)
	r := srv.Router()
	r.Register("attr/{name}/show", ctrl.AttrShow(dev))
	r.Register("attr/{name}/store", ctrl.AttrStore(dev))
	r.Register("profile/list", ctrl.ProfileList(dev))
	r.Register("profile/switch", ctrl.ProfileSwitch(dev))
	r.Register("fw/show", ctrl.FirmwareShow(dev))
	require.NoError(t, srv.Start())
	t.Cleanup(srv.Close)

	return srv, dev, tr
}

func request(t *testing.T, addr, req string) string {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, time.Second)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(time.Second)))

	_, err = conn.Write(append([]byte(req), 0))
	require.NoError(t, err)

	line, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	return strings.TrimSuffix(line, "\n")
}

func requestError(t *testing.T, addr, req string) ctrltypes.Error {
	t.Helper()
	var e ctrltypes.Error
	require.NoError(t, json.Unmarshal([]byte(request(t, addr, req)), &e))
	return e
}

func TestAttrShow(t *testing.T) {
	srv, _, _ := newTestServer(t)

	assert.Equal(t, "125", request(t, srv.Addr(), "attr/report_rate/show"))
	assert.Equal(t, "800", request(t, srv.Addr(), "attr/dpi/show"))
}

func TestAttrShowUnknownAttribute(t *testing.T) {
	srv, _, _ := newTestServer(t)

	e := requestError(t, srv.Addr(), "attr/bogus/show")
	assert.Equal(t, 404, e.Status)
}

func TestUnknownPath(t *testing.T) {
	srv, _, _ := newTestServer(t)

	e := requestError(t, srv.Addr(), "no/such/route")
	assert.Equal(t, 404, e.Status)
}

func TestAttrStoreSubmitsSetAndGet(t *testing.T) {
	srv, _, tr := newTestServer(t)

	body := request(t, srv.Addr(), "attr/report_rate/store 500")
	assert.Empty(t, body)
	assert.Equal(t, 2, tr.sentCount())

	// The stored value only changes once the device confirms it.
	assert.Equal(t, "125", request(t, srv.Addr(), "attr/report_rate/show"))
}

func TestAttrStoreConfirmedByResponse(t *testing.T) {
	srv, dev, _ := newTestServer(t)

	request(t, srv.Addr(), "attr/report_rate/store 500")
	resp := hidpp.New(hidpp.FeatureReportRate, hidpp.FuncGetReportRate, hidpp.Long, []byte{0x04})
	require.Equal(t, device.Applied, dev.OnInbound(resp.Marshal()))

	assert.Equal(t, "500", request(t, srv.Addr(), "attr/report_rate/show"))
}

func TestAttrStoreRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		req  string
	}{
		{"unsupported rate", "attr/report_rate/store 300"},
		{"rate zero", "attr/report_rate/store 0"},
		{"dpi out of range", "attr/dpi/store 30000"},
		{"not a number", "attr/dpi/store fast"},
		{"overflow", "attr/report_rate/store 99999"},
		{"empty payload", "attr/dpi/store"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, tr := newTestServer(t)
			e := requestError(t, srv.Addr(), tt.req)
			assert.Equal(t, 400, e.Status)
			assert.Zero(t, tr.sentCount(), "rejected values must not reach the device")
		})
	}
}

func TestAttrStoreDPIZeroIsNoOp(t *testing.T) {
	srv, _, tr := newTestServer(t)

	body := request(t, srv.Addr(), "attr/dpi/store 0")
	assert.Empty(t, body)
	assert.Zero(t, tr.sentCount(), "a zero dpi write submits nothing")
	assert.Equal(t, "800", request(t, srv.Addr(), "attr/dpi/show"))
}

func TestProfileList(t *testing.T) {
	srv, _, _ := newTestServer(t)

	var profiles []struct {
		Index      int    `json:"index"`
		ReportRate uint16 `json:"reportRate"`
		DPI        uint16 `json:"dpi"`
		Current    bool   `json:"current"`
	}
	require.NoError(t, json.Unmarshal([]byte(request(t, srv.Addr(), "profile/list")), &profiles))
	require.Len(t, profiles, 5)
	assert.True(t, profiles[0].Current)
	assert.Equal(t, uint16(125), profiles[0].ReportRate)
	assert.False(t, profiles[4].Current)
	assert.Equal(t, uint16(6000), profiles[4].DPI)
}

func TestProfileSwitch(t *testing.T) {
	srv, dev, tr := newTestServer(t)

	var p struct {
		Index int `json:"index"`
	}
	require.NoError(t, json.Unmarshal([]byte(request(t, srv.Addr(), "profile/switch")), &p))
	assert.Equal(t, 1, p.Index)
	assert.Equal(t, 1, dev.Current().Index)
	assert.Equal(t, 4, tr.sentCount(), "rate and dpi pushed as SET+GET pairs")
}

func TestFirmwareShow(t *testing.T) {
	srv, dev, _ := newTestServer(t)

	params := append([]byte{byte(hidpp.FirmwareMainApp), 0x01}, []byte("HERO 1.0")...)
	dev.OnInbound(hidpp.New(hidpp.FeatureFirmware, hidpp.FuncGetFirmwareInfo, hidpp.Long, params).Marshal())

	var fw struct {
		Entity   string `json:"entity"`
		Entities int    `json:"entities"`
		Version  string `json:"version"`
	}
	require.NoError(t, json.Unmarshal([]byte(request(t, srv.Addr(), "fw/show")), &fw))
	assert.Equal(t, "main application", fw.Entity)
	assert.Equal(t, 1, fw.Entities)
	assert.Equal(t, "HERO 1.0", fw.Version)
}

func TestEmptyRequest(t *testing.T) {
	srv, _, _ := newTestServer(t)

	e := requestError(t, srv.Addr(), "")
	assert.Equal(t, 400, e.Status)
}
