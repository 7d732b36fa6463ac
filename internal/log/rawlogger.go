package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// RawLogger records raw HID frames crossing the transport boundary.
type RawLogger interface {
	// Log records one frame. in=true means device-to-host (interrupt IN),
	// in=false means host-to-device (output report).
	Log(in bool, frame []byte)
}

type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw returns a RawLogger writing hex dumps to w, or a no-op logger
// when w is nil.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

func (r *rawLogger) Log(in bool, frame []byte) {
	if r.w == nil || len(frame) == 0 {
		return
	}

	dir := "H->D"
	if in {
		dir = "D->H"
	}

	var hexbuf strings.Builder
	const digits = "0123456789abcdef"
	for i, b := range frame {
		if i > 0 {
			hexbuf.WriteByte(' ')
		}
		hexbuf.WriteByte(digits[b>>4])
		hexbuf.WriteByte(digits[b&0x0f])
	}

	line := fmt.Sprintf("%s %s %d bytes: %s\n",
		time.Now().Format("2006/01/02 15:04:05"), dir, len(frame), hexbuf.String())

	r.mu.Lock()
	_, _ = r.w.Write([]byte(line))
	r.mu.Unlock()
}
