package input

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// uinput ioctl numbers and event types. These are stable kernel ABI
// values from <linux/uinput.h> and <linux/input-event-codes.h>.
const (
	uinputPath = "/dev/uinput"

	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiSetRelBit  = 0x40045566
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502

	evSyn uint16 = 0x00
	evKey uint16 = 0x01
	evRel uint16 = 0x02

	synReport uint16 = 0x00

	busUSB uint16 = 0x03
)

// inputEvent mirrors struct input_event.
type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// userDev mirrors the legacy struct uinput_user_dev setup block.
type userDev struct {
	Name         [80]byte
	Bustype      uint16
	Vendor       uint16
	Product      uint16
	Version      uint16
	FFEffectsMax uint32
	Absmax       [64]int32
	Absmin       [64]int32
	Absfuzz      [64]int32
	Absflat      [64]int32
}

// Uinput is a Sink backed by a virtual input device created through
// /dev/uinput. The device node is created lazily on the first emitted
// event so key capabilities can still be declared after construction.
type Uinput struct {
	fd         int
	createOnce sync.Once
	createErr  error
}

// NewUinput opens /dev/uinput and declares the relative horizontal-wheel
// axes. Key capabilities are added with SetupKey before the first event.
func NewUinput(name string, vendor, product uint16) (*Uinput, error) {
	fd, err := unix.Open(uinputPath, unix.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", uinputPath, err)
	}
	u := &Uinput{fd: fd}

	for _, ev := range []uint16{evSyn, evKey, evRel} {
		if err := unix.IoctlSetInt(fd, uiSetEvBit, int(ev)); err != nil {
			_ = unix.Close(fd)
			return nil, fmt.Errorf("UI_SET_EVBIT %d: %w", ev, err)
		}
	}
	for _, rel := range []uint16{relHWheel, relHWheelHiRes} {
		if err := unix.IoctlSetInt(fd, uiSetRelBit, int(rel)); err != nil {
			_ = unix.Close(fd)
			return nil, fmt.Errorf("UI_SET_RELBIT %d: %w", rel, err)
		}
	}

	var ud userDev
	copy(ud.Name[:len(ud.Name)-1], name)
	ud.Bustype = busUSB
	ud.Vendor = vendor
	ud.Product = product
	ud.Version = 1
	buf := (*(*[unsafe.Sizeof(userDev{})]byte)(unsafe.Pointer(&ud)))[:]
	if _, err := unix.Write(fd, buf); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("write uinput_user_dev: %w", err)
	}
	return u, nil
}

// SetupKey declares a key capability. Effective only before the first
// emitted event.
func (u *Uinput) SetupKey(code uint16) error {
	if err := unix.IoctlSetInt(u.fd, uiSetKeyBit, int(code)); err != nil {
		return fmt.Errorf("UI_SET_KEYBIT %d: %w", code, err)
	}
	return nil
}

// EmitScroll emits a REL_HWHEEL / REL_HWHEEL_HI_RES pair followed by a
// SYN_REPORT.
func (u *Uinput) EmitScroll(lo, hi int32) error {
	if err := u.ensureCreated(); err != nil {
		return err
	}
	if err := u.emit(evRel, relHWheel, lo); err != nil {
		return err
	}
	if err := u.emit(evRel, relHWheelHiRes, hi); err != nil {
		return err
	}
	return u.emit(evSyn, synReport, 0)
}

// EmitKeyClick emits a press and release of the key, each followed by a
// SYN_REPORT.
func (u *Uinput) EmitKeyClick(code uint16) error {
	if err := u.ensureCreated(); err != nil {
		return err
	}
	for _, value := range []int32{1, 0} {
		if err := u.emit(evKey, code, value); err != nil {
			return err
		}
		if err := u.emit(evSyn, synReport, 0); err != nil {
			return err
		}
	}
	return nil
}

// Close destroys the virtual device and releases the file descriptor.
func (u *Uinput) Close() error {
	_ = unix.IoctlSetInt(u.fd, uiDevDestroy, 0)
	return unix.Close(u.fd)
}

func (u *Uinput) ensureCreated() error {
	u.createOnce.Do(func() {
		if err := unix.IoctlSetInt(u.fd, uiDevCreate, 0); err != nil {
			u.createErr = fmt.Errorf("UI_DEV_CREATE: %w", err)
		}
	})
	return u.createErr
}

// emit writes one input_event. The kernel overwrites the timestamp.
func (u *Uinput) emit(typ, code uint16, value int32) error {
	ev := inputEvent{Type: typ, Code: code, Value: value}
	buf := (*(*[unsafe.Sizeof(inputEvent{})]byte)(unsafe.Pointer(&ev)))[:]
	if _, err := unix.Write(u.fd, buf); err != nil {
		return fmt.Errorf("write input_event: %w", err)
	}
	return nil
}
