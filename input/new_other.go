//go:build !linux

package input

// New returns the platform event sink. Only Linux has a real event device;
// elsewhere events are discarded.
func New(name string, vendor, product uint16) (Sink, error) {
	return Nop{}, nil
}
