package input

// New returns the platform event sink: a uinput-backed device on Linux.
func New(name string, vendor, product uint16) (Sink, error) {
	return NewUinput(name, vendor, product)
}
