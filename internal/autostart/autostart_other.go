//go:build !linux && !darwin && !windows

package autostart

// New returns a Manager that reports ErrUnsupported.
func New(mode Mode) Manager {
	return unsupportedManager{name: "vitalis-monitor"}
}
