// Package platform provides an OS abstraction layer for hardware facts that
// gopsutil and ghw cannot always supply, chiefly the graphics adapter name.
// Each supported OS implements the Platform interface.
package platform

import (
	"context"
	"errors"
)

// ErrUnsupported is returned when the current OS has no fallback probe.
var ErrUnsupported = errors.New("not supported on this platform")

// Platform provides OS-specific functionality beyond what gopsutil offers.
type Platform interface {
	// GPUName returns a "<vendor> <model>" description of the primary
	// graphics adapter.
	GPUName(ctx context.Context) (string, error)

	// Name returns the platform name (windows, linux, stub).
	Name() string
}
