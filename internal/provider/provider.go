// Package provider defines the telemetry provider boundary: a single
// idempotent operation returning a full system snapshot.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/Guliveer/vitalis/monitor/internal/models"
)

// Provider returns the current system snapshot. Implementations may fail;
// callers treat every error as a transient fetch failure.
type Provider interface {
	GetSystemStats(ctx context.Context) (models.TelemetrySnapshot, error)
}

// Func adapts a function to the Provider interface.
type Func func(ctx context.Context) (models.TelemetrySnapshot, error)

// GetSystemStats calls f.
func (f Func) GetSystemStats(ctx context.Context) (models.TelemetrySnapshot, error) {
	return f(ctx)
}

// ErrInvalidSnapshot is returned when a provider answers with data that
// violates the snapshot invariants.
var ErrInvalidSnapshot = errors.New("invalid telemetry snapshot")

// Validate checks the snapshot invariants.
func Validate(s models.TelemetrySnapshot) error {
	if s.MemoryUsedBytes > s.MemoryTotalBytes {
		return fmt.Errorf("%w: memory used %d exceeds total %d",
			ErrInvalidSnapshot, s.MemoryUsedBytes, s.MemoryTotalBytes)
	}
	if s.CoreCount < 0 || s.LogicalCoreCount < 0 {
		return fmt.Errorf("%w: negative core count", ErrInvalidSnapshot)
	}
	if s.CPUFrequencyMHz < 0 {
		return fmt.Errorf("%w: negative cpu frequency", ErrInvalidSnapshot)
	}
	for _, d := range s.Disks {
		if d.AvailableSpaceBytes > d.TotalSpaceBytes {
			return fmt.Errorf("%w: disk %q available %d exceeds total %d",
				ErrInvalidSnapshot, d.MountPoint, d.AvailableSpaceBytes, d.TotalSpaceBytes)
		}
	}
	return nil
}

// Validated wraps p so invalid snapshots surface as errors.
func Validated(p Provider) Provider {
	return Func(func(ctx context.Context) (models.TelemetrySnapshot, error) {
		s, err := p.GetSystemStats(ctx)
		if err != nil {
			return models.TelemetrySnapshot{}, err
		}
		if err := Validate(s); err != nil {
			return models.TelemetrySnapshot{}, err
		}
		return s, nil
	})
}
