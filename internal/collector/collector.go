// Package collector defines the Collector interface and the gopsutil-backed
// collectors that together form the in-process telemetry provider.
package collector

import "context"

// Collector is the interface that all telemetry collectors must implement.
// Each collector gathers one slice of the system snapshot.
type Collector interface {
	// Name returns the unique identifier for this collector.
	Name() string

	// Collect gathers the data and returns it.
	// The context allows for cancellation and timeout control.
	Collect(ctx context.Context) (interface{}, error)

	// IsAvailable checks if this collector can run on the current platform.
	// Collectors that return false will not be registered.
	IsAvailable() bool
}
