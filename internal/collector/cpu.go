// CPU collector: gathers processor model, core counts and clock speed.
// Uses gopsutil for cross-platform CPU metrics.
package collector

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
)

// CPUResult holds the collected processor facts.
type CPUResult struct {
	Brand        string
	Cores        int
	LogicalCores int
	FrequencyMHz float64
}

// CPUCollector collects processor information.
type CPUCollector struct{}

// NewCPUCollector creates a new CPU collector.
func NewCPUCollector() *CPUCollector {
	return &CPUCollector{}
}

// Name returns the collector identifier.
func (c *CPUCollector) Name() string { return "cpu" }

// Collect gathers the model name of the first package, physical and logical
// core counts and the reported frequency. A failed logical count is left at
// zero so consumers know to estimate it.
func (c *CPUCollector) Collect(ctx context.Context) (interface{}, error) {
	info, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return nil, err
	}

	result := CPUResult{Brand: "Unknown CPU"}
	if len(info) > 0 {
		if brand := strings.TrimSpace(info[0].ModelName); brand != "" {
			result.Brand = brand
		}
		result.FrequencyMHz = info[0].Mhz
	}

	// Non-fatal: leave counts at zero
	if physical, err := cpu.CountsWithContext(ctx, false); err == nil {
		result.Cores = physical
	}
	if logical, err := cpu.CountsWithContext(ctx, true); err == nil {
		result.LogicalCores = logical
	}

	return result, nil
}

// IsAvailable returns true: CPU info is available on all platforms.
func (c *CPUCollector) IsAvailable() bool { return true }
