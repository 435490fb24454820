// Host collector: gathers hostname, kernel, architecture and uptime.
// Uses gopsutil for cross-platform host metrics and the OS info collector
// for a human readable OS name.
package collector

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
)

// HostResult holds the collected host facts.
type HostResult struct {
	OSName        string
	KernelVersion string
	Architecture  string
	HostName      string
	UptimeSeconds uint64
}

// HostCollector collects host identity and uptime.
type HostCollector struct {
	osinfo *OSInfoCollector
}

// NewHostCollector creates a new host collector.
func NewHostCollector() *HostCollector {
	return &HostCollector{osinfo: NewOSInfoCollector()}
}

// Name returns the collector identifier.
func (c *HostCollector) Name() string { return "host" }

// Collect gathers host facts. Missing strings fall back to "Unknown".
func (c *HostCollector) Collect(ctx context.Context) (interface{}, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, err
	}

	result := HostResult{
		OSName:        c.osinfo.OSName(ctx),
		KernelVersion: orUnknown(info.KernelVersion),
		Architecture:  info.KernelArch,
		HostName:      orUnknown(info.Hostname),
		UptimeSeconds: info.Uptime,
	}
	if result.Architecture == "" {
		result.Architecture = runtime.GOARCH
	}
	return result, nil
}

// IsAvailable returns true: host info is available on all platforms.
func (c *HostCollector) IsAvailable() bool { return true }

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
