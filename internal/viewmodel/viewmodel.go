// Package viewmodel derives the aggregate values each telemetry view needs
// from a snapshot. Everything here is synchronous and side-effect free.
package viewmodel

import (
	"sort"
	"strings"

	"github.com/Guliveer/vitalis/monitor/internal/format"
	"github.com/Guliveer/vitalis/monitor/internal/models"
)

// HighUsageThreshold is the used-percent above which a disk is flagged.
const HighUsageThreshold = 90.0

// MemoryView holds derived RAM figures.
type MemoryView struct {
	TotalBytes     uint64
	UsedBytes      uint64
	AvailableBytes uint64
	UsedPercent    float64
}

// DiskView is a disk with its usage derived.
type DiskView struct {
	models.DiskInfo
	UsedBytes   uint64
	UsedPercent float64
	HighUsage   bool
	NVMe        bool
}

// NetworkView is an interface with presentation hints.
type NetworkView struct {
	models.NetworkInfo
	Wireless bool
}

// CPUView holds processor facts. When the provider did not report a logical
// core count, Threads is synthesized as twice the physical cores and
// ThreadsEstimated is set; callers must not present it as measured.
type CPUView struct {
	Brand            string
	Cores            int
	Threads          int
	ThreadsEstimated bool
	FrequencyMHz     float64
}

// GPUView holds the adapter name and its heuristic classification.
type GPUView struct {
	Name string
	Kind format.GPUKind
}

// HostView holds the operating system facts.
type HostView struct {
	OSName        string
	KernelVersion string
	Architecture  string
	HostName      string
	UptimeSeconds uint64
}

// Dashboard is every derived value for one snapshot.
type Dashboard struct {
	Host     HostView
	CPU      CPUView
	Memory   MemoryView
	GPU      GPUView
	Disks    []DiskView
	Networks []NetworkView
}

// Build derives the full dashboard for s.
func Build(s models.TelemetrySnapshot) Dashboard {
	return Dashboard{
		Host: HostView{
			OSName:        s.OSName,
			KernelVersion: s.KernelVersion,
			Architecture:  s.Architecture,
			HostName:      s.HostName,
			UptimeSeconds: s.UptimeSeconds,
		},
		CPU:      CPU(s),
		Memory:   Memory(s),
		GPU:      GPU(s),
		Disks:    Disks(s),
		Networks: Networks(s),
	}
}

// Memory derives RAM usage. A zero total yields 0%.
func Memory(s models.TelemetrySnapshot) MemoryView {
	used := min(s.MemoryUsedBytes, s.MemoryTotalBytes)
	return MemoryView{
		TotalBytes:     s.MemoryTotalBytes,
		UsedBytes:      used,
		AvailableBytes: s.MemoryTotalBytes - used,
		UsedPercent:    percent(used, s.MemoryTotalBytes),
	}
}

// Disks derives per-disk usage in provider order.
func Disks(s models.TelemetrySnapshot) []DiskView {
	out := make([]DiskView, 0, len(s.Disks))
	for _, d := range s.Disks {
		available := min(d.AvailableSpaceBytes, d.TotalSpaceBytes)
		used := d.TotalSpaceBytes - available
		pct := percent(used, d.TotalSpaceBytes)
		out = append(out, DiskView{
			DiskInfo:    d,
			UsedBytes:   used,
			UsedPercent: pct,
			HighUsage:   pct > HighUsageThreshold,
			NVMe:        strings.Contains(strings.ToLower(d.Name), "nvme"),
		})
	}
	return out
}

// Networks returns interfaces ordered by total received bytes, descending.
// The sort is stable so interfaces with equal totals keep provider order and
// do not jitter between polls.
func Networks(s models.TelemetrySnapshot) []NetworkView {
	out := make([]NetworkView, 0, len(s.Networks))
	for _, n := range s.Networks {
		out = append(out, NetworkView{
			NetworkInfo: n,
			Wireless:    isWireless(n.Name),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalReceivedBytes > out[j].TotalReceivedBytes
	})
	return out
}

// CPU derives processor facts.
func CPU(s models.TelemetrySnapshot) CPUView {
	v := CPUView{
		Brand:        s.CPUBrand,
		Cores:        s.CoreCount,
		Threads:      s.LogicalCoreCount,
		FrequencyMHz: s.CPUFrequencyMHz,
	}
	if v.Threads <= 0 {
		v.Threads = s.CoreCount * 2
		v.ThreadsEstimated = true
	}
	return v
}

// GPU classifies the snapshot's adapter.
func GPU(s models.TelemetrySnapshot) GPUView {
	return GPUView{Name: s.GPUName, Kind: format.ClassifyGPU(s.GPUName)}
}

func percent(part, total uint64) float64 {
	if total == 0 {
		return 0
	}
	p := float64(part) * 100 / float64(total)
	return max(0, min(p, 100))
}

func isWireless(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasPrefix(lower, "w") || strings.Contains(lower, "wifi")
}
