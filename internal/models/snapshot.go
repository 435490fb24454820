// Package models defines the telemetry data structures shared by the provider,
// the poller and the view layers. Field names on the wire follow the provider's
// JSON shape so snapshots can travel over HTTP unchanged.
package models

import "time"

// TelemetrySnapshot is one internally consistent reading of system state.
// A snapshot is treated as immutable once a provider has returned it.
type TelemetrySnapshot struct {
	OSName        string `json:"os_name"`
	KernelVersion string `json:"kernel_version"`
	Architecture  string `json:"architecture"`
	HostName      string `json:"host_name"`
	UptimeSeconds uint64 `json:"uptime"`

	CPUBrand string `json:"cpu_brand"`
	// CoreCount is the number of physical cores.
	CoreCount int `json:"core_count"`
	// LogicalCoreCount is zero when the provider could not report it.
	LogicalCoreCount int     `json:"logical_core_count,omitempty"`
	CPUFrequencyMHz  float64 `json:"cpu_frequency"`

	MemoryTotalBytes uint64 `json:"memory_total"`
	MemoryUsedBytes  uint64 `json:"memory_used"`

	GPUName string `json:"gpu_name"`

	Disks    []DiskInfo    `json:"disks"`
	Networks []NetworkInfo `json:"networks"`

	CollectedAt time.Time `json:"collected_at"`
}

// DiskInfo represents a single mounted volume.
type DiskInfo struct {
	Name                string `json:"name"`
	MountPoint          string `json:"mount_point"`
	TotalSpaceBytes     uint64 `json:"total_space"`
	AvailableSpaceBytes uint64 `json:"available_space"`
	FileSystem          string `json:"file_system"`
}

// NetworkInfo represents a single network interface.
// ReceivedBytes and TransmittedBytes are deltas since the provider's previous
// refresh, not cumulative counters.
type NetworkInfo struct {
	Name                  string   `json:"name"`
	ReceivedBytes         uint64   `json:"received"`
	TransmittedBytes      uint64   `json:"transmitted"`
	TotalReceivedBytes    uint64   `json:"total_received"`
	TotalTransmittedBytes uint64   `json:"total_transmitted"`
	MACAddress            string   `json:"mac_address"`
	IPAddresses           []string `json:"ip_addresses"`
}

// Clone returns a deep copy so callers can hand a snapshot to another
// goroutine without sharing the slices.
func (s TelemetrySnapshot) Clone() TelemetrySnapshot {
	out := s
	out.Disks = append([]DiskInfo(nil), s.Disks...)
	out.Networks = make([]NetworkInfo, len(s.Networks))
	for i, n := range s.Networks {
		n.IPAddresses = append([]string(nil), n.IPAddresses...)
		out.Networks[i] = n
	}
	if s.Networks == nil {
		out.Networks = nil
	}
	return out
}
