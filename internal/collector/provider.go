package collector

import (
	"context"
	"errors"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/Guliveer/vitalis/monitor/internal/models"
	"github.com/Guliveer/vitalis/monitor/internal/platform"
)

// ErrNoData is returned when every collector failed.
var ErrNoData = errors.New("no collector produced data")

// Provider is the in-process telemetry provider. It runs every registered
// collector and assembles their results into one snapshot.
type Provider struct {
	registry *Registry
	logger   *zap.Logger
	now      func() time.Time
}

// NewProvider creates a Provider with the standard collector set.
func NewProvider(logger *zap.Logger) *Provider {
	registry := NewRegistry(logger)
	registry.Register(NewHostCollector())
	registry.Register(NewCPUCollector())
	registry.Register(NewMemoryCollector())
	registry.Register(NewGPUCollector(platform.New(), logger))
	registry.Register(NewDiskCollector(logger))
	registry.Register(NewNetworkCollector())
	return NewProviderWithRegistry(registry, logger)
}

// NewProviderWithRegistry creates a Provider backed by a custom registry.
func NewProviderWithRegistry(registry *Registry, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		registry: registry,
		logger:   logger,
		now:      time.Now,
	}
}

// GetSystemStats collects a full snapshot. Individual collector failures
// leave their fields at placeholders; the call only fails when nothing at
// all could be collected.
func (p *Provider) GetSystemStats(ctx context.Context) (models.TelemetrySnapshot, error) {
	results, err := p.registry.CollectAll(ctx)
	if len(results) == 0 {
		if err == nil {
			err = ErrNoData
		}
		return models.TelemetrySnapshot{}, err
	}
	if err != nil {
		p.logger.Debug("Partial snapshot", zap.Error(err))
	}
	return p.assembleSnapshot(results), nil
}

// assembleSnapshot maps collector results into a unified snapshot.
func (p *Provider) assembleSnapshot(results map[string]interface{}) models.TelemetrySnapshot {
	snapshot := models.TelemetrySnapshot{
		OSName:        "Unknown",
		KernelVersion: "Unknown",
		Architecture:  runtime.GOARCH,
		HostName:      "Unknown",
		CPUBrand:      "Unknown CPU",
		GPUName:       UnknownGPU,
		Disks:         []models.DiskInfo{},
		Networks:      []models.NetworkInfo{},
		CollectedAt:   p.now().UTC(),
	}

	// Host
	if data, ok := results["host"]; ok {
		if h, ok := data.(HostResult); ok {
			snapshot.OSName = h.OSName
			snapshot.KernelVersion = h.KernelVersion
			snapshot.Architecture = h.Architecture
			snapshot.HostName = h.HostName
			snapshot.UptimeSeconds = h.UptimeSeconds
		}
	}

	// CPU
	if data, ok := results["cpu"]; ok {
		if cpu, ok := data.(CPUResult); ok {
			snapshot.CPUBrand = cpu.Brand
			snapshot.CoreCount = cpu.Cores
			snapshot.LogicalCoreCount = cpu.LogicalCores
			snapshot.CPUFrequencyMHz = cpu.FrequencyMHz
		}
	}

	// Memory
	if data, ok := results["memory"]; ok {
		if mem, ok := data.(MemoryResult); ok {
			snapshot.MemoryUsedBytes = mem.Used
			snapshot.MemoryTotalBytes = mem.Total
		}
	}

	// GPU
	if data, ok := results["gpu"]; ok {
		if name, ok := data.(string); ok && name != "" {
			snapshot.GPUName = name
		}
	}

	// Disk
	if data, ok := results["disk"]; ok {
		if disks, ok := data.([]models.DiskInfo); ok {
			snapshot.Disks = disks
		}
	}

	// Network
	if data, ok := results["network"]; ok {
		if nets, ok := data.([]models.NetworkInfo); ok {
			snapshot.Networks = nets
		}
	}

	return snapshot
}
