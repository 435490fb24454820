package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guliveer/vitalis/monitor/internal/models"
)

func newTestProvider(collectors ...Collector) *Provider {
	r := NewRegistry(nil)
	for _, c := range collectors {
		r.Register(c)
	}
	p := NewProviderWithRegistry(r, nil)
	p.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return p
}

func TestProvider_AssemblesSnapshot(t *testing.T) {
	p := newTestProvider(
		&fakeCollector{name: "host", available: true, data: HostResult{
			OSName: "Arch Linux", KernelVersion: "6.9.1", Architecture: "x86_64",
			HostName: "box", UptimeSeconds: 3600,
		}},
		&fakeCollector{name: "cpu", available: true, data: CPUResult{
			Brand: "Ryzen", Cores: 8, LogicalCores: 16, FrequencyMHz: 3400,
		}},
		&fakeCollector{name: "memory", available: true, data: MemoryResult{Used: 4, Total: 8}},
		&fakeCollector{name: "gpu", available: true, data: "NVIDIA RTX 4070"},
		&fakeCollector{name: "disk", available: true, data: []models.DiskInfo{
			{Name: "/dev/nvme0n1p2", MountPoint: "/", TotalSpaceBytes: 100, AvailableSpaceBytes: 40},
		}},
		&fakeCollector{name: "network", available: true, data: []models.NetworkInfo{
			{Name: "eth0", TotalReceivedBytes: 10},
		}},
	)

	s, err := p.GetSystemStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Arch Linux", s.OSName)
	assert.Equal(t, "box", s.HostName)
	assert.Equal(t, uint64(3600), s.UptimeSeconds)
	assert.Equal(t, "Ryzen", s.CPUBrand)
	assert.Equal(t, 8, s.CoreCount)
	assert.Equal(t, 16, s.LogicalCoreCount)
	assert.Equal(t, uint64(4), s.MemoryUsedBytes)
	assert.Equal(t, uint64(8), s.MemoryTotalBytes)
	assert.Equal(t, "NVIDIA RTX 4070", s.GPUName)
	require.Len(t, s.Disks, 1)
	require.Len(t, s.Networks, 1)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), s.CollectedAt)
}

func TestProvider_PartialFailureUsesPlaceholders(t *testing.T) {
	p := newTestProvider(
		&fakeCollector{name: "memory", available: true, data: MemoryResult{Used: 1, Total: 2}},
		&fakeCollector{name: "host", available: true, err: errors.New("no host")},
	)

	s, err := p.GetSystemStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Unknown", s.OSName)
	assert.Equal(t, "Unknown CPU", s.CPUBrand)
	assert.Equal(t, UnknownGPU, s.GPUName)
	assert.NotEmpty(t, s.Architecture)
	assert.NotNil(t, s.Disks)
	assert.NotNil(t, s.Networks)
	assert.Equal(t, uint64(2), s.MemoryTotalBytes)
}

func TestProvider_AllFailed(t *testing.T) {
	boom := errors.New("boom")
	p := newTestProvider(&fakeCollector{name: "cpu", available: true, err: boom})

	_, err := p.GetSystemStats(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = newTestProvider().GetSystemStats(context.Background())
	assert.ErrorIs(t, err, ErrNoData)
}
