package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Guliveer/vitalis/monitor/internal/config"
	"github.com/Guliveer/vitalis/monitor/internal/detail"
	"github.com/Guliveer/vitalis/monitor/internal/models"
	"github.com/Guliveer/vitalis/monitor/internal/provider"
	"github.com/Guliveer/vitalis/monitor/internal/tui"
)

func sampleSnapshot() models.TelemetrySnapshot {
	return models.TelemetrySnapshot{
		OSName:           "Arch Linux",
		KernelVersion:    "6.9.1",
		Architecture:     "x86_64",
		HostName:         "workstation",
		UptimeSeconds:    3600,
		CPUBrand:         "AMD Ryzen 7",
		CoreCount:        8,
		LogicalCoreCount: 16,
		CPUFrequencyMHz:  3400,
		MemoryTotalBytes: 16 << 30,
		MemoryUsedBytes:  4 << 30,
		GPUName:          "Intel Iris Xe Graphics",
		Disks: []models.DiskInfo{
			{Name: "/dev/nvme0n1p2", MountPoint: "/", TotalSpaceBytes: 100, AvailableSpaceBytes: 5},
		},
		Networks: []models.NetworkInfo{
			{Name: "wlp2s0", ReceivedBytes: 1024},
		},
	}
}

func fakeProvider(t *testing.T, snap models.TelemetrySnapshot) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != provider.StatsPath {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(snap)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("VITALIS_PROVIDER_URL", "")
	t.Setenv("VITALIS_LISTEN", "")
	t.Setenv("VITALIS_LOG_LEVEL", "")

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"vitalis-monitor", "--config", ""}, args...))
	return out.String(), err
}

func TestSnapshotJSON(t *testing.T) {
	srv := fakeProvider(t, sampleSnapshot())

	out, err := runApp(t, "--provider", srv.URL, "snapshot", "--json")
	require.NoError(t, err)

	var got models.TelemetrySnapshot
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "workstation", got.HostName)
	assert.Equal(t, 16, got.LogicalCoreCount)
}

func TestSnapshotText(t *testing.T) {
	srv := fakeProvider(t, sampleSnapshot())

	out, err := runApp(t, "--provider", srv.URL, "snapshot")
	require.NoError(t, err)
	assert.Contains(t, out, "Operating System")
	assert.Contains(t, out, "Arch Linux")
	assert.Contains(t, out, "Integrated")
	assert.Contains(t, out, "[nvme, high usage]")
	assert.Contains(t, out, "wireless")
	assert.Contains(t, out, "1 KB/s")
}

func TestSnapshotInvalidData(t *testing.T) {
	bad := sampleSnapshot()
	bad.MemoryUsedBytes = bad.MemoryTotalBytes + 1
	srv := fakeProvider(t, bad)

	_, err := runApp(t, "--provider", srv.URL, "snapshot")
	assert.ErrorIs(t, err, provider.ErrInvalidSnapshot)
}

func TestDetailCommand(t *testing.T) {
	srv := fakeProvider(t, sampleSnapshot())

	for name, args := range map[string][]string{
		"flag first":    {"detail", "--json", "cpu"},
		"flag trailing": {"detail", "cpu", "--json"},
	} {
		t.Run(name, func(t *testing.T) {
			out, err := runApp(t, append([]string{"--provider", srv.URL}, args...)...)
			require.NoError(t, err)

			var rows []detail.Row
			require.NoError(t, json.Unmarshal([]byte(out), &rows))
			require.Len(t, rows, 4)
			assert.Equal(t, "AMD Ryzen 7", rows[0].Value)
			assert.True(t, rows[0].Highlighted)
			assert.Equal(t, "Threads", rows[2].Label)
		})
	}
}

func TestDetailCommand_Text(t *testing.T) {
	srv := fakeProvider(t, sampleSnapshot())

	out, err := runApp(t, "--provider", srv.URL, "detail", "cpu")
	require.NoError(t, err)
	assert.Contains(t, out, "Processor")
	assert.Contains(t, out, "AMD Ryzen 7")
}

func TestDetailArgs(t *testing.T) {
	key, asJSON := detailArgs([]string{"gpu", "--json"})
	assert.Equal(t, "gpu", key)
	assert.True(t, asJSON)

	key, asJSON = detailArgs([]string{"os"})
	assert.Equal(t, "os", key)
	assert.False(t, asJSON)

	key, _ = detailArgs(nil)
	assert.Empty(t, key)
}

func TestDetailCommand_UnknownCategory(t *testing.T) {
	_, err := runApp(t, "detail", "disk")
	assert.ErrorContains(t, err, "unknown category")
}

func TestInvalidProviderURL(t *testing.T) {
	_, err := runApp(t, "--provider", "ftp://nowhere", "snapshot")
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestInstall_InvalidMode(t *testing.T) {
	_, err := runApp(t, "install", "--mode", "global")
	assert.ErrorContains(t, err, "unknown install mode")

	_, err = runApp(t, "uninstall", "--mode", "global")
	assert.ErrorContains(t, err, "unknown install mode")
}

func TestWatchOptions_UsesConfiguredTimeout(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Provider.Timeout = config.Duration{Duration: 750 * time.Millisecond}
	cfg.Views.Network = config.Duration{Duration: 3 * time.Second}
	e := &env{cfg: cfg, logger: zap.NewNop()}

	opts := e.watchOptions(provider.Func(func(ctx context.Context) (models.TelemetrySnapshot, error) {
		return sampleSnapshot(), nil
	}), tui.TabNetwork)

	assert.Equal(t, 750*time.Millisecond, opts.Timeout)
	assert.Equal(t, 3*time.Second, opts.Intervals[tui.TabNetwork])
	assert.Equal(t, tui.TabNetwork, opts.Tab)
	require.NotNil(t, opts.Fetch)
}

func TestParseTab(t *testing.T) {
	tab, err := parseTab("storage")
	require.NoError(t, err)
	assert.Equal(t, tui.TabStorage, tab)

	_, err = parseTab("gpu")
	assert.Error(t, err)
}

func TestWriteDetail(t *testing.T) {
	var out bytes.Buffer
	writeDetail(&out, detail.RAM, detail.Project(sampleSnapshot(), detail.RAM))

	assert.Contains(t, out.String(), "Memory - Physical memory usage")
	assert.Contains(t, out.String(), "* Total")
	assert.Contains(t, out.String(), "25.0%")
}
