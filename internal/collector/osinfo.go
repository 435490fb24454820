// OS info: resolves a human readable operating system name.
// Uses platform-specific sources:
//   - Linux: /etc/os-release PRETTY_NAME
//   - macOS: sw_vers
//   - others: gopsutil platform name
//
// The name is cached since it does not change while the process runs.
package collector

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v3/host"
)

// osReleasePath is a variable so tests can point it at a fixture.
var osReleasePath = "/etc/os-release"

// OSInfoCollector resolves and caches the OS name.
type OSInfoCollector struct {
	name string
	once sync.Once
}

// NewOSInfoCollector creates a new OS info resolver.
func NewOSInfoCollector() *OSInfoCollector {
	return &OSInfoCollector{}
}

// OSName returns the cached OS name, resolving it on first use.
func (c *OSInfoCollector) OSName(ctx context.Context) string {
	c.once.Do(func() {
		c.name = resolveOSName(ctx)
	})
	return c.name
}

func resolveOSName(ctx context.Context) string {
	var name string
	switch runtime.GOOS {
	case "linux":
		name = linuxOSName()
	case "darwin":
		name = darwinOSName(ctx)
	}
	if name != "" {
		return name
	}

	if info, err := host.InfoWithContext(ctx); err == nil && info.Platform != "" {
		return strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
	}
	return "Unknown"
}

// linuxOSName prefers PRETTY_NAME and falls back to NAME.
func linuxOSName() string {
	data, err := os.ReadFile(osReleasePath)
	if err != nil {
		return ""
	}
	fields := parseKeyValueFile(string(data))
	if pretty := fields["PRETTY_NAME"]; pretty != "" {
		return pretty
	}
	return fields["NAME"]
}

// darwinOSName combines sw_vers product name and version, e.g. "macOS 14.2.1".
func darwinOSName(ctx context.Context) string {
	name, err := exec.CommandContext(ctx, "sw_vers", "-productName").Output()
	if err != nil {
		return ""
	}
	version, _ := exec.CommandContext(ctx, "sw_vers", "-productVersion").Output()
	return strings.TrimSpace(strings.TrimSpace(string(name)) + " " + strings.TrimSpace(string(version)))
}

// parseKeyValueFile parses KEY=VALUE lines (like /etc/os-release), stripping
// surrounding quotes from values.
func parseKeyValueFile(content string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		fields[key] = strings.Trim(value, `"'`)
	}
	return fields
}
