//go:build windows

// Windows-specific Platform implementation.
// Uses PowerShell CIM queries for adapter names.
package platform

import (
	"context"
	"errors"
	"os/exec"
	"strings"
)

// WindowsPlatform implements Platform for Windows systems.
type WindowsPlatform struct{}

// New creates a new Windows platform instance.
func New() Platform {
	return &WindowsPlatform{}
}

// Name returns the platform identifier.
func (p *WindowsPlatform) Name() string { return "windows" }

// GPUName queries Win32_VideoController for the first adapter name.
func (p *WindowsPlatform) GPUName(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command",
		"(Get-CimInstance Win32_VideoController | Select-Object -First 1).Name").Output()
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(string(out))
	if name == "" {
		return "", errors.New("no video controller reported")
	}
	return name, nil
}
