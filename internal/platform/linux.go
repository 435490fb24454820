//go:build linux

package platform

import (
	"context"
	"os/exec"
)

// LinuxPlatform implements Platform using pciutils.
type LinuxPlatform struct{}

// New creates a new Linux platform instance.
func New() Platform {
	return &LinuxPlatform{}
}

// Name returns the platform identifier.
func (p *LinuxPlatform) Name() string { return "linux" }

// GPUName runs `lspci -mm` and returns the first display controller.
func (p *LinuxPlatform) GPUName(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "lspci", "-mm").Output()
	if err != nil {
		return "", err
	}
	return ParseLspci(string(out))
}
