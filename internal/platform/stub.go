//go:build !windows && !linux

package platform

import "context"

// StubPlatform is used where no command-line GPU probe exists.
type StubPlatform struct{}

// New creates a stub platform instance.
func New() Platform {
	return &StubPlatform{}
}

// Name returns the platform identifier.
func (p *StubPlatform) Name() string { return "stub" }

// GPUName always fails; callers fall back to a placeholder.
func (p *StubPlatform) GPUName(ctx context.Context) (string, error) {
	return "", ErrUnsupported
}
