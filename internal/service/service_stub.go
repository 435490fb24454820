//go:build !windows

// Package service provides a stub implementation for non-Windows platforms.
// On macOS and Linux the provider runs as a foreground process; the Windows
// service wrapper is not needed.
package service

import (
	"context"

	"go.uber.org/zap"
)

// Service is a no-op service wrapper for non-Windows platforms.
type Service struct {
	logger  *zap.Logger
	startFn func(ctx context.Context)
}

// New creates a stub service wrapper for non-Windows platforms.
func New(logger *zap.Logger, startFn func(ctx context.Context)) *Service {
	return &Service{
		logger:  logger,
		startFn: startFn,
	}
}

// IsWindowsService always returns false on non-Windows platforms.
func IsWindowsService() bool {
	return false
}

// Run executes the provider directly (no service wrapper needed on non-Windows).
func (s *Service) Run() error {
	s.startFn(context.Background())
	return nil
}
