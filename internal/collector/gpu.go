// GPU collector: resolves the primary graphics adapter name.
// Uses ghw's PCI inventory first and falls back to the platform probe.
package collector

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jaypipes/ghw"
	"go.uber.org/zap"

	"github.com/Guliveer/vitalis/monitor/internal/platform"
)

// gpuNameTTL is how long a resolved adapter name is reused.
const gpuNameTTL = 30 * time.Second

// UnknownGPU is reported when no probe finds an adapter.
const UnknownGPU = "Unknown / Integrated"

// GPUCollector resolves the graphics adapter name.
type GPUCollector struct {
	platform platform.Platform
	logger   *zap.Logger
	lookup   func() (string, error)

	mu        sync.Mutex
	name      string
	updatedAt time.Time
}

// NewGPUCollector creates a GPU collector. The platform provides the
// fallback probe (lspci, CIM); pass nil to use ghw only.
func NewGPUCollector(p platform.Platform, logger *zap.Logger) *GPUCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GPUCollector{
		platform: p,
		logger:   logger,
		lookup:   ghwGPUName,
	}
}

// Name returns the collector identifier.
func (c *GPUCollector) Name() string { return "gpu" }

// Collect returns the adapter name, never failing: unresolved adapters are
// reported as UnknownGPU.
func (c *GPUCollector) Collect(ctx context.Context) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.name != "" && time.Since(c.updatedAt) < gpuNameTTL {
		return c.name, nil
	}

	name, err := c.lookup()
	if err != nil || name == "" {
		c.logger.Debug("GPU not found via ghw", zap.Error(err))
		name = c.platformFallback(ctx)
	}

	c.name = name
	c.updatedAt = time.Now()
	return name, nil
}

// IsAvailable returns true: always registered; reports a placeholder when
// nothing is found.
func (c *GPUCollector) IsAvailable() bool { return true }

func (c *GPUCollector) platformFallback(ctx context.Context) string {
	if c.platform == nil {
		return UnknownGPU
	}
	name, err := c.platform.GPUName(ctx)
	if err != nil || name == "" {
		c.logger.Debug("Platform GPU probe failed",
			zap.String("platform", c.platform.Name()),
			zap.Error(err))
		return UnknownGPU
	}
	return name
}

// ghwGPUName returns "<vendor> <product>" of the first graphics card.
func ghwGPUName() (string, error) {
	info, err := ghw.GPU()
	if err != nil {
		return "", err
	}
	for _, card := range info.GraphicsCards {
		if card.DeviceInfo == nil {
			continue
		}
		var vendor, product string
		if card.DeviceInfo.Vendor != nil {
			vendor = strings.TrimSpace(card.DeviceInfo.Vendor.Name)
		}
		if card.DeviceInfo.Product != nil {
			product = strings.TrimSpace(card.DeviceInfo.Product.Name)
		}
		if name := strings.TrimSpace(vendor + " " + product); name != "" {
			return name, nil
		}
	}
	return "", nil
}
