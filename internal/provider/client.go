package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Guliveer/vitalis/monitor/internal/models"
)

const (
	// StatsPath is the provider endpoint serving a single snapshot.
	StatsPath = "/api/system-stats"

	// requestTimeout bounds a single request when the caller's context has
	// no earlier deadline.
	requestTimeout = 10 * time.Second

	// maxBodyBytes caps the snapshot payload read from the wire.
	maxBodyBytes = 8 << 20
)

// Client fetches snapshots from a remote provider over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a Client for the provider at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = requestTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// GetSystemStats performs a single GET against the provider.
func (c *Client) GetSystemStats(ctx context.Context) (models.TelemetrySnapshot, error) {
	url := c.baseURL + StatsPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.TelemetrySnapshot{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return models.TelemetrySnapshot{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return models.TelemetrySnapshot{}, &StatusError{StatusCode: resp.StatusCode}
	}

	var snap models.TelemetrySnapshot
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&snap); err != nil {
		return models.TelemetrySnapshot{}, fmt.Errorf("%w: decode: %v", ErrInvalidSnapshot, err)
	}

	c.logger.Debug("Fetched snapshot from provider",
		zap.String("url", url),
		zap.Int("disks", len(snap.Disks)),
		zap.Int("networks", len(snap.Networks)))

	return snap, nil
}

// StatusError indicates the provider answered with a non-2xx status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned %d", e.StatusCode)
}
