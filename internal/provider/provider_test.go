package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guliveer/vitalis/monitor/internal/models"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		snap    models.TelemetrySnapshot
		wantErr bool
	}{
		{"empty is valid", models.TelemetrySnapshot{}, false},
		{"memory over total", models.TelemetrySnapshot{MemoryTotalBytes: 1, MemoryUsedBytes: 2}, true},
		{"negative cores", models.TelemetrySnapshot{CoreCount: -1}, true},
		{"negative frequency", models.TelemetrySnapshot{CPUFrequencyMHz: -1}, true},
		{"disk available over total", models.TelemetrySnapshot{Disks: []models.DiskInfo{{TotalSpaceBytes: 1, AvailableSpaceBytes: 2}}}, true},
		{"consistent disk", models.TelemetrySnapshot{Disks: []models.DiskInfo{{TotalSpaceBytes: 2, AvailableSpaceBytes: 2}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.snap)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSnapshot)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidated(t *testing.T) {
	bad := Func(func(ctx context.Context) (models.TelemetrySnapshot, error) {
		return models.TelemetrySnapshot{MemoryTotalBytes: 1, MemoryUsedBytes: 5}, nil
	})
	_, err := Validated(bad).GetSystemStats(context.Background())
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	boom := errors.New("boom")
	failing := Func(func(ctx context.Context) (models.TelemetrySnapshot, error) {
		return models.TelemetrySnapshot{}, boom
	})
	_, err = Validated(failing).GetSystemStats(context.Background())
	assert.ErrorIs(t, err, boom)

	good := Func(func(ctx context.Context) (models.TelemetrySnapshot, error) {
		return models.TelemetrySnapshot{HostName: "ok"}, nil
	})
	s, err := Validated(good).GetSystemStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", s.HostName)
}

func TestClient_GetSystemStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, StatsPath, r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.TelemetrySnapshot{HostName: "remote", CoreCount: 4})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second, nil)
	s, err := c.GetSystemStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "remote", s.HostName)
	assert.Equal(t, 4, s.CoreCount)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, nil).GetSystemStats(context.Background())
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestClient_InvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, nil).GetSystemStats(context.Background())
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestClient_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewClient(srv.URL, time.Second, nil).GetSystemStats(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second, nil).GetSystemStats(context.Background())
	assert.Error(t, err)
}
