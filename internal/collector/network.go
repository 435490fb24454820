// Network collector: gathers per-interface counters, addresses and the
// byte deltas since the previous collection.
// Uses gopsutil for cross-platform network metrics.
package collector

import (
	"context"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v3/net"

	"github.com/Guliveer/vitalis/monitor/internal/models"
)

type ioTotals struct {
	rx uint64
	tx uint64
}

// NetworkCollector collects per-interface I/O. It remembers the previous
// counters of every interface to compute deltas between collections.
type NetworkCollector struct {
	mu   sync.Mutex
	last map[string]ioTotals
}

// NewNetworkCollector creates a new network collector.
func NewNetworkCollector() *NetworkCollector {
	return &NetworkCollector{last: make(map[string]ioTotals)}
}

// Name returns the collector identifier.
func (c *NetworkCollector) Name() string { return "network" }

// Collect gathers one NetworkInfo per interface in provider order. An
// interface seen for the first time reports zero deltas while its baseline
// is established; a counter that went backwards (reset) also reports zero.
func (c *NetworkCollector) Collect(ctx context.Context) (interface{}, error) {
	counters, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		return nil, err
	}

	// Addresses are best effort
	addrs := make(map[string]net.InterfaceStat)
	if ifaces, err := net.InterfacesWithContext(ctx); err == nil {
		for _, iface := range ifaces {
			addrs[iface.Name] = iface
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]bool, len(counters))
	results := make([]models.NetworkInfo, 0, len(counters))
	for _, ctr := range counters {
		seen[ctr.Name] = true
		info := models.NetworkInfo{
			Name:                  ctr.Name,
			TotalReceivedBytes:    ctr.BytesRecv,
			TotalTransmittedBytes: ctr.BytesSent,
			IPAddresses:           []string{},
		}

		if prev, ok := c.last[ctr.Name]; ok {
			info.ReceivedBytes = delta(ctr.BytesRecv, prev.rx)
			info.TransmittedBytes = delta(ctr.BytesSent, prev.tx)
		}
		c.last[ctr.Name] = ioTotals{rx: ctr.BytesRecv, tx: ctr.BytesSent}

		if iface, ok := addrs[ctr.Name]; ok {
			info.MACAddress = iface.HardwareAddr
			for _, a := range iface.Addrs {
				info.IPAddresses = append(info.IPAddresses, stripPrefix(a.Addr))
			}
		}
		results = append(results, info)
	}

	// Forget interfaces that disappeared so a re-plugged one starts fresh.
	for name := range c.last {
		if !seen[name] {
			delete(c.last, name)
		}
	}

	return results, nil
}

// IsAvailable returns true: network metrics are available on all platforms.
func (c *NetworkCollector) IsAvailable() bool { return true }

func delta(current, previous uint64) uint64 {
	if current < previous {
		return 0
	}
	return current - previous
}

// stripPrefix turns "192.168.1.2/24" into "192.168.1.2".
func stripPrefix(addr string) string {
	if i := strings.IndexByte(addr, '/'); i >= 0 {
		return addr[:i]
	}
	return addr
}
