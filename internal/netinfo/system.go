package netinfo

import (
	"context"
	"fmt"
	"net/netip"

	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/henri123lemoine/geokit/internal/debug"
)

// SystemSource enumerates adapters through the operating system APIs.
type SystemSource struct{}

// Name implements Source.
func (SystemSource) Name() string { return "system" }

// Adapters implements Source.
func (SystemSource) Adapters(ctx context.Context) ([]Adapter, error) {
	defer debug.Timed("netinfo.SystemSource.Adapters")()

	stats, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}

	// Traffic counters are optional; some platforms do not provide them.
	counters, err := psnet.IOCountersWithContext(ctx, true)
	if err != nil {
		debug.Log("io counters unavailable: %v", err)
		counters = nil
	}

	return fromStats(stats, counters), nil
}

// fromStats converts gopsutil interface stats into adapters.
func fromStats(stats psnet.InterfaceStatList, counters []psnet.IOCountersStat) []Adapter {
	traffic := make(map[string]psnet.IOCountersStat, len(counters))
	for _, c := range counters {
		traffic[c.Name] = c
	}

	adapters := make([]Adapter, 0, len(stats))
	for _, st := range stats {
		a := Adapter{
			Name: st.Name,
			MAC:  st.HardwareAddr,
			MTU:  st.MTU,
		}
		for _, f := range st.Flags {
			if f == "up" {
				a.Up = true
			}
		}
		for _, addr := range st.Addrs {
			ip := addrIPv4(addr.Addr)
			if usableIPv4(ip) {
				a.IPv4 = ip
				break
			}
		}
		if c, ok := traffic[st.Name]; ok {
			a.BytesSent = c.BytesSent
			a.BytesRecv = c.BytesRecv
		}
		adapters = append(adapters, a)
	}
	return adapters
}

// addrIPv4 extracts the IPv4 address from "a.b.c.d/nn" or "a.b.c.d".
func addrIPv4(s string) string {
	if p, err := netip.ParsePrefix(s); err == nil {
		if p.Addr().Is4() {
			return p.Addr().String()
		}
		return ""
	}
	if a, err := netip.ParseAddr(s); err == nil && a.Is4() {
		return a.String()
	}
	return ""
}
