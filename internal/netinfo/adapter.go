// Package netinfo enumerates network adapters for the network tab.
//
// Adapters come from a Source: the native SystemSource, or the
// CommandSource which scrapes ipconfig/ip/ifconfig output. Either way the
// result goes through Summarize, which applies the display rules.
package netinfo

import (
	"context"
	"net/netip"
	"regexp"
	"strings"
)

// Display placeholders.
const (
	NotFound     = "Not Found"
	NotAvailable = "N/A"
	NoConnection = "No Active Connection"
)

// Adapter is one network adapter as shown in the network tab.
type Adapter struct {
	Name      string
	IPv4      string
	MAC       string
	MTU       int
	Up        bool
	BytesSent uint64
	BytesRecv uint64
}

// HasIPv4 reports whether the adapter has a usable IPv4 address.
func (a Adapter) HasIPv4() bool {
	return a.IPv4 != "" && a.IPv4 != NotFound && a.IPv4 != NotAvailable
}

// Source enumerates adapters.
type Source interface {
	Name() string
	Adapters(ctx context.Context) ([]Adapter, error)
}

// Summarize applies the display rules to raw adapters: missing values
// become NotFound, hardware addresses are normalized, adapters with
// neither value are dropped. An empty result yields a single NoConnection
// placeholder.
func Summarize(raw []Adapter) []Adapter {
	var out []Adapter
	for _, a := range raw {
		if a.Name == "" {
			continue
		}
		if !usableIPv4(a.IPv4) {
			a.IPv4 = NotFound
		}
		a.MAC = NormalizeMAC(a.MAC)
		if a.MAC == "" {
			a.MAC = NotFound
		}
		if a.IPv4 == NotFound && a.MAC == NotFound {
			continue
		}
		out = append(out, a)
	}

	if len(out) == 0 {
		return []Adapter{{Name: NoConnection, IPv4: NotAvailable, MAC: NotAvailable}}
	}
	return out
}

// usableIPv4 reports whether s is an IPv4 address worth showing.
func usableIPv4(s string) bool {
	if s == "" || s == "0.0.0.0" || s == "127.0.0.1" {
		return false
	}
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is4()
}

var macPattern = regexp.MustCompile(`^[0-9A-Fa-f]{2}([-:][0-9A-Fa-f]{2}){5}$`)

// NormalizeMAC renders a hardware address as upper-case hex pairs
// separated by "-". Malformed and all-zero addresses return "".
func NormalizeMAC(s string) string {
	s = strings.TrimSpace(s)
	if !macPattern.MatchString(s) {
		return ""
	}
	s = strings.ToUpper(strings.ReplaceAll(s, ":", "-"))
	if s == "00-00-00-00-00-00" {
		return ""
	}
	return s
}

// Lookup returns the adapter with the given name.
func Lookup(adapters []Adapter, name string) (Adapter, bool) {
	for _, a := range adapters {
		if a.Name == name {
			return a, true
		}
	}
	return Adapter{}, false
}
