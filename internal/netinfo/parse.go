package netinfo

import (
	"regexp"
	"strconv"
	"strings"
)

// blockParser parses command output made of per-adapter blocks. A header
// line starts a block; the first usable IPv4 and hardware address inside
// the block are recorded.
type blockParser struct {
	header *regexp.Regexp // group 1: adapter name
	ipv4   *regexp.Regexp // group 1: address
	mac    *regexp.Regexp // group 1: hardware address
	mtu    *regexp.Regexp // group 1: MTU, optional
	up     func(header, line string) (up, known bool)
}

func (p blockParser) parse(output string) []Adapter {
	var adapters []Adapter
	cur := -1

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")

		if m := p.header.FindStringSubmatch(line); m != nil {
			adapters = append(adapters, Adapter{Name: strings.TrimSpace(m[1])})
			cur = len(adapters) - 1
			a := &adapters[cur]
			if p.up != nil {
				if up, ok := p.up(line, ""); ok {
					a.Up = up
				}
			}
			if p.mtu != nil {
				if mm := p.mtu.FindStringSubmatch(line); mm != nil {
					a.MTU, _ = strconv.Atoi(mm[1])
				}
			}
			// Legacy ifconfig puts HWaddr on the header line, so fall through.
		}
		if cur < 0 {
			// Lines before the first adapter block belong to no adapter.
			continue
		}

		a := &adapters[cur]
		text := strings.TrimSpace(line)
		if a.IPv4 == "" {
			if m := p.ipv4.FindStringSubmatch(text); m != nil && usableIPv4(m[1]) {
				a.IPv4 = m[1]
			}
		}
		if a.MAC == "" {
			if m := p.mac.FindStringSubmatch(text); m != nil && NormalizeMAC(m[1]) != "" {
				a.MAC = m[1]
			}
		}
		if p.up != nil {
			if up, ok := p.up("", text); ok {
				a.Up = up
			}
		}
	}

	return adapters
}

var ipconfigParser = blockParser{
	header: regexp.MustCompile(`adapter ([^:]+):`),
	ipv4:   regexp.MustCompile(`IPv4 Address[.\s]*: (\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})`),
	mac:    regexp.MustCompile(`Physical Address[.\s]*: ([0-9a-fA-F]{2}(?:[-:][0-9a-fA-F]{2}){5})`),
	up: func(header, line string) (bool, bool) {
		if header != "" {
			return true, true
		}
		if strings.HasPrefix(line, "Media State") {
			return !strings.Contains(line, "disconnected"), true
		}
		return false, false
	},
}

var ipAddrParser = blockParser{
	header: regexp.MustCompile(`^\d+:\s+([^:@\s]+)(?:@[^:\s]+)?:\s+<`),
	ipv4:   regexp.MustCompile(`^inet (\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})`),
	mac:    regexp.MustCompile(`^link/\S+ ([0-9a-fA-F]{2}(?::[0-9a-fA-F]{2}){5})`),
	mtu:    regexp.MustCompile(`\bmtu (\d+)`),
	up:     flagsUp,
}

var ifconfigParser = blockParser{
	header: regexp.MustCompile(`^([A-Za-z0-9_.\-]+):? (?:flags=|\s*Link encap)`),
	ipv4:   regexp.MustCompile(`^inet (?:addr:)?(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})`),
	mac:    regexp.MustCompile(`(?:^ether|HWaddr) ([0-9a-fA-F]{2}(?::[0-9a-fA-F]{2}){5})`),
	mtu:    regexp.MustCompile(`\bmtu (\d+)`),
	up:     flagsUp,
}

var flagsPattern = regexp.MustCompile(`<([^>]*)>`)

// flagsUp reads the UP flag from a "<UP,BROADCAST,...>" header.
func flagsUp(header, _ string) (bool, bool) {
	if header == "" {
		return false, false
	}
	m := flagsPattern.FindStringSubmatch(header)
	if m == nil {
		return false, false
	}
	for _, f := range strings.Split(m[1], ",") {
		if f == "UP" {
			return true, true
		}
	}
	return false, true
}

// ParseIPConfig parses Windows "ipconfig /all" output.
func ParseIPConfig(output string) []Adapter {
	return ipconfigParser.parse(output)
}

// ParseIPAddr parses Linux "ip a" output.
func ParseIPAddr(output string) []Adapter {
	return ipAddrParser.parse(output)
}

// ParseIfconfig parses BSD/macOS (and legacy Linux) "ifconfig" output.
func ParseIfconfig(output string) []Adapter {
	return ifconfigParser.parse(output)
}
