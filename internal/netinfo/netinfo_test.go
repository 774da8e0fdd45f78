package netinfo

import (
	"context"
	"errors"
	"testing"

	psnet "github.com/shirou/gopsutil/v3/net"
)

const ipconfigOutput = `
Windows IP Configuration

   Host Name . . . . . . . . . . . . : DESKTOP
   Primary Dns Suffix  . . . . . . . :

Ethernet adapter Ethernet:

   Connection-specific DNS Suffix  . : lan
   Description . . . . . . . . . . . : Intel(R) Ethernet Connection
   Physical Address. . . . . . . . . : 00-1A-2B-3C-4D-5E
   DHCP Enabled. . . . . . . . . . . : Yes
   IPv4 Address. . . . . . . . . . . : 192.168.1.10(Preferred)
   Subnet Mask . . . . . . . . . . . : 255.255.255.0

Wireless LAN adapter Wi-Fi:

   Media State . . . . . . . . . . . : Media disconnected
   Physical Address. . . . . . . . . : a0-b1-c2-d3-e4-f5

Tunnel adapter Teredo:

   IPv4 Address. . . . . . . . . . . : 0.0.0.0
`

const ipAddrOutput = `1: lo: <LOOPBACK,UP,LOWER_UP> mtu 65536 qdisc noqueue state UNKNOWN group default qlen 1000
    link/loopback 00:00:00:00:00:00 brd 00:00:00:00:00:00
    inet 127.0.0.1/8 scope host lo
       valid_lft forever preferred_lft forever
2: eth0@if5: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 qdisc noqueue state UP group default
    link/ether 02:42:ac:11:00:02 brd ff:ff:ff:ff:ff:ff link-netnsid 0
    inet 172.17.0.2/16 brd 172.17.255.255 scope global eth0
       valid_lft forever preferred_lft forever
3: wlan0: <BROADCAST,MULTICAST> mtu 1500 qdisc noop state DOWN group default qlen 1000
    link/ether 3c:22:fb:01:02:03 brd ff:ff:ff:ff:ff:ff
`

const ifconfigOutput = `lo0: flags=8049<UP,LOOPBACK,RUNNING,MULTICAST> mtu 16384
	inet 127.0.0.1 netmask 0xff000000
	inet6 ::1 prefixlen 128
en0: flags=8863<UP,BROADCAST,SMART,RUNNING,SIMPLEX,MULTICAST> mtu 1500
	ether a4:83:e7:12:34:56
	inet6 fe80::1c2b:3d4e:5f60:7182%en0 prefixlen 64 secured scopeid 0x4
	inet 192.168.1.23 netmask 0xffffff00 broadcast 192.168.1.255
eth1      Link encap:Ethernet  HWaddr 08:00:27:aa:bb:cc
          inet addr:10.0.2.15  Bcast:10.0.2.255  Mask:255.255.255.0
`

func TestParseIPConfig(t *testing.T) {
	got := Summarize(ParseIPConfig(ipconfigOutput))

	want := []Adapter{
		{Name: "Ethernet", IPv4: "192.168.1.10", MAC: "00-1A-2B-3C-4D-5E", Up: true},
		{Name: "Wi-Fi", IPv4: NotFound, MAC: "A0-B1-C2-D3-E4-F5", Up: false},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d adapters, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("adapter %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseIPAddr(t *testing.T) {
	got := Summarize(ParseIPAddr(ipAddrOutput))

	if len(got) != 2 {
		t.Fatalf("expected 2 adapters (loopback dropped), got %+v", got)
	}
	eth := got[0]
	if eth.Name != "eth0" || eth.IPv4 != "172.17.0.2" || eth.MAC != "02-42-AC-11-00-02" || eth.MTU != 1500 || !eth.Up {
		t.Errorf("unexpected eth0: %+v", eth)
	}
	wlan := got[1]
	if wlan.Name != "wlan0" || wlan.IPv4 != NotFound || wlan.Up {
		t.Errorf("unexpected wlan0: %+v", wlan)
	}
}

func TestParseIfconfig(t *testing.T) {
	got := Summarize(ParseIfconfig(ifconfigOutput))

	if len(got) != 2 {
		t.Fatalf("expected 2 adapters, got %+v", got)
	}
	if got[0].Name != "en0" || got[0].IPv4 != "192.168.1.23" || got[0].MAC != "A4-83-E7-12-34-56" || got[0].MTU != 1500 {
		t.Errorf("unexpected en0: %+v", got[0])
	}
	if got[1].Name != "eth1" || got[1].IPv4 != "10.0.2.15" || got[1].MAC != "08-00-27-AA-BB-CC" {
		t.Errorf("unexpected eth1: %+v", got[1])
	}
}

func TestSummarizeEmpty(t *testing.T) {
	for _, raw := range [][]Adapter{
		nil,
		{{Name: "lo", IPv4: "127.0.0.1", MAC: "00:00:00:00:00:00"}},
		{{Name: "tun0", IPv4: "0.0.0.0"}},
	} {
		got := Summarize(raw)
		if len(got) != 1 || got[0].Name != NoConnection || got[0].IPv4 != NotAvailable || got[0].MAC != NotAvailable {
			t.Errorf("Summarize(%+v) = %+v, want placeholder", raw, got)
		}
	}
}

func TestNormalizeMAC(t *testing.T) {
	tests := map[string]string{
		"aa:bb:cc:dd:ee:ff": "AA-BB-CC-DD-EE-FF",
		"AA-BB-CC-DD-EE-FF": "AA-BB-CC-DD-EE-FF",
		"00:00:00:00:00:00": "",
		"aa:bb:cc":          "",
		"":                  "",
	}
	for in, want := range tests {
		if got := NormalizeMAC(in); got != want {
			t.Errorf("NormalizeMAC(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFromStats(t *testing.T) {
	stats := psnet.InterfaceStatList{
		{
			Name:         "lo",
			MTU:          65536,
			HardwareAddr: "",
			Flags:        []string{"up", "loopback"},
			Addrs:        psnet.InterfaceAddrList{{Addr: "127.0.0.1/8"}, {Addr: "::1/128"}},
		},
		{
			Name:         "eth0",
			MTU:          1500,
			HardwareAddr: "02:42:ac:11:00:02",
			Flags:        []string{"up", "broadcast"},
			Addrs:        psnet.InterfaceAddrList{{Addr: "fe80::42:acff:fe11:2/64"}, {Addr: "172.17.0.2/16"}},
		},
	}
	counters := []psnet.IOCountersStat{{Name: "eth0", BytesSent: 1024, BytesRecv: 2048}}

	got := Summarize(fromStats(stats, counters))
	if len(got) != 1 {
		t.Fatalf("expected only eth0, got %+v", got)
	}
	want := Adapter{Name: "eth0", IPv4: "172.17.0.2", MAC: "02-42-AC-11-00-02", MTU: 1500, Up: true, BytesSent: 1024, BytesRecv: 2048}
	if got[0] != want {
		t.Errorf("got %+v, want %+v", got[0], want)
	}
}

func TestCommandSource(t *testing.T) {
	var gotName string
	src := CommandSource{
		GOOS: "linux",
		run: func(ctx context.Context, name string, args ...string) (string, error) {
			gotName = name
			return ipAddrOutput, nil
		},
	}

	adapters, err := src.Adapters(context.Background())
	if err != nil {
		t.Fatalf("Adapters() error: %v", err)
	}
	if gotName != "ip" {
		t.Errorf("ran %q, want ip", gotName)
	}
	if len(Summarize(adapters)) != 2 {
		t.Errorf("unexpected adapters: %+v", adapters)
	}
}

func TestCommandSourceErrors(t *testing.T) {
	_, err := CommandSource{GOOS: "plan9"}.Adapters(context.Background())
	if !errors.Is(err, ErrUnsupportedOS) {
		t.Errorf("expected ErrUnsupportedOS, got %v", err)
	}

	boom := errors.New("boom")
	src := CommandSource{
		GOOS: "windows",
		run: func(ctx context.Context, name string, args ...string) (string, error) {
			return "", boom
		},
	}
	if _, err := src.Adapters(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected command error, got %v", err)
	}
}

func TestCommandFor(t *testing.T) {
	tests := map[string]string{
		"windows": "ipconfig /all",
		"linux":   "ip a",
		"darwin":  "ifconfig",
	}
	for goos, want := range tests {
		cmd, err := CommandFor(goos)
		if err != nil {
			t.Fatalf("CommandFor(%s): %v", goos, err)
		}
		if cmd.String() != want {
			t.Errorf("CommandFor(%s) = %q, want %q", goos, cmd.String(), want)
		}
	}
}

type stubSource struct {
	name     string
	adapters []Adapter
	err      error
	calls    *int
}

func (s stubSource) Name() string { return s.name }

func (s stubSource) Adapters(context.Context) ([]Adapter, error) {
	if s.calls != nil {
		*s.calls++
	}
	return s.adapters, s.err
}

func TestFallback(t *testing.T) {
	eth := []Adapter{{Name: "eth0", IPv4: "10.0.0.2"}}

	var second int
	f := Fallback{
		stubSource{name: "a", adapters: eth},
		stubSource{name: "b", calls: &second},
	}
	got, err := f.Adapters(context.Background())
	if err != nil || len(got) != 1 || got[0].Name != "eth0" {
		t.Fatalf("Adapters() = %v, %v", got, err)
	}
	if second != 0 {
		t.Error("second source should not run after a success")
	}
	if f.Name() != "a+b" {
		t.Errorf("Name() = %q", f.Name())
	}

	f = Fallback{
		stubSource{name: "a", err: errors.New("denied")},
		stubSource{name: "b"},
		stubSource{name: "c", adapters: eth},
	}
	got, err = f.Adapters(context.Background())
	if err != nil || len(got) != 1 {
		t.Errorf("expected fallback to third source, got %v, %v", got, err)
	}

	boom := errors.New("boom")
	f = Fallback{stubSource{name: "a", err: boom}}
	if _, err := f.Adapters(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected last error, got %v", err)
	}
}

func TestSourceFor(t *testing.T) {
	if _, ok := SourceFor("command").(CommandSource); !ok {
		t.Error("command should select CommandSource")
	}
	f, ok := SourceFor("system").(Fallback)
	if !ok || len(f) != 2 {
		t.Fatalf("system should select a fallback chain, got %T", SourceFor("system"))
	}
	if _, ok := f[0].(SystemSource); !ok {
		t.Error("system source must come first")
	}
}
