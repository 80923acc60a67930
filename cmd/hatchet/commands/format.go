package commands

import (
	"fmt"
	"strings"

	"github.com/sharksforarms/hatchet/layer"
	"github.com/sharksforarms/hatchet/packet"
)

// summarize renders a one-line packet summary for log output, e.g.
//
//	Ether 00:00:01:00:00:00 > fe:ff:20:00:01:00 IPv4 / IPv4 127.0.0.1 > 127.0.0.1 TCP ttl=64 / TCP 49683 > 80 A / Raw 1380B
func summarize(pkt *packet.Packet) string {
	parts := make([]string, 0, len(pkt.Layers()))
	for _, l := range pkt.Layers() {
		parts = append(parts, summarizeLayer(l))
	}
	return strings.Join(parts, " / ")
}

// summarizeLayer renders the fields worth seeing at a glance per layer.
func summarizeLayer(l layer.Layer) string {
	switch v := l.(type) {
	case *layer.Ether:
		return fmt.Sprintf("Ether %s > %s %s", v.Src, v.Dst, v.EtherType)
	case *layer.IPv4:
		return fmt.Sprintf("IPv4 %s > %s %s ttl=%d",
			formatIPv4(v.Src), formatIPv4(v.Dst), v.Protocol, v.TTL)
	case *layer.IPv6:
		return fmt.Sprintf("IPv6 %s hop=%d", v.NextHeader, v.HopLimit)
	case *layer.TCP:
		return fmt.Sprintf("TCP %d > %d %s", v.SrcPort, v.DstPort, v.Flags)
	case *layer.UDP:
		return fmt.Sprintf("UDP %d > %d", v.SrcPort, v.DstPort)
	case *layer.ICMPv4:
		return fmt.Sprintf("ICMPv4 %s code=%d", v.Type, v.Code)
	case *layer.Raw:
		return fmt.Sprintf("Raw %dB", len(v.Data))
	default:
		n, err := l.Len()
		if err != nil {
			return fmt.Sprintf("%T", l)
		}
		return fmt.Sprintf("%T %dB", l, n)
	}
}

// formatIPv4 renders a host-order IPv4 address in dotted-quad form.
func formatIPv4(addr uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d",
		uint8(addr>>24), uint8(addr>>16), uint8(addr>>8), uint8(addr))
}
