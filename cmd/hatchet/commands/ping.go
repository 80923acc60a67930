package commands

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/sharksforarms/hatchet/datalink"
	"github.com/sharksforarms/hatchet/layer"
	"github.com/sharksforarms/hatchet/packet"
)

// pingPayload pads echo requests to a recognizable size.
var pingPayload = []byte("hatchet echo request payload....")

// pingCmd crafts ICMPv4 Echo Requests from raw layers, injects them on
// an interface and waits for the matching Echo Replies.
func pingCmd() *cobra.Command {
	var (
		iface   string
		dstIP   string
		srcIP   string
		dstMAC  string
		count   int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Send crafted ICMPv4 echo requests and await replies",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runPing(iface, srcIP, dstIP, dstMAC, count, timeout)
		},
	}

	cmd.Flags().StringVarP(&iface, "interface", "i", "", "network interface to send on")
	cmd.Flags().StringVar(&dstIP, "dst", "", "destination IPv4 address")
	cmd.Flags().StringVar(&srcIP, "src", "", "source IPv4 address")
	cmd.Flags().StringVar(&dstMAC, "dst-mac", "", "next-hop MAC address")
	cmd.Flags().IntVarP(&count, "count", "c", 4, "number of echo requests")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Second, "per-request reply timeout")
	cmd.MarkFlagRequired("interface")
	cmd.MarkFlagRequired("dst")
	cmd.MarkFlagRequired("src")
	cmd.MarkFlagRequired("dst-mac")

	return cmd
}

func runPing(iface, srcIP, dstIP, dstMAC string, count int, timeout time.Duration) error {
	src, err := parseIPv4Addr(srcIP)
	if err != nil {
		return err
	}
	dst, err := parseIPv4Addr(dstIP)
	if err != nil {
		return err
	}

	hwDst, err := net.ParseMAC(dstMAC)
	if err != nil || len(hwDst) != 6 {
		return fmt.Errorf("invalid destination mac %q", dstMAC)
	}

	ifi, err := net.InterfaceByName(iface)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", iface, datalink.ErrInterfaceNotFound)
	}
	if len(ifi.HardwareAddr) != 6 {
		return fmt.Errorf("interface %s has no usable mac address", iface)
	}

	// Replies are IPv4/ICMP, which the default chain leaves as Raw; one
	// binding routes them to the ICMPv4 codec.
	parser := packet.NewPacketParser()
	packet.Bind(parser, func(v *layer.IPv4, rest []byte) layer.ParseFunc {
		if v.Protocol == layer.IPProtocolICMP {
			return layer.ParseICMPv4Layer
		}
		return nil
	})

	handle, err := datalink.OpenPcapWithParser(iface, cfg.Capture.Snaplen, false, 100*time.Millisecond, parser)
	if err != nil {
		return err
	}
	defer handle.Close()

	// Only ICMP traffic from the target is interesting.
	if err := handle.SetBPFFilter(fmt.Sprintf("icmp and src host %s", dstIP)); err != nil {
		return err
	}

	ident := uint16(0x4854) // "HT"
	received := 0

	for seq := uint16(1); seq <= uint16(count); seq++ {
		echo := buildEchoRequest(ifi.HardwareAddr, hwDst, src, dst, ident, seq)
		if err := echo.Finalize(); err != nil {
			return fmt.Errorf("finalize echo request: %w", err)
		}

		sent := time.Now()
		if err := handle.WritePacket(echo); err != nil {
			return err
		}

		if awaitReply(handle, ident, seq, sent.Add(timeout)) {
			received++
			logger.Info("echo reply",
				slog.String("from", dstIP),
				slog.Int("seq", int(seq)),
				slog.Duration("rtt", time.Since(sent)),
			)
		} else {
			logger.Warn("echo timeout", slog.Int("seq", int(seq)))
		}
	}

	logger.Info("ping finished",
		slog.Int("sent", count),
		slog.Int("received", received),
	)
	return nil
}

// buildEchoRequest assembles Ether/IPv4/ICMPv4 layers for one request.
func buildEchoRequest(hwSrc, hwDst net.HardwareAddr, src, dst uint32, ident, seq uint16) *packet.Packet {
	ether := layer.NewEther()
	copy(ether.Src[:], hwSrc)
	copy(ether.Dst[:], hwDst)

	ip := layer.NewIPv4()
	ip.TTL = 64
	ip.Protocol = layer.IPProtocolICMP
	ip.Identification = seq
	ip.Src = src
	ip.Dst = dst

	icmp := layer.NewICMPv4()
	icmp.Type = layer.ICMPTypeEchoRequest
	icmp.Message = uint32(ident)<<16 | uint32(seq)
	icmp.Data = pingPayload

	return packet.FromLayers(ether, ip, icmp)
}

// awaitReply reads packets until the matching Echo Reply arrives or the
// deadline passes.
func awaitReply(handle *datalink.Pcap, ident, seq uint16, deadline time.Time) bool {
	for time.Now().Before(deadline) {
		pkt, err := handle.ReadPacket()
		if errors.Is(err, datalink.ErrReadTimeout) {
			continue
		}
		if err != nil {
			return false
		}

		for _, l := range pkt.Layers() {
			icmp, ok := l.(*layer.ICMPv4)
			if !ok {
				continue
			}
			if icmp.Type == layer.ICMPTypeEchoReply && icmp.Message == uint32(ident)<<16|uint32(seq) {
				return true
			}
		}
	}
	return false
}

// parseIPv4Addr parses a dotted-quad address into host order.
func parseIPv4Addr(s string) (uint32, error) {
	ip := net.ParseIP(s).To4()
	if ip == nil {
		return 0, fmt.Errorf("invalid ipv4 address %q", s)
	}
	return binary.BigEndian.Uint32(ip), nil
}
