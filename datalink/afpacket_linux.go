//go:build linux

package datalink

import (
	"fmt"
	"net"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/sharksforarms/hatchet/layer"
	"github.com/sharksforarms/hatchet/packet"
)

// afPacketBufSize is the receive buffer size: large enough for any
// Ethernet frame including jumbo frames.
const afPacketBufSize = 65536

// AFPacket is a raw AF_PACKET socket bound to one network interface.
// It sees every frame on the interface and injects frames verbatim,
// without libpcap. Linux only; requires CAP_NET_RAW.
type AFPacket struct {
	fd      int
	ifIndex int
	hwAddr  net.HardwareAddr
	parser  *packet.PacketParser

	mu     sync.Mutex
	closed bool
}

// OpenAFPacket binds a raw packet socket to the named interface with
// the default packet parser.
func OpenAFPacket(ifName string) (*AFPacket, error) {
	return OpenAFPacketWithParser(ifName, packet.NewPacketParser())
}

// OpenAFPacketWithParser binds a raw packet socket to the named
// interface; received frames are parsed with the given parser.
func OpenAFPacketWithParser(ifName string, parser *packet.PacketParser) (*AFPacket, error) {
	ifi, err := net.InterfaceByName(ifName)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", ifName, ErrInterfaceNotFound)
	}

	// ETH_P_ALL captures every protocol; the protocol field of both the
	// socket and the bind address is in network byte order.
	proto := htons(unix.ETH_P_ALL)

	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW, int(proto))
	if err != nil {
		return nil, fmt.Errorf("open packet socket on %s: %w", ifName, err)
	}

	sll := &unix.SockaddrLinklayer{
		Protocol: proto,
		Ifindex:  ifi.Index,
	}
	if err := unix.Bind(fd, sll); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("bind packet socket to %s: %w", ifName, err)
	}

	return &AFPacket{
		fd:      fd,
		ifIndex: ifi.Index,
		hwAddr:  ifi.HardwareAddr,
		parser:  parser,
	}, nil
}

// HardwareAddr returns the bound interface's MAC address.
func (a *AFPacket) HardwareAddr() net.HardwareAddr {
	return a.hwAddr
}

// ReadPacket reads and parses the next frame on the interface.
func (a *AFPacket) ReadPacket() (*packet.Packet, error) {
	buf := make([]byte, afPacketBufSize)

	n, _, err := unix.Recvfrom(a.fd, buf, 0)
	if err != nil {
		return nil, fmt.Errorf("read from packet socket: %w", err)
	}

	_, pkt, err := packet.ParsePacket[layer.Ether](a.parser, buf[:n])
	if err != nil {
		return nil, err
	}
	return pkt, nil
}

// WritePacket serializes pkt and injects it on the interface.
func (a *AFPacket) WritePacket(pkt *packet.Packet) error {
	data, err := pkt.Bytes()
	if err != nil {
		return err
	}

	sll := &unix.SockaddrLinklayer{
		Protocol: htons(unix.ETH_P_ALL),
		Ifindex:  a.ifIndex,
		Halen:    6,
	}
	if err := unix.Sendto(a.fd, data, 0, sll); err != nil {
		return fmt.Errorf("write to packet socket: %w", err)
	}
	return nil
}

// Close releases the socket. Safe to call more than once.
func (a *AFPacket) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true

	if err := unix.Close(a.fd); err != nil {
		return fmt.Errorf("close packet socket: %w", err)
	}
	return nil
}

// htons converts a short to network byte order.
func htons(v uint16) uint16 {
	return v<<8 | v>>8
}
