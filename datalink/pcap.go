package datalink

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/gopacket/pcap"

	"github.com/sharksforarms/hatchet/layer"
	"github.com/sharksforarms/hatchet/packet"
)

// Pcap is a live network interface opened through libpcap. It reads
// parsed packets and writes serialized ones.
type Pcap struct {
	handle *pcap.Handle
	parser *packet.PacketParser
}

// OpenPcap opens device for live capture with the default packet
// parser. A timeout of pcap.BlockForever blocks until a frame arrives.
func OpenPcap(device string, snaplen int32, promiscuous bool, timeout time.Duration) (*Pcap, error) {
	return OpenPcapWithParser(device, snaplen, promiscuous, timeout, packet.NewPacketParser())
}

// OpenPcapWithParser opens device for live capture; captured frames are
// parsed with the given parser.
func OpenPcapWithParser(
	device string,
	snaplen int32,
	promiscuous bool,
	timeout time.Duration,
	parser *packet.PacketParser,
) (*Pcap, error) {
	handle, err := pcap.OpenLive(device, snaplen, promiscuous, timeout)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", device, err)
	}
	return &Pcap{handle: handle, parser: parser}, nil
}

// SetBPFFilter compiles and installs a BPF filter expression, e.g.
// "tcp and port 80".
func (p *Pcap) SetBPFFilter(expr string) error {
	if err := p.handle.SetBPFFilter(expr); err != nil {
		return fmt.Errorf("set bpf filter %q: %w", expr, err)
	}
	return nil
}

// ReadPacket reads and parses the next captured frame. When the handle
// was opened with a finite timeout and no frame arrived within it, the
// error is ErrReadTimeout; callers polling for a deadline retry on it.
func (p *Pcap) ReadPacket() (*packet.Packet, error) {
	data, _, err := p.handle.ReadPacketData()
	if errors.Is(err, pcap.NextErrorTimeoutExpired) {
		return nil, ErrReadTimeout
	}
	if err != nil {
		return nil, fmt.Errorf("read from interface: %w", err)
	}

	_, pkt, err := packet.ParsePacket[layer.Ether](p.parser, data)
	if err != nil {
		return nil, err
	}
	return pkt, nil
}

// WritePacket serializes pkt and injects it on the interface.
func (p *Pcap) WritePacket(pkt *packet.Packet) error {
	data, err := pkt.Bytes()
	if err != nil {
		return err
	}
	if err := p.handle.WritePacketData(data); err != nil {
		return fmt.Errorf("write to interface: %w", err)
	}
	return nil
}

// Close releases the capture handle.
func (p *Pcap) Close() {
	p.handle.Close()
}
