//go:build linux

package datalink

import (
	"fmt"

	"github.com/songgao/water"

	"github.com/sharksforarms/hatchet/layer"
	"github.com/sharksforarms/hatchet/packet"
)

// tapBufSize is the per-read frame buffer size.
const tapBufSize = 65536

// Tap is a TAP virtual interface carrying Ethernet frames, backed by
// /dev/net/tun. Useful for exercising packet flows without touching a
// physical interface. Linux only.
type Tap struct {
	ifce   *water.Interface
	parser *packet.PacketParser
}

// OpenTap creates (or attaches to) the named TAP device with the
// default packet parser. An empty name lets the kernel pick one.
func OpenTap(name string) (*Tap, error) {
	return OpenTapWithParser(name, packet.NewPacketParser())
}

// OpenTapWithParser creates (or attaches to) the named TAP device;
// received frames are parsed with the given parser.
func OpenTapWithParser(name string, parser *packet.PacketParser) (*Tap, error) {
	ifce, err := water.New(water.Config{
		DeviceType:             water.TAP,
		PlatformSpecificParams: water.PlatformSpecificParams{Name: name},
	})
	if err != nil {
		return nil, fmt.Errorf("open tap device %q: %w", name, err)
	}
	return &Tap{ifce: ifce, parser: parser}, nil
}

// Name returns the actual device name, useful when the kernel chose it.
func (t *Tap) Name() string {
	return t.ifce.Name()
}

// ReadPacket reads and parses the next frame from the device.
func (t *Tap) ReadPacket() (*packet.Packet, error) {
	buf := make([]byte, tapBufSize)

	n, err := t.ifce.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("read from tap device: %w", err)
	}

	_, pkt, err := packet.ParsePacket[layer.Ether](t.parser, buf[:n])
	if err != nil {
		return nil, err
	}
	return pkt, nil
}

// WritePacket serializes pkt and writes it as one frame.
func (t *Tap) WritePacket(pkt *packet.Packet) error {
	data, err := pkt.Bytes()
	if err != nil {
		return err
	}
	if _, err := t.ifce.Write(data); err != nil {
		return fmt.Errorf("write to tap device: %w", err)
	}
	return nil
}

// Close shuts the device down.
func (t *Tap) Close() error {
	if err := t.ifce.Close(); err != nil {
		return fmt.Errorf("close tap device: %w", err)
	}
	return nil
}
