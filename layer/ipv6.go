package layer

import (
	"encoding/binary"
	"fmt"
)

// IPv6HeaderSize is the fixed IPv6 header size in bytes.
const IPv6HeaderSize = 40

// IPv6Address is a 128-bit IPv6 address, big-endian on the wire.
type IPv6Address [16]byte

// IPv6 is an Internet Protocol version 6 header (RFC 8200).
//
// Wire format:
//
//	 0                   1                   2                   3
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|Version|     DS    |ECN|           Flow Label                  |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|         Payload Length        |  Next Header  |   Hop Limit   |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|                         Source Address (128)                  |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|                      Destination Address (128)                |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
type IPv6 struct {
	// Version is the IP version (4 bits).
	Version uint8
	// DS is the Differentiated Services field (6 bits).
	DS uint8
	// ECN is Explicit Congestion Notification (2 bits).
	ECN uint8
	// FlowLabel is the 20-bit flow label.
	FlowLabel uint32
	// PayloadLength is the length of everything after this header.
	PayloadLength uint16
	// NextHeader identifies the following header's protocol.
	NextHeader IPProtocol
	// HopLimit is decremented by each forwarding node.
	HopLimit uint8
	// Src is the source address.
	Src IPv6Address
	// Dst is the destination address.
	Dst IPv6Address
}

// NewIPv6 returns an IPv6 header with NextHeader IPv6NoNxt and source
// and destination ff00::.
func NewIPv6() *IPv6 {
	v := &IPv6{NextHeader: IPProtocolIPv6NoNxt}
	v.Src[0] = 0xFF
	v.Dst[0] = 0xFF
	return v
}

// Parse decodes the 40-byte IPv6 header from input.
func (v *IPv6) Parse(input []byte) ([]byte, error) {
	if len(input) < IPv6HeaderSize {
		return nil, incomplete(IPv6HeaderSize)
	}

	v.Version = input[0] >> 4
	v.DS = (input[0]&0x0F)<<2 | input[1]>>6
	v.ECN = (input[1] >> 4) & 0x03
	v.FlowLabel = uint32(input[1]&0x0F)<<16 | uint32(input[2])<<8 | uint32(input[3])
	v.PayloadLength = binary.BigEndian.Uint16(input[4:6])
	v.NextHeader = IPProtocol(input[6])
	v.HopLimit = input[7]
	copy(v.Src[:], input[8:24])
	copy(v.Dst[:], input[24:40])

	return input[IPv6HeaderSize:], nil
}

// ParseIPv6Layer parses an IPv6 header as a boxed Layer.
func ParseIPv6Layer(input []byte) ([]byte, Layer, error) {
	v := new(IPv6)
	rest, err := v.Parse(input)
	if err != nil {
		return nil, nil, err
	}
	return rest, v, nil
}

// Bytes serializes the 40-byte IPv6 header.
func (v *IPv6) Bytes() ([]byte, error) {
	buf := make([]byte, IPv6HeaderSize)

	buf[0] = v.Version<<4 | v.DS>>2
	buf[1] = (v.DS&0x03)<<6 | (v.ECN&0x03)<<4 | uint8((v.FlowLabel>>16)&0x0F)
	buf[2] = uint8(v.FlowLabel >> 8)
	buf[3] = uint8(v.FlowLabel)
	binary.BigEndian.PutUint16(buf[4:6], v.PayloadLength)
	buf[6] = uint8(v.NextHeader)
	buf[7] = v.HopLimit
	copy(buf[8:24], v.Src[:])
	copy(buf[24:40], v.Dst[:])

	return buf, nil
}

// Len returns the fixed header size.
func (v *IPv6) Len() (int, error) {
	return IPv6HeaderSize, nil
}

// Finalize recomputes PayloadLength as the sum of the following layers'
// lengths. IPv6 has no header checksum.
func (v *IPv6) Finalize(prev, next []Layer) error {
	payload, err := LengthOfLayers(next)
	if err != nil {
		return fmt.Errorf("ipv6 payload length: %w", err)
	}
	if payload > 0xFFFF {
		return fmt.Errorf("ipv6 payload length %d exceeds 16 bits: %w", payload, ErrFinalize)
	}
	v.PayloadLength = uint16(payload)
	return nil
}

// Clone returns an independent copy.
func (v *IPv6) Clone() Layer {
	c := *v
	return &c
}
