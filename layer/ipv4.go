package layer

import (
	"encoding/binary"
	"fmt"
)

// IPv4HeaderMinSize is the fixed portion of the IPv4 header in bytes
// (IHL = 5, no options).
const IPv4HeaderMinSize = 20

// ipv4WordSize is the IHL unit: one 32-bit word.
const ipv4WordSize = 4

// IPv4 is an Internet Protocol version 4 header (RFC 791).
//
// Wire format:
//
//	 0                   1                   2                   3
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|Version|  IHL  |    DSCP   |ECN|         Total Length          |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|         Identification        |Flags|      Fragment Offset    |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|  Time to Live |    Protocol   |         Header Checksum       |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|                       Source Address                          |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|                    Destination Address                        |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|                    Options                    |    Padding    |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
type IPv4 struct {
	// Version is the IP version (4 bits).
	Version uint8
	// IHL is the header length in 32-bit words (4 bits). The serialized
	// header must be exactly IHL*4 bytes; Bytes fails otherwise.
	IHL uint8
	// DSCP is the Differentiated Services Code Point (6 bits).
	DSCP uint8
	// ECN is Explicit Congestion Notification (2 bits).
	ECN uint8
	// TotalLength is the datagram length in bytes, header included.
	TotalLength uint16
	// Identification supports fragment reassembly.
	Identification uint16
	// Flags holds the 3-bit fragmentation flags.
	Flags uint8
	// FragOffset is the 13-bit fragment offset in 8-byte units.
	FragOffset uint16
	// TTL is the time to live.
	TTL uint8
	// Protocol identifies the payload protocol.
	Protocol IPProtocol
	// Checksum is the header checksum.
	Checksum uint16
	// Src is the source address.
	Src uint32
	// Dst is the destination address.
	Dst uint32
	// Options holds the header options, in order.
	Options []IPv4Option
}

// NewIPv4 returns an IPv4 header with Version 4, IHL 5, source and
// destination 127.0.0.1, and the default Protocol of TCP.
func NewIPv4() *IPv4 {
	return &IPv4{
		Version:  4,
		IHL:      5,
		Protocol: IPProtocolTCP,
		Src:      0x7F000001,
		Dst:      0x7F000001,
	}
}

// Parse decodes an IPv4 header from input. The options region size is
// (IHL-5)*4 bytes; it must be fully present and is consumed entirely.
func (v *IPv4) Parse(input []byte) ([]byte, error) {
	if len(input) < IPv4HeaderMinSize {
		return nil, incomplete(IPv4HeaderMinSize)
	}

	v.Version = input[0] >> 4
	v.IHL = input[0] & 0x0F
	v.DSCP = input[1] >> 2
	v.ECN = input[1] & 0x03
	v.TotalLength = binary.BigEndian.Uint16(input[2:4])
	v.Identification = binary.BigEndian.Uint16(input[4:6])

	flagsFrag := binary.BigEndian.Uint16(input[6:8])
	v.Flags = uint8(flagsFrag >> 13)
	v.FragOffset = flagsFrag & 0x1FFF

	v.TTL = input[8]
	v.Protocol = IPProtocol(input[9])
	v.Checksum = binary.BigEndian.Uint16(input[10:12])
	v.Src = binary.BigEndian.Uint32(input[12:16])
	v.Dst = binary.BigEndian.Uint32(input[16:20])

	rest := input[IPv4HeaderMinSize:]
	v.Options = nil

	if v.IHL > 5 {
		optionsSize := (int(v.IHL) - 5) * ipv4WordSize
		if optionsSize > len(rest) {
			return nil, fmt.Errorf("not enough data to read ipv4 options: %w", ErrParse)
		}

		options, err := parseIPv4Options(rest[:optionsSize])
		if err != nil {
			return nil, err
		}
		v.Options = options
		rest = rest[optionsSize:]
	}

	return rest, nil
}

// ParseIPv4Layer parses an IPv4 header as a boxed Layer.
func ParseIPv4Layer(input []byte) ([]byte, Layer, error) {
	v := new(IPv4)
	rest, err := v.Parse(input)
	if err != nil {
		return nil, nil, err
	}
	return rest, v, nil
}

// encode serializes the header without checking the IHL invariant.
func (v *IPv4) encode() ([]byte, error) {
	buf := make([]byte, IPv4HeaderMinSize)

	buf[0] = v.Version<<4 | v.IHL&0x0F
	buf[1] = v.DSCP<<2 | v.ECN&0x03
	binary.BigEndian.PutUint16(buf[2:4], v.TotalLength)
	binary.BigEndian.PutUint16(buf[4:6], v.Identification)
	binary.BigEndian.PutUint16(buf[6:8], uint16(v.Flags&0x07)<<13|v.FragOffset&0x1FFF)
	buf[8] = v.TTL
	buf[9] = uint8(v.Protocol)
	binary.BigEndian.PutUint16(buf[10:12], v.Checksum)
	binary.BigEndian.PutUint32(buf[12:16], v.Src)
	binary.BigEndian.PutUint32(buf[16:20], v.Dst)

	var err error
	for i := range v.Options {
		buf, err = v.Options[i].encode(buf)
		if err != nil {
			return nil, err
		}
	}

	return buf, nil
}

// Bytes serializes the header. The emitted byte count must equal IHL*4;
// a mismatch between IHL and the options is an error.
func (v *IPv4) Bytes() ([]byte, error) {
	buf, err := v.encode()
	if err != nil {
		return nil, err
	}
	if len(buf) != int(v.IHL)*ipv4WordSize {
		return nil, fmt.Errorf("ipv4 header is %d bytes but ihl %d requires %d: %w",
			len(buf), v.IHL, int(v.IHL)*ipv4WordSize, ErrParse)
	}
	return buf, nil
}

// Len returns the serialized header length: 20 bytes plus the options.
func (v *IPv4) Len() (int, error) {
	n := IPv4HeaderMinSize
	for i := range v.Options {
		n += v.Options[i].wireSize()
	}
	return n, nil
}

// UpdateChecksum recomputes the header checksum: the checksum field is
// zeroed and the Internet checksum is taken over the serialized header.
func (v *IPv4) UpdateChecksum() error {
	hdr, err := v.Bytes()
	if err != nil {
		return fmt.Errorf("ipv4 checksum: %w", err)
	}

	// Bytes 10-11 are the checksum itself. Cleared before summing.
	hdr[10] = 0x00
	hdr[11] = 0x00

	v.Checksum = Checksum(hdr)
	return nil
}

// Finalize recomputes TotalLength as the header length plus the sum of
// the following layers' lengths, then recomputes the header checksum.
// IHL is not updated; Bytes reports any inconsistency with the options.
func (v *IPv4) Finalize(prev, next []Layer) error {
	own, err := v.Len()
	if err != nil {
		return fmt.Errorf("ipv4 length: %w", err)
	}
	payload, err := LengthOfLayers(next)
	if err != nil {
		return fmt.Errorf("ipv4 length: %w", err)
	}

	total := own + payload
	if total > 0xFFFF {
		return fmt.Errorf("ipv4 total length %d exceeds 16 bits: %w", total, ErrFinalize)
	}
	v.TotalLength = uint16(total)

	if err := v.UpdateChecksum(); err != nil {
		return fmt.Errorf("ipv4 finalize: %v: %w", err, ErrFinalize)
	}

	return nil
}

// Clone returns an independent deep copy.
func (v *IPv4) Clone() Layer {
	c := *v
	c.Options = cloneIPv4Options(v.Options)
	return &c
}
