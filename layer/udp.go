package layer

import (
	"encoding/binary"
	"fmt"
)

// UDPHeaderSize is the fixed UDP header size in bytes.
const UDPHeaderSize = 8

// UDP is a User Datagram Protocol header (RFC 768).
//
// Wire format:
//
//	 0                   1                   2                   3
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|          Source Port          |       Destination Port        |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|            Length             |            Checksum           |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
type UDP struct {
	// SrcPort is the source port.
	SrcPort uint16
	// DstPort is the destination port.
	DstPort uint16
	// Length is the datagram length in bytes, header included.
	Length uint16
	// Checksum covers the pseudo-header, header and payload.
	Checksum uint16
}

// NewUDP returns a zero-valued UDP header.
func NewUDP() *UDP {
	return &UDP{}
}

// Parse decodes the 8-byte UDP header from input.
func (u *UDP) Parse(input []byte) ([]byte, error) {
	if len(input) < UDPHeaderSize {
		return nil, incomplete(UDPHeaderSize)
	}

	u.SrcPort = binary.BigEndian.Uint16(input[0:2])
	u.DstPort = binary.BigEndian.Uint16(input[2:4])
	u.Length = binary.BigEndian.Uint16(input[4:6])
	u.Checksum = binary.BigEndian.Uint16(input[6:8])

	return input[UDPHeaderSize:], nil
}

// ParseUDPLayer parses a UDP header as a boxed Layer.
func ParseUDPLayer(input []byte) ([]byte, Layer, error) {
	u := new(UDP)
	rest, err := u.Parse(input)
	if err != nil {
		return nil, nil, err
	}
	return rest, u, nil
}

// Bytes serializes the 8-byte UDP header.
func (u *UDP) Bytes() ([]byte, error) {
	buf := make([]byte, UDPHeaderSize)
	binary.BigEndian.PutUint16(buf[0:2], u.SrcPort)
	binary.BigEndian.PutUint16(buf[2:4], u.DstPort)
	binary.BigEndian.PutUint16(buf[4:6], u.Length)
	binary.BigEndian.PutUint16(buf[6:8], u.Checksum)
	return buf, nil
}

// Len returns the fixed header size.
func (u *UDP) Len() (int, error) {
	return UDPHeaderSize, nil
}

// Finalize recomputes Length as 8 plus the payload size and, when the
// nearest preceding layer is IPv4 or IPv6, recomputes the checksum over
// the pseudo-header, the header (checksum zeroed) and the payload. With
// no IP layer before it the checksum is left untouched.
func (u *UDP) Finalize(prev, next []Layer) error {
	payload, err := BytesOfLayers(next)
	if err != nil {
		return fmt.Errorf("udp finalize payload: %v: %w", err, ErrFinalize)
	}

	datagramLen := UDPHeaderSize + len(payload)
	if datagramLen > 0xFFFF {
		return fmt.Errorf("udp datagram length %d exceeds 16 bits: %w",
			datagramLen, ErrFinalize)
	}
	u.Length = uint16(datagramLen)

	if len(prev) == 0 {
		return nil
	}

	var pseudo []byte
	switch ip := prev[len(prev)-1].(type) {
	case *IPv4:
		pseudo = ipv4PseudoHeader(ip, uint16(datagramLen))
	case *IPv6:
		pseudo = ipv6PseudoHeader(ip, uint32(datagramLen))
	default:
		return nil
	}

	hdr, err := u.Bytes()
	if err != nil {
		return fmt.Errorf("udp finalize: %v: %w", err, ErrFinalize)
	}

	// Bytes 6-7 are the checksum itself. Cleared before summing.
	hdr[6] = 0x00
	hdr[7] = 0x00

	sum := make([]byte, 0, len(pseudo)+datagramLen)
	sum = append(sum, pseudo...)
	sum = append(sum, hdr...)
	sum = append(sum, payload...)

	u.Checksum = Checksum(sum)
	return nil
}

// Clone returns an independent copy.
func (u *UDP) Clone() Layer {
	c := *u
	return &c
}
