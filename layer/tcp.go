package layer

import (
	"encoding/binary"
	"fmt"
)

// TCPHeaderMinSize is the fixed portion of the TCP header in bytes
// (data offset = 5, no options).
const TCPHeaderMinSize = 20

// tcpWordSize is the data-offset unit: one 32-bit word.
const tcpWordSize = 4

// tcpMaxOffset is the largest value representable in the 4-bit data
// offset field.
const tcpMaxOffset = 15

// TCP is a Transmission Control Protocol header (RFC 793).
//
// Wire format:
//
//	 0                   1                   2                   3
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|          Source Port          |       Destination Port        |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|                        Sequence Number                        |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|                    Acknowledgment Number                      |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|  Data |           |U|A|P|R|S|F|                               |
//	| Offset| Reserved  |R|C|S|S|Y|I|            Window             |
//	|       |           |G|K|H|T|N|N|                               |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|           Checksum            |         Urgent Pointer        |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|                    Options                    |    Padding    |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
type TCP struct {
	// SrcPort is the source port.
	SrcPort uint16
	// DstPort is the destination port.
	DstPort uint16
	// Seq is the sequence number.
	Seq uint32
	// Ack is the acknowledgment number.
	Ack uint32
	// Offset is the header size in 32-bit words (4 bits). The serialized
	// header must be exactly Offset*4 bytes; Bytes fails otherwise.
	Offset uint8
	// Flags holds the 12 flag bits.
	Flags TCPFlags
	// Window is the receive window size.
	Window uint16
	// Checksum covers the pseudo-header, header and payload.
	Checksum uint16
	// UrgPtr is the urgent pointer.
	UrgPtr uint16
	// Options holds the header options, in order.
	Options []TCPOption
}

// NewTCP returns a TCP header with the default data offset of 5 and no
// options.
func NewTCP() *TCP {
	return &TCP{Offset: 5}
}

// Parse decodes a TCP header from input. The options region size is
// (Offset-5)*4 bytes; it must be fully present and is consumed entirely.
func (t *TCP) Parse(input []byte) ([]byte, error) {
	if len(input) < TCPHeaderMinSize {
		return nil, incomplete(TCPHeaderMinSize)
	}

	t.SrcPort = binary.BigEndian.Uint16(input[0:2])
	t.DstPort = binary.BigEndian.Uint16(input[2:4])
	t.Seq = binary.BigEndian.Uint32(input[4:8])
	t.Ack = binary.BigEndian.Uint32(input[8:12])

	word := binary.BigEndian.Uint16(input[12:14])
	t.Offset = uint8(word >> 12)
	t.Flags = decodeTCPFlags(word)

	t.Window = binary.BigEndian.Uint16(input[14:16])
	t.Checksum = binary.BigEndian.Uint16(input[16:18])
	t.UrgPtr = binary.BigEndian.Uint16(input[18:20])

	if t.Offset < 5 {
		return nil, fmt.Errorf("invalid tcp data offset %d: %w", t.Offset, ErrParse)
	}

	rest := input[TCPHeaderMinSize:]
	t.Options = nil

	optionsSize := (int(t.Offset) - 5) * tcpWordSize
	if optionsSize > 0 {
		if optionsSize > len(rest) {
			return nil, fmt.Errorf("not enough data to read tcp options: %w", ErrParse)
		}

		options, err := parseTCPOptions(rest[:optionsSize])
		if err != nil {
			return nil, err
		}
		t.Options = options
		rest = rest[optionsSize:]
	}

	return rest, nil
}

// ParseTCPLayer parses a TCP header as a boxed Layer.
func ParseTCPLayer(input []byte) ([]byte, Layer, error) {
	t := new(TCP)
	rest, err := t.Parse(input)
	if err != nil {
		return nil, nil, err
	}
	return rest, t, nil
}

// encode serializes the header without checking the offset invariant.
func (t *TCP) encode() ([]byte, error) {
	buf := make([]byte, TCPHeaderMinSize)

	binary.BigEndian.PutUint16(buf[0:2], t.SrcPort)
	binary.BigEndian.PutUint16(buf[2:4], t.DstPort)
	binary.BigEndian.PutUint32(buf[4:8], t.Seq)
	binary.BigEndian.PutUint32(buf[8:12], t.Ack)
	binary.BigEndian.PutUint16(buf[12:14], uint16(t.Offset&0x0F)<<12|t.Flags.encode())
	binary.BigEndian.PutUint16(buf[14:16], t.Window)
	binary.BigEndian.PutUint16(buf[16:18], t.Checksum)
	binary.BigEndian.PutUint16(buf[18:20], t.UrgPtr)

	return encodeTCPOptions(buf, t.Options)
}

// Bytes serializes the header. The emitted byte count must equal
// Offset*4; a mismatch between Offset and the options is an error.
func (t *TCP) Bytes() ([]byte, error) {
	buf, err := t.encode()
	if err != nil {
		return nil, err
	}
	if len(buf) != int(t.Offset)*tcpWordSize {
		return nil, fmt.Errorf("tcp header is %d bytes but data offset %d requires %d: %w",
			len(buf), t.Offset, int(t.Offset)*tcpWordSize, ErrParse)
	}
	return buf, nil
}

// Len returns the serialized header length: 20 bytes plus the options.
func (t *TCP) Len() (int, error) {
	return TCPHeaderMinSize + tcpOptionsWireSize(t.Options), nil
}

// Finalize aligns the options to a 32-bit boundary by appending
// end-of-option-list options, recomputes the data offset, and, when the
// nearest preceding layer is IPv4 or IPv6, recomputes the checksum over
// the pseudo-header, the header (checksum zeroed) and the payload. With
// no IP layer before it the checksum is left untouched.
func (t *TCP) Finalize(prev, next []Layer) error {
	for (TCPHeaderMinSize+tcpOptionsWireSize(t.Options))%tcpWordSize != 0 {
		t.Options = append(t.Options, TCPOptionEndOfOptions{})
	}

	words := (TCPHeaderMinSize + tcpOptionsWireSize(t.Options)) / tcpWordSize
	if words > tcpMaxOffset {
		return fmt.Errorf("tcp header of %d words exceeds the 4-bit data offset: %w",
			words, ErrFinalize)
	}
	t.Offset = uint8(words)

	if len(prev) == 0 {
		return nil
	}

	hdr, err := t.Bytes()
	if err != nil {
		return fmt.Errorf("tcp finalize: %v: %w", err, ErrFinalize)
	}

	// Bytes 16-17 are the checksum itself. Cleared before summing.
	hdr[16] = 0x00
	hdr[17] = 0x00

	payload, err := BytesOfLayers(next)
	if err != nil {
		return fmt.Errorf("tcp finalize payload: %v: %w", err, ErrFinalize)
	}

	segmentLen := len(hdr) + len(payload)

	var pseudo []byte
	switch ip := prev[len(prev)-1].(type) {
	case *IPv4:
		if segmentLen > 0xFFFF {
			return fmt.Errorf("tcp segment length %d exceeds 16 bits: %w",
				segmentLen, ErrFinalize)
		}
		pseudo = ipv4PseudoHeader(ip, uint16(segmentLen))
	case *IPv6:
		pseudo = ipv6PseudoHeader(ip, uint32(segmentLen))
	default:
		return nil
	}

	sum := make([]byte, 0, len(pseudo)+segmentLen)
	sum = append(sum, pseudo...)
	sum = append(sum, hdr...)
	sum = append(sum, payload...)

	t.Checksum = Checksum(sum)
	return nil
}

// Clone returns an independent deep copy.
func (t *TCP) Clone() Layer {
	c := *t
	c.Options = cloneTCPOptions(t.Options)
	return &c
}
