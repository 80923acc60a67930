package layer

import (
	"encoding/binary"
	"fmt"
)

// ICMPv4HeaderSize is the fixed ICMPv4 header size in bytes: type,
// code, checksum and the 4-byte rest-of-header message field.
const ICMPv4HeaderSize = 8

// ICMPv4 is an Internet Control Message Protocol header (RFC 792).
//
// Wire format:
//
//	 0                   1                   2                   3
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|      Type     |      Code     |            Checksum           |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|                            Message                            |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|                             Data                              |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//
// Data consumes all remaining input bytes; ICMPv4 is always the last
// parsed layer of its chain.
type ICMPv4 struct {
	// Type is the ICMP message type.
	Type ICMPType
	// Code is the message subtype.
	Code uint8
	// Checksum covers the entire ICMP message.
	Checksum uint16
	// Message is the type-specific rest-of-header word (for echo
	// messages: identifier and sequence number).
	Message uint32
	// Data is the message payload.
	Data []byte
}

// NewICMPv4 returns an ICMPv4 header with the default type of EchoReply.
func NewICMPv4() *ICMPv4 {
	return &ICMPv4{Type: ICMPTypeEchoReply}
}

// Parse decodes an ICMPv4 message from input, consuming all of it.
func (c *ICMPv4) Parse(input []byte) ([]byte, error) {
	if len(input) < ICMPv4HeaderSize {
		return nil, incomplete(ICMPv4HeaderSize)
	}

	c.Type = ICMPType(input[0])
	c.Code = input[1]
	c.Checksum = binary.BigEndian.Uint16(input[2:4])
	c.Message = binary.BigEndian.Uint32(input[4:8])
	c.Data = append([]byte(nil), input[ICMPv4HeaderSize:]...)

	return input[len(input):], nil
}

// ParseICMPv4Layer parses an ICMPv4 message as a boxed Layer.
func ParseICMPv4Layer(input []byte) ([]byte, Layer, error) {
	c := new(ICMPv4)
	rest, err := c.Parse(input)
	if err != nil {
		return nil, nil, err
	}
	return rest, c, nil
}

// Bytes serializes the message, data included.
func (c *ICMPv4) Bytes() ([]byte, error) {
	buf := make([]byte, ICMPv4HeaderSize, ICMPv4HeaderSize+len(c.Data))
	buf[0] = uint8(c.Type)
	buf[1] = c.Code
	binary.BigEndian.PutUint16(buf[2:4], c.Checksum)
	binary.BigEndian.PutUint32(buf[4:8], c.Message)
	return append(buf, c.Data...), nil
}

// Len returns the serialized message length.
func (c *ICMPv4) Len() (int, error) {
	return ICMPv4HeaderSize + len(c.Data), nil
}

// Finalize recomputes the checksum: the checksum field is zeroed and
// the Internet checksum is taken over the whole serialized message.
func (c *ICMPv4) Finalize(prev, next []Layer) error {
	msg, err := c.Bytes()
	if err != nil {
		return fmt.Errorf("icmpv4 finalize: %v: %w", err, ErrFinalize)
	}

	// Bytes 2-3 are the checksum itself. Cleared before summing.
	msg[2] = 0x00
	msg[3] = 0x00

	c.Checksum = Checksum(msg)
	return nil
}

// Clone returns an independent deep copy.
func (c *ICMPv4) Clone() Layer {
	cp := *c
	cp.Data = append([]byte(nil), c.Data...)
	return &cp
}
