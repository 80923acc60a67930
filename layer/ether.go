package layer

import "encoding/binary"

// EtherHeaderSize is the fixed Ethernet II frame header size in bytes:
// destination (6) + source (6) + EtherType (2).
const EtherHeaderSize = 14

// Ether is an Ethernet II frame header (IEEE 802.3).
//
// Wire format:
//
//	Bytes 0-5:   Destination MAC address
//	Bytes 6-11:  Source MAC address
//	Bytes 12-13: EtherType (big-endian)
type Ether struct {
	// Dst is the destination hardware address.
	Dst MACAddress

	// Src is the source hardware address.
	Src MACAddress

	// EtherType identifies the payload protocol.
	EtherType EtherType
}

// NewEther returns an Ether with the default EtherType of IPv4 and
// all-zero addresses.
func NewEther() *Ether {
	return &Ether{EtherType: EtherTypeIPv4}
}

// Parse decodes the 14-byte Ethernet header from input.
func (e *Ether) Parse(input []byte) ([]byte, error) {
	if len(input) < EtherHeaderSize {
		return nil, incomplete(EtherHeaderSize)
	}

	copy(e.Dst[:], input[0:6])
	copy(e.Src[:], input[6:12])
	e.EtherType = EtherType(binary.BigEndian.Uint16(input[12:14]))

	return input[EtherHeaderSize:], nil
}

// ParseEtherLayer parses an Ethernet header as a boxed Layer.
func ParseEtherLayer(input []byte) ([]byte, Layer, error) {
	e := new(Ether)
	rest, err := e.Parse(input)
	if err != nil {
		return nil, nil, err
	}
	return rest, e, nil
}

// Bytes serializes the 14-byte Ethernet header.
func (e *Ether) Bytes() ([]byte, error) {
	buf := make([]byte, EtherHeaderSize)
	copy(buf[0:6], e.Dst[:])
	copy(buf[6:12], e.Src[:])
	binary.BigEndian.PutUint16(buf[12:14], uint16(e.EtherType))
	return buf, nil
}

// Len returns the fixed header size.
func (e *Ether) Len() (int, error) {
	return EtherHeaderSize, nil
}

// Finalize is a no-op: no Ethernet field depends on neighbor layers.
// The EtherType is not reconciled with the following layer; callers that
// build frames set it explicitly.
func (e *Ether) Finalize(prev, next []Layer) error {
	return nil
}

// Clone returns an independent copy.
func (e *Ether) Clone() Layer {
	c := *e
	return &c
}
