package layer

import (
	"encoding/binary"
	"fmt"
)

// TCPOptionKind is the one-byte TCP option kind (RFC 793 Section 3.1,
// plus RFC 1323 and RFC 2018 options).
type TCPOptionKind uint8

// Assigned TCP option kinds.
const (
	// TCPOptionKindEndOfOptions terminates the option list.
	TCPOptionKindEndOfOptions TCPOptionKind = 0
	// TCPOptionKindNoOperation is padding between options.
	TCPOptionKindNoOperation TCPOptionKind = 1
	// TCPOptionKindMSS is Maximum Segment Size.
	TCPOptionKindMSS TCPOptionKind = 2
	// TCPOptionKindWindowScale is the window scale factor (RFC 1323).
	TCPOptionKindWindowScale TCPOptionKind = 3
	// TCPOptionKindSAckPermitted advertises SACK support (RFC 2018).
	TCPOptionKindSAckPermitted TCPOptionKind = 4
	// TCPOptionKindSAck carries selective acknowledgment blocks (RFC 2018).
	TCPOptionKindSAck TCPOptionKind = 5
	// TCPOptionKindTimestamp carries TSval/TSecr (RFC 1323).
	TCPOptionKindTimestamp TCPOptionKind = 8
)

// TCPOption is one TCP header option in the standard kind/length/value
// form. Lengths are recomputed from the value on serialize.
type TCPOption interface {
	// Kind returns the option's wire kind.
	Kind() TCPOptionKind

	wireSize() int
	encode(buf []byte) ([]byte, error)
	cloneOption() TCPOption
}

// TCPOptionEndOfOptions is the single-byte end-of-option-list option.
type TCPOptionEndOfOptions struct{}

// Kind returns TCPOptionKindEndOfOptions.
func (TCPOptionEndOfOptions) Kind() TCPOptionKind { return TCPOptionKindEndOfOptions }

func (TCPOptionEndOfOptions) wireSize() int { return 1 }

func (o TCPOptionEndOfOptions) encode(buf []byte) ([]byte, error) {
	return append(buf, uint8(TCPOptionKindEndOfOptions)), nil
}

func (o TCPOptionEndOfOptions) cloneOption() TCPOption { return o }

// TCPOptionNoOperation is the single-byte padding option.
type TCPOptionNoOperation struct{}

// Kind returns TCPOptionKindNoOperation.
func (TCPOptionNoOperation) Kind() TCPOptionKind { return TCPOptionKindNoOperation }

func (TCPOptionNoOperation) wireSize() int { return 1 }

func (o TCPOptionNoOperation) encode(buf []byte) ([]byte, error) {
	return append(buf, uint8(TCPOptionKindNoOperation)), nil
}

func (o TCPOptionNoOperation) cloneOption() TCPOption { return o }

// TCPOptionMSS is the Maximum Segment Size option (kind 2, length 4).
type TCPOptionMSS struct {
	// MSS is the maximum segment size in bytes.
	MSS uint16
}

// Kind returns TCPOptionKindMSS.
func (TCPOptionMSS) Kind() TCPOptionKind { return TCPOptionKindMSS }

func (TCPOptionMSS) wireSize() int { return 4 }

func (o TCPOptionMSS) encode(buf []byte) ([]byte, error) {
	buf = append(buf, uint8(TCPOptionKindMSS), 4, 0, 0)
	binary.BigEndian.PutUint16(buf[len(buf)-2:], o.MSS)
	return buf, nil
}

func (o TCPOptionMSS) cloneOption() TCPOption { return o }

// TCPOptionWindowScale is the window scale option (kind 3, length 3).
type TCPOptionWindowScale struct {
	// Shift is the window scale shift count.
	Shift uint8
}

// Kind returns TCPOptionKindWindowScale.
func (TCPOptionWindowScale) Kind() TCPOptionKind { return TCPOptionKindWindowScale }

func (TCPOptionWindowScale) wireSize() int { return 3 }

func (o TCPOptionWindowScale) encode(buf []byte) ([]byte, error) {
	return append(buf, uint8(TCPOptionKindWindowScale), 3, o.Shift), nil
}

func (o TCPOptionWindowScale) cloneOption() TCPOption { return o }

// TCPOptionSAckPermitted advertises SACK support (kind 4, length 2).
type TCPOptionSAckPermitted struct{}

// Kind returns TCPOptionKindSAckPermitted.
func (TCPOptionSAckPermitted) Kind() TCPOptionKind { return TCPOptionKindSAckPermitted }

func (TCPOptionSAckPermitted) wireSize() int { return 2 }

func (o TCPOptionSAckPermitted) encode(buf []byte) ([]byte, error) {
	return append(buf, uint8(TCPOptionKindSAckPermitted), 2), nil
}

func (o TCPOptionSAckPermitted) cloneOption() TCPOption { return o }

// SAckBlock is one selectively-acknowledged sequence range.
type SAckBlock struct {
	// Begin is the first sequence number of the block.
	Begin uint32
	// End is the sequence number following the last byte of the block.
	End uint32
}

// TCPOptionSAck carries selective acknowledgment blocks (kind 5,
// length 2+8n).
type TCPOptionSAck struct {
	// Blocks holds the acknowledged ranges, at most 31 of them.
	Blocks []SAckBlock
}

// Kind returns TCPOptionKindSAck.
func (TCPOptionSAck) Kind() TCPOptionKind { return TCPOptionKindSAck }

func (o TCPOptionSAck) wireSize() int { return 2 + 8*len(o.Blocks) }

func (o TCPOptionSAck) encode(buf []byte) ([]byte, error) {
	length := 2 + 8*len(o.Blocks)
	if length > 0xFF {
		return nil, fmt.Errorf("tcp sack option with %d blocks overflows length field: %w",
			len(o.Blocks), ErrParse)
	}

	buf = append(buf, uint8(TCPOptionKindSAck), uint8(length))
	for _, b := range o.Blocks {
		var word [8]byte
		binary.BigEndian.PutUint32(word[0:4], b.Begin)
		binary.BigEndian.PutUint32(word[4:8], b.End)
		buf = append(buf, word[:]...)
	}
	return buf, nil
}

func (o TCPOptionSAck) cloneOption() TCPOption {
	return TCPOptionSAck{Blocks: append([]SAckBlock(nil), o.Blocks...)}
}

// TCPOptionTimestamp is the timestamps option (kind 8, length 10).
type TCPOptionTimestamp struct {
	// Start is the timestamp value (TSval).
	Start uint32
	// End is the timestamp echo reply (TSecr).
	End uint32
}

// Kind returns TCPOptionKindTimestamp.
func (TCPOptionTimestamp) Kind() TCPOptionKind { return TCPOptionKindTimestamp }

func (TCPOptionTimestamp) wireSize() int { return 10 }

func (o TCPOptionTimestamp) encode(buf []byte) ([]byte, error) {
	var body [8]byte
	binary.BigEndian.PutUint32(body[0:4], o.Start)
	binary.BigEndian.PutUint32(body[4:8], o.End)
	buf = append(buf, uint8(TCPOptionKindTimestamp), 10)
	return append(buf, body[:]...), nil
}

func (o TCPOptionTimestamp) cloneOption() TCPOption { return o }

// TCPOptionUnknown preserves an unrecognized option for round-tripping.
type TCPOptionUnknown struct {
	// KindNumber is the option's wire kind.
	KindNumber uint8
	// Value holds the Length-2 option data bytes.
	Value []byte
}

// Kind returns the preserved wire kind.
func (o TCPOptionUnknown) Kind() TCPOptionKind { return TCPOptionKind(o.KindNumber) }

func (o TCPOptionUnknown) wireSize() int { return 2 + len(o.Value) }

func (o TCPOptionUnknown) encode(buf []byte) ([]byte, error) {
	length := 2 + len(o.Value)
	if length > 0xFF {
		return nil, fmt.Errorf("tcp option %d value of %d bytes overflows length field: %w",
			o.KindNumber, len(o.Value), ErrParse)
	}
	buf = append(buf, o.KindNumber, uint8(length))
	return append(buf, o.Value...), nil
}

func (o TCPOptionUnknown) cloneOption() TCPOption {
	return TCPOptionUnknown{KindNumber: o.KindNumber, Value: append([]byte(nil), o.Value...)}
}

// -------------------------------------------------------------------------
// Options region codec
// -------------------------------------------------------------------------

// parseTCPOptions decodes options from a region of exactly the declared
// options size. Parsing stops when the region is exhausted; an option
// whose declared length runs past the region is a parse error.
func parseTCPOptions(region []byte) ([]TCPOption, error) {
	var options []TCPOption

	for len(region) > 0 {
		kind := TCPOptionKind(region[0])

		switch kind {
		case TCPOptionKindEndOfOptions:
			options = append(options, TCPOptionEndOfOptions{})
			region = region[1:]
			continue
		case TCPOptionKindNoOperation:
			options = append(options, TCPOptionNoOperation{})
			region = region[1:]
			continue
		}

		if len(region) < 2 {
			return nil, fmt.Errorf("tcp option %d is missing its length octet: %w",
				kind, ErrParse)
		}
		length := region[1]
		if length < 2 {
			return nil, fmt.Errorf("tcp option %d has invalid length %d: %w",
				kind, length, ErrParse)
		}
		if int(length) > len(region) {
			return nil, fmt.Errorf("tcp option %d declares %d bytes with %d remaining: %w",
				kind, length, len(region), ErrParse)
		}

		value := region[2:length]
		opt, err := decodeTCPOption(kind, length, value)
		if err != nil {
			return nil, err
		}
		options = append(options, opt)
		region = region[length:]
	}

	return options, nil
}

// decodeTCPOption interprets one option body by kind.
func decodeTCPOption(kind TCPOptionKind, length uint8, value []byte) (TCPOption, error) {
	switch kind {
	case TCPOptionKindMSS:
		if length != 4 {
			return nil, fmt.Errorf("tcp mss option has length %d, want 4: %w", length, ErrParse)
		}
		return TCPOptionMSS{MSS: binary.BigEndian.Uint16(value)}, nil

	case TCPOptionKindWindowScale:
		if length != 3 {
			return nil, fmt.Errorf("tcp window scale option has length %d, want 3: %w",
				length, ErrParse)
		}
		return TCPOptionWindowScale{Shift: value[0]}, nil

	case TCPOptionKindSAckPermitted:
		if length != 2 {
			return nil, fmt.Errorf("tcp sack-permitted option has length %d, want 2: %w",
				length, ErrParse)
		}
		return TCPOptionSAckPermitted{}, nil

	case TCPOptionKindSAck:
		if (length-2)%8 != 0 {
			return nil, fmt.Errorf("tcp sack option has length %d, want 2+8n: %w",
				length, ErrParse)
		}
		blocks := make([]SAckBlock, 0, len(value)/8)
		for i := 0; i+8 <= len(value); i += 8 {
			blocks = append(blocks, SAckBlock{
				Begin: binary.BigEndian.Uint32(value[i : i+4]),
				End:   binary.BigEndian.Uint32(value[i+4 : i+8]),
			})
		}
		return TCPOptionSAck{Blocks: blocks}, nil

	case TCPOptionKindTimestamp:
		if length != 10 {
			return nil, fmt.Errorf("tcp timestamp option has length %d, want 10: %w",
				length, ErrParse)
		}
		return TCPOptionTimestamp{
			Start: binary.BigEndian.Uint32(value[0:4]),
			End:   binary.BigEndian.Uint32(value[4:8]),
		}, nil

	default:
		return TCPOptionUnknown{
			KindNumber: uint8(kind),
			Value:      append([]byte(nil), value...),
		}, nil
	}
}

// tcpOptionsWireSize returns the serialized size of an option list.
func tcpOptionsWireSize(options []TCPOption) int {
	n := 0
	for _, o := range options {
		n += o.wireSize()
	}
	return n
}

// encodeTCPOptions appends each option's wire bytes to buf.
func encodeTCPOptions(buf []byte, options []TCPOption) ([]byte, error) {
	var err error
	for _, o := range options {
		buf, err = o.encode(buf)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// cloneTCPOptions deep-copies an option slice.
func cloneTCPOptions(options []TCPOption) []TCPOption {
	if options == nil {
		return nil
	}
	out := make([]TCPOption, len(options))
	for i, o := range options {
		out[i] = o.cloneOption()
	}
	return out
}
