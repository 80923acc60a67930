package layer

import "fmt"

// IPv4OptionClass is the 2-bit option class field (RFC 791 Section 3.1).
type IPv4OptionClass uint8

// Option classes.
const (
	// IPv4OptionClassControl carries control options.
	IPv4OptionClassControl IPv4OptionClass = 0
	// IPv4OptionClassReserved1 is reserved for future use.
	IPv4OptionClassReserved1 IPv4OptionClass = 1
	// IPv4OptionClassDebug carries debugging and measurement options.
	IPv4OptionClassDebug IPv4OptionClass = 2
	// IPv4OptionClassReserved2 is reserved for future use.
	IPv4OptionClassReserved2 IPv4OptionClass = 3
)

// ipv4OptionClassNames maps option classes to names.
var ipv4OptionClassNames = [4]string{
	"Control",
	"Reserved1",
	"Debug",
	"Reserved2",
}

// String returns the human-readable name for the option class.
func (c IPv4OptionClass) String() string {
	if int(c) < len(ipv4OptionClassNames) {
		return ipv4OptionClassNames[c]
	}
	return fmt.Sprintf("Unknown(%d)", uint8(c))
}

// Single-byte option numbers (RFC 791 Section 3.1).
const (
	// IPv4OptionEndOfOptions terminates the option list.
	IPv4OptionEndOfOptions uint8 = 0
	// IPv4OptionNoOperation is padding between options.
	IPv4OptionNoOperation uint8 = 1
)

// IPv4Option is one IPv4 header option.
//
// Wire format of the type byte:
//
//	Bit  0:    Copied flag
//	Bits 1-2:  Class
//	Bits 3-7:  Number
//
// EndOfOptions and NoOperation are the type byte alone. Every other
// number is followed by a length byte and Length-2 value bytes; Length
// is recomputed from Value on serialize.
type IPv4Option struct {
	// Copied indicates the option is copied into all fragments (1 bit).
	Copied uint8

	// Class is the 2-bit option class.
	Class IPv4OptionClass

	// Number is the 5-bit option number.
	Number uint8

	// Length is the total option length in bytes, including the type and
	// length octets. Unused for EndOfOptions and NoOperation.
	Length uint8

	// Value holds the Length-2 option data bytes. Unused for
	// EndOfOptions and NoOperation.
	Value []byte
}

// wireSize returns the option's serialized size in bytes.
func (o *IPv4Option) wireSize() int {
	if o.Number == IPv4OptionEndOfOptions || o.Number == IPv4OptionNoOperation {
		return 1
	}
	return 2 + len(o.Value)
}

// encode appends the option's wire bytes to buf.
func (o *IPv4Option) encode(buf []byte) ([]byte, error) {
	ty := o.Copied<<7 | uint8(o.Class)<<5 | o.Number&0x1F
	buf = append(buf, ty)

	if o.Number == IPv4OptionEndOfOptions || o.Number == IPv4OptionNoOperation {
		return buf, nil
	}

	// Length = len(Value) + 2 must fit in one byte, so 253 value bytes
	// is the maximum representable.
	length := len(o.Value) + 2
	if length > 0xFF {
		return nil, fmt.Errorf("ipv4 option value of %d bytes overflows length field: %w",
			len(o.Value), ErrParse)
	}

	buf = append(buf, uint8(length))
	buf = append(buf, o.Value...)
	return buf, nil
}

// parseIPv4Options decodes options from a region of exactly the declared
// options size. Parsing stops when the region is exhausted; an option
// whose declared length runs past the region is a parse error.
func parseIPv4Options(region []byte) ([]IPv4Option, error) {
	var options []IPv4Option

	for len(region) > 0 {
		ty := region[0]
		opt := IPv4Option{
			Copied: ty >> 7,
			Class:  IPv4OptionClass(ty >> 5 & 0x03),
			Number: ty & 0x1F,
		}

		if opt.Number == IPv4OptionEndOfOptions || opt.Number == IPv4OptionNoOperation {
			region = region[1:]
			options = append(options, opt)
			continue
		}

		if len(region) < 2 {
			return nil, fmt.Errorf("ipv4 option %d is missing its length octet: %w",
				opt.Number, ErrParse)
		}
		length := region[1]
		if length < 2 {
			return nil, fmt.Errorf("ipv4 option %d has invalid length %d: %w",
				opt.Number, length, ErrParse)
		}
		if int(length) > len(region) {
			return nil, fmt.Errorf("ipv4 option %d declares %d bytes with %d remaining: %w",
				opt.Number, length, len(region), ErrParse)
		}

		opt.Length = length
		opt.Value = append([]byte(nil), region[2:length]...)
		region = region[length:]
		options = append(options, opt)
	}

	return options, nil
}

// cloneIPv4Options deep-copies an option slice.
func cloneIPv4Options(options []IPv4Option) []IPv4Option {
	if options == nil {
		return nil
	}
	out := make([]IPv4Option, len(options))
	for i, o := range options {
		out[i] = o
		out[i].Value = append([]byte(nil), o.Value...)
	}
	return out
}
