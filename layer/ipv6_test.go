package layer_test

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/sharksforarms/hatchet/layer"
)

func TestIPv6RoundTrip(t *testing.T) {
	t.Parallel()

	input := mustHex(t,
		"60000000012867403ffe802000000001026097fffe0769ea3ffe050100001c010200f8fffe03d9c0")

	want := &layer.IPv6{
		Version:       6,
		PayloadLength: 296,
		NextHeader:    layer.IPProtocolPIM,
		HopLimit:      64,
		Src: layer.IPv6Address{
			0x3f, 0xfe, 0x80, 0x20, 0x00, 0x00, 0x00, 0x01,
			0x02, 0x60, 0x97, 0xff, 0xfe, 0x07, 0x69, 0xea,
		},
		Dst: layer.IPv6Address{
			0x3f, 0xfe, 0x05, 0x01, 0x00, 0x00, 0x1c, 0x01,
			0x02, 0x00, 0xf8, 0xff, 0xfe, 0x03, 0xd9, 0xc0,
		},
	}

	v := new(layer.IPv6)
	rest, err := v.Parse(input)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("Parse() left %d bytes unconsumed", len(rest))
	}
	if !reflect.DeepEqual(want, v) {
		t.Errorf("Parse() = %+v, want %+v", v, want)
	}

	out, err := v.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}
	if !bytes.Equal(input, out) {
		t.Errorf("Bytes() = %x, want %x", out, input)
	}
}

// A frame with every sub-byte field nonzero must survive the bit packing.
func TestIPv6BitFieldsRoundTrip(t *testing.T) {
	t.Parallel()

	v := &layer.IPv6{
		Version:    6,
		DS:         0x2E,
		ECN:        0x03,
		FlowLabel:  0xABCDE,
		NextHeader: layer.IPProtocolTCP,
		HopLimit:   255,
	}

	out, err := v.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}

	back := new(layer.IPv6)
	if _, err := back.Parse(out); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !reflect.DeepEqual(v, back) {
		t.Errorf("round trip = %+v, want %+v", back, v)
	}
}

func TestIPv6Incomplete(t *testing.T) {
	t.Parallel()

	v := new(layer.IPv6)
	_, err := v.Parse(make([]byte, 39))
	if !errors.Is(err, layer.ErrIncomplete) {
		t.Errorf("Parse() error = %v, want ErrIncomplete", err)
	}
}

func TestIPv6Default(t *testing.T) {
	t.Parallel()

	want := &layer.IPv6{NextHeader: layer.IPProtocolIPv6NoNxt}
	want.Src[0] = 0xFF
	want.Dst[0] = 0xFF

	if got := layer.NewIPv6(); !reflect.DeepEqual(want, got) {
		t.Errorf("NewIPv6() = %+v, want %+v", got, want)
	}
}

func TestIPv6FinalizeLength(t *testing.T) {
	t.Parallel()

	v := layer.NewIPv6()
	next := []layer.Layer{
		&stubLayer{size: 100},
		&stubLayer{size: 0},
		&stubLayer{size: 100},
	}

	if err := v.Finalize(nil, next); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if v.PayloadLength != 200 {
		t.Errorf("PayloadLength = %d, want 200", v.PayloadLength)
	}
}

func TestIPv6FinalizeLengthOverflow(t *testing.T) {
	t.Parallel()

	v := layer.NewIPv6()
	err := v.Finalize(nil, []layer.Layer{&stubLayer{size: 0x10000}})
	if !errors.Is(err, layer.ErrFinalize) {
		t.Errorf("Finalize() error = %v, want ErrFinalize", err)
	}
}
