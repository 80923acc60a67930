package packet_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sharksforarms/hatchet/layer"
	"github.com/sharksforarms/hatchet/packet"
)

// literalLayer is a test layer whose wire form is a fixed byte string.
type literalLayer struct {
	name string
}

func (l *literalLayer) Parse(input []byte) ([]byte, error) {
	if len(input) < len(l.name) {
		return nil, &layer.IncompleteError{Needed: len(l.name)}
	}
	if string(input[:len(l.name)]) != l.name {
		return nil, fmt.Errorf("expected %q: %w", l.name, layer.ErrParse)
	}
	return input[len(l.name):], nil
}

func (l *literalLayer) Bytes() ([]byte, error) {
	return []byte(l.name), nil
}

func (l *literalLayer) Len() (int, error) {
	return len(l.name), nil
}

func (l *literalLayer) Finalize(prev, next []layer.Layer) error {
	return nil
}

func (l *literalLayer) Clone() layer.Layer {
	c := *l
	return &c
}

// countingLayer records each Finalize call and the neighbor counts it
// was handed.
type countingLayer struct {
	finalized int
	wantPrev  int
	wantNext  int
	t         *testing.T
}

func (c *countingLayer) Parse(input []byte) ([]byte, error) { return input, nil }
func (c *countingLayer) Bytes() ([]byte, error)             { return nil, nil }
func (c *countingLayer) Len() (int, error)                  { return 0, nil }

func (c *countingLayer) Finalize(prev, next []layer.Layer) error {
	if len(prev) != c.wantPrev {
		c.t.Errorf("Finalize() prev has %d layers, want %d", len(prev), c.wantPrev)
	}
	if len(next) != c.wantNext {
		c.t.Errorf("Finalize() next has %d layers, want %d", len(next), c.wantNext)
	}
	c.finalized++
	return nil
}

func (c *countingLayer) Clone() layer.Layer {
	cp := *c
	return &cp
}

func TestPacketFromLayers(t *testing.T) {
	t.Parallel()

	p := packet.FromLayers(&literalLayer{name: "layer0"}, &literalLayer{name: "layer1"})
	if got := len(p.Layers()); got != 2 {
		t.Errorf("Layers() has %d layers, want 2", got)
	}
}

func TestPacketBytesConcatenates(t *testing.T) {
	t.Parallel()

	p := packet.FromLayers(
		&literalLayer{name: "layer0"},
		&literalLayer{name: "layer1"},
		&literalLayer{name: "layer2"},
	)

	out, err := p.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}
	if want := []byte("layer0layer1layer2"); !bytes.Equal(want, out) {
		t.Errorf("Bytes() = %q, want %q", out, want)
	}
}

func TestPacketFinalizeWalksLeftToRight(t *testing.T) {
	t.Parallel()

	layers := []layer.Layer{
		&countingLayer{t: t, wantPrev: 0, wantNext: 2},
		&countingLayer{t: t, wantPrev: 1, wantNext: 1},
		&countingLayer{t: t, wantPrev: 2, wantNext: 0},
	}

	p := packet.FromLayers(layers...)
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	for i, l := range layers {
		if got := l.(*countingLayer).finalized; got != 1 {
			t.Errorf("layer %d finalized %d times, want 1", i, got)
		}
	}
}

func TestPacketFinalizeAnyLength(t *testing.T) {
	t.Parallel()

	for n := 0; n < 5; n++ {
		layers := make([]layer.Layer, n)
		for i := range layers {
			layers[i] = &literalLayer{name: "x"}
		}
		if err := packet.FromLayers(layers...).Finalize(); err != nil {
			t.Errorf("Finalize() with %d layers: %v", n, err)
		}
	}
}

// Finalizing a defaulted packet twice must produce identical bytes.
func TestPacketFinalizeIdempotentOnDefaults(t *testing.T) {
	t.Parallel()

	defaults := []struct {
		name string
		make func() layer.Layer
	}{
		{"ether", func() layer.Layer { return layer.NewEther() }},
		{"ipv4", func() layer.Layer { return layer.NewIPv4() }},
		{"ipv6", func() layer.Layer { return layer.NewIPv6() }},
		{"icmpv4", func() layer.Layer { return layer.NewICMPv4() }},
		{"tcp", func() layer.Layer { return layer.NewTCP() }},
		{"udp", func() layer.Layer { return layer.NewUDP() }},
		{"raw", func() layer.Layer { return layer.NewRaw() }},
	}

	for _, tt := range defaults {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := packet.FromLayers(tt.make())
			if err := p.Finalize(); err != nil {
				t.Fatalf("first Finalize() error: %v", err)
			}
			first, err := p.Bytes()
			if err != nil {
				t.Fatalf("Bytes() error: %v", err)
			}

			if err := p.Finalize(); err != nil {
				t.Fatalf("second Finalize() error: %v", err)
			}
			second, err := p.Bytes()
			if err != nil {
				t.Fatalf("Bytes() error: %v", err)
			}

			if !bytes.Equal(first, second) {
				t.Errorf("finalize not idempotent: %x != %x", first, second)
			}
		})
	}
}

// A full craft-and-finalize pass over an Ether/IPv4/TCP/Raw stack must
// leave every dependent field consistent.
func TestPacketFinalizeStack(t *testing.T) {
	t.Parallel()

	ip := layer.NewIPv4()
	tcp := layer.NewTCP()
	raw := &layer.Raw{Data: []byte("hello world")}

	p := packet.FromLayers(layer.NewEther(), ip, tcp, raw)
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	if want := uint16(20 + 20 + 11); ip.TotalLength != want {
		t.Errorf("ipv4 TotalLength = %d, want %d", ip.TotalLength, want)
	}
	if ip.Checksum == 0 {
		t.Error("ipv4 checksum not computed")
	}
	if tcp.Checksum == 0 {
		t.Error("tcp checksum not computed")
	}

	out, err := p.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}
	if want := 14 + 20 + 20 + 11; len(out) != want {
		t.Errorf("Bytes() length = %d, want %d", len(out), want)
	}
}

func TestPacketCloneIsDeep(t *testing.T) {
	t.Parallel()

	raw := &layer.Raw{Data: []byte("payload")}
	p := packet.FromLayers(layer.NewIPv4(), raw)

	c := p.Clone()
	c.Layers()[1].(*layer.Raw).Data[0] = 'X'

	if raw.Data[0] == 'X' {
		t.Error("Clone() shares layer storage with the original")
	}
}
