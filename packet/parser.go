package packet

import (
	"fmt"
	"reflect"

	"github.com/sharksforarms/hatchet/layer"
)

// Binding inspects the layer just parsed and the remaining bytes, and
// returns the parser for the next layer, or nil to express no opinion
// (the next older binding is consulted).
type Binding func(current layer.Layer, rest []byte) layer.ParseFunc

// PacketParser parses byte buffers into layered packets, choosing each
// next layer from bindings keyed on the concrete type of the layer just
// parsed.
//
// Bindings for the same type are executed in reverse insertion order:
// the binding registered last is consulted first, so later bindings
// override earlier ones without removal.
//
// A PacketParser is read-only after configuration; concurrent parses
// sharing a configured parser are safe.
type PacketParser struct {
	bindings map[reflect.Type][]Binding
}

// NewPacketParser returns a parser with the default bindings:
// Ether to IPv4, IPv6 or Raw by EtherType; IPv4 and IPv6 to TCP, UDP or
// Raw by protocol; TCP and UDP to Raw.
func NewPacketParser() *PacketParser {
	p := WithoutBindings()
	installDefaultBindings(p)
	return p
}

// WithoutBindings returns a parser with an empty registry.
func WithoutBindings() *PacketParser {
	return &PacketParser{bindings: make(map[reflect.Type][]Binding)}
}

// Bind registers f to run when the layer just parsed is a *L. The key
// type is inferred from the callback's parameter:
//
//	packet.Bind(p, func(tcp *layer.TCP, rest []byte) layer.ParseFunc {
//		if tcp.DstPort == 80 {
//			return ParseHTTPLayer
//		}
//		return nil
//	})
//
// Multiple bindings on the same type accumulate; the one registered
// last wins when it returns a non-nil parser. Bindings should inspect
// only their arguments and capture no state.
func Bind[L any, P interface {
	*L
	layer.Layer
}](p *PacketParser, f func(current P, rest []byte) layer.ParseFunc) {
	key := reflect.TypeOf((*L)(nil))
	p.bindings[key] = append(p.bindings[key], func(current layer.Layer, rest []byte) layer.ParseFunc {
		return f(current.(P), rest)
	})
}

// ParsePacket parses input starting with layer type L, then repeatedly
// consults the bindings against the last parsed layer to choose the
// next one. The walk stops when no input remains, when no binding
// matches, or when every matching binding returns nil.
//
// Parse errors propagate immediately: no partial packet is returned.
// The unconsumed remainder is returned alongside the packet.
func ParsePacket[L any, P interface {
	*L
	layer.Layer
}](p *PacketParser, input []byte) (rest []byte, pkt *Packet, err error) {
	var start L
	current := layer.Layer(P(&start))

	rest, err = current.Parse(input)
	if err != nil {
		return nil, nil, fmt.Errorf("parse packet: %w", err)
	}

	var layers []layer.Layer
	for len(rest) > 0 {
		next := p.nextParser(current, rest)
		if next == nil {
			break
		}

		newRest, nextLayer, err := next(rest)
		if err != nil {
			return nil, nil, fmt.Errorf("parse packet: %w", err)
		}

		rest = newRest
		layers = append(layers, current)
		current = nextLayer
	}

	layers = append(layers, current)
	return rest, &Packet{layers: layers}, nil
}

// nextParser walks the current layer's bindings from newest to oldest
// and returns the first parser offered, or nil.
func (p *PacketParser) nextParser(current layer.Layer, rest []byte) layer.ParseFunc {
	callbacks := p.bindings[reflect.TypeOf(current)]
	for i := len(callbacks) - 1; i >= 0; i-- {
		if next := callbacks[i](current, rest); next != nil {
			return next
		}
	}
	return nil
}
