package packet

import (
	"fmt"

	"github.com/sharksforarms/hatchet/layer"
)

// Packet is an ordered sequence of layers, outermost first. A Packet
// owns its layers exclusively; callers that keep a layer after handing
// it to a packet must Clone it first.
type Packet struct {
	layers []layer.Layer
}

// FromLayers constructs a packet from existing layers. No validation is
// performed; Finalize reconciles inter-layer fields.
func FromLayers(layers ...layer.Layer) *Packet {
	return &Packet{layers: layers}
}

// Layers returns the packet's layers. The returned slice is the
// packet's own storage: callers may mutate the layers in place.
func (p *Packet) Layers() []layer.Layer {
	return p.layers
}

// Finalize calls Finalize on each layer from first to last, handing
// every layer the layers before and after it. A single left-to-right
// pass: a layer whose fields depend on a later layer that itself
// mutates during finalize needs a second Finalize call.
func (p *Packet) Finalize() error {
	for i, l := range p.layers {
		if err := l.Finalize(p.layers[:i], p.layers[i+1:]); err != nil {
			return fmt.Errorf("finalize layer %d: %w", i, err)
		}
	}
	return nil
}

// Bytes serializes every layer in order and concatenates the result.
// Layers are emitted as-is; call Finalize first for consistent length
// and checksum fields.
func (p *Packet) Bytes() ([]byte, error) {
	return layer.BytesOfLayers(p.layers)
}

// Clone returns an independent deep copy of the packet.
func (p *Packet) Clone() *Packet {
	if p.layers == nil {
		return &Packet{}
	}
	layers := make([]layer.Layer, len(p.layers))
	for i, l := range p.layers {
		layers[i] = l.Clone()
	}
	return &Packet{layers: layers}
}
