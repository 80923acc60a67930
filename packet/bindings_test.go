package packet_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/sharksforarms/hatchet/layer"
	"github.com/sharksforarms/hatchet/packet"
)

// etherIPv4TCPHTTPHex is a captured Ether/IPv4/TCP frame carrying
// "GET /example HTTP/1.1".
const etherIPv4TCPHTTPHex = "ffffffffffff0000000000000800" +
	"450000330001000040067cc27f0000017f000001" +
	"00140050000000000000000050022000ffa20000" +
	"474554202f6578616d706c6520485454502f312e31"

func mustHexT(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex: %v", err)
	}
	return b
}

func TestDefaultBindingsEtherIPv4TCP(t *testing.T) {
	t.Parallel()

	input := mustHexT(t, etherIPv4TCPHTTPHex)

	p := packet.NewPacketParser()
	rest, pkt, err := packet.ParsePacket[layer.Ether](p, input)
	if err != nil {
		t.Fatalf("ParsePacket() error: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("ParsePacket() left %d bytes unconsumed", len(rest))
	}

	layers := pkt.Layers()
	if len(layers) != 4 {
		t.Fatalf("packet has %d layers, want 4", len(layers))
	}
	if _, ok := layers[0].(*layer.Ether); !ok {
		t.Errorf("layer 0 is %T, want *layer.Ether", layers[0])
	}
	if _, ok := layers[1].(*layer.IPv4); !ok {
		t.Errorf("layer 1 is %T, want *layer.IPv4", layers[1])
	}
	tcp, ok := layers[2].(*layer.TCP)
	if !ok {
		t.Fatalf("layer 2 is %T, want *layer.TCP", layers[2])
	}
	if tcp.DstPort != 80 {
		t.Errorf("tcp DstPort = %d, want 80", tcp.DstPort)
	}
	raw, ok := layers[3].(*layer.Raw)
	if !ok {
		t.Fatalf("layer 3 is %T, want *layer.Raw", layers[3])
	}
	if want := []byte("GET /example HTTP/1.1"); !bytes.Equal(want, raw.Data) {
		t.Errorf("raw payload = %q, want %q", raw.Data, want)
	}

	// The parsed packet reserializes to the original frame.
	out, err := pkt.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}
	if !bytes.Equal(input, out) {
		t.Errorf("Bytes() = %x, want %x", out, input)
	}
}

func TestDefaultBindingsUDP(t *testing.T) {
	t.Parallel()

	// Ether / IPv4(proto 17) / UDP / 4 payload bytes.
	ip := layer.NewIPv4()
	ip.Protocol = layer.IPProtocolUDP
	udp := layer.NewUDP()
	pkt := packet.FromLayers(layer.NewEther(), ip, udp, &layer.Raw{Data: []byte{1, 2, 3, 4}})
	if err := pkt.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	input, err := pkt.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}

	p := packet.NewPacketParser()
	_, parsed, err := packet.ParsePacket[layer.Ether](p, input)
	if err != nil {
		t.Fatalf("ParsePacket() error: %v", err)
	}

	layers := parsed.Layers()
	if len(layers) != 4 {
		t.Fatalf("packet has %d layers, want 4", len(layers))
	}
	if _, ok := layers[2].(*layer.UDP); !ok {
		t.Errorf("layer 2 is %T, want *layer.UDP", layers[2])
	}
	if _, ok := layers[3].(*layer.Raw); !ok {
		t.Errorf("layer 3 is %T, want *layer.Raw", layers[3])
	}
}

func TestDefaultBindingsIPv6(t *testing.T) {
	t.Parallel()

	ether := layer.NewEther()
	ether.EtherType = layer.EtherTypeIPv6
	ip := layer.NewIPv6()
	ip.NextHeader = layer.IPProtocolTCP
	pkt := packet.FromLayers(ether, ip, layer.NewTCP(), &layer.Raw{Data: []byte("v6")})
	if err := pkt.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	input, err := pkt.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}

	p := packet.NewPacketParser()
	_, parsed, err := packet.ParsePacket[layer.Ether](p, input)
	if err != nil {
		t.Fatalf("ParsePacket() error: %v", err)
	}

	layers := parsed.Layers()
	if len(layers) != 4 {
		t.Fatalf("packet has %d layers, want 4", len(layers))
	}
	if _, ok := layers[1].(*layer.IPv6); !ok {
		t.Errorf("layer 1 is %T, want *layer.IPv6", layers[1])
	}
	if _, ok := layers[2].(*layer.TCP); !ok {
		t.Errorf("layer 2 is %T, want *layer.TCP", layers[2])
	}
}

// Unknown EtherTypes fall through to Raw, so a default parse always
// consumes the whole frame.
func TestDefaultBindingsUnknownEtherType(t *testing.T) {
	t.Parallel()

	ether := layer.NewEther()
	ether.EtherType = layer.EtherTypeARP
	pkt := packet.FromLayers(ether, &layer.Raw{Data: []byte{0xDE, 0xAD}})
	input, err := pkt.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}

	p := packet.NewPacketParser()
	_, parsed, err := packet.ParsePacket[layer.Ether](p, input)
	if err != nil {
		t.Fatalf("ParsePacket() error: %v", err)
	}
	if len(parsed.Layers()) != 2 {
		t.Fatalf("packet has %d layers, want 2", len(parsed.Layers()))
	}
	if _, ok := parsed.Layers()[1].(*layer.Raw); !ok {
		t.Errorf("layer 1 is %T, want *layer.Raw", parsed.Layers()[1])
	}
}

// httpLayer is a user-defined layer bound onto TCP port 80, the
// canonical extension point.
type httpLayer struct {
	request []byte
}

func (h *httpLayer) Parse(input []byte) ([]byte, error) {
	h.request = append([]byte(nil), input...)
	return input[len(input):], nil
}

func (h *httpLayer) Bytes() ([]byte, error) {
	return append([]byte(nil), h.request...), nil
}

func (h *httpLayer) Len() (int, error) {
	return len(h.request), nil
}

func (h *httpLayer) Finalize(prev, next []layer.Layer) error {
	return nil
}

func (h *httpLayer) Clone() layer.Layer {
	return &httpLayer{request: append([]byte(nil), h.request...)}
}

func parseHTTPLayer(input []byte) ([]byte, layer.Layer, error) {
	h := new(httpLayer)
	rest, err := h.Parse(input)
	if err != nil {
		return nil, nil, err
	}
	return rest, h, nil
}

// A user binding on TCP overrides the default TCP->Raw chain for port
// 80 and falls back to it otherwise.
func TestCustomLayerBinding(t *testing.T) {
	t.Parallel()

	p := packet.NewPacketParser()
	packet.Bind(p, func(tcp *layer.TCP, rest []byte) layer.ParseFunc {
		if tcp.DstPort == 80 {
			return parseHTTPLayer
		}
		return nil
	})

	_, pkt, err := packet.ParsePacket[layer.Ether](p, mustHexT(t, etherIPv4TCPHTTPHex))
	if err != nil {
		t.Fatalf("ParsePacket() error: %v", err)
	}

	layers := pkt.Layers()
	if len(layers) != 4 {
		t.Fatalf("packet has %d layers, want 4", len(layers))
	}
	h, ok := layers[3].(*httpLayer)
	if !ok {
		t.Fatalf("layer 3 is %T, want *httpLayer", layers[3])
	}
	if want := []byte("GET /example HTTP/1.1"); !bytes.Equal(want, h.request) {
		t.Errorf("http request = %q, want %q", h.request, want)
	}
}

// ICMPv4 is not in the default chain; one binding adds it.
func TestICMPBinding(t *testing.T) {
	t.Parallel()

	ip := layer.NewIPv4()
	ip.Protocol = layer.IPProtocolICMP
	icmp := layer.NewICMPv4()
	icmp.Type = layer.ICMPTypeEchoRequest
	icmp.Data = []byte{0xFF, 0xFF}

	pkt := packet.FromLayers(layer.NewEther(), ip, icmp)
	if err := pkt.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	input, err := pkt.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}

	p := packet.NewPacketParser()
	packet.Bind(p, func(v *layer.IPv4, rest []byte) layer.ParseFunc {
		if v.Protocol == layer.IPProtocolICMP {
			return layer.ParseICMPv4Layer
		}
		return nil
	})

	_, parsed, err := packet.ParsePacket[layer.Ether](p, input)
	if err != nil {
		t.Fatalf("ParsePacket() error: %v", err)
	}

	layers := parsed.Layers()
	if len(layers) != 3 {
		t.Fatalf("packet has %d layers, want 3", len(layers))
	}
	got, ok := layers[2].(*layer.ICMPv4)
	if !ok {
		t.Fatalf("layer 2 is %T, want *layer.ICMPv4", layers[2])
	}
	if got.Type != layer.ICMPTypeEchoRequest {
		t.Errorf("icmp type = %v, want EchoRequest", got.Type)
	}
}
