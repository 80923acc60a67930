package packet

import "github.com/sharksforarms/hatchet/layer"

// installDefaultBindings registers the well-known protocol chain.
// Anything the chain does not recognize falls through to Raw, so a
// default parse always consumes the whole input.
func installDefaultBindings(p *PacketParser) {
	Bind(p, func(e *layer.Ether, rest []byte) layer.ParseFunc {
		switch e.EtherType {
		case layer.EtherTypeIPv4:
			return layer.ParseIPv4Layer
		case layer.EtherTypeIPv6:
			return layer.ParseIPv6Layer
		default:
			return layer.ParseRawLayer
		}
	})

	Bind(p, func(v *layer.IPv4, rest []byte) layer.ParseFunc {
		switch v.Protocol {
		case layer.IPProtocolTCP:
			return layer.ParseTCPLayer
		case layer.IPProtocolUDP:
			return layer.ParseUDPLayer
		default:
			return layer.ParseRawLayer
		}
	})

	Bind(p, func(v *layer.IPv6, rest []byte) layer.ParseFunc {
		switch v.NextHeader {
		case layer.IPProtocolTCP:
			return layer.ParseTCPLayer
		case layer.IPProtocolUDP:
			return layer.ParseUDPLayer
		default:
			return layer.ParseRawLayer
		}
	})

	Bind(p, func(t *layer.TCP, rest []byte) layer.ParseFunc {
		return layer.ParseRawLayer
	})

	Bind(p, func(u *layer.UDP, rest []byte) layer.ParseFunc {
		return layer.ParseRawLayer
	})
}
