package layer

import "encoding/binary"

// Pseudo-headers feed the TCP and UDP checksums but are never
// transmitted (RFC 793 Section 3.1, RFC 768, RFC 8200 Section 8.1).

// ipv4PseudoHeader builds the 12-byte IPv4 pseudo-header:
//
//	Src(4) | Dst(4) | Zero(1) | Protocol(1) | TransportLength(2)
func ipv4PseudoHeader(ip *IPv4, transportLength uint16) []byte {
	buf := make([]byte, 12)
	binary.BigEndian.PutUint32(buf[0:4], ip.Src)
	binary.BigEndian.PutUint32(buf[4:8], ip.Dst)
	buf[9] = uint8(ip.Protocol)
	binary.BigEndian.PutUint16(buf[10:12], transportLength)
	return buf
}

// ipv6PseudoHeader builds the 40-byte IPv6 pseudo-header:
//
//	Src(16) | Dst(16) | TransportLength(4) | Zero(3) | NextHeader(1)
func ipv6PseudoHeader(ip *IPv6, transportLength uint32) []byte {
	buf := make([]byte, 40)
	copy(buf[0:16], ip.Src[:])
	copy(buf[16:32], ip.Dst[:])
	binary.BigEndian.PutUint32(buf[32:36], transportLength)
	buf[39] = uint8(ip.NextHeader)
	return buf
}
