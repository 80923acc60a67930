package layer

import "fmt"

// EtherType identifies the protocol carried in an Ethernet frame's
// payload (IEEE 802.3). Two bytes, big-endian on the wire. Values not
// named below are carried through unchanged for forward compatibility.
type EtherType uint16

// Well-known EtherType values.
const (
	// EtherTypeIPv4 is Internet Protocol version 4 (RFC 791).
	EtherTypeIPv4 EtherType = 0x0800

	// EtherTypeARP is the Address Resolution Protocol (RFC 826).
	EtherTypeARP EtherType = 0x0806

	// EtherTypeWakeOnLAN is the Wake-on-LAN magic packet.
	EtherTypeWakeOnLAN EtherType = 0x0842

	// EtherTypeVLAN is IEEE 802.1Q VLAN tagging.
	EtherTypeVLAN EtherType = 0x8100

	// EtherTypeIPv6 is Internet Protocol version 6 (RFC 8200).
	EtherTypeIPv6 EtherType = 0x86DD

	// EtherTypeMPLSUnicast is MPLS unicast (RFC 3032).
	EtherTypeMPLSUnicast EtherType = 0x8847

	// EtherTypeMPLSMulticast is MPLS multicast (RFC 3032).
	EtherTypeMPLSMulticast EtherType = 0x8848

	// EtherTypePPPoEDiscovery is PPPoE discovery stage (RFC 2516).
	EtherTypePPPoEDiscovery EtherType = 0x8863

	// EtherTypePPPoESession is PPPoE session stage (RFC 2516).
	EtherTypePPPoESession EtherType = 0x8864

	// EtherTypeQinQ is IEEE 802.1ad provider bridging.
	EtherTypeQinQ EtherType = 0x88A8
)

// etherTypeNames maps well-known EtherType values to names.
var etherTypeNames = map[EtherType]string{
	EtherTypeIPv4:           "IPv4",
	EtherTypeARP:            "ARP",
	EtherTypeWakeOnLAN:      "WakeOnLAN",
	EtherTypeVLAN:           "VLAN",
	EtherTypeIPv6:           "IPv6",
	EtherTypeMPLSUnicast:    "MPLSUnicast",
	EtherTypeMPLSMulticast:  "MPLSMulticast",
	EtherTypePPPoEDiscovery: "PPPoEDiscovery",
	EtherTypePPPoESession:   "PPPoESession",
	EtherTypeQinQ:           "QinQ",
}

// String returns the name of a well-known EtherType, or
// "Unknown(0x....)" for any other value.
func (t EtherType) String() string {
	if name, ok := etherTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(0x%04x)", uint16(t))
}
