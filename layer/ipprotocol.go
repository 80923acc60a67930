package layer

import "fmt"

// IPProtocol identifies the protocol carried in an IP payload: the IPv4
// Protocol field (RFC 791) and the IPv6 Next Header field (RFC 8200).
// One byte on the wire. Values not named below are carried through
// unchanged.
type IPProtocol uint8

// IANA-assigned protocol numbers.
const (
	// IPProtocolHopByHop is the IPv6 Hop-by-Hop option header.
	IPProtocolHopByHop IPProtocol = 0
	// IPProtocolICMP is the Internet Control Message Protocol (RFC 792).
	IPProtocolICMP IPProtocol = 1
	// IPProtocolIGMP is the Internet Group Management Protocol.
	IPProtocolIGMP IPProtocol = 2
	// IPProtocolGGP is the gateway-gateway protocol.
	IPProtocolGGP IPProtocol = 3
	// IPProtocolIPEncap is IP encapsulated in IP.
	IPProtocolIPEncap IPProtocol = 4
	// IPProtocolST is ST datagram mode.
	IPProtocolST IPProtocol = 5
	// IPProtocolTCP is the Transmission Control Protocol (RFC 793).
	IPProtocolTCP IPProtocol = 6
	// IPProtocolEGP is the exterior gateway protocol.
	IPProtocolEGP IPProtocol = 8
	// IPProtocolIGP is any private interior gateway protocol.
	IPProtocolIGP IPProtocol = 9
	// IPProtocolPUP is the PARC universal packet protocol.
	IPProtocolPUP IPProtocol = 12
	// IPProtocolUDP is the User Datagram Protocol (RFC 768).
	IPProtocolUDP IPProtocol = 17
	// IPProtocolHMP is the host monitoring protocol.
	IPProtocolHMP IPProtocol = 20
	// IPProtocolXNSIDP is Xerox NS IDP.
	IPProtocolXNSIDP IPProtocol = 22
	// IPProtocolRDP is the "reliable datagram" protocol.
	IPProtocolRDP IPProtocol = 27
	// IPProtocolISOTP4 is ISO Transport Protocol class 4 (RFC 905).
	IPProtocolISOTP4 IPProtocol = 29
	// IPProtocolDCCP is the Datagram Congestion Control Protocol (RFC 4340).
	IPProtocolDCCP IPProtocol = 33
	// IPProtocolXTP is the Xpress Transfer Protocol.
	IPProtocolXTP IPProtocol = 36
	// IPProtocolDDP is the Datagram Delivery Protocol.
	IPProtocolDDP IPProtocol = 37
	// IPProtocolIDPRCMTP is IDPR Control Message Transport.
	IPProtocolIDPRCMTP IPProtocol = 38
	// IPProtocolIPv6 is IPv6 encapsulation (RFC 2473).
	IPProtocolIPv6 IPProtocol = 41
	// IPProtocolIPv6Route is the Routing Header for IPv6.
	IPProtocolIPv6Route IPProtocol = 43
	// IPProtocolIPv6Frag is the Fragment Header for IPv6.
	IPProtocolIPv6Frag IPProtocol = 44
	// IPProtocolIDRP is the Inter-Domain Routing Protocol.
	IPProtocolIDRP IPProtocol = 45
	// IPProtocolRSVP is the Reservation Protocol.
	IPProtocolRSVP IPProtocol = 46
	// IPProtocolGRE is Generic Routing Encapsulation (RFC 2784).
	IPProtocolGRE IPProtocol = 47
	// IPProtocolESP is Encapsulating Security Payload (RFC 4303).
	IPProtocolESP IPProtocol = 50
	// IPProtocolAH is the Authentication Header (RFC 4302).
	IPProtocolAH IPProtocol = 51
	// IPProtocolSKIP is SKIP.
	IPProtocolSKIP IPProtocol = 57
	// IPProtocolIPv6ICMP is ICMP for IPv6 (RFC 4443).
	IPProtocolIPv6ICMP IPProtocol = 58
	// IPProtocolIPv6NoNxt is No Next Header for IPv6 (RFC 8200).
	IPProtocolIPv6NoNxt IPProtocol = 59
	// IPProtocolIPv6Opts is Destination Options for IPv6.
	IPProtocolIPv6Opts IPProtocol = 60
	// IPProtocolRSPF is Radio Shortest Path First.
	IPProtocolRSPF IPProtocol = 73
	// IPProtocolVMTP is the Versatile Message Transport protocol.
	IPProtocolVMTP IPProtocol = 81
	// IPProtocolEIGRP is Enhanced Interior Gateway Routing.
	IPProtocolEIGRP IPProtocol = 88
	// IPProtocolOSPF is Open Shortest Path First.
	IPProtocolOSPF IPProtocol = 89
	// IPProtocolAX25 is AX.25 frames.
	IPProtocolAX25 IPProtocol = 93
	// IPProtocolIPIP is IP-within-IP encapsulation.
	IPProtocolIPIP IPProtocol = 94
	// IPProtocolEtherIP is Ethernet-within-IP encapsulation (RFC 3378).
	IPProtocolEtherIP IPProtocol = 97
	// IPProtocolEncap is yet another IP encapsulation (RFC 1241).
	IPProtocolEncap IPProtocol = 98
	// IPProtocolPIM is Protocol Independent Multicast.
	IPProtocolPIM IPProtocol = 103
	// IPProtocolIPComp is the IP Payload Compression Protocol.
	IPProtocolIPComp IPProtocol = 108
	// IPProtocolVRRP is the Virtual Router Redundancy Protocol (RFC 5798).
	IPProtocolVRRP IPProtocol = 112
	// IPProtocolL2TP is the Layer Two Tunneling Protocol (RFC 2661).
	IPProtocolL2TP IPProtocol = 115
	// IPProtocolISIS is IS-IS over IPv4.
	IPProtocolISIS IPProtocol = 124
	// IPProtocolSCTP is the Stream Control Transmission Protocol.
	IPProtocolSCTP IPProtocol = 132
	// IPProtocolFC is Fibre Channel.
	IPProtocolFC IPProtocol = 133
	// IPProtocolMobility is Mobility Support for IPv6 (RFC 6275).
	IPProtocolMobility IPProtocol = 135
	// IPProtocolUDPLite is UDP-Lite (RFC 3828).
	IPProtocolUDPLite IPProtocol = 136
	// IPProtocolMPLSInIP is MPLS-in-IP (RFC 4023).
	IPProtocolMPLSInIP IPProtocol = 137
	// IPProtocolMANET is MANET protocols (RFC 5498).
	IPProtocolMANET IPProtocol = 138
	// IPProtocolHIP is the Host Identity Protocol.
	IPProtocolHIP IPProtocol = 139
	// IPProtocolShim6 is the Shim6 protocol (RFC 5533).
	IPProtocolShim6 IPProtocol = 140
	// IPProtocolWESP is Wrapped Encapsulating Security Payload.
	IPProtocolWESP IPProtocol = 141
	// IPProtocolROHC is Robust Header Compression.
	IPProtocolROHC IPProtocol = 142
)

// ipProtocolNames maps assigned protocol numbers to names.
var ipProtocolNames = map[IPProtocol]string{
	IPProtocolHopByHop:  "HopByHop",
	IPProtocolICMP:      "ICMP",
	IPProtocolIGMP:      "IGMP",
	IPProtocolGGP:       "GGP",
	IPProtocolIPEncap:   "IPEncap",
	IPProtocolST:        "ST",
	IPProtocolTCP:       "TCP",
	IPProtocolEGP:       "EGP",
	IPProtocolIGP:       "IGP",
	IPProtocolPUP:       "PUP",
	IPProtocolUDP:       "UDP",
	IPProtocolHMP:       "HMP",
	IPProtocolXNSIDP:    "XNSIDP",
	IPProtocolRDP:       "RDP",
	IPProtocolISOTP4:    "ISOTP4",
	IPProtocolDCCP:      "DCCP",
	IPProtocolXTP:       "XTP",
	IPProtocolDDP:       "DDP",
	IPProtocolIDPRCMTP:  "IDPRCMTP",
	IPProtocolIPv6:      "IPv6",
	IPProtocolIPv6Route: "IPv6Route",
	IPProtocolIPv6Frag:  "IPv6Frag",
	IPProtocolIDRP:      "IDRP",
	IPProtocolRSVP:      "RSVP",
	IPProtocolGRE:       "GRE",
	IPProtocolESP:       "ESP",
	IPProtocolAH:        "AH",
	IPProtocolSKIP:      "SKIP",
	IPProtocolIPv6ICMP:  "IPv6ICMP",
	IPProtocolIPv6NoNxt: "IPv6NoNxt",
	IPProtocolIPv6Opts:  "IPv6Opts",
	IPProtocolRSPF:      "RSPF",
	IPProtocolVMTP:      "VMTP",
	IPProtocolEIGRP:     "EIGRP",
	IPProtocolOSPF:      "OSPF",
	IPProtocolAX25:      "AX25",
	IPProtocolIPIP:      "IPIP",
	IPProtocolEtherIP:   "EtherIP",
	IPProtocolEncap:     "Encap",
	IPProtocolPIM:       "PIM",
	IPProtocolIPComp:    "IPComp",
	IPProtocolVRRP:      "VRRP",
	IPProtocolL2TP:      "L2TP",
	IPProtocolISIS:      "ISIS",
	IPProtocolSCTP:      "SCTP",
	IPProtocolFC:        "FC",
	IPProtocolMobility:  "Mobility",
	IPProtocolUDPLite:   "UDPLite",
	IPProtocolMPLSInIP:  "MPLSInIP",
	IPProtocolMANET:     "MANET",
	IPProtocolHIP:       "HIP",
	IPProtocolShim6:     "Shim6",
	IPProtocolWESP:      "WESP",
	IPProtocolROHC:      "ROHC",
}

// String returns the name of an assigned protocol number, or
// "Unknown(n)" for any other value.
func (p IPProtocol) String() string {
	if name, ok := ipProtocolNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint8(p))
}
