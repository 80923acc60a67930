package layer

import "fmt"

// ICMPType is the ICMPv4 message type (RFC 792). One byte on the wire.
// Values not named below are carried through unchanged.
type ICMPType uint8

// ICMPv4 message types.
const (
	// ICMPTypeEchoReply is an Echo Reply.
	ICMPTypeEchoReply ICMPType = 0
	// ICMPTypeDestUnreach is Destination Unreachable.
	ICMPTypeDestUnreach ICMPType = 3
	// ICMPTypeSourceQuench is Source Quench (deprecated).
	ICMPTypeSourceQuench ICMPType = 4
	// ICMPTypeRedirect is Redirect.
	ICMPTypeRedirect ICMPType = 5
	// ICMPTypeAlternateHostAddress is Alternate Host Address (deprecated).
	ICMPTypeAlternateHostAddress ICMPType = 6
	// ICMPTypeEchoRequest is an Echo Request.
	ICMPTypeEchoRequest ICMPType = 8
	// ICMPTypeRouterAdvertisement is Router Advertisement.
	ICMPTypeRouterAdvertisement ICMPType = 9
	// ICMPTypeRouterSolicitation is Router Solicitation.
	ICMPTypeRouterSolicitation ICMPType = 10
	// ICMPTypeTimeExceeded is Time Exceeded.
	ICMPTypeTimeExceeded ICMPType = 11
	// ICMPTypeParameterProblem is Parameter Problem.
	ICMPTypeParameterProblem ICMPType = 12
	// ICMPTypeTimestampRequest is Timestamp Request.
	ICMPTypeTimestampRequest ICMPType = 13
	// ICMPTypeTimestampReply is Timestamp Reply.
	ICMPTypeTimestampReply ICMPType = 14
	// ICMPTypeInformationRequest is Information Request (deprecated).
	ICMPTypeInformationRequest ICMPType = 15
	// ICMPTypeInformationReply is Information Reply (deprecated).
	ICMPTypeInformationReply ICMPType = 16
	// ICMPTypeAddressMaskRequest is Address Mask Request (deprecated).
	ICMPTypeAddressMaskRequest ICMPType = 17
	// ICMPTypeAddressMaskReply is Address Mask Reply (deprecated).
	ICMPTypeAddressMaskReply ICMPType = 18
	// ICMPTypeTraceroute is Traceroute (deprecated).
	ICMPTypeTraceroute ICMPType = 30
	// ICMPTypeDatagramConversionError is Datagram Conversion Error (deprecated).
	ICMPTypeDatagramConversionError ICMPType = 31
	// ICMPTypeMobileHostRedirect is Mobile Host Redirect (deprecated).
	ICMPTypeMobileHostRedirect ICMPType = 32
	// ICMPTypeIPv6WhereAreYou is IPv6 Where-Are-You (deprecated).
	ICMPTypeIPv6WhereAreYou ICMPType = 33
	// ICMPTypeIPv6IAmHere is IPv6 I-Am-Here (deprecated).
	ICMPTypeIPv6IAmHere ICMPType = 34
	// ICMPTypeMobileRegistrationRequest is Mobile Registration Request (deprecated).
	ICMPTypeMobileRegistrationRequest ICMPType = 35
	// ICMPTypeMobileRegistrationReply is Mobile Registration Reply (deprecated).
	ICMPTypeMobileRegistrationReply ICMPType = 36
	// ICMPTypeDomainNameRequest is Domain Name Request (deprecated).
	ICMPTypeDomainNameRequest ICMPType = 37
	// ICMPTypeDomainNameReply is Domain Name Reply (deprecated).
	ICMPTypeDomainNameReply ICMPType = 38
	// ICMPTypeSkip is SKIP (deprecated).
	ICMPTypeSkip ICMPType = 39
	// ICMPTypePhoturis is Photuris.
	ICMPTypePhoturis ICMPType = 40
	// ICMPTypeExtendedEchoRequest is Extended Echo Request (RFC 8335).
	ICMPTypeExtendedEchoRequest ICMPType = 42
	// ICMPTypeExtendedEchoReply is Extended Echo Reply (RFC 8335).
	ICMPTypeExtendedEchoReply ICMPType = 43
)

// icmpTypeNames maps assigned ICMPv4 types to names.
var icmpTypeNames = map[ICMPType]string{
	ICMPTypeEchoReply:                 "EchoReply",
	ICMPTypeDestUnreach:               "DestUnreach",
	ICMPTypeSourceQuench:              "SourceQuench",
	ICMPTypeRedirect:                  "Redirect",
	ICMPTypeAlternateHostAddress:      "AlternateHostAddress",
	ICMPTypeEchoRequest:               "EchoRequest",
	ICMPTypeRouterAdvertisement:       "RouterAdvertisement",
	ICMPTypeRouterSolicitation:        "RouterSolicitation",
	ICMPTypeTimeExceeded:              "TimeExceeded",
	ICMPTypeParameterProblem:          "ParameterProblem",
	ICMPTypeTimestampRequest:          "TimestampRequest",
	ICMPTypeTimestampReply:            "TimestampReply",
	ICMPTypeInformationRequest:        "InformationRequest",
	ICMPTypeInformationReply:          "InformationReply",
	ICMPTypeAddressMaskRequest:        "AddressMaskRequest",
	ICMPTypeAddressMaskReply:          "AddressMaskReply",
	ICMPTypeTraceroute:                "Traceroute",
	ICMPTypeDatagramConversionError:   "DatagramConversionError",
	ICMPTypeMobileHostRedirect:        "MobileHostRedirect",
	ICMPTypeIPv6WhereAreYou:           "IPv6WhereAreYou",
	ICMPTypeIPv6IAmHere:               "IPv6IAmHere",
	ICMPTypeMobileRegistrationRequest: "MobileRegistrationRequest",
	ICMPTypeMobileRegistrationReply:   "MobileRegistrationReply",
	ICMPTypeDomainNameRequest:         "DomainNameRequest",
	ICMPTypeDomainNameReply:           "DomainNameReply",
	ICMPTypeSkip:                      "Skip",
	ICMPTypePhoturis:                  "Photuris",
	ICMPTypeExtendedEchoRequest:       "ExtendedEchoRequest",
	ICMPTypeExtendedEchoReply:         "ExtendedEchoReply",
}

// String returns the name of an assigned ICMPv4 type, or "Unknown(n)"
// for any other value.
func (t ICMPType) String() string {
	if name, ok := icmpTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint8(t))
}
