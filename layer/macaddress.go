package layer

import "fmt"

// macAddressSize is the size in bytes of an Ethernet MAC address.
const macAddressSize = 6

// MACAddress is an IEEE 802.3 hardware address, big-endian on the wire.
// The zero value is the all-zeros address.
type MACAddress [macAddressSize]byte

// String formats the address in the conventional colon-separated form.
func (m MACAddress) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
		m[0], m[1], m[2], m[3], m[4], m[5])
}
