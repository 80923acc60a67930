// Package layer implements wire codecs for network protocol headers.
//
// A Layer is one protocol header (Ethernet, IPv4, IPv6, ICMPv4, TCP, UDP,
// or Raw payload) that can be parsed from bytes, serialized back to bytes,
// and finalized against its neighbor layers to recompute dependent fields
// such as lengths, checksums and header-size offsets.
//
// Parsing and serialization are symmetric: for every well-formed input,
// Parse followed by Bytes reproduces the consumed bytes exactly. All
// multi-byte fields are big-endian on the wire.
//
// The package is purely computational. It holds no sockets, spawns no
// goroutines, and never logs; errors propagate to the caller.
package layer
