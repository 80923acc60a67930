// Package packet assembles layers into packets and parses byte buffers
// into layered packets.
//
// A Packet is an ordered sequence of layers, outermost first, with a
// whole-packet Finalize (recomputing lengths and checksums left to
// right) and a whole-packet Bytes (concatenating the layers' wire
// bytes).
//
// A PacketParser decides which layer to parse next from user-extensible
// bindings keyed on the concrete type of the layer just parsed. The
// default parser knows the Ethernet/IP/TCP/UDP chain; Bind extends or
// overrides it, including with layers defined outside this module.
package packet
