// Package datalink reads and writes packets over pluggable backends.
//
// A backend implements PacketReader, PacketWriter or both:
//
//   - PcapFileReader / PcapFileWriter for .pcap files (no cgo)
//   - Pcap for live interface I/O through libpcap, with BPF filters
//   - AFPacket for raw AF_PACKET socket I/O on Linux (no cgo)
//   - Tap for TUN/TAP virtual interfaces on Linux
//
// Readers parse each captured frame with a packet.PacketParser starting
// at Ethernet; writers serialize packets with Packet.Bytes. Every
// reading backend accepts a custom parser so user layer bindings apply
// to captured traffic.
package datalink
