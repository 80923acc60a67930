package datalink

import (
	"errors"

	"github.com/sharksforarms/hatchet/packet"
)

// PacketReader is a source of parsed packets. Sources with an end, such
// as pcap files, return io.EOF when exhausted.
type PacketReader interface {
	ReadPacket() (*packet.Packet, error)
}

// PacketWriter is a sink for packets. Callers are expected to Finalize
// a crafted packet before writing it.
type PacketWriter interface {
	WritePacket(*packet.Packet) error
}

// ErrInterfaceNotFound indicates the named network interface does not
// exist on this host.
var ErrInterfaceNotFound = errors.New("interface not found")

// ErrReadTimeout indicates no frame arrived within the source's read
// timeout. The read may simply be retried.
var ErrReadTimeout = errors.New("read timeout")
