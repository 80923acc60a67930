package datalink

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/sharksforarms/hatchet/layer"
	"github.com/sharksforarms/hatchet/packet"
)

// defaultSnaplen is the capture length written into pcap file headers.
const defaultSnaplen = 65536

// PcapFileReader reads packets from a pcap capture file.
type PcapFileReader struct {
	parser *packet.PacketParser
	reader *pcapgo.Reader
}

// NewPcapFileReader opens a pcap stream with the default packet parser.
func NewPcapFileReader(r io.Reader) (*PcapFileReader, error) {
	return NewPcapFileReaderWithParser(r, packet.NewPacketParser())
}

// NewPcapFileReaderWithParser opens a pcap stream; captured frames are
// parsed with the given parser, so custom layer bindings apply.
func NewPcapFileReaderWithParser(r io.Reader, parser *packet.PacketParser) (*PcapFileReader, error) {
	pr, err := pcapgo.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open pcap stream: %w", err)
	}
	return &PcapFileReader{parser: parser, reader: pr}, nil
}

// ReadPacket reads and parses the next frame. Returns io.EOF at the end
// of the file.
func (r *PcapFileReader) ReadPacket() (*packet.Packet, error) {
	data, _, err := r.reader.ReadPacketData()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read pcap record: %w", err)
	}

	_, pkt, err := packet.ParsePacket[layer.Ether](r.parser, data)
	if err != nil {
		return nil, err
	}
	return pkt, nil
}

// PcapFileWriter writes packets to a pcap capture file.
type PcapFileWriter struct {
	writer *pcapgo.Writer
}

// NewPcapFileWriter writes a pcap file header for Ethernet link-layer
// frames and returns a writer appending one record per packet.
func NewPcapFileWriter(w io.Writer) (*PcapFileWriter, error) {
	pw := pcapgo.NewWriter(w)
	if err := pw.WriteFileHeader(defaultSnaplen, layers.LinkTypeEthernet); err != nil {
		return nil, fmt.Errorf("write pcap file header: %w", err)
	}
	return &PcapFileWriter{writer: pw}, nil
}

// WritePacket serializes pkt and appends it as one capture record.
func (w *PcapFileWriter) WritePacket(pkt *packet.Packet) error {
	data, err := pkt.Bytes()
	if err != nil {
		return err
	}

	ci := gopacket.CaptureInfo{
		Timestamp:     time.Now(),
		CaptureLength: len(data),
		Length:        len(data),
	}
	if err := w.writer.WritePacket(ci, data); err != nil {
		return fmt.Errorf("write pcap record: %w", err)
	}
	return nil
}
