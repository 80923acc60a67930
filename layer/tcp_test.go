package layer_test

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/sharksforarms/hatchet/layer"
)

// httpGetHex is the payload of a captured HTTP GET segment.
const httpGetHex = "474554202f646f776e6c6f61642e68746d6c20485454502f312e310d0a486f73743a20" +
	"7777772e657468657265616c2e636f6d0d0a557365722d4167656e743a204d6f7a696c6c612f352e3020" +
	"2857696e646f77733b20553b2057696e646f7773204e5420352e313b20656e2d55533b2072763a312e36" +
	"29204765636b6f2f32303034303131330d0a4163636570743a20746578742f786d6c2c6170706c696361" +
	"74696f6e2f786d6c2c6170706c69636174696f6e2f7868746d6c2b786d6c2c746578742f68746d6c3b71" +
	"3d302e392c746578742f706c61696e3b713d302e382c696d6167652f706e672c696d6167652f6a706567" +
	"2c696d6167652f6769663b713d302e322c2a2f2a3b713d302e310d0a4163636570742d4c616e67756167" +
	"653a20656e2d75732c656e3b713d302e350d0a4163636570742d456e636f64696e673a20677a69702c64" +
	"65666c6174650d0a4163636570742d436861727365743a2049534f2d383835392d312c7574662d383b71" +
	"3d302e372c2a3b713d302e370d0a4b6565702d416c6976653a203330300d0a436f6e6e656374696f6e3a" +
	"206b6565702d616c6976650d0a526566657265723a20687474703a2f2f7777772e657468657265616c2e" +
	"636f6d2f646576656c6f706d656e742e68746d6c0d0a0d0a"

func TestTCPRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  *layer.TCP
	}{
		{
			name:  "no options",
			input: "0d2c005038affe14114c618c501825bca9580000",
			want: &layer.TCP{
				SrcPort:  3372,
				DstPort:  80,
				Seq:      951057940,
				Ack:      290218380,
				Offset:   5,
				Flags:    layer.TCPFlags{ACK: true, PSH: true},
				Window:   9660,
				Checksum: 0xa958,
			},
		},
		{
			name: "timestamp and sack options",
			input: "c213005086eebc64e4d6bb98b01000c49afc0000" +
				"0101080ad3845879407337de0101050ae4d6c0f0e4d6cba0",
			want: &layer.TCP{
				SrcPort:  49683,
				DstPort:  80,
				Seq:      2263792740,
				Ack:      3839277976,
				Offset:   11,
				Flags:    layer.TCPFlags{ACK: true},
				Window:   196,
				Checksum: 0x9afc,
				Options: []layer.TCPOption{
					layer.TCPOptionNoOperation{},
					layer.TCPOptionNoOperation{},
					layer.TCPOptionTimestamp{Start: 3548665977, End: 1081292766},
					layer.TCPOptionNoOperation{},
					layer.TCPOptionNoOperation{},
					layer.TCPOptionSAck{Blocks: []layer.SAckBlock{
						{Begin: 3839279344, End: 3839282080},
					}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input := mustHex(t, tt.input)

			tcp := new(layer.TCP)
			rest, err := tcp.Parse(input)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if len(rest) != 0 {
				t.Errorf("Parse() left %d bytes unconsumed", len(rest))
			}
			if !reflect.DeepEqual(tt.want, tcp) {
				t.Errorf("Parse() = %+v, want %+v", tcp, tt.want)
			}

			out, err := tcp.Bytes()
			if err != nil {
				t.Fatalf("Bytes() error: %v", err)
			}
			if !bytes.Equal(input, out) {
				t.Errorf("Bytes() = %x, want %x", out, input)
			}
		})
	}
}

func TestTCPParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{
			// Data offset 1 is below the 5-word minimum.
			name:  "invalid data offset",
			input: "0d2c005038affe14114c618c101825bca9580000",
		},
		{
			// Data offset 15 declares 40 option bytes; none follow.
			name:  "options past end",
			input: "ffffffffffffffffffffffffffffffffffffffff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tcp := new(layer.TCP)
			_, err := tcp.Parse(mustHex(t, tt.input))
			if !errors.Is(err, layer.ErrParse) {
				t.Errorf("Parse() error = %v, want ErrParse", err)
			}
		})
	}

	t.Run("incomplete header", func(t *testing.T) {
		t.Parallel()

		tcp := new(layer.TCP)
		_, err := tcp.Parse(make([]byte, 19))
		if !errors.Is(err, layer.ErrIncomplete) {
			t.Errorf("Parse() error = %v, want ErrIncomplete", err)
		}
	})
}

func TestTCPDefault(t *testing.T) {
	t.Parallel()

	want := &layer.TCP{Offset: 5}
	if got := layer.NewTCP(); !reflect.DeepEqual(want, got) {
		t.Errorf("NewTCP() = %+v, want %+v", got, want)
	}
}

// The serialized header length must always equal Offset*4.
func TestTCPBytesOffsetMismatch(t *testing.T) {
	t.Parallel()

	tcp := layer.NewTCP()
	tcp.Options = append(tcp.Options, layer.TCPOptionNoOperation{})

	if _, err := tcp.Bytes(); !errors.Is(err, layer.ErrParse) {
		t.Errorf("Bytes() error = %v, want ErrParse", err)
	}
}

func TestTCPFinalizeAlignsOptions(t *testing.T) {
	t.Parallel()

	tcp := layer.NewTCP()
	tcp.Options = append(tcp.Options,
		layer.TCPOptionNoOperation{},
		layer.TCPOptionNoOperation{},
	)

	if err := tcp.Finalize(nil, nil); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	wantOptions := []layer.TCPOption{
		layer.TCPOptionNoOperation{},
		layer.TCPOptionNoOperation{},
		layer.TCPOptionEndOfOptions{},
		layer.TCPOptionEndOfOptions{},
	}
	if !reflect.DeepEqual(wantOptions, tcp.Options) {
		t.Errorf("Options = %+v, want %+v", tcp.Options, wantOptions)
	}
	if tcp.Offset != 6 {
		t.Errorf("Offset = %d, want 6", tcp.Offset)
	}

	out, err := tcp.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}
	if len(out) != 24 || len(out)%4 != 0 {
		t.Errorf("Bytes() length = %d, want 24", len(out))
	}
}

func TestTCPFinalizeChecksumIPv4(t *testing.T) {
	t.Parallel()

	ip := new(layer.IPv4)
	if _, err := ip.Parse(mustHex(t, "450002070f4540008006901091fea0ed41d0e4df")); err != nil {
		t.Fatalf("parse ipv4: %v", err)
	}

	tcp := new(layer.TCP)
	if _, err := tcp.Parse(mustHex(t, "0d2c005038affe14114c618c501825bc AAAA 0000")); err != nil {
		t.Fatalf("parse tcp: %v", err)
	}

	raw := &layer.Raw{Data: mustHex(t, httpGetHex)}

	if err := tcp.Finalize([]layer.Layer{ip}, []layer.Layer{raw}); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if tcp.Checksum != 0xa958 {
		t.Errorf("Checksum = 0x%04X, want 0xA958", tcp.Checksum)
	}
}

func TestTCPFinalizeChecksumIPv6(t *testing.T) {
	t.Parallel()

	ip := new(layer.IPv6)
	input := mustHex(t,
		"6000000000240680200251834383000000000000518343832001063809020001020102fffee27596")
	if _, err := ip.Parse(input); err != nil {
		t.Fatalf("parse ipv6: %v", err)
	}

	tcp := new(layer.TCP)
	if _, err := tcp.Parse(mustHex(t, "04020015626bf2f8e537a573501842640e910000")); err != nil {
		t.Fatalf("parse tcp: %v", err)
	}

	raw := &layer.Raw{Data: mustHex(t, "5553455220616e6f6e796d6f75730d0a")}

	if err := tcp.Finalize([]layer.Layer{ip}, []layer.Layer{raw}); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if tcp.Checksum != 0x0e91 {
		t.Errorf("Checksum = 0x%04X, want 0x0E91", tcp.Checksum)
	}
}

func TestTCPFinalizeChecksumDefaults(t *testing.T) {
	t.Parallel()

	next := []layer.Layer{
		&stubLayer{size: 100},
		&stubLayer{size: 0},
		&stubLayer{size: 100},
	}

	t.Run("ipv4 pseudo header", func(t *testing.T) {
		t.Parallel()

		tcp := layer.NewTCP()
		if err := tcp.Finalize([]layer.Layer{layer.NewIPv4()}, next); err != nil {
			t.Fatalf("Finalize() error: %v", err)
		}
		if tcp.Checksum != 0xB11A {
			t.Errorf("Checksum = 0x%04X, want 0xB11A", tcp.Checksum)
		}
	})

	t.Run("ipv6 pseudo header", func(t *testing.T) {
		t.Parallel()

		tcp := layer.NewTCP()
		if err := tcp.Finalize([]layer.Layer{layer.NewIPv6()}, next); err != nil {
			t.Fatalf("Finalize() error: %v", err)
		}
		if tcp.Checksum != 0xB0E6 {
			t.Errorf("Checksum = 0x%04X, want 0xB0E6", tcp.Checksum)
		}
	})

	t.Run("no ip layer leaves checksum untouched", func(t *testing.T) {
		t.Parallel()

		tcp := layer.NewTCP()
		tcp.Checksum = 0x1234
		if err := tcp.Finalize([]layer.Layer{&stubLayer{size: 14}}, next); err != nil {
			t.Fatalf("Finalize() error: %v", err)
		}
		if tcp.Checksum != 0x1234 {
			t.Errorf("Checksum = 0x%04X, want 0x1234", tcp.Checksum)
		}
	})
}

func TestTCPOptionsRoundTripAllKinds(t *testing.T) {
	t.Parallel()

	tcp := &layer.TCP{
		Offset: 12,
		Options: []layer.TCPOption{
			layer.TCPOptionMSS{MSS: 1460},
			layer.TCPOptionWindowScale{Shift: 7},
			layer.TCPOptionSAckPermitted{},
			layer.TCPOptionTimestamp{Start: 1, End: 2},
			layer.TCPOptionUnknown{KindNumber: 0xFD, Value: []byte{0xDE, 0xAD}},
			layer.TCPOptionNoOperation{},
			layer.TCPOptionNoOperation{},
			layer.TCPOptionNoOperation{},
			layer.TCPOptionNoOperation{},
			layer.TCPOptionEndOfOptions{},
		},
	}

	out, err := tcp.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}

	back := new(layer.TCP)
	rest, err := back.Parse(out)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("Parse() left %d bytes unconsumed", len(rest))
	}
	if !reflect.DeepEqual(tcp, back) {
		t.Errorf("round trip = %+v, want %+v", back, tcp)
	}
}

func TestTCPFlagsString(t *testing.T) {
	t.Parallel()

	f := layer.TCPFlags{SYN: true, ACK: true}
	if got, want := f.String(), "SA"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
