package layer_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/sharksforarms/hatchet/layer"
)

// mustHex decodes a hex string, ignoring spaces used for readability.
func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

// stubLayer is a fixed-size placeholder layer used to exercise
// length and checksum calculations over neighbor layers.
type stubLayer struct {
	size int
}

func (s *stubLayer) Parse(input []byte) ([]byte, error) {
	return input, nil
}

func (s *stubLayer) Bytes() ([]byte, error) {
	return make([]byte, s.size), nil
}

func (s *stubLayer) Len() (int, error) {
	return s.size, nil
}

func (s *stubLayer) Finalize(prev, next []layer.Layer) error {
	return nil
}

func (s *stubLayer) Clone() layer.Layer {
	c := *s
	return &c
}

func TestLengthOfLayers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		layers []layer.Layer
		want   int
	}{
		{name: "empty", layers: nil, want: 0},
		{name: "single", layers: []layer.Layer{&stubLayer{size: 100}}, want: 100},
		{
			name: "mixed",
			layers: []layer.Layer{
				&stubLayer{size: 100},
				&stubLayer{size: 0},
				&stubLayer{size: 42},
			},
			want: 142,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := layer.LengthOfLayers(tt.layers)
			if err != nil {
				t.Fatalf("LengthOfLayers() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("LengthOfLayers() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBytesOfLayers(t *testing.T) {
	t.Parallel()

	got, err := layer.BytesOfLayers([]layer.Layer{
		&layer.Raw{Data: []byte("layer0")},
		&layer.Raw{Data: []byte("layer1")},
	})
	if err != nil {
		t.Fatalf("BytesOfLayers() error: %v", err)
	}
	if string(got) != "layer0layer1" {
		t.Errorf("BytesOfLayers() = %q, want %q", got, "layer0layer1")
	}
}
