package layer

// Raw is unstructured payload: application data or any protocol the
// parser has no binding for. It consumes all remaining input bytes.
type Raw struct {
	// Data holds the payload bytes.
	Data []byte
}

// NewRaw returns an empty Raw layer.
func NewRaw() *Raw {
	return &Raw{}
}

// Parse copies all of input into the layer.
func (r *Raw) Parse(input []byte) ([]byte, error) {
	r.Data = append([]byte(nil), input...)
	return input[len(input):], nil
}

// ParseRawLayer parses a Raw payload as a boxed Layer.
func ParseRawLayer(input []byte) ([]byte, Layer, error) {
	r := new(Raw)
	rest, err := r.Parse(input)
	if err != nil {
		return nil, nil, err
	}
	return rest, r, nil
}

// Bytes returns a copy of the payload.
func (r *Raw) Bytes() ([]byte, error) {
	return append([]byte(nil), r.Data...), nil
}

// Len returns the payload length.
func (r *Raw) Len() (int, error) {
	return len(r.Data), nil
}

// Finalize is a no-op.
func (r *Raw) Finalize(prev, next []Layer) error {
	return nil
}

// Clone returns an independent deep copy.
func (r *Raw) Clone() Layer {
	return &Raw{Data: append([]byte(nil), r.Data...)}
}
