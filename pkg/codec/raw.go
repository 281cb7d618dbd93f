package codec

// Raw is the identity codec for byte payloads. It copies on both paths so
// callers never share memory with the transport's receive buffer.
type Raw struct{}

// Encode returns a copy of b.
func (Raw) Encode(b []byte) []byte {
	return append([]byte(nil), b...)
}

// Decode returns a copy of buf. It never fails.
func (Raw) Decode(buf []byte) ([]byte, error) {
	return append([]byte{}, buf...), nil
}
