package codec

import "net"

// Encoder serializes values of type T into a datagram payload.
type Encoder[T any] interface {
	Encode(v T) []byte
}

// Decoder parses a datagram payload into a value of type T.
type Decoder[T any] interface {
	Decode(buf []byte) (T, error)
}

// SourceDecoder parses a datagram payload and may use the address it came from.
type SourceDecoder[T any] interface {
	DecodeFrom(buf []byte, src net.Addr) (T, error)
}

// EncoderFunc adapts a plain function to the Encoder interface.
type EncoderFunc[T any] func(v T) []byte

// Encode calls f(v).
func (f EncoderFunc[T]) Encode(v T) []byte {
	return f(v)
}

// DecoderFunc adapts a plain function to the Decoder interface.
type DecoderFunc[T any] func(buf []byte) (T, error)

// Decode calls f(buf).
func (f DecoderFunc[T]) Decode(buf []byte) (T, error) {
	return f(buf)
}

// sourceIgnorer wraps a Decoder and drops the source address.
type sourceIgnorer[T any] struct {
	dec Decoder[T]
}

func (s sourceIgnorer[T]) DecodeFrom(buf []byte, _ net.Addr) (T, error) {
	return s.dec.Decode(buf)
}

// IgnoreSource upgrades an address-unaware decoder to a SourceDecoder that
// ignores the sender's address.
func IgnoreSource[T any](dec Decoder[T]) SourceDecoder[T] {
	return sourceIgnorer[T]{dec: dec}
}

// AsSource returns dec as a SourceDecoder. Decoders that already inspect the
// source address are returned unchanged; everything else goes through
// IgnoreSource.
func AsSource[T any](dec Decoder[T]) SourceDecoder[T] {
	if sd, ok := dec.(SourceDecoder[T]); ok {
		return sd
	}
	return IgnoreSource(dec)
}
