// Package codec provides the datagram codecs used by recordcast.
//
// A codec is the paired serialize/parse logic for one record type. The
// transport in package udp is generic over the record type and only talks to
// the contracts defined here, so new record formats can be plugged in without
// touching the transport.
//
// # Contracts
//
// Three small interfaces describe what a codec can do:
//
//	Encoder[T]        Encode(v T) []byte
//	Decoder[T]        Decode(buf []byte) (T, error)
//	SourceDecoder[T]  DecodeFrom(buf []byte, src net.Addr) (T, error)
//
// Encoding is total. Decoding is a pure function of its input: it either
// consumes the whole slice or fails, and it never keeps a reference to buf
// after returning. IgnoreSource turns any Decoder into a SourceDecoder that
// discards the sender's address, so simple codecs do not need to care about
// provenance.
//
// # Record Format
//
// RecordCodec serializes a Record into a single datagram:
//
//	[ID(4)][Data]
//
// Fields:
//   - ID: 32-bit unsigned integer (little-endian)
//   - Data: UTF-8 text, unterminated, length implied by the datagram length
//
// The total size is: 4 bytes (header) + len(Data)
//
// There is no length field for Data. A datagram that lost trailing bytes
// below the UDP layer decodes to a shorter record rather than an error; the
// format cannot tell the two apart.
//
// # Error Handling
//
// RecordCodec.Decode returns a *ParseError for:
//   - fewer than HeaderSize bytes (ErrIncomplete, with the number of bytes seen)
//   - a payload that is not valid UTF-8 (ErrInvalidEncoding, wrapping an
//     *EncodingError with the offset of the first bad byte)
//
// Use errors.Is against the sentinels to classify a failure.
//
// # Thread Safety
//
// RecordCodec and Raw hold no state and are safe for concurrent use. Record
// is a plain value type.
package codec
