package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"
)

// HeaderSize is the number of bytes taken by the record ID.
const HeaderSize = 4

var (
	// ErrIncomplete reports a payload shorter than HeaderSize.
	ErrIncomplete = errors.New("incomplete record")
	// ErrInvalidEncoding reports a payload whose data is not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid utf-8 in record data")
)

// Record is a numeric ID paired with a UTF-8 text payload
type Record struct {
	ID   uint32 // Record identifier, not required to be unique
	Data string // UTF-8 payload
}

// Size returns the encoded size of the record in bytes
func (r Record) Size() int {
	return HeaderSize + len(r.Data)
}

// String implements fmt.Stringer
func (r Record) String() string {
	return fmt.Sprintf("[%d : %s]", r.ID, r.Data)
}

// ParseErrorKind tells apart the ways a record payload can be rejected
type ParseErrorKind int

const (
	// Incomplete means fewer than HeaderSize bytes were available.
	Incomplete ParseErrorKind = iota + 1
	// InvalidEncoding means the data after the header is not UTF-8.
	InvalidEncoding
)

func (k ParseErrorKind) String() string {
	switch k {
	case Incomplete:
		return "incomplete"
	case InvalidEncoding:
		return "invalid encoding"
	default:
		return fmt.Sprintf("ParseErrorKind(%d)", int(k))
	}
}

// ParseError is returned by RecordCodec.Decode
type ParseError struct {
	Kind      ParseErrorKind
	Available int   // bytes present, set for Incomplete
	Err       error // underlying decode failure, set for InvalidEncoding
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case Incomplete:
		return fmt.Sprintf("incomplete record: got %d bytes, need at least %d", e.Available, HeaderSize)
	case InvalidEncoding:
		return fmt.Sprintf("invalid record data: %v", e.Err)
	default:
		return "record parse error"
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches ErrIncomplete and ErrInvalidEncoding by kind.
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrIncomplete:
		return e.Kind == Incomplete
	case ErrInvalidEncoding:
		return e.Kind == InvalidEncoding
	}
	return false
}

// EncodingError locates the first byte of a payload that is not valid UTF-8
type EncodingError struct {
	Offset int // offset within the data, after the header
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid utf-8 sequence at byte %d", e.Offset)
}

// RecordCodec handles serialization and deserialization of records
type RecordCodec struct{}

// NewRecordCodec creates a new record codec instance
func NewRecordCodec() *RecordCodec {
	return &RecordCodec{}
}

// Encode serializes a record into its datagram form
// Format: [ID(4)][Data]
func (c *RecordCodec) Encode(r Record) []byte {
	buf := make([]byte, r.Size())
	binary.LittleEndian.PutUint32(buf[0:], r.ID)
	copy(buf[HeaderSize:], r.Data)
	return buf
}

// Decode deserializes a datagram into a Record. The returned record does
// not alias data.
func (c *RecordCodec) Decode(data []byte) (Record, error) {
	if len(data) < HeaderSize {
		return Record{}, &ParseError{Kind: Incomplete, Available: len(data)}
	}

	payload := data[HeaderSize:]
	if !utf8.Valid(payload) {
		return Record{}, &ParseError{
			Kind: InvalidEncoding,
			Err:  &EncodingError{Offset: firstInvalid(payload)},
		}
	}

	return Record{
		ID:   binary.LittleEndian.Uint32(data[0:HeaderSize]),
		Data: string(payload),
	}, nil
}

// firstInvalid returns the offset of the first byte that does not start a
// valid UTF-8 sequence.
func firstInvalid(p []byte) int {
	for i := 0; i < len(p); {
		r, size := utf8.DecodeRune(p[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(p)
}
