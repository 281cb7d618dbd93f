package codec_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/ssargent/recordcast/pkg/codec"
)

// ExampleRecordCodec_basic demonstrates basic record encoding and decoding
func ExampleRecordCodec_basic() {
	c := codec.NewRecordCodec()

	encoded := c.Encode(codec.Record{ID: 1, Data: "r"})
	fmt.Printf("Encoded %d bytes: %v\n", len(encoded), encoded)

	record, err := c.Decode(encoded)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("ID: %d\n", record.ID)
	fmt.Printf("Data: %s\n", record.Data)

	// Output:
	// Encoded 5 bytes: [1 0 0 0 114]
	// ID: 1
	// Data: r
}

// ExampleRecordCodec_errors shows how decode failures are classified
func ExampleRecordCodec_errors() {
	c := codec.NewRecordCodec()

	_, err := c.Decode([]byte{0, 0})
	fmt.Println(errors.Is(err, codec.ErrIncomplete), err)

	_, err = c.Decode([]byte{1, 0, 0, 0, 0xc3, 0x28})
	fmt.Println(errors.Is(err, codec.ErrInvalidEncoding), err)

	// Output:
	// true incomplete record: got 2 bytes, need at least 4
	// true invalid record data: invalid utf-8 sequence at byte 0
}

// ExampleIgnoreSource shows how an address-unaware codec is handed to code
// that expects a SourceDecoder
func ExampleIgnoreSource() {
	dec := codec.IgnoreSource[codec.Record](codec.NewRecordCodec())

	record, err := dec.DecodeFrom([]byte{42, 0, 0, 0, 'o', 'k'}, nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(record)

	// Output:
	// [42 : ok]
}
