package codec

import (
	"bytes"
	"errors"
	"net"
	"testing"
)

// sourceTagger records where a payload came from.
type sourceTagger struct{}

func (sourceTagger) Decode(buf []byte) (string, error) {
	return string(buf), nil
}

func (sourceTagger) DecodeFrom(buf []byte, src net.Addr) (string, error) {
	return src.String() + "|" + string(buf), nil
}

func TestIgnoreSource(t *testing.T) {
	src := &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9000}

	dec := IgnoreSource[Record](NewRecordCodec())

	record, err := dec.DecodeFrom([]byte{1, 0, 0, 0, 'r'}, src)
	if err != nil {
		t.Fatalf("DecodeFrom failed: %v", err)
	}
	if record != (Record{ID: 1, Data: "r"}) {
		t.Errorf("Unexpected record: %+v", record)
	}

	_, err = dec.DecodeFrom([]byte{0, 0}, nil)
	if !errors.Is(err, ErrIncomplete) {
		t.Errorf("Expected ErrIncomplete through adapter, got %v", err)
	}
}

func TestAsSource(t *testing.T) {
	src := &net.UDPAddr{IP: net.IPv4(10, 0, 0, 1), Port: 1}

	t.Run("source-aware decoder is kept", func(t *testing.T) {
		dec := AsSource[string](sourceTagger{})
		got, err := dec.DecodeFrom([]byte("x"), src)
		if err != nil {
			t.Fatalf("DecodeFrom failed: %v", err)
		}
		if got != "10.0.0.1:1|x" {
			t.Errorf("Expected source to be used, got %q", got)
		}
	})

	t.Run("plain decoder ignores source", func(t *testing.T) {
		dec := AsSource[string](DecoderFunc[string](func(buf []byte) (string, error) {
			return string(buf), nil
		}))
		got, err := dec.DecodeFrom([]byte("x"), src)
		if err != nil {
			t.Fatalf("DecodeFrom failed: %v", err)
		}
		if got != "x" {
			t.Errorf("Expected plain decode, got %q", got)
		}
	})
}

func TestEncoderFunc(t *testing.T) {
	enc := EncoderFunc[string](func(s string) []byte { return []byte(s + "!") })
	if got := enc.Encode("hi"); !bytes.Equal(got, []byte("hi!")) {
		t.Errorf("Encode mismatch: got %q", got)
	}
}

func TestRaw(t *testing.T) {
	var raw Raw

	in := []byte{42, 1}
	out := raw.Encode(in)
	if !bytes.Equal(out, in) {
		t.Fatalf("Encode mismatch: got %v", out)
	}
	out[0] = 0
	if in[0] != 42 {
		t.Error("Encode must not alias its input")
	}

	decoded, err := raw.Decode(in)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	in[1] = 9
	if decoded[1] != 1 {
		t.Error("Decode must not alias its input")
	}

	empty, err := raw.Decode(nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("Expected empty payload, got %v, %v", empty, err)
	}
}
