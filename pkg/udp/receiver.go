package udp

import (
	"iter"
	"net"
	"time"

	"github.com/ssargent/recordcast/pkg/codec"
)

// DefaultReadTimeout bounds each call to Receiver.Next.
const DefaultReadTimeout = 100 * time.Millisecond

// Option configures a Receiver.
type Option func(*receiverOptions)

type receiverOptions struct {
	readTimeout time.Duration
}

// WithReadTimeout replaces DefaultReadTimeout. Non-positive values are ignored.
func WithReadTimeout(d time.Duration) Option {
	return func(o *receiverOptions) {
		if d > 0 {
			o.readTimeout = d
		}
	}
}

// Receiver reads datagrams from a bound socket and decodes them into T.
type Receiver[T any] struct {
	conn    *net.UDPConn
	dec     codec.SourceDecoder[T]
	timeout time.Duration
	buf     [MaxPayload]byte
}

// Listen binds a receiving socket on local. Plain decoders can be passed
// through codec.IgnoreSource.
func Listen[T any](local string, dec codec.SourceDecoder[T], opts ...Option) (*Receiver[T], error) {
	o := receiverOptions{readTimeout: DefaultReadTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	conn, err := listen(local)
	if err != nil {
		return nil, err
	}
	return &Receiver[T]{conn: conn, dec: dec, timeout: o.readTimeout}, nil
}

// Next waits up to the read timeout for one datagram and decodes it.
//
// A decode failure is returned as *ParseError. Socket failures, including
// the expected timeout when nothing arrives, are returned as *IOError.
// Datagrams longer than MaxPayload are cut to MaxPayload by the read.
func (r *Receiver[T]) Next() (T, error) {
	var zero T

	if err := r.conn.SetReadDeadline(time.Now().Add(r.timeout)); err != nil {
		return zero, &IOError{Op: "read", Err: err}
	}

	n, src, err := r.conn.ReadFromUDP(r.buf[:])
	if err != nil {
		return zero, &IOError{Op: "read", Err: err}
	}

	v, err := r.dec.DecodeFrom(r.buf[:n], src)
	if err != nil {
		return zero, &ParseError{Source: src, Err: err}
	}
	return v, nil
}

// All returns the unbounded sequence of Next results. It never ends on its
// own; the consumer stops it by breaking out of the range loop.
func (r *Receiver[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			if !yield(r.Next()) {
				return
			}
		}
	}
}

// LocalAddr returns the address the receiver is bound to.
func (r *Receiver[T]) LocalAddr() *net.UDPAddr {
	return r.conn.LocalAddr().(*net.UDPAddr)
}

// Close releases the socket. A closed receiver cannot be reopened.
func (r *Receiver[T]) Close() error {
	return r.conn.Close()
}
