package udp

import (
	"context"
	"fmt"
	"iter"
	"net"

	"github.com/ssargent/recordcast/pkg/codec"
)

// MaxPayload is the largest datagram the sender emits and the size of the
// receiver's buffer. 508 bytes fits in a single IPv4 packet on any link
// without fragmentation.
const MaxPayload = 508

// Warning describes a record that was truncated before transmission.
type Warning struct {
	Index int // position of the record in the input sequence
	Size  int // encoded size before truncation
}

func (w Warning) String() string {
	return fmt.Sprintf("record %d too large (%d bytes), truncated to %d", w.Index, w.Size, MaxPayload)
}

// Report summarises a call to Send.
type Report struct {
	Sent     int       // datagrams written
	Warnings []Warning // truncated records, in input order
}

// Truncated returns the number of records that were cut to MaxPayload.
func (r Report) Truncated() int {
	return len(r.Warnings)
}

// Sender writes records of type T as datagrams from a bound local socket.
type Sender[T any] struct {
	conn *net.UDPConn
	enc  codec.Encoder[T]
}

// Bind opens a UDP socket on local, e.g. "0.0.0.0:8142" or "127.0.0.1:0".
func Bind[T any](local string, enc codec.Encoder[T]) (*Sender[T], error) {
	conn, err := listen(local)
	if err != nil {
		return nil, err
	}
	return &Sender[T]{conn: conn, enc: enc}, nil
}

// Send connects the socket to dest and writes one datagram per record, in
// order. Encodings longer than MaxPayload are truncated and listed in the
// report's warnings.
//
// Send stops at the first write error, including a refusal reported by the
// peer for an earlier datagram, and returns the report for what was already
// sent; those datagrams are not retried or recalled. ctx is checked between
// datagrams and its error is returned as is. The association with dest
// lasts until the next call to Send.
func (s *Sender[T]) Send(ctx context.Context, records iter.Seq[T], dest string) (Report, error) {
	var report Report

	raddr, err := net.ResolveUDPAddr("udp", dest)
	if err != nil {
		return report, &IOError{Op: "resolve", Err: err}
	}
	if err := connect(s.conn, raddr); err != nil {
		return report, &IOError{Op: "connect", Err: err}
	}

	i := 0
	for record := range records {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		payload := s.enc.Encode(record)
		if len(payload) > MaxPayload {
			report.Warnings = append(report.Warnings, Warning{Index: i, Size: len(payload)})
			payload = payload[:MaxPayload]
		}

		if _, err := s.conn.Write(payload); err != nil {
			return report, &IOError{Op: "write", Err: err}
		}
		report.Sent++
		i++
	}

	return report, nil
}

// LocalAddr returns the address the sender is bound to.
func (s *Sender[T]) LocalAddr() *net.UDPAddr {
	return s.conn.LocalAddr().(*net.UDPAddr)
}

// Close releases the socket.
func (s *Sender[T]) Close() error {
	return s.conn.Close()
}

func listen(local string) (*net.UDPConn, error) {
	laddr, err := net.ResolveUDPAddr("udp", local)
	if err != nil {
		return nil, &IOError{Op: "bind", Err: err}
	}
	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, &IOError{Op: "bind", Err: err}
	}
	return conn, nil
}
