package udp

import (
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
)

// Kind classifies socket failures.
type Kind int

const (
	// KindOther is any failure that is not one of the kinds below.
	KindOther Kind = iota
	// KindTimeout means the read deadline passed with no datagram.
	KindTimeout
	// KindWouldBlock means the socket had nothing to read right now.
	KindWouldBlock
	// KindClosed means the socket was closed.
	KindClosed
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindWouldBlock:
		return "would block"
	case KindClosed:
		return "closed"
	default:
		return "other"
	}
}

// IOError wraps a socket failure together with the operation that hit it.
type IOError struct {
	Op  string // "bind", "resolve", "read" or "write"
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("udp %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Kind classifies the underlying error.
func (e *IOError) Kind() Kind {
	return classify(e.Err)
}

// Timeout reports whether the error is an expected, empty read.
func (e *IOError) Timeout() bool {
	k := e.Kind()
	return k == KindTimeout || k == KindWouldBlock
}

// ParseError wraps the decoder's error for a datagram that could not be
// decoded. The transport does not know or care what the decoder's error
// type is.
type ParseError struct {
	Source net.Addr
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source == nil {
		return fmt.Sprintf("udp parse: %v", e.Err)
	}
	return fmt.Sprintf("udp parse from %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is an I/O error caused by the receive
// timeout or an empty non-blocking read.
func IsTimeout(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr) && ioErr.Timeout()
}

// IsClosed reports whether err comes from using a closed socket.
func IsClosed(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr) && ioErr.Kind() == KindClosed
}

func classify(err error) Kind {
	if err == nil {
		return KindOther
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return KindTimeout
	}
	if errors.Is(err, net.ErrClosed) {
		return KindClosed
	}
	if errors.Is(err, syscall.EAGAIN) {
		return KindWouldBlock
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindOther
}
