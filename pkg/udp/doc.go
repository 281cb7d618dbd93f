// Package udp sends and receives typed records as individual UDP datagrams.
//
// A Sender connects its bound socket to the destination, encodes each record
// with a codec.Encoder and writes exactly one datagram per record. Because
// the socket is connected, an ICMP port-unreachable from the peer surfaces
// as a write error and ends the send. Records whose encoding exceeds MaxPayload are cut to
// MaxPayload bytes and reported back to the caller in the Report; nothing is
// fragmented, acknowledged or retried.
//
// A Receiver reads one datagram per call to Next, waiting at most its read
// timeout (DefaultReadTimeout unless overridden), and decodes it with a
// codec.SourceDecoder. Every outcome is returned to the caller as a value:
//
//	rec, err := rx.Next()
//	switch {
//	case err == nil:
//		// got a record
//	case udp.IsTimeout(err):
//		// nothing arrived, check for shutdown and call Next again
//	case errors.As(err, new(*udp.ParseError)):
//		// corrupt datagram, keep going
//	default:
//		// socket fault, caller decides
//	}
//
// Neither type starts goroutines or takes locks. Each one owns its socket
// and must be driven by a single goroutine.
package udp
