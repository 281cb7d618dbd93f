package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ssargent/recordcast/pkg/codec"
	"github.com/ssargent/recordcast/pkg/udp"
)

// ListenParams configures a listen task
type ListenParams struct {
	Bind        string        // local address to listen on
	ReadTimeout time.Duration // 0 means udp.DefaultReadTimeout
	Observer    Observer

	// Ready, if set, is called with the bound address once the socket is open
	Ready func(addr string)
}

// StartListen receives records until the task is stopped, reporting each
// one as an Info status.
func StartListen(ctx context.Context, p ListenParams) *Task {
	t, ctx := newTask(ctx, ModeListen, p.Observer)
	t.run(ctx, func(ctx context.Context) {
		t.listen(ctx, p)
	})
	return t
}

func (t *Task) listen(ctx context.Context, p ListenParams) {
	rx, err := udp.Listen(p.Bind,
		codec.IgnoreSource[codec.Record](codec.NewRecordCodec()),
		udp.WithReadTimeout(p.ReadTimeout),
	)
	if err != nil {
		t.fail(fmt.Sprintf("Couldn't bind to address: %v", err))
		return
	}
	defer rx.Close()

	addr := rx.LocalAddr().String()
	t.info(fmt.Sprintf("Listening on %s...", addr))
	if p.Ready != nil {
		p.Ready(addr)
	}

	for {
		record, err := rx.Next()

		var parseErr *udp.ParseError
		switch {
		case err == nil:
			t.recordReceived()
			t.info(fmt.Sprintf("Got record %s", record))
		case errors.As(err, &parseErr):
			t.parseFailed()
			t.warn(fmt.Sprintf("Got corrupted packet from %s: %v", parseErr.Source, parseErr.Err))
		case udp.IsTimeout(err):
			// nothing arrived
		case udp.IsClosed(err):
			t.fail(fmt.Sprintf("Socket closed: %v", err))
			return
		default:
			t.readFailed()
			t.warn(fmt.Sprintf("Error while reading from socket: %v", err))
		}

		if ctx.Err() != nil {
			t.info("Stopped")
			t.succeed()
			return
		}
	}
}
