package task

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/ssargent/recordcast/pkg/codec"
	"github.com/ssargent/recordcast/pkg/storage"
	"github.com/ssargent/recordcast/pkg/udp"
)

// SendParams configures a send task
type SendParams struct {
	Bind        string                         // local address to send from
	Destination string                         // host:port to send to
	Open        func() (storage.Loader, error) // opens the record source
	Observer    Observer
}

// StartSend loads every record from the source and sends each one as a
// datagram to the destination.
func StartSend(ctx context.Context, p SendParams) *Task {
	t, ctx := newTask(ctx, ModeSend, p.Observer)
	t.run(ctx, func(ctx context.Context) {
		t.send(ctx, p)
	})
	return t
}

func (t *Task) send(ctx context.Context, p SendParams) {
	t.info("Sending data...")

	sender, err := udp.Bind[codec.Record](p.Bind, codec.NewRecordCodec())
	if err != nil {
		t.fail(fmt.Sprintf("Couldn't bind to address: %v", err))
		return
	}
	defer sender.Close()

	if p.Open == nil {
		t.fail("No record source configured")
		return
	}
	loader, err := p.Open()
	if err != nil {
		t.fail(fmt.Sprintf("Couldn't open record source: %v", err))
		return
	}
	defer loader.Close()

	records, err := loader.Load(ctx)
	if err != nil {
		t.fail(fmt.Sprintf("Couldn't load records: %v", err))
		return
	}

	report, err := sender.Send(ctx, slices.Values(records), p.Destination)
	t.datagramsSent(report.Sent)
	t.recordsTruncated(report.Truncated())
	for _, w := range report.Warnings {
		t.warn(fmt.Sprintf("Record %d is too large (%d bytes), truncated to %d", records[w.Index].ID, w.Size, udp.MaxPayload))
	}

	switch {
	case errors.Is(err, context.Canceled):
		t.info(fmt.Sprintf("Stopped after %d of %d records", report.Sent, len(records)))
	case err != nil:
		t.fail(fmt.Sprintf("Error sending data: %v", err))
		return
	default:
		t.info(fmt.Sprintf("Sent %d records to %s", report.Sent, p.Destination))
		t.info("Done!")
	}
	t.succeed()
}
