package events

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func TestDisabledPublisherIsNoOp(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := NewPublisher("", logger)
	// Must not panic or block without a broker behind it.
	p.Publish(context.Background(), AppointmentCreated, "some-id", map[string]string{"k": "v"})
	if err := p.Close(); err != nil {
		t.Fatalf("close on disabled publisher: %v", err)
	}
}

func TestDisabledPublisherIgnoresUnmarshalablePayload(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := NewPublisher(" , ", logger)
	p.Publish(context.Background(), WorkerChanged, "id", func() {})
}
