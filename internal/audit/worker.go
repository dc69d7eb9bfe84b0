package audit

import (
	"context"
	"log/slog"
)

// Buffer decouples protocol operations from the publish path: Emit enqueues
// and returns immediately, and a Worker drains the queue into the sink.
// When the queue is full the event is dropped rather than blocking a state
// transition; the drop is logged.
type Buffer struct {
	inbox  chan Event
	logger *slog.Logger
}

// NewBuffer creates a buffer holding up to size pending events.
func NewBuffer(size int, logger *slog.Logger) *Buffer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Buffer{inbox: make(chan Event, size), logger: logger}
}

func (b *Buffer) Emit(ctx context.Context, event Event) error {
	select {
	case b.inbox <- Stamp(event):
	default:
		b.logger.WarnContext(ctx, "audit buffer full, dropping event", "action", event.Action)
	}
	return nil
}

// Worker consumes buffered events and hands them to the sink publisher.
type Worker struct {
	buffer *Buffer
	sink   Publisher
	logger *slog.Logger
}

func NewWorker(buffer *Buffer, sink Publisher, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{buffer: buffer, sink: sink, logger: logger}
}

// Run drains the buffer until the context is canceled. Sink failures are
// logged and do not stop the worker.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.buffer.inbox:
			if err := w.sink.Emit(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit sink failed", "action", event.Action, "error", err)
			}
		}
	}
}
