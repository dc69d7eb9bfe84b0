package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPublisherStampsEvents(t *testing.T) {
	publisher := NewMemoryPublisher()

	require.NoError(t, publisher.Emit(context.Background(), Event{
		Height:  1000,
		Account: "acct-1",
		Action:  ActionIdentityCreated,
	}))

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.NotZero(t, events[0].ID)
	assert.False(t, events[0].Timestamp.IsZero())
	assert.Equal(t, uint64(1000), events[0].Height)
}

func TestBufferAndWorker(t *testing.T) {
	t.Run("worker drains buffered events into the sink", func(t *testing.T) {
		sink := NewMemoryPublisher()
		buffer := NewBuffer(16, nil)
		worker := NewWorker(buffer, sink, nil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			_ = worker.Run(ctx)
			close(done)
		}()

		for i := 0; i < 5; i++ {
			require.NoError(t, buffer.Emit(ctx, Event{Account: "acct-1", Action: ActionVoteCast}))
		}

		assert.Eventually(t, func() bool {
			return len(sink.Events()) == 5
		}, time.Second, 10*time.Millisecond)

		cancel()
		<-done
	})

	t.Run("full buffer drops instead of blocking", func(t *testing.T) {
		buffer := NewBuffer(1, nil)

		// No worker is draining; the second emit must still return.
		require.NoError(t, buffer.Emit(context.Background(), Event{Action: ActionProtocolPaused}))
		require.NoError(t, buffer.Emit(context.Background(), Event{Action: ActionProtocolResumed}))
	})
}
