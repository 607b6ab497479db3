package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"lifeweeks/internal/logger"
	queue "lifeweeks/internal/queue/iface"
)

// ChannelQueue is the in-process rendering of the worker IPC queue. Messages
// are JSON-encoded on Send and decoded on Receive: only bytes sit in the
// channel, so producer and consumer can never share a live reference even
// though they run in the same address space.
type ChannelQueue[T any] struct {
	ch     chan []byte
	logger logger.Logger

	mu     sync.Mutex
	closed bool
}

// NewChannelQueue creates a queue with the given buffer capacity.
func NewChannelQueue[T any](buffer int, log logger.Logger) *ChannelQueue[T] {
	if buffer <= 0 {
		buffer = 64
	}
	return &ChannelQueue[T]{
		ch:     make(chan []byte, buffer),
		logger: log.With(logger.String("component", "channel_queue")),
	}
}

func (q *ChannelQueue[T]) Send(ctx context.Context, message T) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return fmt.Errorf("queue is closed")
	}

	select {
	case q.ch <- body:
		q.mu.Unlock()
		return nil
	default:
	}
	q.mu.Unlock()

	// Buffer full: wait for space without holding the lock. Close never
	// closes the channel itself, so this send cannot panic.
	select {
	case q.ch <- body:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send canceled: %w", ctx.Err())
	}
}

func (q *ChannelQueue[T]) Receive(ctx context.Context) (T, bool) {
	var zero T
	for {
		select {
		case body := <-q.ch:
			var message T
			if err := json.Unmarshal(body, &message); err != nil {
				q.logger.Error("failed to unmarshal queued message", logger.Error(err))
				continue
			}
			return message, true
		case <-ctx.Done():
			return zero, false
		}
	}
}

func (q *ChannelQueue[T]) Len() int {
	return len(q.ch)
}

// Close stops further sends. The channel is left open so concurrent senders
// and receivers never race a close; drained receivers simply block until
// their context ends.
func (q *ChannelQueue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}

var _ queue.Queue[struct{}] = (*ChannelQueue[struct{}])(nil)
