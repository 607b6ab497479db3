package queue

import "context"

// Queue is a unidirectional FIFO carrying values of a single message type.
// Implementations must transfer plain data only: a message is serialized on
// Send and rebuilt on Receive, so no live reference ever crosses from
// producer to consumer.
type Queue[T any] interface {
	// Send enqueues a message. It fails when the queue is closed or the
	// context is done before space is available.
	Send(ctx context.Context, message T) error

	// Receive blocks until a message arrives, the context is done, or the
	// queue is closed and drained. The bool is false in the latter two cases.
	Receive(ctx context.Context) (T, bool)

	// Len reports the number of messages waiting to be received.
	Len() int

	// Close makes further sends fail. Pending messages remain receivable.
	Close()
}
