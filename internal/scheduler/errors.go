package scheduler

import "errors"

// ErrTimeout indicates a command was sent but no response arrived before the
// deadline. The pending correlation entry is removed before this propagates.
var ErrTimeout = errors.New("timed out waiting for scheduler worker response")

// ErrClientClosed indicates the client was stopped before the command could
// be issued.
var ErrClientClosed = errors.New("scheduler client is closed")

// ErrWorkerNotReady indicates the worker never signaled readiness through the
// coordinator. Health checks fail fast on it instead of waiting out a
// round-trip timeout.
var ErrWorkerNotReady = errors.New("scheduler worker has not signaled readiness")

// IsTimeout reports whether err is a worker-response timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
