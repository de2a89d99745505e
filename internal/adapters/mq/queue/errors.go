package queue

import "errors"

var (
	// ErrClosed is returned by Enqueue after Close.
	ErrClosed = errors.New("queue closed")
	// ErrFull is returned by Enqueue when the queue is at capacity.
	ErrFull = errors.New("queue full")
)
