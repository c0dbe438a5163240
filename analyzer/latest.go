package analyzer

import "sync/atomic"

// Consumer receives every completed frame. Consumers must treat frames as
// read-only.
type Consumer interface {
	Consume(f *Frame)
}

// ConsumerFunc adapts a function to the Consumer interface.
type ConsumerFunc func(f *Frame)

// Consume calls fn(f).
func (fn ConsumerFunc) Consume(f *Frame) { fn(f) }

// Latest is a publish-on-write, read-most-recent handle for the newest frame.
// Load never blocks and never observes a partially built frame. The zero value
// is ready to use.
type Latest struct {
	p atomic.Pointer[Frame]
}

// Publish makes f the latest frame.
func (l *Latest) Publish(f *Frame) { l.p.Store(f) }

// Load returns the latest frame, or nil before the first Publish.
func (l *Latest) Load() *Frame { return l.p.Load() }

// Consume publishes f, so a *Latest can be passed to Run as a Consumer.
func (l *Latest) Consume(f *Frame) { l.Publish(f) }
