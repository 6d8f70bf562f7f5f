// Package buffers provides the buffers channels store pending values in.
//
// Buffers are not safe for concurrent use.
package buffers

import (
	"github.com/eapache/queue"
	"github.com/pkg/errors"
)

// ErrOverflow is the panic value when a value is put into a full [Fixed]
// buffer.
var ErrOverflow = errors.New("buffers: channel's buffer overflow")

// Buffer is the interface every buffer in this package implements.
type Buffer interface {
	IsEmpty() bool
	Put(v any)
	Take() any
	Flush() []any
}

type overflow int

const (
	overflowThrow overflow = iota
	overflowDrop
	overflowSlide
	overflowExpand
)

type none struct{}

func (none) IsEmpty() bool { return true }
func (none) Put(any)       {}
func (none) Take() any     { return nil }
func (none) Flush() []any  { return nil }

// None returns a buffer that never holds a value.
func None() Buffer {
	return none{}
}

type ring struct {
	q      *queue.Queue
	limit  int
	policy overflow
}

func newRing(limit int, policy overflow) *ring {
	if limit <= 0 {
		panic(errors.Errorf("buffers: limit must be positive, got %d", limit))
	}
	return &ring{q: queue.New(), limit: limit, policy: policy}
}

func (r *ring) IsEmpty() bool {
	return r.q.Length() == 0
}

func (r *ring) Put(v any) {
	if r.q.Length() < r.limit {
		r.q.Add(v)
		return
	}
	switch r.policy {
	case overflowThrow:
		panic(errors.WithStack(ErrOverflow))
	case overflowDrop:
	case overflowSlide:
		r.q.Remove()
		r.q.Add(v)
	case overflowExpand:
		r.limit *= 2
		r.q.Add(v)
	}
}

// Take returns the oldest value, or nil if r is empty.
func (r *ring) Take() any {
	if r.q.Length() == 0 {
		return nil
	}
	return r.q.Remove()
}

func (r *ring) Flush() []any {
	items := make([]any, 0, r.q.Length())
	for r.q.Length() != 0 {
		items = append(items, r.q.Remove())
	}
	return items
}

// Fixed returns a buffer of limit values that panics with [ErrOverflow]
// when a value is put while it is full.
func Fixed(limit int) Buffer {
	return newRing(limit, overflowThrow)
}

// Dropping returns a buffer of limit values that discards new values while
// it is full.
func Dropping(limit int) Buffer {
	return newRing(limit, overflowDrop)
}

// Sliding returns a buffer of limit values that discards the oldest value
// to make room for a new one while it is full.
func Sliding(limit int) Buffer {
	return newRing(limit, overflowSlide)
}

// Expanding returns a buffer that starts with room for initial values and
// grows as needed.
func Expanding(initial int) Buffer {
	return newRing(initial, overflowExpand)
}
