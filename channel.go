package channel

import (
	"slices"

	"github.com/b97tsk/channel/buffers"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultBufferSize is the limit of the fixed buffer used by [New] and
// [NewActionChannel] when no buffer is given.
const DefaultBufferSize = 10

// Buffer is the storage a channel uses while no taker is waiting.
//
// Package buffers provides a few implementations.
type Buffer interface {
	IsEmpty() bool
	Put(v any)
	Take() any
	Flush() []any
}

// Chan is the consumer side shared by every kind of channel.
type Chan interface {
	Take(cb Callback) CancelFunc
	TakeWith(t *Taker)
	Flush(cb Callback)
	Close()
}

var (
	_ Chan = (*Channel)(nil)
	_ Chan = (*MulticastChannel)(nil)
	_ Chan = (*EventChannel)(nil)
	_ Chan = (*ActionChannel)(nil)
	_ Chan = (*StdChannel)(nil)
)

func fixedBuffer() Buffer { return buffers.Fixed(DefaultBufferSize) }

// A Channel connects producers and consumers with a buffer and a queue of
// waiting takers.
//
// A Channel is not safe for concurrent use. Values that come from other
// goroutines should go through a [StdChannel] or a [Scheduler].
type Channel struct {
	name    string
	buffer  Buffer
	takers  []*Taker
	closed  bool
	log     *logrus.Entry
	metrics *Metrics

	// Set while Broadcast is calling snapshot takers. Values put in the
	// meantime wait in deferred and are replayed in order afterwards.
	broadcasting bool
	deferred     []deferredValue
}

type deferredValue struct {
	v         any
	broadcast bool
}

// New creates an open [Channel].
// Without [WithBuffer], the channel uses a fixed buffer of
// [DefaultBufferSize] values.
func New(opts ...Option) *Channel {
	return newChannel(newConfig(opts), fixedBuffer)
}

func newChannel(cfg *config, def func() Buffer) *Channel {
	return &Channel{
		name:    cfg.name,
		buffer:  cfg.bufferOr(def),
		log:     cfg.logger,
		metrics: cfg.metrics,
	}
}

// Closed reports whether c has been closed.
func (c *Channel) Closed() bool {
	return c.closed
}

func (c *Channel) checkForbiddenStates() {
	if c.closed && len(c.takers) != 0 {
		panic(internalErr("cannot have a closed channel with pending takers"))
	}
	if len(c.takers) != 0 && !c.buffer.IsEmpty() {
		panic(internalErr("cannot have pending takers with non empty buffer"))
	}
}

// admit reports whether v should be handed to the taker queue.
func (c *Channel) admit(v any, op string, broadcast bool) bool {
	c.checkForbiddenStates()
	check(v != nil, ErrUndefinedInput, op)
	if c.closed {
		c.drop(v, "channel closed")
		return false
	}
	if c.broadcasting {
		c.deferred = append(c.deferred, deferredValue{v, broadcast})
		return false
	}
	if len(c.takers) == 0 {
		c.buffer.Put(v)
		c.metrics.value(c.name, outcomeBuffered)
		return false
	}
	return true
}

func (c *Channel) drop(v any, reason string) {
	c.metrics.value(c.name, outcomeDropped)
	if c.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		c.log.WithField("reason", reason).Debugf("dropped %T", v)
	}
}

// Put delivers v to the first waiting taker that accepts it.
// A one-shot taker is removed before its callback is called.
//
// If no taker is waiting, v goes into the buffer.
// If takers are waiting but none accepts v, or if c is closed, v is dropped.
//
// Put panics if v is nil.
func (c *Channel) Put(v any) {
	if !c.admit(v, "Channel.Put", false) {
		return
	}
	c.deliver(v)
}

func (c *Channel) deliver(v any) {
	for i := 0; i < len(c.takers); i++ {
		t := c.takers[i]
		if !t.accepts(v) {
			continue
		}
		if !t.Persistent {
			c.takers = slices.Delete(c.takers, i, i+1)
			t.owner = nil
		}
		c.metrics.value(c.name, outcomeDelivered)
		t.Callback(v)
		return
	}
	c.drop(v, "no matching taker")
}

// Broadcast delivers v to every waiting taker that accepts it, in order.
// Matching one-shot takers are removed.
//
// Takers registered during delivery wait behind the takers that survive
// the broadcast. Takers canceled during delivery are skipped.
// Values put or broadcast during delivery are held back until the taker
// queue is restored, then put or broadcast again in the order they came.
//
// Broadcast panics if v is nil.
func (c *Channel) Broadcast(v any) {
	if !c.admit(v, "Channel.Broadcast", true) {
		return
	}
	c.broadcast(v)
	c.replay()
}

func (c *Channel) broadcast(v any) {
	snapshot := c.takers
	c.takers = nil

	n, delivered := 0, false

	c.broadcasting = true
	defer func() { c.broadcasting = false }()

	for i := 0; i < len(snapshot); i++ {
		t := snapshot[i]
		if !t.pending() {
			continue
		}
		if !t.accepts(v) {
			snapshot[n] = t
			n++
			continue
		}
		if t.Persistent {
			snapshot[n] = t
			n++
		} else {
			t.owner = nil
		}
		delivered = true
		c.metrics.value(c.name, outcomeDelivered)
		t.Callback(v)
	}

	if !delivered {
		c.drop(v, "no matching taker")
	}

	survivors := slices.DeleteFunc(snapshot[:n], func(t *Taker) bool { return !t.pending() })
	clear(snapshot[len(survivors):])

	if c.closed {
		// Closed during delivery.
		for _, t := range survivors {
			t.owner = nil
		}
		for _, t := range survivors {
			t.Callback(END)
		}
		return
	}

	c.takers = append(survivors, c.takers...)
}

// replay puts or broadcasts deferred values again, oldest first.
// A closed channel drops them.
func (c *Channel) replay() {
	for len(c.deferred) != 0 {
		d := c.deferred[0]
		c.deferred[0] = deferredValue{}
		c.deferred = c.deferred[1:]
		if d.broadcast {
			c.Broadcast(d.v)
		} else {
			c.Put(d.v)
		}
	}
	c.deferred = nil
}

// Take registers cb as a one-shot taker and returns a function that
// cancels the registration.
//
// If c is closed and its buffer is empty, cb receives [END] immediately.
// If the buffer is not empty, cb receives the oldest buffered value
// immediately.
//
// Take panics if cb is nil.
func (c *Channel) Take(cb Callback) CancelFunc {
	check(cb != nil, ErrInvalidCallback, "Channel.Take")
	t := &Taker{Callback: cb}
	c.TakeWith(t)
	return t.Cancel
}

// TakeWith is like [Channel.Take] but registers t, honoring its Match and
// Persistent fields. Values taken from the buffer are delivered without
// consulting Match.
//
// TakeWith panics if t is nil, has no Callback, or is already waiting.
func (c *Channel) TakeWith(t *Taker) {
	c.checkForbiddenStates()
	check(t != nil && t.Callback != nil, ErrInvalidCallback, "Channel.TakeWith")
	if t.pending() {
		panic(errors.New("channel: taker is already waiting"))
	}
	switch {
	case c.closed && c.buffer.IsEmpty():
		t.Callback(END)
	case !c.buffer.IsEmpty():
		t.Callback(c.buffer.Take())
	default:
		t.owner = c
		c.takers = append(c.takers, t)
	}
}

// Flush hands the whole content of the buffer to cb as a []any and empties
// the buffer. If c is closed and its buffer is empty, cb receives [END]
// instead.
//
// Flush panics if cb is nil.
func (c *Channel) Flush(cb Callback) {
	c.checkForbiddenStates()
	check(cb != nil, ErrInvalidCallback, "Channel.Flush")
	if c.closed && c.buffer.IsEmpty() {
		cb(END)
		return
	}
	cb(c.buffer.Flush())
}

// Close closes c and delivers [END] to every waiting taker.
// Buffered values remain available to Take and Flush.
// Closing a closed channel does nothing.
func (c *Channel) Close() {
	c.checkForbiddenStates()
	if c.closed {
		return
	}
	c.closed = true
	c.metrics.close(c.name)

	takers := c.takers
	c.takers = nil

	c.log.WithField("takers", len(takers)).Debug("channel closed")

	for _, t := range takers {
		t.owner = nil
	}
	for _, t := range takers {
		t.Callback(END)
	}
}
