package channel

import "github.com/b97tsk/channel/buffers"

// A Subscriber connects an external event source to an [EventChannel].
//
// The source calls emit or broadcast for every event; emitting [END] closes
// the channel. The returned function must stop the source.
type Subscriber func(emit, broadcast Callback) (unsubscribe func())

// An EventChannel adapts a push-based event source into a channel.
type EventChannel struct {
	ch          *Channel
	match       Matcher
	unsubscribe func()
	closed      bool
}

// NewEventChannel creates an [EventChannel] and subscribes to its source
// by calling subscribe.
//
// Without [WithBuffer], events arriving while no taker is waiting are
// dropped. With [WithMatcher], events the matcher rejects are dropped.
//
// NewEventChannel panics if subscribe is nil or returns nil.
func NewEventChannel(subscribe Subscriber, opts ...Option) *EventChannel {
	check(subscribe != nil, ErrInvalidSubscriber, "NewEventChannel")

	cfg := newConfig(opts)

	ec := &EventChannel{
		ch: newChannel(cfg, func() Buffer { return buffers.None() }),
	}

	if cfg.hasMatcher {
		ec.match = cfg.matcher
	}

	unsubscribe := subscribe(ec.emit, ec.broadcast)
	check(unsubscribe != nil, ErrInvalidSubscriber, "NewEventChannel")

	ec.unsubscribe = unsubscribe

	if ec.closed {
		// The source emitted END before subscribe returned.
		unsubscribe()
	}

	return ec
}

func (ec *EventChannel) admit(v any) bool {
	if IsEnd(v) {
		ec.Close()
		return false
	}
	if ec.match != nil && !ec.match(v) {
		return false
	}
	return true
}

func (ec *EventChannel) emit(v any) {
	if ec.admit(v) {
		ec.ch.Put(v)
	}
}

func (ec *EventChannel) broadcast(v any) {
	if ec.admit(v) {
		ec.ch.Broadcast(v)
	}
}

// Take is [Channel.Take].
func (ec *EventChannel) Take(cb Callback) CancelFunc {
	return ec.ch.Take(cb)
}

// TakeWith is [Channel.TakeWith].
func (ec *EventChannel) TakeWith(t *Taker) {
	ec.ch.TakeWith(t)
}

// Flush is [Channel.Flush].
func (ec *EventChannel) Flush(cb Callback) {
	ec.ch.Flush(cb)
}

// Close closes ec and unsubscribes from the source, once.
func (ec *EventChannel) Close() {
	if ec.closed {
		return
	}
	ec.closed = true
	ec.ch.Close()
	if ec.unsubscribe != nil {
		ec.unsubscribe()
	}
}
