package channel

// Source is a channel that accepts [Taker] registrations.
// Every channel in this package is a Source.
type Source interface {
	TakeWith(t *Taker)
}

// An ActionChannel buffers values that match a predicate, taken
// persistently from an upstream channel, until a consumer takes them.
type ActionChannel struct {
	ch     *Channel
	taker  *Taker
	closed bool
}

// NewActionChannel creates an [ActionChannel] that collects values from
// upstream that match. A nil match collects every value.
//
// Without [WithBuffer], the channel uses a fixed buffer of
// [DefaultBufferSize] values.
func NewActionChannel(upstream Source, match Matcher, opts ...Option) *ActionChannel {
	check(upstream != nil, ErrInvalidSource, "NewActionChannel")

	ac := &ActionChannel{ch: newChannel(newConfig(opts), fixedBuffer)}
	ac.taker = &Taker{Callback: ac.forward, Match: match, Persistent: true}

	upstream.TakeWith(ac.taker)

	return ac
}

func (ac *ActionChannel) forward(v any) {
	if IsEnd(v) {
		ac.Close()
		return
	}
	ac.ch.Put(v)
}

// Take is [Channel.Take].
func (ac *ActionChannel) Take(cb Callback) CancelFunc {
	return ac.ch.Take(cb)
}

// TakeWith is [Channel.TakeWith].
func (ac *ActionChannel) TakeWith(t *Taker) {
	ac.ch.TakeWith(t)
}

// Flush is [Channel.Flush].
func (ac *ActionChannel) Flush(cb Callback) {
	ac.ch.Flush(cb)
}

// Close closes ac and stops taking from upstream, once.
func (ac *ActionChannel) Close() {
	if ac.closed {
		return
	}
	ac.closed = true
	ac.ch.Close()
	ac.taker.Cancel()
}
