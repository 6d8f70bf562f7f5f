package channel

// A StdChannel is the root channel an effect engine takes from.
//
// Values put into a StdChannel are broadcast to every matching taker.
// Values flagged as dispatched by the engine (see [EngineAction]) are
// delivered synchronously; any other value is delivered through
// a [Scheduler], so that a value coming from an unrelated call stack never
// reaches takers in the middle of another delivery.
type StdChannel struct {
	*EventChannel
	broadcast Callback
	scheduler *Scheduler
}

// NewStdChannel creates a [StdChannel].
//
// Without [WithScheduler], deferred deliveries go through a package-level
// [Scheduler] that runs them on the calling goroutine as soon as no other
// delivery is in progress.
func NewStdChannel(opts ...Option) *StdChannel {
	sc := &StdChannel{scheduler: newConfig(opts).scheduler}
	if sc.scheduler == nil {
		sc.scheduler = asapScheduler
	}
	sc.EventChannel = NewEventChannel(func(_, broadcast Callback) func() {
		sc.broadcast = broadcast
		return func() { sc.EventChannel.Close() }
	}, opts...)
	return sc
}

// Put broadcasts v.
//
// Put panics if v is nil.
func (sc *StdChannel) Put(v any) {
	check(v != nil, ErrUndefinedInput, "StdChannel.Put")
	if a, ok := v.(EngineAction); ok && a.DispatchedByEngine() {
		sc.broadcast(v)
		return
	}
	sc.scheduler.Asap(func() { sc.broadcast(v) })
}

// TakeMatch is like Take but cb only receives values that m accepts.
// [END] is delivered regardless of m.
//
// TakeMatch panics if cb or m is nil.
func (sc *StdChannel) TakeMatch(cb Callback, m Matcher) CancelFunc {
	check(cb != nil, ErrInvalidCallback, "StdChannel.TakeMatch")
	check(m != nil, ErrInvalidMatcher, "StdChannel.TakeMatch")
	t := &Taker{Callback: cb, Match: m}
	sc.TakeWith(t)
	return t.Cancel
}
