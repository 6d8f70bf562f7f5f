package channel

import "slices"

// Callback receives a value delivered by a channel, or [END].
type Callback func(v any)

// Matcher reports whether a taker accepts v.
type Matcher func(v any) bool

// CancelFunc removes a pending taker from the queue it waits in.
// Calling a CancelFunc after the taker has been resolved does nothing.
type CancelFunc func()

// A Taker is a continuation waiting for the next matching value of
// a channel.
//
// A Taker must not be registered in more than one queue at the same time.
type Taker struct {
	// Callback is called with each delivered value.
	Callback Callback

	// Match, if not nil, restricts which values the taker accepts.
	// Values from a non-empty buffer are delivered without consulting Match.
	Match Matcher

	// Persistent takers stay registered after a successful match.
	Persistent bool

	owner *Channel
}

func (t *Taker) accepts(v any) bool {
	return t.Match == nil || t.Match(v)
}

func (t *Taker) pending() bool {
	return t.owner != nil
}

// Cancel removes t from the queue it waits in.
// Cancel does nothing if t is not waiting.
func (t *Taker) Cancel() {
	c := t.owner
	if c == nil {
		return
	}
	t.owner = nil
	if i := slices.Index(c.takers, t); i != -1 {
		c.takers = slices.Delete(c.takers, i, i+1)
	}
}
