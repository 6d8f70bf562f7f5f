package channel

// A MulticastChannel is a [Channel] whose Put delivers every value to all
// matching takers.
type MulticastChannel struct {
	*Channel
}

// NewMulticast creates an open [MulticastChannel].
// It accepts the same options as [New].
func NewMulticast(opts ...Option) *MulticastChannel {
	return &MulticastChannel{New(opts...)}
}

// Put is [Channel.Broadcast].
func (m *MulticastChannel) Put(v any) {
	m.Broadcast(v)
}
