package channel

// EndType is the action type carried by end markers.
const EndType = "@@channel/END"

// Typed is implemented by values that carry an action type.
type Typed interface {
	ActionType() string
}

// EndMarker is the type of [END].
//
// Producers that want to attach extra fields to an end marker can embed
// EndMarker in their own struct. [IsEnd] reports true for such values too.
type EndMarker struct{}

// ActionType implements [Typed].
func (EndMarker) ActionType() string { return EndType }

// END signals that a channel has been closed and drained.
var END any = EndMarker{}

// IsEnd reports whether v carries the end-marker type.
func IsEnd(v any) bool {
	t, ok := v.(Typed)
	return ok && t.ActionType() == EndType
}

// EngineAction is implemented by values that may originate from within
// the effect engine's own dispatch cycle.
// [StdChannel.Put] delivers such values synchronously.
type EngineAction interface {
	DispatchedByEngine() bool
}

// Action is a general purpose action.
type Action struct {
	Type    string
	Payload any

	// Internal marks an action dispatched by the engine itself.
	Internal bool
}

// ActionType implements [Typed].
func (a Action) ActionType() string { return a.Type }

// DispatchedByEngine implements [EngineAction].
func (a Action) DispatchedByEngine() bool { return a.Internal }

// MatchType returns a [Matcher] that accepts values whose action type is
// one of types.
func MatchType(types ...string) Matcher {
	return func(v any) bool {
		t, ok := v.(Typed)
		if !ok {
			return false
		}
		at := t.ActionType()
		for _, s := range types {
			if at == s {
				return true
			}
		}
		return false
	}
}
