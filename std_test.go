package channel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b97tsk/channel"
)

type testAction struct {
	Type      string
	IsAction  bool
	IsMixed   bool
	FromSaga  bool
	Timestamp int64
}

func (a testAction) ActionType() string       { return a.Type }
func (a testAction) DispatchedByEngine() bool { return a.FromSaga }

func TestStdChannelDefersExternalValues(t *testing.T) {
	var s channel.Scheduler // No autorun; tasks run on s.Run.

	sc := channel.NewStdChannel(channel.WithScheduler(&s))

	var r recorder

	sc.Take(r.take)
	sc.Put(testAction{Type: "external"})

	assert.Empty(t, r.got, "external values must be deferred")

	s.Run()

	assert.Equal(t, []any{testAction{Type: "external"}}, r.got)
}

func TestStdChannelEngineValuesAreSynchronous(t *testing.T) {
	var s channel.Scheduler

	sc := channel.NewStdChannel(channel.WithScheduler(&s))

	var a, b recorder

	sc.Take(a.take)
	sc.Take(b.take)
	sc.Put(channel.Action{Type: "internal", Internal: true})

	assert.Equal(t, []any{channel.Action{Type: "internal", Internal: true}}, a.got)
	assert.Equal(t, a.got, b.got)

	s.Run() // Nothing scheduled.
}

func TestStdChannelTakeMatch(t *testing.T) {
	sc := channel.NewStdChannel()

	var a, b recorder

	sc.TakeMatch(a.take, channel.MatchType("a"))
	sc.TakeMatch(b.take, channel.MatchType("b"))

	sc.Put(channel.Action{Type: "a"})

	assert.Equal(t, []any{channel.Action{Type: "a"}}, a.got)
	assert.Empty(t, b.got)

	sc.Close()

	assert.Equal(t, []any{channel.END}, b.got)

	sc.Put(channel.Action{Type: "b"})
	sc.Take(b.take)

	assert.Equal(t, []any{channel.END, channel.END}, b.got)
}

func TestStdChannelCancel(t *testing.T) {
	sc := channel.NewStdChannel()

	var r recorder

	cancel := sc.TakeMatch(r.take, channel.MatchType("a"))
	cancel()

	sc.Put(channel.Action{Type: "a"})

	assert.Empty(t, r.got)
}

func TestStdChannelNoReentrantDelivery(t *testing.T) {
	sc := channel.NewStdChannel(channel.WithScheduler(channel.NewScheduler()))

	var log []string

	var take func(v any)
	take = func(v any) {
		a := v.(channel.Action)
		log = append(log, "begin "+a.Type)
		if a.Type == "first" {
			sc.Put(channel.Action{Type: "second"})
		}
		sc.Take(take)
		log = append(log, "end "+a.Type)
	}

	sc.Take(take)
	sc.Put(channel.Action{Type: "first"})

	assert.Equal(t, []string{"begin first", "end first", "begin second", "end second"}, log)
}

func TestStdChannelInvalidArguments(t *testing.T) {
	var s channel.Scheduler

	sc := channel.NewStdChannel(channel.WithScheduler(&s))

	err := recoverError(t, func() { sc.Put(nil) })
	require.ErrorIs(t, err, channel.ErrUndefinedInput)

	err = recoverError(t, func() { sc.TakeMatch(func(any) {}, nil) })
	require.ErrorIs(t, err, channel.ErrInvalidMatcher)

	err = recoverError(t, func() { sc.TakeMatch(nil, channel.MatchType("a")) })
	require.ErrorIs(t, err, channel.ErrInvalidCallback)
}

// An engine takes from a StdChannel one effect at a time, each with its own
// pattern, and takes again once a value arrives.
func TestStdChannelEngine(t *testing.T) {
	sc := channel.NewStdChannel()

	patterns := []channel.Matcher{
		nil,
		channel.MatchType("action-1"),
		channel.MatchType("action-2", "action-2222"),
		func(v any) bool { return v.(testAction).IsAction },
		func(v any) bool { a := v.(testAction); return a.Type == "action-3" || a.IsMixed },
		func(v any) bool { a := v.(testAction); return a.Type == "action-3" || a.IsMixed },
		channel.MatchType("action-symbol"),
		channel.MatchType("never-happening-action"),
	}

	var actual []any

	var next func()
	next = func() {
		if len(patterns) == 0 {
			return
		}
		p := patterns[0]
		patterns = patterns[1:]
		cb := func(v any) {
			if channel.IsEnd(v) {
				actual = append(actual, "auto ended")
				return
			}
			actual = append(actual, v)
			next()
		}
		if p == nil {
			sc.Take(cb)
			return
		}
		sc.TakeMatch(cb, p)
	}

	next()

	sc.Put(testAction{Type: "action-*"})
	sc.Put(testAction{Type: "action-1"})
	sc.Put(testAction{Type: "action-2"})
	sc.Put(testAction{Type: "unnoticeable-action"})
	sc.Put(testAction{IsAction: true})
	sc.Put(testAction{IsMixed: true})
	sc.Put(testAction{Type: "action-3"})
	sc.Put(testAction{Type: "action-symbol"})
	sc.Put(struct {
		channel.EndMarker
		Timestamp int64
	}{Timestamp: 1})

	assert.Equal(t, []any{
		testAction{Type: "action-*"},
		testAction{Type: "action-1"},
		testAction{Type: "action-2"},
		testAction{IsAction: true},
		testAction{IsMixed: true},
		testAction{Type: "action-3"},
		testAction{Type: "action-symbol"},
		"auto ended",
	}, actual)
}
