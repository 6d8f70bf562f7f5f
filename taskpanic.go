package channel

import (
	"fmt"
	"runtime/debug"
	"strings"
	"sync/atomic"
)

// taskPanics collects the values recovered from panicking tasks during
// one drain of a Scheduler's queue.
type taskPanics []taskPanic

type taskPanic struct {
	value any
	stack []byte
}

// capture calls f and records a panic raised by it.
// It reports whether f returned normally.
func (tp *taskPanics) capture(f func()) (ok bool) {
	defer func() {
		if ok {
			return
		}
		v := recover()
		if v == nil {
			panic("channel: scheduled tasks must not call runtime.Goexit()")
		}
		*tp = append(*tp, taskPanic{v, debug.Stack()})
	}()
	f()
	return true
}

// raise panics with a *TaskPanicError if anything was captured.
func (tp taskPanics) raise() {
	if len(tp) != 0 {
		panic(&TaskPanicError{panics: tp})
	}
}

// TaskPanicError is the panic value of [Scheduler.Run] when one or more
// tasks panicked. Recovered values that are errors can be matched with
// errors.Is and errors.As.
type TaskPanicError struct {
	panics taskPanics
	errs   atomic.Pointer[[]error]
}

// Values returns the recovered panic values in the order the tasks ran.
func (e *TaskPanicError) Values() []any {
	values := make([]any, len(e.panics))
	for i, p := range e.panics {
		values[i] = p.value
	}
	return values
}

func (e *TaskPanicError) Error() string {
	var b strings.Builder
	if len(e.panics) == 1 {
		b.WriteString("channel: a scheduled task panicked")
	} else {
		fmt.Fprintf(&b, "channel: %d scheduled tasks panicked", len(e.panics))
	}
	for i, p := range e.panics {
		fmt.Fprintf(&b, "\n\ntask #%d panic: %v", i+1, p.value)
		if p.stack != nil {
			b.WriteString("\n")
			b.Write(p.stack)
		}
	}
	return b.String()
}

func (e *TaskPanicError) Unwrap() []error {
	if p := e.errs.Load(); p != nil {
		return *p
	}
	var errs []error
	for _, p := range e.panics {
		if err, ok := p.value.(error); ok {
			errs = append(errs, err)
		}
	}
	e.errs.Store(&errs)
	return errs
}
