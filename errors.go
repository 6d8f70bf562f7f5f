package channel

import "github.com/pkg/errors"

var (
	// ErrUndefinedInput is the panic cause when a nil value is put into
	// a channel.
	ErrUndefinedInput = errors.New("channel: a nil value was provided as input")

	// ErrInvalidBuffer is the panic cause when a nil buffer is given.
	ErrInvalidBuffer = errors.New("channel: invalid buffer passed to channel factory function")

	// ErrInvalidCallback is the panic cause when a nil callback is given.
	ErrInvalidCallback = errors.New("channel: callback must be a function")

	// ErrInvalidMatcher is the panic cause when a nil matcher is given
	// explicitly.
	ErrInvalidMatcher = errors.New("channel: invalid match function")

	// ErrInvalidSubscriber is the panic cause when a subscribe function is
	// nil or does not return a function to unsubscribe.
	ErrInvalidSubscriber = errors.New("channel: subscribe should return a function to unsubscribe")

	// ErrInvalidSource is the panic cause when an action channel is given
	// no upstream channel.
	ErrInvalidSource = errors.New("channel: invalid upstream channel")

	// ErrInternal is the panic cause when a channel ends up in a forbidden
	// state. It always indicates a bug in this package.
	ErrInternal = errors.New("channel: internal error")
)

func check(ok bool, err error, op string) {
	if !ok {
		panic(errors.WithMessage(errors.WithStack(err), op))
	}
}

func internalErr(msg string) error {
	return errors.Wrap(ErrInternal, msg)
}
