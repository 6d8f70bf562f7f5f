// Package channel is a library for passing values from producers to
// consumers that receive them through callbacks.
//
// Nothing in this package blocks. A consumer registers a callback, called
// a taker, with the Take method of a channel. The callback is called either
// right away, when a value is already buffered or the channel is closed,
// or later, when a producer puts a matching value into the channel.
// Until then, the consumer is said to be suspended on the channel.
// It is up to the consumer, typically an effect engine, to decide what to do
// with received values.
//
// # Channels
//
// A [Channel] holds a buffer and a queue of waiting takers.
// The two never hold something at the same time: a value put into a channel
// with waiting takers goes directly to one of them.
// [Channel.Put] delivers a value to the first waiting taker that accepts it.
// [Channel.Broadcast] delivers a value to every waiting taker that accepts it.
//
// A [MulticastChannel] is a Channel whose Put broadcasts.
//
// An [EventChannel] adapts a push-based event source, like a timer or
// a socket reader, into a channel. An [ActionChannel] collects a filtered
// sub-stream of another channel so that it can be taken from later.
//
// A [StdChannel] is the root channel of an effect engine. It defers values
// that come from outside the engine through a [Scheduler].
//
// # Closing
//
// Closing a channel delivers [END] to every waiting taker.
// Values still in the buffer can be taken after closing; once the buffer is
// drained, every Take receives END.
// Channels cannot be reopened.
//
// # Reentrancy
//
// Takers are called synchronously and may put into, take from or close
// the very channel that is calling them. Channels are designed to tolerate
// this. They are not, however, safe for concurrent use: values produced on
// other goroutines should be delivered through a [Scheduler], for example
// by putting them into a [StdChannel].
//
// # Panics
//
// Misuse, like putting a nil value or taking with a nil callback, panics
// with an error that wraps one of the Err values of this package.
// A channel ending up in a forbidden state panics with [ErrInternal].
package channel
