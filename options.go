package channel

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type config struct {
	name       string
	buffer     Buffer
	matcher    Matcher
	hasMatcher bool
	logger     *logrus.Entry
	metrics    *Metrics
	scheduler  *Scheduler
}

// Option configures a channel.
//
// Not every option applies to every kind of channel. Options that do not
// apply are ignored.
type Option func(*config)

func newConfig(opts []Option) *config {
	c := new(config)
	for _, opt := range opts {
		opt(c)
	}
	if c.name == "" {
		c.name = "anonymous"
	}
	if c.logger == nil {
		c.logger = logrus.NewEntry(logrus.StandardLogger())
	}
	c.logger = c.logger.WithFields(logrus.Fields{
		"component": "channel",
		"channel":   c.name,
	})
	return c
}

func (c *config) bufferOr(def func() Buffer) Buffer {
	if c.buffer != nil {
		return c.buffer
	}
	return def()
}

// WithBuffer sets the buffer that stores values while no taker is waiting.
// It panics if b is nil.
func WithBuffer(b Buffer) Option {
	return func(c *config) {
		check(b != nil, ErrInvalidBuffer, "WithBuffer")
		c.buffer = b
	}
}

// WithMatcher sets a predicate that an [EventChannel] applies to every
// event before forwarding it. It panics if m is nil.
func WithMatcher(m Matcher) Option {
	return func(c *config) {
		check(m != nil, ErrInvalidMatcher, "WithMatcher")
		c.matcher = m
		c.hasMatcher = true
	}
}

// WithName sets the name used in log entries and metric labels.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithLogger sets the logger. The default is the logrus standard logger.
func WithLogger(l *logrus.Entry) Option {
	return func(c *config) {
		if l == nil {
			panic(errors.New("channel: WithLogger(nil)"))
		}
		c.logger = l
	}
}

// WithMetrics enables instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithScheduler sets the [Scheduler] a [StdChannel] uses to defer delivery
// of values put from outside the engine.
func WithScheduler(s *Scheduler) Option {
	return func(c *config) {
		if s == nil {
			panic(errors.New("channel: WithScheduler(nil)"))
		}
		c.scheduler = s
	}
}
