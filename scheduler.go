package channel

import (
	"sync"

	"github.com/eapache/queue"
	"github.com/sirupsen/logrus"
)

// A Scheduler is a FIFO task queue with a single consumer.
//
// Asap queues a task. Run is the consumer: it keeps popping tasks and
// running them until nothing is left. A task queued by another task, or
// from another goroutine while Run is busy, runs after the current task
// returns, so tasks never overlap.
//
// Run is seldom called by hand. A Scheduler is normally given an autorun
// function with Autorun, and Asap calls it whenever a task arrives at an
// idle Scheduler. At most one autorun call is in flight at a time.
//
// The zero value has no autorun function; see [NewScheduler].
type Scheduler struct {
	mu      sync.Mutex
	q       *queue.Queue
	running bool
	autorun func()
	panics  taskPanics
	log     *logrus.Entry
}

var asapScheduler = NewScheduler()

// NewScheduler returns a [Scheduler] whose autorun function runs scheduled
// tasks on the goroutine that schedules them, unless the Scheduler is
// already running.
func NewScheduler() *Scheduler {
	s := new(Scheduler)
	s.Autorun(s.Run)
	return s
}

// Autorun sets f as the function Asap calls to start draining an idle
// Scheduler. f must end up calling s.Run: pass s.Run to drain on the
// caller's goroutine, or func() { go s.Run() } to drain on a new one.
//
// Asap blocks for as long as f does.
func (s *Scheduler) Autorun(f func()) {
	s.autorun = f
}

// SetLogger sets the logger that reports panicking tasks.
func (s *Scheduler) SetLogger(l *logrus.Entry) {
	s.log = l
}

func (s *Scheduler) queue() *queue.Queue {
	if s.q == nil {
		s.q = queue.New()
	}
	return s.q
}

// Asap schedules f to run as soon as no other task is running.
//
// Asap is safe for concurrent use.
func (s *Scheduler) Asap(f func()) {
	check(f != nil, ErrInvalidCallback, "Scheduler.Asap")

	var autorun func()

	s.mu.Lock()

	if !s.running && s.autorun != nil {
		s.running = true
		autorun = s.autorun
	}

	s.queue().Add(f)
	s.mu.Unlock()

	if autorun != nil {
		autorun()
	}
}

// Immediately runs f right away, then runs every task scheduled meanwhile.
//
// When called from within a running task, Immediately just calls f; tasks
// scheduled by f run after the current one.
// Otherwise, Immediately must not be called while Run is running on another
// goroutine.
func (s *Scheduler) Immediately(f func()) {
	check(f != nil, ErrInvalidCallback, "Scheduler.Immediately")

	s.mu.Lock()

	if s.running {
		s.mu.Unlock()
		f()
		return
	}

	s.running = true
	s.mu.Unlock()

	s.panics.capture(f)
	s.Run()
}

// Run pops and runs every task in the queue until the queue is emptied.
//
// If any task panics, Run keeps running the rest and then panics with a
// [*TaskPanicError] holding every recovered value.
//
// Run must not be called twice at the same time.
func (s *Scheduler) Run() {
	s.mu.Lock()
	s.running = true

	q := s.queue()

	for q.Length() != 0 {
		f := q.Remove().(func())
		s.mu.Unlock()
		s.panics.capture(f)
		s.mu.Lock()
	}

	panics := s.panics
	s.panics = nil
	s.running = false
	s.mu.Unlock()

	if len(panics) != 0 {
		log := s.log
		if log == nil {
			log = logrus.NewEntry(logrus.StandardLogger())
		}
		log.WithField("panics", len(panics)).Warn("scheduled tasks panicked")
	}

	panics.raise()
}
