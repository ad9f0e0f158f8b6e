// Package mergequeue runs keyed units of work on a single worker goroutine, collapsing
// requests for the same key that arrive within the merge window.
package mergequeue

import (
	"context"
	"sync"
	"time"

	"github.com/uber-go/tally/v4"
	"github.com/uber/bp-engine/src/bpengine/internal/clock"
	"go.uber.org/zap"
)

// Task is a unit of work. The context is cancelled when the queue closes.
type Task func(ctx context.Context)

// Queue coalesces tasks by key and executes them one at a time in first-queued order.
type Queue struct {
	name   string
	window time.Duration
	clock  clock.Clock
	logger *zap.SugaredLogger
	stats  tally.Scope

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	pending map[string]*pendingTask
	order   []string
	current *pendingTask
	timer   clock.Timer
	closed  bool

	signal    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

type pendingTask struct {
	key     string
	task    Task
	due     time.Time
	waiters []chan struct{}
	// urgent is set by QueueNow and Flush. A later windowed request keeps the earlier due time.
	urgent bool
}

// Option customizes a Queue.
type Option func(*Queue)

// WithClock overrides the wall clock.
func WithClock(c clock.Clock) Option {
	return func(q *Queue) {
		q.clock = c
	}
}

// WithLogger overrides the default noop logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(q *Queue) {
		q.logger = logger
	}
}

// WithStats overrides the default noop scope.
func WithStats(stats tally.Scope) Option {
	return func(q *Queue) {
		q.stats = stats
	}
}

// New creates a queue and starts its worker. Close must be called to stop it.
func New(name string, window time.Duration, opts ...Option) *Queue {
	q := &Queue{
		name:    name,
		window:  window,
		clock:   clock.New(),
		logger:  zap.NewNop().Sugar(),
		stats:   tally.NoopScope,
		pending: make(map[string]*pendingTask),
		signal:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	q.stats = q.stats.Tagged(map[string]string{"queue": name})
	q.ctx, q.cancel = context.WithCancel(context.Background())

	go q.run()
	return q
}

// Queue schedules the task to run once the merge window has passed without another request for the key.
// A pending task for the same key is replaced. Returns false once the queue is closed.
func (q *Queue) Queue(key string, task Task) bool {
	_, ok := q.enqueue(key, task, false)
	return ok
}

// QueueNow schedules the task without waiting for the merge window. It still runs after the task in flight.
// The returned channel is closed once the task has run, or has been dropped by Close.
func (q *Queue) QueueNow(key string, task Task) <-chan struct{} {
	done, _ := q.enqueue(key, task, true)
	return done
}

func (q *Queue) enqueue(key string, task Task, now bool) (<-chan struct{}, bool) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		done := make(chan struct{})
		close(done)
		return done, false
	}

	due := q.clock.Now()
	if !now {
		due = due.Add(q.window)
	}

	p, ok := q.pending[key]
	if ok {
		q.stats.Counter("merged").Inc(1)
		p.task = task
		if now || !p.urgent {
			p.due = due
		}
		p.urgent = p.urgent || now
	} else {
		p = &pendingTask{key: key, task: task, due: due, urgent: now}
		q.pending[key] = p
		q.order = append(q.order, key)
	}
	q.stats.Counter("queued").Inc(1)

	var done chan struct{}
	if now {
		done = make(chan struct{})
		p.waiters = append(p.waiters, done)
	}
	q.mu.Unlock()

	q.wake()
	return done, true
}

// Cancel drops the pending task for the key. A task already running is not affected.
func (q *Queue) Cancel(key string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	p, ok := q.pending[key]
	if !ok {
		return
	}
	q.removeLocked(key)
	for _, w := range p.waiters {
		close(w)
	}
}

// Pending returns the number of tasks waiting to run.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush makes every pending task due immediately and waits until they and the task in flight have run.
func (q *Queue) Flush(ctx context.Context) error {
	q.mu.Lock()
	now := q.clock.Now()
	var waiters []chan struct{}
	for _, p := range q.pending {
		p.due = now
		p.urgent = true
		w := make(chan struct{})
		p.waiters = append(p.waiters, w)
		waiters = append(waiters, w)
	}
	if q.current != nil {
		w := make(chan struct{})
		q.current.waiters = append(q.current.waiters, w)
		waiters = append(waiters, w)
	}
	q.mu.Unlock()

	q.wake()
	for _, w := range waiters {
		select {
		case <-w:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Close drops pending tasks, cancels the context of the running one and waits for the worker to exit.
// It must not be called from inside a task.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		for _, p := range q.pending {
			for _, w := range p.waiters {
				close(w)
			}
		}
		q.pending = make(map[string]*pendingTask)
		q.order = nil
		if q.timer != nil {
			q.timer.Stop()
			q.timer = nil
		}
		q.mu.Unlock()

		q.cancel()
		q.wake()
		<-q.done
	})
}

func (q *Queue) wake() {
	select {
	case q.signal <- struct{}{}:
	default:
	}
}

func (q *Queue) run() {
	defer close(q.done)

	for range q.signal {
		for {
			p, closed := q.next()
			if closed {
				return
			}
			if p == nil {
				break
			}
			q.execute(p)
		}
	}
}

// next pops the first due task. When none is due it arms the timer for the earliest one.
func (q *Queue) next() (*pendingTask, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil, true
	}

	now := q.clock.Now()
	var earliest time.Time
	for _, key := range q.order {
		p := q.pending[key]
		if !p.due.After(now) {
			q.removeLocked(key)
			q.current = p
			return p, false
		}
		if earliest.IsZero() || p.due.Before(earliest) {
			earliest = p.due
		}
	}

	if !earliest.IsZero() {
		if q.timer != nil {
			q.timer.Stop()
		}
		q.timer = q.clock.AfterFunc(earliest.Sub(now), q.wake)
	}
	return nil, false
}

func (q *Queue) removeLocked(key string) {
	delete(q.pending, key)
	for i, k := range q.order {
		if k == key {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
}

func (q *Queue) execute(p *pendingTask) {
	defer func() {
		if r := recover(); r != nil {
			q.stats.Counter("panics").Inc(1)
			q.logger.Errorw("queued task panicked", "queue", q.name, "key", p.key, "panic", r)
		}

		q.mu.Lock()
		q.current = nil
		waiters := p.waiters
		q.mu.Unlock()
		for _, w := range waiters {
			close(w)
		}
	}()

	start := q.clock.Now()
	p.task(q.ctx)
	q.stats.Counter("executed").Inc(1)
	q.stats.Timer("latency").Record(q.clock.Now().Sub(start))
}
