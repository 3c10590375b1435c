package interact

import (
	"sync"
	"time"
)

// Scheduler runs fn every d on the UI thread until the returned cancel
// function is called. Calling cancel more than once is a no-op.
type Scheduler interface {
	Every(d time.Duration, fn func()) (cancel func())
}

// Loop is a Scheduler for a single-threaded UI. Timers tick on their own
// goroutines but only post to a queue; the callbacks run on whichever
// goroutine calls Drain, normally once per frame.
//
// A timer has at most one tick pending at a time, so a stalled UI does
// not accumulate a backlog. A tick posted before its timer was cancelled
// is discarded by Drain.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	timers  map[uint64]*timer
	next    uint64
	wake    chan struct{}
	closed  bool
	pending []func()
}

type timer struct {
	fn      func()
	stop    chan struct{}
	queued  bool
	stopped bool
}

// NewLoop creates an empty Loop.
func NewLoop() *Loop {
	return &Loop{
		timers: make(map[uint64]*timer),
		wake:   make(chan struct{}, 1),
	}
}

// Every implements Scheduler.
func (l *Loop) Every(d time.Duration, fn func()) (cancel func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || fn == nil {
		return func() {}
	}
	l.next++
	id := l.next
	t := &timer{fn: fn, stop: make(chan struct{})}
	l.timers[id] = t
	go l.run(id, t, d)

	var once sync.Once
	return func() {
		once.Do(func() { l.cancel(id) })
	}
}

func (l *Loop) run(id uint64, t *timer, d time.Duration) {
	if d <= 0 {
		d = time.Millisecond
	}
	tk := time.NewTicker(d)
	defer tk.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-tk.C:
			l.mu.Lock()
			if !t.stopped && !t.queued {
				t.queued = true
				l.queue = append(l.queue, func() { l.fire(id) })
				l.signal()
			}
			l.mu.Unlock()
		}
	}
}

// fire runs on the draining goroutine.
func (l *Loop) fire(id uint64) {
	l.mu.Lock()
	t, ok := l.timers[id]
	if ok {
		t.queued = false
	}
	l.mu.Unlock()
	if ok {
		t.fn()
	}
}

func (l *Loop) cancel(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if t, ok := l.timers[id]; ok {
		t.stopped = true
		close(t.stop)
		delete(l.timers, id)
	}
}

// signal must be called with l.mu held.
func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Post queues fn to run on the next Drain.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || fn == nil {
		return
	}
	l.queue = append(l.queue, fn)
	l.signal()
}

// Drain runs every queued callback on the calling goroutine and returns
// how many ran. Callbacks queued while draining run on the next call.
func (l *Loop) Drain() int {
	l.mu.Lock()
	l.pending, l.queue = l.queue, l.pending[:0]
	batch := l.pending
	l.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	clear(batch)
	return len(batch)
}

// Wake is signaled whenever a callback is queued.
func (l *Loop) Wake() <-chan struct{} { return l.wake }

// Active returns the number of timers not yet cancelled.
func (l *Loop) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// Close cancels every timer and drops queued callbacks.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	for id, t := range l.timers {
		t.stopped = true
		close(t.stop)
		delete(l.timers, id)
	}
	l.queue = nil
}
