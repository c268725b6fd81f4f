package eventloop

import (
	"errors"
	"sync"
)

// Loop errors.
var (
	ErrLoopClosed        = errors.New("event loop closed")
	ErrLoopNotStarted    = errors.New("event loop not started")
	ErrLoopStarted       = errors.New("event loop already started")
	ErrAlreadyRegistered = errors.New("handler already registered")
	ErrHandlerNotFound   = errors.New("handler not registered")
)

// DefaultQueueDepth is the default capacity of the loop's event queue.
const DefaultQueueDepth = 32

// registration identifies a single handler registration.
type registration struct {
	cat  Category
	kind Kind
	h    Handler
}

// Loop is the default event-dispatch loop. A single goroutine delivers
// posted events serially and in order to every matching handler.
type Loop struct {
	mu      sync.Mutex
	regs    []registration
	started bool
	closed  bool

	events chan Event
	stop   chan struct{}
	done   chan struct{}
}

// New creates a loop with the default queue depth. The loop does not
// dispatch until Start is called.
func New() *Loop {
	return NewWithDepth(DefaultQueueDepth)
}

// NewWithDepth creates a loop whose event queue holds up to depth
// undelivered events. Depth values below one are raised to one.
func NewWithDepth(depth int) *Loop {
	if depth < 1 {
		depth = 1
	}
	return &Loop{
		events: make(chan Event, depth),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start launches the dispatch goroutine.
func (l *Loop) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrLoopClosed
	}
	if l.started {
		return ErrLoopStarted
	}
	l.started = true

	go l.run()
	return nil
}

// Post enqueues an event for dispatch. It blocks while the queue is full
// and returns ErrLoopClosed if the loop shuts down before the event is
// accepted. Events still queued when the loop closes are dropped.
func (l *Loop) Post(ev Event) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrLoopClosed
	}
	if !l.started {
		l.mu.Unlock()
		return ErrLoopNotStarted
	}
	l.mu.Unlock()

	select {
	case l.events <- ev:
		return nil
	case <-l.stop:
		return ErrLoopClosed
	}
}

// RegisterHandler registers h for events matching (cat, kind). Use KindAny
// to match every kind in the category. Registering an identical
// (cat, kind, handler) triple twice fails with ErrAlreadyRegistered.
//
// Handler values must be comparable (pointer implementations are); the
// triple is the registration identity used by UnregisterHandler.
func (l *Loop) RegisterHandler(cat Category, kind Kind, h Handler) error {
	if h == nil {
		return errors.New("nil handler")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrLoopClosed
	}
	for _, r := range l.regs {
		if r.cat == cat && r.kind == kind && r.h == h {
			return ErrAlreadyRegistered
		}
	}
	l.regs = append(l.regs, registration{cat: cat, kind: kind, h: h})
	return nil
}

// UnregisterHandler removes the registration matching the exact
// (cat, kind, handler) triple.
func (l *Loop) UnregisterHandler(cat Category, kind Kind, h Handler) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, r := range l.regs {
		if r.cat == cat && r.kind == kind && r.h == h {
			l.regs = append(l.regs[:i], l.regs[i+1:]...)
			return nil
		}
	}
	return ErrHandlerNotFound
}

// Close stops the dispatch goroutine and releases the loop. Close returns
// after the goroutine has exited; it is safe to call multiple times.
func (l *Loop) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	started := l.started
	l.mu.Unlock()

	close(l.stop)
	if started {
		<-l.done
	} else {
		close(l.done)
	}
	return nil
}

// run is the dispatch goroutine body.
func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case <-l.stop:
			return
		case ev := <-l.events:
			l.dispatch(ev)
		}
	}
}

// dispatch delivers ev to every handler whose registration matches.
// The handler set is snapshotted under the lock; handlers themselves run
// without it so they may register or unregister freely.
func (l *Loop) dispatch(ev Event) {
	l.mu.Lock()
	var matched []Handler
	for _, r := range l.regs {
		if r.cat != ev.Category {
			continue
		}
		if r.kind == KindAny || r.kind == ev.Kind {
			matched = append(matched, r.h)
		}
	}
	l.mu.Unlock()

	for _, h := range matched {
		h.HandleEvent(ev)
	}
}
