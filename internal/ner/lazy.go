package ner

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Loader builds a Recognizer.
type Loader func() (Recognizer, error)

type loaded struct {
	r Recognizer
}

// Lazy is a Provider that runs its Loader on first use and caches the result
// for the life of the process. Concurrent first calls block on a mutex so the
// loader runs once; later calls take the lock-free fast path. A failed load is
// not cached, so the next caller retries.
type Lazy struct {
	name     string
	load     Loader
	mu       sync.Mutex
	current  atomic.Pointer[loaded]
	attempts atomic.Int64
}

// NewLazy returns a Lazy provider named name (used in errors) around load.
func NewLazy(name string, load Loader) *Lazy {
	return &Lazy{name: name, load: load}
}

// Recognizer returns the shared recognizer, loading it if necessary.
func (l *Lazy) Recognizer() (Recognizer, error) {
	if c := l.current.Load(); c != nil {
		return c.r, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if c := l.current.Load(); c != nil {
		return c.r, nil
	}

	r, err := l.safeLoad()
	if err != nil {
		return nil, &LoadError{Provider: l.name, Cause: err}
	}
	if r == nil {
		return nil, &LoadError{Provider: l.name, Cause: fmt.Errorf("loader returned nil recognizer")}
	}

	l.current.Store(&loaded{r: r})
	return r, nil
}

func (l *Lazy) safeLoad() (r Recognizer, err error) {
	l.attempts.Add(1)
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("loader panicked: %v", p)
		}
	}()
	return l.load()
}

// isLoaded reports whether a recognizer has been cached.
func (l *Lazy) isLoaded() bool {
	return l.current.Load() != nil
}

// loadCount returns how many times the loader has been invoked.
func (l *Lazy) loadCount() int64 {
	return l.attempts.Load()
}
