// Package registry keeps named timers behind a single lock so they can be
// shared between handlers. Timers themselves are not safe for concurrent
// use; the registry provides the required serialization.
package registry

import (
	"errors"
	"sort"
	"sync"

	"github.com/and161185/checkpoint-timer/timer"
)

var ErrTimerNotFound = errors.New("timer not found")

// Registry is a mutex-guarded map of named timers.
type Registry struct {
	mu     sync.Mutex
	timers map[string]timer.Timer
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{
		timers: make(map[string]timer.Timer),
	}
}

// GetOrCreate returns the timer registered under name, creating one with the
// given options when absent.
func (r *Registry) GetOrCreate(name string, opts ...timer.Option) timer.Timer {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.timers[name]; ok {
		return t
	}
	t := timer.New(opts...)
	r.timers[name] = t
	return t
}

// Get returns the timer registered under name.
func (r *Registry) Get(name string) (timer.Timer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.timers[name]
	if !ok {
		return nil, ErrTimerNotFound
	}
	return t, nil
}

// Delete removes the timer registered under name, if any.
func (r *Registry) Delete(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.timers, name)
}

// Names returns the registered timer names, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.timers))
	for name := range r.timers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Do runs fn on the timer registered under name while holding the registry
// lock, giving fn the exclusive access the timer requires.
func (r *Registry) Do(name string, fn func(timer.Timer) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.timers[name]
	if !ok {
		return ErrTimerNotFound
	}
	return fn(t)
}
