package signal

import "sync"

// ChangeFunc is the callback invoked when a watched attribute changes.
// It receives the previous and new values.
type ChangeFunc func(old, new string)

// watcher pairs a callback with a registration generation so a stale
// cancel func cannot unregister a replacement watcher.
type watcher struct {
	fn  ChangeFunc
	gen uint64
}

// Attributes is a small observable set of named string slots, standing
// in for "attributes on the document root". Watchers register one
// callback per attribute name; setting an attribute to a new value
// notifies the watcher, setting it to the same value does not.
type Attributes struct {
	mu       sync.Mutex
	gen      uint64
	values   map[string]string
	watchers map[string]watcher
}

// NewAttributes returns an empty attribute set.
func NewAttributes() *Attributes {
	return &Attributes{
		values:   make(map[string]string),
		watchers: make(map[string]watcher),
	}
}

// Get returns the current value of an attribute ("" if unset).
func (a *Attributes) Get(name string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.values[name]
}

// Set updates an attribute. The watcher, if any, is notified only when
// the value actually changes. The callback runs on the caller's
// goroutine, outside the lock.
func (a *Attributes) Set(name, value string) {
	a.mu.Lock()
	old := a.values[name]
	a.values[name] = value
	w := a.watchers[name]
	a.mu.Unlock()

	if w.fn != nil && old != value {
		w.fn(old, value)
	}
}

// Watch registers the callback for an attribute. At most one watcher per
// attribute: re-watching replaces the previous callback. The returned
// cancel func unregisters this registration; it is a no-op once the
// watcher has been replaced.
func (a *Attributes) Watch(name string, fn ChangeFunc) (cancel func()) {
	a.mu.Lock()
	a.gen++
	gen := a.gen
	a.watchers[name] = watcher{fn: fn, gen: gen}
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if w, ok := a.watchers[name]; ok && w.gen == gen {
			delete(a.watchers, name)
		}
	}
}
