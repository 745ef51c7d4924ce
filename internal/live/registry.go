package live

import (
	"reflect"
	"sync"
)

// registry is an ordered set of callbacks with two registration styles.
// add/remove key a callback by its code pointer, so duplicate adds of the
// same function are a no-op. subscribe registers unconditionally and hands
// back a cancel func naming exactly that registration; it is the path for
// callers that attach the same method to several receivers. Dispatch order
// is registration order either way.
type registry[T any] struct {
	mu   sync.Mutex
	subs []*entry[T]
}

type entry[T any] struct {
	key uintptr // 0 for handle-based subscriptions
	fn  T
}

// fnKey identifies a callback by its code pointer. Distinct named functions
// get distinct keys, but a method value carries no receiver identity: a.Take
// and b.Take on two receivers share one key, as do closures built from the
// same literal. add would drop the second of those; subscribe keeps them.
func fnKey(fn any) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

func (r *registry[T]) add(fn T) {
	k := fnKey(fn)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.subs {
		if e.key == k {
			return
		}
	}
	r.subs = append(r.subs, &entry[T]{key: k, fn: fn})
}

// remove drops the callback registered under fn's code pointer. Handle-based
// subscriptions only go away through their cancel func.
func (r *registry[T]) remove(fn T) {
	k := fnKey(fn)

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.subs {
		if e.key != 0 && e.key == k {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return
		}
	}
}

// subscribe registers fn unconditionally. The returned cancel removes this
// registration and nothing else; calling it twice is a no-op.
func (r *registry[T]) subscribe(fn T) func() {
	e := &entry[T]{fn: fn}

	r.mu.Lock()
	r.subs = append(r.subs, e)
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, cand := range r.subs {
			if cand == e {
				r.subs = append(r.subs[:i], r.subs[i+1:]...)
				return
			}
		}
	}
}

// snapshot returns the registered callbacks in registration order.
func (r *registry[T]) snapshot() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	fns := make([]T, len(r.subs))
	for i, e := range r.subs {
		fns[i] = e.fn
	}
	return fns
}

func (r *registry[T]) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}
