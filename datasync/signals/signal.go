package signals

import (
	"reflect"
	"slices"
	"sync"

	"github.com/krew-solutions/ascetic-datasync-go/datasync/disposable"
)

type entry[E any] struct {
	id       any
	observer Observer[E]
}

// SignalImp is safe for concurrent use; several streams may share one client.
type SignalImp[E any] struct {
	mu        sync.RWMutex
	observers []entry[E]
}

func NewSignal[E any]() *SignalImp[E] {
	return &SignalImp[E]{}
}

func (s *SignalImp[E]) Attach(observer Observer[E], observerID ...any) disposable.Disposable {
	id := resolveID(observer, observerID)
	release := disposable.NewDisposable(func() {
		s.Detach(observer, id)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.ContainsFunc(s.observers, func(e entry[E]) bool { return e.id == id }) {
		return release
	}
	s.observers = append(s.observers, entry[E]{id: id, observer: observer})
	return release
}

func (s *SignalImp[E]) Detach(observer Observer[E], observerID ...any) {
	id := resolveID(observer, observerID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = slices.DeleteFunc(s.observers, func(e entry[E]) bool { return e.id == id })
}

// Notify calls observers outside the lock so an observer may detach itself.
func (s *SignalImp[E]) Notify(event E) {
	s.mu.RLock()
	observers := slices.Clone(s.observers)
	s.mu.RUnlock()

	for _, e := range observers {
		e.observer(event)
	}
}

func (s *SignalImp[E]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

func resolveID[E any](observer Observer[E], observerID []any) any {
	if len(observerID) > 0 {
		return observerID[0]
	}
	return reflect.ValueOf(observer).Pointer()
}
