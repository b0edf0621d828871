package signals

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleEvent struct {
	payload int
}

func TestSignal_AttachAndNotify(t *testing.T) {
	s := NewSignal[sampleEvent]()
	var called sampleEvent
	s.Attach(func(e sampleEvent) { called = e }, "obs")
	s.Notify(sampleEvent{1})
	assert.Equal(t, sampleEvent{1}, called)
}

func TestSignal_NotifyPreservesOrder(t *testing.T) {
	s := NewSignal[sampleEvent]()
	var order []int
	s.Attach(func(e sampleEvent) { order = append(order, 1) }, "obs1")
	s.Attach(func(e sampleEvent) { order = append(order, 2) }, "obs2")
	s.Notify(sampleEvent{1})
	assert.Equal(t, []int{1, 2}, order)
}

func TestSignal_AttachDuplicateIsIdempotent(t *testing.T) {
	s := NewSignal[sampleEvent]()
	calls := 0
	observer := Observer[sampleEvent](func(e sampleEvent) { calls++ })
	s.Attach(observer, "obs")
	s.Attach(observer, "obs")
	s.Notify(sampleEvent{})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, s.Len())
}

func TestSignal_DisposeDetaches(t *testing.T) {
	s := NewSignal[sampleEvent]()
	called := false
	d := s.Attach(func(e sampleEvent) { called = true }, "obs")
	d.Dispose()
	s.Notify(sampleEvent{})
	assert.False(t, called)
	assert.Equal(t, 0, s.Len())
}

func TestSignal_ObserverMayDetachItself(t *testing.T) {
	s := NewSignal[sampleEvent]()
	calls := 0
	var observer Observer[sampleEvent]
	observer = func(e sampleEvent) {
		calls++
		s.Detach(observer, "self")
	}
	s.Attach(observer, "self")
	s.Notify(sampleEvent{})
	s.Notify(sampleEvent{})
	assert.Equal(t, 1, calls)
}

func TestSignal_ConcurrentNotify(t *testing.T) {
	s := NewSignal[sampleEvent]()
	var mu sync.Mutex
	total := 0
	s.Attach(func(e sampleEvent) {
		mu.Lock()
		total += e.payload
		mu.Unlock()
	}, "sum")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Notify(sampleEvent{payload: 1})
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, total)
}
