package signals

import (
	"github.com/krew-solutions/ascetic-datasync-go/datasync/disposable"
)

type Observer[E any] func(E)

// Signal fans an event out to attached observers in attachment order.
type Signal[E any] interface {
	Attach(observer Observer[E], observerID ...any) disposable.Disposable
	Detach(observer Observer[E], observerID ...any)
	Notify(event E)
}
