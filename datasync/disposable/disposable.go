// Package disposable releases a subscription exactly once.
package disposable

import "sync"

type Disposable interface {
	Dispose()
}

type callbackDisposable struct {
	once     sync.Once
	callback func()
}

// NewDisposable wraps callback so that repeated Dispose calls run it once.
func NewDisposable(callback func()) Disposable {
	return &callbackDisposable{callback: callback}
}

func (d *callbackDisposable) Dispose() {
	d.once.Do(d.callback)
}
