package paging

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrTransport matches every *FetchError.
var ErrTransport = errors.New("page fetch failed")

// FetchError reports a failed page request. Unwrap yields the collaborator's
// error unchanged.
type FetchError struct {
	Target Target
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Target, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrTransport
}
