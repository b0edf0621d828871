package query

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	infra "github.com/krew-solutions/ascetic-datasync-go/datasync/expression/infrastructure"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/paging"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("invalid query argument")
	ErrOutOfRange = errors.New("argument out of range")
)

// ValidationError rejects a builder argument at the call that received it.
type ValidationError struct {
	Argument   string
	Value      any
	Reason     string
	outOfRange bool
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", err.Argument, err.Value, err.Reason)
}

func (err *ValidationError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return true
	case ErrOutOfRange:
		return err.outOfRange
	}
	return false
}

func invalid(argument string, value any, format string, args ...any) error {
	return &ValidationError{Argument: argument, Value: value, Reason: fmt.Sprintf(format, args...)}
}

func outOfRange(argument string, value any, format string, args ...any) error {
	return &ValidationError{
		Argument:   argument,
		Value:      value,
		Reason:     fmt.Sprintf(format, args...),
		outOfRange: true,
	}
}

type Kind int

const (
	KindNone Kind = iota
	KindValidation
	KindTranslation
	KindTransport
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindTranslation:
		return "translation"
	case KindTransport:
		return "transport"
	}
	return "unknown"
}

// KindOf tells which stage produced err.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, infra.ErrTranslation):
		return KindTranslation
	case errors.Is(err, paging.ErrTransport),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return KindTransport
	}
	return KindUnknown
}
