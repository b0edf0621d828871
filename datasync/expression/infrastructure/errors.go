package expression

import (
	"fmt"

	"github.com/pkg/errors"

	e "github.com/krew-solutions/ascetic-datasync-go/datasync/expression/domain"
)

var (
	// ErrTranslation matches every *TranslationError.
	ErrTranslation  = errors.New("expression cannot be translated")
	ErrUnsupported  = errors.New("unsupported construct")
	ErrUnknownField = errors.New("unknown field")
)

type TranslationErrorKind int

const (
	KindUnsupported TranslationErrorKind = iota
	KindUnknownField
)

func (k TranslationErrorKind) String() string {
	if k == KindUnknownField {
		return "unknown field"
	}
	return "unsupported construct"
}

// TranslationError names the construct that could not be expressed on the
// wire. Nothing is emitted for a query that fails translation.
type TranslationError struct {
	Kind      TranslationErrorKind
	Construct string
	Reason    string
}

func (err *TranslationError) Error() string {
	if err.Reason == "" {
		return fmt.Sprintf("%s %s", err.Kind, err.Construct)
	}
	return fmt.Sprintf("%s %s: %s", err.Kind, err.Construct, err.Reason)
}

func (err *TranslationError) Is(target error) bool {
	switch target {
	case ErrTranslation:
		return true
	case ErrUnsupported:
		return err.Kind == KindUnsupported
	case ErrUnknownField:
		return err.Kind == KindUnknownField
	}
	return false
}

func unsupported(node e.Visitable, format string, args ...any) error {
	return &TranslationError{
		Kind:      KindUnsupported,
		Construct: e.Describe(node),
		Reason:    fmt.Sprintf(format, args...),
	}
}

func unknownField(path, typeName string) error {
	return &TranslationError{
		Kind:      KindUnknownField,
		Construct: path,
		Reason:    fmt.Sprintf("%s has no such member", typeName),
	}
}
