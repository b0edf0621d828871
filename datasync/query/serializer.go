package query

import (
	"net/url"
	"strconv"
	"strings"

	e "github.com/krew-solutions/ascetic-datasync-go/datasync/expression/domain"
	infra "github.com/krew-solutions/ascetic-datasync-go/datasync/expression/infrastructure"
)

// Wire names of the protocol parameters.
const (
	CountKey          = "$count"
	FilterKey         = "$filter"
	OrderByKey        = "$orderby"
	SelectKey         = "$select"
	SkipKey           = "$skip"
	TopKey            = "$top"
	IncludeDeletedKey = "__includedeleted"
)

// ToQueryString renders the query without a leading "?". Components appear
// in a fixed order followed by custom parameters in insertion order; clauses
// left at their defaults are omitted. Nothing is returned if any expression
// fails to translate.
func (q Spec[T]) ToQueryString() (string, error) {
	components, err := q.components()
	if err != nil {
		return "", err
	}
	return encode(components), nil
}

// Serialize is ToQueryString in function form.
func Serialize[T any](q Spec[T]) (string, error) {
	return q.ToQueryString()
}

func (q Spec[T]) components() ([]Parameter, error) {
	schema := q.Schema()
	var components []Parameter

	if q.includeTotalCount {
		components = append(components, Parameter{CountKey, "true"})
	}
	if predicate, ok := q.filter.Get(); ok {
		filter, err := infra.CompileFilter(schema, predicate)
		if err != nil {
			return nil, err
		}
		components = append(components, Parameter{FilterKey, filter})
	}
	if len(q.order) > 0 {
		keys := make([]string, 0, len(q.order))
		for _, item := range q.order {
			if item.Key == nil {
				return nil, missingExpression("order key")
			}
			key, err := infra.CompileOrderKey(schema, item.Key)
			if err != nil {
				return nil, err
			}
			if item.Descending {
				key += " desc"
			}
			keys = append(keys, key)
		}
		components = append(components, Parameter{OrderByKey, strings.Join(keys, ",")})
	}
	if len(q.projection) > 0 {
		for _, field := range q.projection {
			if field == nil {
				return nil, missingExpression("projection")
			}
		}
		fields, err := infra.CompileSelection(schema, q.projection)
		if err != nil {
			return nil, err
		}
		components = append(components, Parameter{SelectKey, strings.Join(fields, ",")})
	}
	if q.skip > 0 {
		components = append(components, Parameter{SkipKey, strconv.Itoa(q.skip)})
	}
	if take, ok := q.take.Get(); ok {
		components = append(components, Parameter{TopKey, strconv.Itoa(take)})
	}
	if q.includeDeleted {
		components = append(components, Parameter{IncludeDeletedKey, "true"})
	}
	return append(components, q.parameters...), nil
}

func missingExpression(role string) error {
	return &infra.TranslationError{
		Kind:      infra.KindUnsupported,
		Construct: e.Describe(nil),
		Reason:    role + " has no expression",
	}
}

func encode(components []Parameter) string {
	var b strings.Builder
	for i, c := range components {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(c.Key)
		b.WriteByte('=')
		b.WriteString(escape(c.Value))
	}
	return b.String()
}

// escape percent-encodes everything outside the unreserved set, spaces
// included.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
