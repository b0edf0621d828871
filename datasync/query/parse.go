package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	e "github.com/krew-solutions/ascetic-datasync-go/datasync/expression/domain"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/expression/domain/odata"
	infra "github.com/krew-solutions/ascetic-datasync-go/datasync/expression/infrastructure"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/option"
)

// Parse reads a query string in the form ToQueryString produces. Fields are
// kept as written and resolved against schema when the query is rendered.
// Unknown "$" options are rejected.
func Parse[T any](schema *infra.Schema, queryString string) (Spec[T], error) {
	q := New[T](schema.TypeName(), schema, nil)
	queryString = strings.TrimPrefix(queryString, "?")
	if queryString == "" {
		return q, nil
	}
	for _, pair := range strings.Split(queryString, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return q, errors.Wrapf(err, "query key %q", rawKey)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return q, errors.Wrapf(err, "value of %s", key)
		}
		if q, err = q.apply(key, value); err != nil {
			return q, err
		}
	}
	return q, nil
}

func (q Spec[T]) apply(key, value string) (Spec[T], error) {
	switch key {
	case CountKey:
		enabled, err := parseFlag(key, value)
		return q.IncludeTotalCount(enabled), err
	case IncludeDeletedKey:
		enabled, err := parseFlag(key, value)
		return q.IncludeDeletedItems(enabled), err
	case FilterKey:
		predicate, err := odata.ParseFilter(value)
		if err != nil {
			return q, errors.Wrap(err, FilterKey)
		}
		return q.Where(predicate), nil
	case OrderByKey:
		items, err := odata.ParseOrderBy(value)
		if err != nil {
			return q, errors.Wrap(err, OrderByKey)
		}
		q.order = nil
		for _, item := range items {
			q.order = append(q.order, OrderKey{Key: e.Field(item.Field), Descending: item.Descending})
		}
		return q, nil
	case SelectKey:
		fields, err := odata.ParseSelect(value)
		if err != nil {
			return q, errors.Wrap(err, SelectKey)
		}
		q.projection = nil
		for _, field := range fields {
			q.projection = append(q.projection, e.Field(field))
		}
		return q, nil
	case SkipKey:
		n, err := parseCount(key, value)
		if err != nil {
			return q, err
		}
		q.skip = 0
		return q.Skip(n)
	case TopKey:
		n, err := parseCount(key, value)
		if err != nil {
			return q, err
		}
		q.take = option.Nothing[int]()
		return q.Take(n)
	}
	if strings.HasPrefix(key, SystemPrefix) {
		return q, invalid("query option", key, "not supported")
	}
	return q.WithParameter(key, value)
}

func parseFlag(key, value string) (bool, error) {
	enabled, err := strconv.ParseBool(value)
	if err != nil {
		return false, invalid(key, value, "expected true or false")
	}
	return enabled, nil
}

func parseCount(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, invalid(key, value, "expected an integer")
	}
	return n, nil
}
