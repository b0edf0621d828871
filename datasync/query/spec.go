// Package query composes immutable query specifications against a remote
// table and renders them as the service's query string.
//
// Every builder method returns a new Spec; the receiver is never modified,
// so a Spec can be shared between goroutines and extended independently.
package query

import (
	"context"
	"math"
	"slices"

	"github.com/pkg/errors"

	e "github.com/krew-solutions/ascetic-datasync-go/datasync/expression/domain"
	infra "github.com/krew-solutions/ascetic-datasync-go/datasync/expression/infrastructure"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/option"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/paging"
)

// MaxSkip and MaxTake bound the wire values of $skip and $top.
const (
	MaxSkip = math.MaxInt32
	MaxTake = math.MaxInt32
)

// OrderKey is one entry of the $orderby list.
type OrderKey struct {
	Key        e.Visitable
	Descending bool
}

// clauses is the element-type independent part of a Spec, so a projection
// can carry it over to a Spec of another type.
type clauses struct {
	filter            option.Option[e.Visitable]
	order             []OrderKey
	projection        []e.Visitable
	skip              int
	take              option.Option[int]
	includeDeleted    bool
	includeTotalCount bool
	parameters        Parameters
}

// Spec describes a query over items of type T. The zero value is an
// unbound query over an empty open schema.
type Spec[T any] struct {
	table  string
	schema *infra.Schema
	source paging.RawFetcher
	clauses
}

// New binds a query to a table. source may be nil for a spec that is only
// rendered, never executed.
func New[T any](table string, schema *infra.Schema, source paging.RawFetcher) Spec[T] {
	return Spec[T]{table: table, schema: schema, source: source}
}

// For derives the schema from T.
func For[T any](table string, source paging.RawFetcher) Spec[T] {
	return New[T](table, infra.SchemaFor[T](), source)
}

// Bind attaches the query to a table and the source of its pages.
func (q Spec[T]) Bind(table string, source paging.RawFetcher) Spec[T] {
	q.table = table
	q.source = source
	return q
}

func (q Spec[T]) Table() string {
	return q.table
}

func (q Spec[T]) Schema() *infra.Schema {
	if q.schema == nil {
		return infra.OpenSchema(q.table)
	}
	return q.schema
}

func (q Spec[T]) Filter() option.Option[e.Visitable] {
	return q.filter
}

func (q Spec[T]) Order() []OrderKey {
	return slices.Clone(q.order)
}

func (q Spec[T]) Projection() []e.Visitable {
	return slices.Clone(q.projection)
}

func (q Spec[T]) SkipCount() int {
	return q.skip
}

func (q Spec[T]) TakeCount() option.Option[int] {
	return q.take
}

func (q Spec[T]) IncludesDeletedItems() bool {
	return q.includeDeleted
}

func (q Spec[T]) IncludesTotalCount() bool {
	return q.includeTotalCount
}

func (q Spec[T]) Parameters() Parameters {
	return q.parameters.clone()
}

// Where adds a predicate. Successive calls are combined with "and"; an
// empty predicate leaves the spec unchanged.
func (q Spec[T]) Where(predicate e.Visitable) Spec[T] {
	predicate = infra.Unwrap(predicate)
	if predicate == nil {
		return q
	}
	if existing, ok := q.filter.Get(); ok {
		predicate = e.And(existing, predicate)
	}
	q.filter = option.Some(predicate)
	return q
}

// OrderBy replaces any ordering with a single ascending key.
func (q Spec[T]) OrderBy(key e.Visitable) Spec[T] {
	q.order = []OrderKey{{Key: infra.Unwrap(key)}}
	return q
}

func (q Spec[T]) OrderByDescending(key e.Visitable) Spec[T] {
	q.order = []OrderKey{{Key: infra.Unwrap(key), Descending: true}}
	return q
}

// ThenBy appends an ascending key. On an unordered spec it acts as OrderBy.
func (q Spec[T]) ThenBy(key e.Visitable) Spec[T] {
	q.order = append(slices.Clip(q.order), OrderKey{Key: infra.Unwrap(key)})
	return q
}

func (q Spec[T]) ThenByDescending(key e.Visitable) Spec[T] {
	q.order = append(slices.Clip(q.order), OrderKey{Key: infra.Unwrap(key), Descending: true})
	return q
}

// Skip adds n to the number of items to skip.
func (q Spec[T]) Skip(n int) (Spec[T], error) {
	if n < 0 {
		return q, outOfRange("skip", n, "must not be negative")
	}
	if n > MaxSkip-q.skip {
		return q, outOfRange("skip", n, "total skip exceeds %d", MaxSkip)
	}
	q.skip += n
	return q, nil
}

// Take limits the number of items. The smallest limit wins.
func (q Spec[T]) Take(n int) (Spec[T], error) {
	if n <= 0 {
		return q, outOfRange("take", n, "must be positive")
	}
	if n > MaxTake {
		return q, outOfRange("take", n, "must not exceed %d", MaxTake)
	}
	if current, ok := q.take.Get(); !ok || n < current {
		q.take = option.Some(n)
	}
	return q, nil
}

// IncludeDeletedItems asks the service to return soft-deleted items too.
func (q Spec[T]) IncludeDeletedItems(enabled bool) Spec[T] {
	q.includeDeleted = enabled
	return q
}

// IncludeTotalCount asks for the total number of matching items with the
// first page.
func (q Spec[T]) IncludeTotalCount(enabled bool) Spec[T] {
	q.includeTotalCount = enabled
	return q
}

// WithParameter adds a custom query parameter, replacing the value of a key
// that is already present.
func (q Spec[T]) WithParameter(key, value string) (Spec[T], error) {
	if err := validateParameter(key, value); err != nil {
		return q, err
	}
	q.parameters = q.parameters.with(key, value)
	return q, nil
}

// WithParameters adds several parameters in key order. Nothing is added
// unless every pair is valid; the error lists each offending pair.
func (q Spec[T]) WithParameters(parameters map[string]string) (Spec[T], error) {
	if len(parameters) == 0 {
		return q, invalid("parameters", "{}", "at least one parameter is required")
	}
	keys := sortedKeys(parameters)
	if err := validateParameters(keys, parameters); err != nil {
		return q, err
	}
	result := q.parameters.clone()
	for _, key := range keys {
		result = result.with(key, parameters[key])
	}
	q.parameters = result
	return q, nil
}

// Select restricts the returned members to fields and declares the element
// type of the result. Filter and order keep resolving against the schema of
// the original element type.
func Select[U any, T any](q Spec[T], fields ...e.Visitable) Spec[U] {
	c := q.clauses
	c.projection = make([]e.Visitable, 0, len(fields))
	for _, field := range fields {
		c.projection = append(c.projection, infra.Unwrap(field))
	}
	return Spec[U]{
		table:   q.table,
		schema:  q.schema,
		source:  q.source,
		clauses: c,
	}
}

// ToStream renders the query and returns a stream over its results. No
// request is made until the stream is advanced.
func (q Spec[T]) ToStream() (*paging.Stream[T], error) {
	qs, err := q.ToQueryString()
	if err != nil {
		return nil, err
	}
	if q.source == nil {
		return nil, errors.Errorf("query over %q is not bound to a data source", q.table)
	}
	return paging.FromQuery(paging.Decoding[T](q.source), qs), nil
}

// Collect runs the query and gathers every item.
func (q Spec[T]) Collect(ctx context.Context) ([]T, error) {
	stream, err := q.ToStream()
	if err != nil {
		return nil, err
	}
	return stream.Collect(ctx)
}
