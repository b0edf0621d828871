// Package table binds an element type to a remote table and starts queries
// over it.
package table

import (
	"reflect"
	"strings"

	"github.com/jinzhu/inflection"

	infra "github.com/krew-solutions/ascetic-datasync-go/datasync/expression/infrastructure"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/paging"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/query"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/rest"
)

// Source opens the page source of a table by name. *rest.Client satisfies
// it through SourceOf.
type Source interface {
	Table(name string) paging.RawFetcher
}

type SourceFunc func(name string) paging.RawFetcher

func (f SourceFunc) Table(name string) paging.RawFetcher {
	return f(name)
}

// SourceOf adapts a REST client.
func SourceOf(client *rest.Client) Source {
	return SourceFunc(func(name string) paging.RawFetcher {
		return client.Table(name)
	})
}

// Table is a remote table whose items decode into T.
type Table[T any] struct {
	name   string
	schema *infra.Schema
	source paging.RawFetcher
}

func New[T any](source Source, name string) *Table[T] {
	return &Table[T]{
		name:   name,
		schema: infra.SchemaFor[T](),
		source: source.Table(name),
	}
}

// Of names the table after T: "Movie" becomes "movies".
func Of[T any](source Source) *Table[T] {
	return New[T](source, DefaultName[T]())
}

func DefaultName[T any]() string {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.ToLower(inflection.Plural(t.Name()))
}

func (t *Table[T]) Name() string {
	return t.name
}

func (t *Table[T]) Schema() *infra.Schema {
	return t.schema
}

// Query starts an unrestricted query over the table.
func (t *Table[T]) Query() query.Spec[T] {
	return query.New[T](t.name, t.schema, t.source)
}

// Parse starts a query from a query string such as one received from a
// caller. Fields resolve against the table schema.
func (t *Table[T]) Parse(queryString string) (query.Spec[T], error) {
	q, err := query.Parse[T](t.schema, queryString)
	if err != nil {
		return q, err
	}
	return q.Bind(t.name, t.source), nil
}

// Items streams the results of a raw query string sent as is.
func (t *Table[T]) Items(queryString string) *paging.Stream[T] {
	return paging.FromQuery(paging.Decoding[T](t.source), strings.TrimPrefix(queryString, "?"))
}
