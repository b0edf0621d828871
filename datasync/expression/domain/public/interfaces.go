// Package public is the strongly-typed surface over the predicate tree.
// Field handles are declared once per element type and combined with
// literals of the matching kind:
//
//	var (
//		title = public.TextField("Title")
//		year  = public.NumberField("Year")
//	)
//	filter := title.ToLower().EndsWith(public.TextValue("er")).And(year.Gt(public.NumberValue(1929)))
package public

import (
	e "github.com/krew-solutions/ascetic-datasync-go/datasync/expression/domain"
)

// Delegating is a typed handle over a tree node. Every handle is itself
// Visitable, so it can be passed wherever a node is expected.
type Delegating interface {
	e.Visitable
	Delegate() e.Visitable
}

type Nullable interface {
	Delegating
	IsNull() Logical
	IsNotNull() Logical
}
