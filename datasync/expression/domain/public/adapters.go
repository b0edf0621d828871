package public

import (
	"github.com/pkg/errors"

	e "github.com/krew-solutions/ascetic-datasync-go/datasync/expression/domain"
)

type DelegatingImp struct {
	delegate e.Visitable
}

func NewDelegating(delegate e.Visitable) DelegatingImp {
	return DelegatingImp{delegate: delegate}
}

func (d DelegatingImp) Delegate() e.Visitable {
	return d.delegate
}

func (d DelegatingImp) Accept(v e.Visitor) error {
	if d.delegate == nil {
		return errors.New("empty expression")
	}
	return d.delegate.Accept(v)
}

func (d DelegatingImp) IsNull() Logical {
	return NewLogical(e.IsNull(d.delegate))
}

func (d DelegatingImp) IsNotNull() Logical {
	return NewLogical(e.IsNotNull(d.delegate))
}

// Logical is a boolean-valued expression: a comparison, a function such as
// startswith, or a combination of those.
type Logical struct {
	DelegatingImp
}

func NewLogical(delegate e.Visitable) Logical {
	return Logical{DelegatingImp: NewDelegating(delegate)}
}

// And joins l with others; with no others l is returned as is.
func (l Logical) And(others ...Delegating) Logical {
	if len(others) == 0 {
		return l
	}
	nodes := delegates(others)
	return NewLogical(e.And(l.Delegate(), nodes[0], nodes[1:]...))
}

func (l Logical) Or(others ...Delegating) Logical {
	if len(others) == 0 {
		return l
	}
	nodes := delegates(others)
	return NewLogical(e.Or(l.Delegate(), nodes[0], nodes[1:]...))
}

func (l Logical) Not() Logical {
	return NewLogical(e.Not(l.Delegate()))
}

func Not(operand Delegating) Logical {
	return NewLogical(e.Not(operand.Delegate()))
}

func delegates(items []Delegating) []e.Visitable {
	nodes := make([]e.Visitable, 0, len(items))
	for _, item := range items {
		nodes = append(nodes, item.Delegate())
	}
	return nodes
}

func compare(build func(left, right e.Visitable) e.InfixNode, left, right Delegating) Logical {
	return NewLogical(build(left.Delegate(), right.Delegate()))
}
