package expression

import (
	"strings"

	e "github.com/krew-solutions/ascetic-datasync-go/datasync/expression/domain"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/expression/domain/operators"
)

// Category is the clause an expression is translated for.
type Category int

const (
	CategoryFilter Category = iota
	CategoryOrderBy
	CategorySelect
)

func (c Category) String() string {
	switch c {
	case CategoryOrderBy:
		return "$orderby"
	case CategorySelect:
		return "$select"
	}
	return "$filter"
}

// functionArities is the allowlist of functions and the argument counts the
// service accepts for each.
var functionArities = map[e.Function][]int{
	e.FunctionToLower:    {1},
	e.FunctionToUpper:    {1},
	e.FunctionTrim:       {1},
	e.FunctionLength:     {1},
	e.FunctionStartsWith: {2},
	e.FunctionEndsWith:   {2},
	e.FunctionContains:   {2},
	e.FunctionIndexOf:    {2},
	e.FunctionSubstring:  {2, 3},
	e.FunctionConcat:     {2},
	e.FunctionReplace:    {3},
	e.FunctionYear:       {1},
	e.FunctionMonth:      {1},
	e.FunctionDay:        {1},
	e.FunctionHour:       {1},
	e.FunctionMinute:     {1},
	e.FunctionSecond:     {1},
	e.FunctionFloor:      {1},
	e.FunctionCeiling:    {1},
	e.FunctionRound:      {1},
}

// IsSupportedFunction reports whether name may be sent with arity arguments.
func IsSupportedFunction(name e.Function, arity int) bool {
	for _, allowed := range functionArities[name] {
		if allowed == arity {
			return true
		}
	}
	return false
}

type ODataVisitorOption func(*ODataVisitor)

func InCategory(category Category) ODataVisitorOption {
	return func(v *ODataVisitor) {
		v.category = category
	}
}

// NewODataVisitor renders a tree in the service's filter syntax. Every
// binary operation is fully parenthesized, so no precedence table is needed.
func NewODataVisitor(schema *Schema, opts ...ODataVisitorOption) *ODataVisitor {
	v := &ODataVisitor{
		schema:   schema,
		category: CategoryFilter,
	}
	for i := range opts {
		opts[i](v)
	}
	return v
}

type ODataVisitor struct {
	text     string
	schema   *Schema
	category Category
	depth    int
}

// visit tracks nesting; order and select clauses accept a bare field only.
func (v *ODataVisitor) visit(node e.Visitable, callable func() error) error {
	if v.category != CategoryFilter && v.depth == 0 {
		if _, ok := node.(e.FieldNode); !ok {
			return unsupported(node, "%s accepts field references only", v.category)
		}
	}
	v.depth++
	err := callable()
	v.depth--
	return err
}

func (v *ODataVisitor) VisitValue(n e.ValueNode) error {
	return v.visit(n, func() error {
		literal, err := FormatLiteral(n.Value())
		if err != nil {
			return err
		}
		v.text += literal
		return nil
	})
}

func (v *ODataVisitor) VisitField(n e.FieldNode) error {
	return v.visit(n, func() error {
		mapping, err := v.schema.Resolve(n.Path())
		if err != nil {
			return err
		}
		v.text += mapping.WireName
		return nil
	})
}

// accept visits a child node, unwrapping typed handles first.
func (v *ODataVisitor) accept(child e.Visitable) error {
	child = Unwrap(child)
	if child == nil {
		return unsupported(nil, "missing operand")
	}
	return child.Accept(v)
}

func (v *ODataVisitor) VisitPrefix(n e.PrefixNode) error {
	return v.visit(n, func() error {
		switch n.Operator() {
		case operators.OperatorNot:
			v.text += "not("
			if err := v.accept(n.Operand()); err != nil {
				return err
			}
			v.text += ")"
			return nil
		case operators.OperatorNeg:
			return v.visitNegation(n)
		}
		return unsupported(n, "prefix operator %q", n.Operator())
	})
}

// visitNegation folds negation into a numeric literal; negating any other
// operand cannot be expressed.
func (v *ODataVisitor) visitNegation(n e.PrefixNode) error {
	operand, ok := Unwrap(n.Operand()).(e.ValueNode)
	if !ok || !isNumericLiteral(operand.Value()) {
		return unsupported(n, "negation applies to numeric literals only")
	}
	literal, err := FormatLiteral(operand.Value())
	if err != nil {
		return err
	}
	if rest, negative := strings.CutPrefix(literal, "-"); negative {
		v.text += rest
	} else {
		v.text += "-" + literal
	}
	return nil
}

func (v *ODataVisitor) VisitInfix(n e.InfixNode) error {
	return v.visit(n, func() error {
		op := n.Operator()
		if !op.IsComparison() && !op.IsLogical() && !op.IsArithmetic() {
			return unsupported(n, "operator %q", op)
		}
		v.text += "("
		if err := v.accept(n.Left()); err != nil {
			return err
		}
		v.text += " " + string(op) + " "
		if err := v.accept(n.Right()); err != nil {
			return err
		}
		v.text += ")"
		return nil
	})
}

func (v *ODataVisitor) VisitPostfix(n e.PostfixNode) error {
	return v.visit(n, func() error {
		var op operators.Operator
		switch n.Operator() {
		case operators.OperatorIsNull:
			op = operators.OperatorEq
		case operators.OperatorIsNotNull:
			op = operators.OperatorNe
		default:
			return unsupported(n, "postfix operator %q", n.Operator())
		}
		v.text += "("
		if err := v.accept(n.Operand()); err != nil {
			return err
		}
		v.text += " " + string(op) + " null)"
		return nil
	})
}

func (v *ODataVisitor) VisitFunction(n e.FunctionNode) error {
	return v.visit(n, func() error {
		if _, known := functionArities[n.Name()]; !known {
			return unsupported(n, "function %s is not supported", n.Name())
		}
		if !IsSupportedFunction(n.Name(), n.Arity()) {
			return unsupported(n, "function %s does not take %d arguments", n.Name(), n.Arity())
		}
		v.text += string(n.Name()) + "("
		for i, arg := range n.Args() {
			if i > 0 {
				v.text += ","
			}
			if err := v.accept(arg); err != nil {
				return err
			}
		}
		v.text += ")"
		return nil
	})
}

func (v ODataVisitor) Result() (string, error) {
	return v.text, nil
}
