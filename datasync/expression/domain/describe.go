package expression

import (
	"fmt"
	"strings"
)

// Describe renders a tree for diagnostics. The output is not wire syntax.
func Describe(node Visitable) string {
	if node == nil {
		return "<nil>"
	}
	v := &describeVisitor{}
	if err := node.Accept(v); err != nil {
		return fmt.Sprintf("<%T>", node)
	}
	return v.b.String()
}

type describeVisitor struct {
	b strings.Builder
}

func (v *describeVisitor) accept(child Visitable) error {
	if child == nil {
		v.b.WriteString("<nil>")
		return nil
	}
	return child.Accept(v)
}

func (v *describeVisitor) VisitValue(n ValueNode) error {
	if s, ok := n.Value().(string); ok {
		fmt.Fprintf(&v.b, "%q", s)
		return nil
	}
	fmt.Fprintf(&v.b, "%v", n.Value())
	return nil
}

func (v *describeVisitor) VisitField(n FieldNode) error {
	v.b.WriteString(n.Path())
	return nil
}

func (v *describeVisitor) VisitPrefix(n PrefixNode) error {
	fmt.Fprintf(&v.b, "%s(", n.Operator())
	if err := v.accept(n.Operand()); err != nil {
		return err
	}
	v.b.WriteString(")")
	return nil
}

func (v *describeVisitor) VisitInfix(n InfixNode) error {
	v.b.WriteString("(")
	if err := v.accept(n.Left()); err != nil {
		return err
	}
	fmt.Fprintf(&v.b, " %s ", n.Operator())
	if err := v.accept(n.Right()); err != nil {
		return err
	}
	v.b.WriteString(")")
	return nil
}

func (v *describeVisitor) VisitPostfix(n PostfixNode) error {
	if err := v.accept(n.Operand()); err != nil {
		return err
	}
	fmt.Fprintf(&v.b, " %s", n.Operator())
	return nil
}

func (v *describeVisitor) VisitFunction(n FunctionNode) error {
	fmt.Fprintf(&v.b, "%s(", n.Name())
	for i, arg := range n.Args() {
		if i > 0 {
			v.b.WriteString(", ")
		}
		if err := v.accept(arg); err != nil {
			return err
		}
	}
	v.b.WriteString(")")
	return nil
}
