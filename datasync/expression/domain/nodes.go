package expression

import (
	"github.com/krew-solutions/ascetic-datasync-go/datasync/expression/domain/operators"
)

type Operable interface {
	Operator() operators.Operator
}

type Visitable interface {
	Accept(Visitor) error
}

// Visitor is implemented by every consumer of a predicate tree. The node set
// is closed: a visitor handles exactly these six variants.
type Visitor interface {
	VisitValue(ValueNode) error
	VisitField(FieldNode) error
	VisitPrefix(PrefixNode) error
	VisitInfix(InfixNode) error
	VisitPostfix(PostfixNode) error
	VisitFunction(FunctionNode) error
}

func Value(value any) ValueNode {
	return ValueNode{
		value: value,
	}
}

type ValueNode struct {
	value any
}

func (n ValueNode) Value() any {
	return n.value
}

func (n ValueNode) Accept(v Visitor) error {
	return v.VisitValue(n)
}

// Field references a member of the queried element. Nested members are
// separated by dots ("Address.City") or by the wire separator ("address/city").
func Field(path string) FieldNode {
	return FieldNode{
		path: path,
	}
}

type FieldNode struct {
	path string
}

func (n FieldNode) Path() string {
	return n.path
}

func (n FieldNode) Accept(v Visitor) error {
	return v.VisitField(n)
}

func Not(operand Visitable) PrefixNode {
	return PrefixNode{
		operator: operators.OperatorNot,
		operand:  operand,
	}
}

func Negate(operand Visitable) PrefixNode {
	return PrefixNode{
		operator: operators.OperatorNeg,
		operand:  operand,
	}
}

type PrefixNode struct {
	operator operators.Operator
	operand  Visitable
}

func (n PrefixNode) Operand() Visitable {
	return n.operand
}

func (n PrefixNode) Operator() operators.Operator {
	return n.operator
}

func (n PrefixNode) Accept(v Visitor) error {
	return v.VisitPrefix(n)
}

func Equal(left, right Visitable) InfixNode {
	return NewInfixNode(left, operators.OperatorEq, right)
}

func NotEqual(left, right Visitable) InfixNode {
	return NewInfixNode(left, operators.OperatorNe, right)
}

func GreaterThan(left, right Visitable) InfixNode {
	return NewInfixNode(left, operators.OperatorGt, right)
}

func GreaterThanEqual(left, right Visitable) InfixNode {
	return NewInfixNode(left, operators.OperatorGte, right)
}

func LessThan(left, right Visitable) InfixNode {
	return NewInfixNode(left, operators.OperatorLt, right)
}

func LessThanEqual(left, right Visitable) InfixNode {
	return NewInfixNode(left, operators.OperatorLte, right)
}

// And folds its operands to the left: And(a, b, c) is ((a and b) and c).
func And(left, right Visitable, rest ...Visitable) InfixNode {
	return fold(operators.OperatorAnd, left, right, rest)
}

func Or(left, right Visitable, rest ...Visitable) InfixNode {
	return fold(operators.OperatorOr, left, right, rest)
}

func Add(left, right Visitable) InfixNode {
	return NewInfixNode(left, operators.OperatorAdd, right)
}

func Sub(left, right Visitable) InfixNode {
	return NewInfixNode(left, operators.OperatorSub, right)
}

func Mul(left, right Visitable) InfixNode {
	return NewInfixNode(left, operators.OperatorMul, right)
}

func Div(left, right Visitable) InfixNode {
	return NewInfixNode(left, operators.OperatorDiv, right)
}

func Mod(left, right Visitable) InfixNode {
	return NewInfixNode(left, operators.OperatorMod, right)
}

func Xor(left, right Visitable) InfixNode {
	return NewInfixNode(left, operators.OperatorXor, right)
}

func LeftShift(left, right Visitable) InfixNode {
	return NewInfixNode(left, operators.OperatorLshift, right)
}

func RightShift(left, right Visitable) InfixNode {
	return NewInfixNode(left, operators.OperatorRshift, right)
}

func fold(op operators.Operator, left, right Visitable, rest []Visitable) InfixNode {
	node := NewInfixNode(left, op, right)
	for _, next := range rest {
		node = NewInfixNode(node, op, next)
	}
	return node
}

func NewInfixNode(left Visitable, operator operators.Operator, right Visitable) InfixNode {
	return InfixNode{
		left:     left,
		operator: operator,
		right:    right,
	}
}

type InfixNode struct {
	left     Visitable
	operator operators.Operator
	right    Visitable
}

func (n InfixNode) Left() Visitable {
	return n.left
}

func (n InfixNode) Operator() operators.Operator {
	return n.operator
}

func (n InfixNode) Right() Visitable {
	return n.right
}

func (n InfixNode) Accept(v Visitor) error {
	return v.VisitInfix(n)
}

func IsNull(operand Visitable) PostfixNode {
	return PostfixNode{
		operand:  operand,
		operator: operators.OperatorIsNull,
	}
}

func IsNotNull(operand Visitable) PostfixNode {
	return PostfixNode{
		operand:  operand,
		operator: operators.OperatorIsNotNull,
	}
}

type PostfixNode struct {
	operand  Visitable
	operator operators.Operator
}

func (n PostfixNode) Operand() Visitable {
	return n.operand
}

func (n PostfixNode) Operator() operators.Operator {
	return n.operator
}

func (n PostfixNode) Accept(v Visitor) error {
	return v.VisitPostfix(n)
}

// Call builds a function application with any name. Whether the name and
// arity can be sent to the service is decided at translation.
func Call(name Function, args ...Visitable) FunctionNode {
	return FunctionNode{
		name: name,
		args: args,
	}
}

type FunctionNode struct {
	name Function
	args []Visitable
}

func (n FunctionNode) Name() Function {
	return n.name
}

// Args returns a copy; nodes are immutable.
func (n FunctionNode) Args() []Visitable {
	args := make([]Visitable, len(n.args))
	copy(args, n.args)
	return args
}

func (n FunctionNode) Arity() int {
	return len(n.args)
}

func (n FunctionNode) Accept(v Visitor) error {
	return v.VisitFunction(n)
}
