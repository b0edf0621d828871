package operators

// Operator values are the OData tokens where one exists.
type Operator string

const (
	// Comparison

	OperatorEq  Operator = "eq"
	OperatorNe  Operator = "ne"
	OperatorGt  Operator = "gt"
	OperatorGte Operator = "ge"
	OperatorLt  Operator = "lt"
	OperatorLte Operator = "le"

	// Logical

	OperatorAnd Operator = "and"
	OperatorOr  Operator = "or"
	OperatorNot Operator = "not"

	// Arithmetic

	OperatorAdd Operator = "add"
	OperatorSub Operator = "sub"
	OperatorMul Operator = "mul"
	OperatorDiv Operator = "div"
	OperatorMod Operator = "mod"
	OperatorNeg Operator = "-"

	// Bitwise, representable but never translated

	OperatorXor    Operator = "^"
	OperatorLshift Operator = "<<"
	OperatorRshift Operator = ">>"

	// Postfix

	OperatorIsNull    Operator = "is null"
	OperatorIsNotNull Operator = "is not null"
)

func (o Operator) IsComparison() bool {
	switch o {
	case OperatorEq, OperatorNe, OperatorGt, OperatorGte, OperatorLt, OperatorLte:
		return true
	}
	return false
}

func (o Operator) IsLogical() bool {
	return o == OperatorAnd || o == OperatorOr
}

func (o Operator) IsArithmetic() bool {
	switch o {
	case OperatorAdd, OperatorSub, OperatorMul, OperatorDiv, OperatorMod:
		return true
	}
	return false
}

// Lookup maps an OData infix keyword to its operator.
func Lookup(keyword string) (Operator, bool) {
	op := Operator(keyword)
	if op.IsComparison() || op.IsLogical() || op.IsArithmetic() {
		return op, true
	}
	return "", false
}
