package operators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	cases := []struct {
		op         Operator
		comparison bool
		logical    bool
		arithmetic bool
	}{
		{OperatorEq, true, false, false},
		{OperatorLte, true, false, false},
		{OperatorAnd, false, true, false},
		{OperatorOr, false, true, false},
		{OperatorMod, false, false, true},
		{OperatorXor, false, false, false},
		{OperatorNot, false, false, false},
	}
	for _, c := range cases {
		t.Run(string(c.op), func(t *testing.T) {
			assert.Equal(t, c.comparison, c.op.IsComparison())
			assert.Equal(t, c.logical, c.op.IsLogical())
			assert.Equal(t, c.arithmetic, c.op.IsArithmetic())
		})
	}
}

func TestLookup(t *testing.T) {
	op, ok := Lookup("ge")
	assert.True(t, ok)
	assert.Equal(t, OperatorGte, op)

	_, ok = Lookup("not")
	assert.False(t, ok)
	_, ok = Lookup("^")
	assert.False(t, ok)
}
