package public

import (
	"time"

	e "github.com/krew-solutions/ascetic-datasync-go/datasync/expression/domain"
)

// Boolean

type Boolean struct {
	Logical
}

func NewBoolean(delegate e.Visitable) Boolean {
	return Boolean{Logical: NewLogical(delegate)}
}

func BooleanField(name string) Boolean {
	return NewBoolean(e.Field(name))
}

func BooleanValue(value bool) Boolean {
	return NewBoolean(e.Value(value))
}

func (b Boolean) Eq(other Boolean) Logical { return compare(e.Equal, b, other) }

func (b Boolean) Ne(other Boolean) Logical { return compare(e.NotEqual, b, other) }

// Text

type Text struct {
	DelegatingImp
}

func NewText(delegate e.Visitable) Text {
	return Text{DelegatingImp: NewDelegating(delegate)}
}

func TextField(name string) Text {
	return NewText(e.Field(name))
}

func TextValue(value string) Text {
	return NewText(e.Value(value))
}

// NullText is a null literal usable on either side of a text comparison.
func NullText() Text {
	return NewText(e.Value(nil))
}

func (t Text) Eq(other Text) Logical  { return compare(e.Equal, t, other) }
func (t Text) Ne(other Text) Logical  { return compare(e.NotEqual, t, other) }
func (t Text) Gt(other Text) Logical  { return compare(e.GreaterThan, t, other) }
func (t Text) Gte(other Text) Logical { return compare(e.GreaterThanEqual, t, other) }
func (t Text) Lt(other Text) Logical  { return compare(e.LessThan, t, other) }
func (t Text) Lte(other Text) Logical { return compare(e.LessThanEqual, t, other) }

func (t Text) ToLower() Text { return NewText(e.ToLower(t.Delegate())) }
func (t Text) ToUpper() Text { return NewText(e.ToUpper(t.Delegate())) }
func (t Text) Trim() Text    { return NewText(e.Trim(t.Delegate())) }
func (t Text) Length() Number {
	return NewNumber(e.Length(t.Delegate()))
}

func (t Text) StartsWith(prefix Text) Logical {
	return NewLogical(e.StartsWith(t.Delegate(), prefix.Delegate()))
}

func (t Text) EndsWith(suffix Text) Logical {
	return NewLogical(e.EndsWith(t.Delegate(), suffix.Delegate()))
}

func (t Text) Contains(sub Text) Logical {
	return NewLogical(e.Contains(t.Delegate(), sub.Delegate()))
}

func (t Text) IndexOf(sub Text) Number {
	return NewNumber(e.IndexOf(t.Delegate(), sub.Delegate()))
}

func (t Text) Substring(start Number, length ...Number) Text {
	rest := make([]e.Visitable, 0, len(length))
	for _, l := range length {
		rest = append(rest, l.Delegate())
	}
	return NewText(e.Substring(t.Delegate(), start.Delegate(), rest...))
}

func (t Text) Concat(other Text) Text {
	return NewText(e.Concat(t.Delegate(), other.Delegate()))
}

func (t Text) Replace(find, replacement Text) Text {
	return NewText(e.Replace(t.Delegate(), find.Delegate(), replacement.Delegate()))
}

// Number

type Number struct {
	DelegatingImp
}

func NewNumber(delegate e.Visitable) Number {
	return Number{DelegatingImp: NewDelegating(delegate)}
}

func NumberField(name string) Number {
	return NewNumber(e.Field(name))
}

// NumberValue accepts any Go numeric type or decimal.Decimal; the literal
// suffix on the wire follows the Go type.
func NumberValue(value any) Number {
	return NewNumber(e.Value(value))
}

func (n Number) Eq(other Number) Logical  { return compare(e.Equal, n, other) }
func (n Number) Ne(other Number) Logical  { return compare(e.NotEqual, n, other) }
func (n Number) Gt(other Number) Logical  { return compare(e.GreaterThan, n, other) }
func (n Number) Gte(other Number) Logical { return compare(e.GreaterThanEqual, n, other) }
func (n Number) Lt(other Number) Logical  { return compare(e.LessThan, n, other) }
func (n Number) Lte(other Number) Logical { return compare(e.LessThanEqual, n, other) }

func (n Number) Add(other Number) Number { return NewNumber(e.Add(n.Delegate(), other.Delegate())) }
func (n Number) Sub(other Number) Number { return NewNumber(e.Sub(n.Delegate(), other.Delegate())) }
func (n Number) Mul(other Number) Number { return NewNumber(e.Mul(n.Delegate(), other.Delegate())) }
func (n Number) Div(other Number) Number { return NewNumber(e.Div(n.Delegate(), other.Delegate())) }
func (n Number) Mod(other Number) Number { return NewNumber(e.Mod(n.Delegate(), other.Delegate())) }
func (n Number) Neg() Number             { return NewNumber(e.Negate(n.Delegate())) }

func (n Number) Floor() Number   { return NewNumber(e.Floor(n.Delegate())) }
func (n Number) Ceiling() Number { return NewNumber(e.Ceiling(n.Delegate())) }
func (n Number) Round() Number   { return NewNumber(e.Round(n.Delegate())) }

// DateTime

type DateTime struct {
	DelegatingImp
}

func NewDateTime(delegate e.Visitable) DateTime {
	return DateTime{DelegatingImp: NewDelegating(delegate)}
}

func DateTimeField(name string) DateTime {
	return NewDateTime(e.Field(name))
}

// DateTimeValue must be in UTC to be translatable.
func DateTimeValue(value time.Time) DateTime {
	return NewDateTime(e.Value(value))
}

func DateValue(year int, month time.Month, day int) DateTime {
	return NewDateTime(e.Value(e.NewDate(year, month, day)))
}

func TimeOfDayValue(hour, minute, second int) DateTime {
	return NewDateTime(e.Value(e.NewTimeOfDay(hour, minute, second)))
}

func (d DateTime) Eq(other DateTime) Logical  { return compare(e.Equal, d, other) }
func (d DateTime) Ne(other DateTime) Logical  { return compare(e.NotEqual, d, other) }
func (d DateTime) Gt(other DateTime) Logical  { return compare(e.GreaterThan, d, other) }
func (d DateTime) Gte(other DateTime) Logical { return compare(e.GreaterThanEqual, d, other) }
func (d DateTime) Lt(other DateTime) Logical  { return compare(e.LessThan, d, other) }
func (d DateTime) Lte(other DateTime) Logical { return compare(e.LessThanEqual, d, other) }

func (d DateTime) Year() Number   { return NewNumber(e.Year(d.Delegate())) }
func (d DateTime) Month() Number  { return NewNumber(e.Month(d.Delegate())) }
func (d DateTime) Day() Number    { return NewNumber(e.Day(d.Delegate())) }
func (d DateTime) Hour() Number   { return NewNumber(e.Hour(d.Delegate())) }
func (d DateTime) Minute() Number { return NewNumber(e.Minute(d.Delegate())) }
func (d DateTime) Second() Number { return NewNumber(e.Second(d.Delegate())) }
