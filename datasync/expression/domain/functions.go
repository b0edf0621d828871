package expression

// Function names a function application. The constants are the names the
// service understands; any other name can be built but not sent.
type Function string

const (
	FunctionToLower    Function = "tolower"
	FunctionToUpper    Function = "toupper"
	FunctionTrim       Function = "trim"
	FunctionLength     Function = "length"
	FunctionStartsWith Function = "startswith"
	FunctionEndsWith   Function = "endswith"
	FunctionContains   Function = "contains"
	FunctionIndexOf    Function = "indexof"
	FunctionSubstring  Function = "substring"
	FunctionConcat     Function = "concat"
	FunctionReplace    Function = "replace"

	FunctionYear   Function = "year"
	FunctionMonth  Function = "month"
	FunctionDay    Function = "day"
	FunctionHour   Function = "hour"
	FunctionMinute Function = "minute"
	FunctionSecond Function = "second"

	FunctionFloor   Function = "floor"
	FunctionCeiling Function = "ceiling"
	FunctionRound   Function = "round"
)

func ToLower(s Visitable) FunctionNode { return Call(FunctionToLower, s) }

func ToUpper(s Visitable) FunctionNode { return Call(FunctionToUpper, s) }

func Trim(s Visitable) FunctionNode { return Call(FunctionTrim, s) }

func Length(s Visitable) FunctionNode { return Call(FunctionLength, s) }

func StartsWith(s, prefix Visitable) FunctionNode { return Call(FunctionStartsWith, s, prefix) }

func EndsWith(s, suffix Visitable) FunctionNode { return Call(FunctionEndsWith, s, suffix) }

func Contains(s, sub Visitable) FunctionNode { return Call(FunctionContains, s, sub) }

func IndexOf(s, sub Visitable) FunctionNode { return Call(FunctionIndexOf, s, sub) }

// Substring takes a start and an optional length.
func Substring(s, start Visitable, length ...Visitable) FunctionNode {
	return Call(FunctionSubstring, append([]Visitable{s, start}, length...)...)
}

func Concat(a, b Visitable) FunctionNode { return Call(FunctionConcat, a, b) }

func Replace(s, find, replacement Visitable) FunctionNode {
	return Call(FunctionReplace, s, find, replacement)
}

func Year(t Visitable) FunctionNode { return Call(FunctionYear, t) }

func Month(t Visitable) FunctionNode { return Call(FunctionMonth, t) }

func Day(t Visitable) FunctionNode { return Call(FunctionDay, t) }

func Hour(t Visitable) FunctionNode { return Call(FunctionHour, t) }

func Minute(t Visitable) FunctionNode { return Call(FunctionMinute, t) }

func Second(t Visitable) FunctionNode { return Call(FunctionSecond, t) }

func Floor(n Visitable) FunctionNode { return Call(FunctionFloor, n) }

func Ceiling(n Visitable) FunctionNode { return Call(FunctionCeiling, n) }

func Round(n Visitable) FunctionNode { return Call(FunctionRound, n) }
