package expression

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	e "github.com/krew-solutions/ascetic-datasync-go/datasync/expression/domain"
)

const dateTimeOffsetLayout = "2006-01-02T15:04:05.000Z"

// FormatLiteral encodes a constant in the service's literal syntax. Types
// without an unambiguous encoding are rejected rather than stringified.
func FormatLiteral(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "null", nil
	case bool:
		return strconv.FormatBool(v), nil
	case string:
		return quote(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10) + "L", nil
	case uint:
		return strconv.FormatUint(uint64(v), 10) + "L", nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10) + "L", nil
	case uint64:
		return strconv.FormatUint(v, 10) + "L", nil
	case float32:
		s, err := formatFloat(float64(v), 32)
		if err != nil {
			return "", err
		}
		return s + "f", nil
	case float64:
		s, err := formatFloat(v, 64)
		if err != nil {
			return "", err
		}
		if !strings.ContainsAny(s, ".E") {
			s += ".0"
		}
		return s, nil
	case decimal.Decimal:
		return v.String() + "M", nil
	case time.Time:
		if v.Location() != time.UTC {
			return "", unsupported(e.Value(v), "date/time literals must be in UTC, got location %s", v.Location())
		}
		return "cast(" + v.Format(dateTimeOffsetLayout) + ",Edm.DateTimeOffset)", nil
	case e.Date:
		return "cast(" + v.String() + ",Edm.Date)", nil
	case e.TimeOfDay:
		return "cast(" + v.String() + ",Edm.TimeOfDay)", nil
	case uuid.UUID:
		return "cast(" + v.String() + ",Edm.Guid)", nil
	}
	return formatByKind(value)
}

// formatByKind covers named types such as enums declared over int or string.
func formatByKind(value any) (string, error) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return "null", nil
		}
		return FormatLiteral(rv.Elem().Interface())
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.String:
		return quote(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10) + "L", nil
	case reflect.Uint8, reflect.Uint16:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Uint, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10) + "L", nil
	case reflect.Float32:
		return FormatLiteral(float32(rv.Float()))
	case reflect.Float64:
		return FormatLiteral(rv.Float())
	}
	return "", unsupported(e.Value(value), "no literal encoding for %T", value)
}

// formatFloat prints the shortest round-trip form, switching to exponent
// notation outside the significant-digit range of the type (15 digits for
// float64, 7 for float32).
func formatFloat(f float64, bitSize int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", unsupported(e.Value(f), "non-finite number")
	}
	digits := 15
	if bitSize == 32 {
		digits = 7
	}
	exponent := 0
	if f != 0 {
		exponent = int(math.Floor(math.Log10(math.Abs(f))))
	}
	if exponent >= -5 && exponent < digits {
		return strconv.FormatFloat(f, 'f', -1, bitSize), nil
	}
	return strconv.FormatFloat(f, 'G', -1, bitSize), nil
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func isNumericLiteral(value any) bool {
	switch value.(type) {
	case decimal.Decimal:
		return true
	case nil, bool, string, time.Time, e.Date, e.TimeOfDay, uuid.UUID:
		return false
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
