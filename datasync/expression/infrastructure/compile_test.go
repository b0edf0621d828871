package expression

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	e "github.com/krew-solutions/ascetic-datasync-go/datasync/expression/domain"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/expression/domain/public"
)

type studio struct {
	Name             string `json:"name"`
	HeadquartersCity string `json:"city"`
}

type movie struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Duration          int       `json:"duration"`
	MpaaRating        *string   `json:"mpaaRating,omitempty"`
	ReleaseDate       time.Time `json:"releaseDate"`
	BestPictureWinner bool      `json:"bestPictureWinner"`
	Year              int       `json:"year"`
	Studio            studio    `json:"studio"`
	UpdatedAt         time.Time
	Secret            string `json:"-"`
	internal          string
}

var movies = SchemaFor[movie]()

var (
	title       = public.TextField("Title")
	rating      = public.TextField("MpaaRating")
	year        = public.NumberField("Year")
	duration    = public.NumberField("Duration")
	winner      = public.BooleanField("BestPictureWinner")
	releaseDate = public.DateTimeField("ReleaseDate")
)

func TestCompileFilter(t *testing.T) {
	cases := []struct {
		name string
		exp  e.Visitable
		want string
	}{
		{"bool equality", winner.Eq(public.BooleanValue(true)), "(bestPictureWinner eq true)"},
		{"bare bool", winner, "bestPictureWinner"},
		{"not bare bool", public.Not(winner), "not(bestPictureWinner)"},
		{"not comparison", duration.Eq(public.NumberValue(60)).Not(), "not((duration eq 60))"},
		{
			"range",
			year.Gt(public.NumberValue(1929)).And(year.Lt(public.NumberValue(1940))),
			"((year gt 1929) and (year lt 1940))",
		},
		{"or", year.Lt(public.NumberValue(1930)).Or(year.Gte(public.NumberValue(2000))), "((year lt 1930) or (year ge 2000))"},
		{"sub", year.Sub(public.NumberValue(1900)).Gt(public.NumberValue(80)), "((year sub 1900) gt 80)"},
		{"add", year.Add(public.NumberValue(1)).Ne(public.NumberValue(2000)), "((year add 1) ne 2000)"},
		{"mul", duration.Mul(public.NumberValue(2)).Lte(public.NumberValue(180)), "((duration mul 2) le 180)"},
		{"mod", duration.Mod(public.NumberValue(2)).Eq(public.NumberValue(1)), "((duration mod 2) eq 1)"},
		{
			"round of division",
			duration.Div(public.NumberValue(60.0)).Round().Eq(public.NumberValue(2.0)),
			"(round((duration div 60.0)) eq 2.0)",
		},
		{"floor", duration.Div(public.NumberValue(60.0)).Floor().Eq(public.NumberValue(2.0)), "(floor((duration div 60.0)) eq 2.0)"},
		{"ceiling", duration.Div(public.NumberValue(60.0)).Ceiling().Eq(public.NumberValue(2.0)), "(ceiling((duration div 60.0)) eq 2.0)"},
		{"day", releaseDate.Day().Eq(public.NumberValue(1)), "(day(releaseDate) eq 1)"},
		{"month", releaseDate.Month().Eq(public.NumberValue(11)), "(month(releaseDate) eq 11)"},
		{"year part", releaseDate.Year().Gte(public.NumberValue(2000)), "(year(releaseDate) ge 2000)"},
		{"endswith", title.EndsWith(public.TextValue("er")), "endswith(title,'er')"},
		{"endswith lower", title.ToLower().EndsWith(public.TextValue("er")), "endswith(tolower(title),'er')"},
		{"endswith upper", title.ToUpper().EndsWith(public.TextValue("ER")), "endswith(toupper(title),'ER')"},
		{"startswith", title.StartsWith(public.TextValue("The")), "startswith(title,'The')"},
		{"contains", title.Contains(public.TextValue("one")), "contains(title,'one')"},
		{"indexof", rating.IndexOf(public.TextValue("-")).Gt(public.NumberValue(0)), "(indexof(mpaaRating,'-') gt 0)"},
		{
			"substring",
			rating.Substring(public.NumberValue(0), public.NumberValue(2)).Eq(public.TextValue("PG")),
			"(substring(mpaaRating,0,2) eq 'PG')",
		},
		{"substring from", title.Substring(public.NumberValue(4)).Eq(public.TextValue("Matrix")), "(substring(title,4) eq 'Matrix')"},
		{"trim length", title.Trim().Length().Gt(public.NumberValue(0)), "(length(trim(title)) gt 0)"},
		{
			"concat",
			title.Concat(rating).Eq(public.TextValue("Fight ClubR")),
			"(concat(title,mpaaRating) eq 'Fight ClubR')",
		},
		{
			"replace",
			title.Replace(public.TextValue(" "), public.TextValue("_")).Eq(public.TextValue("Star_Wars")),
			"(replace(title,' ','_') eq 'Star_Wars')",
		},
		{"null literal", rating.Eq(public.NullText()), "(mpaaRating eq null)"},
		{"is null", rating.IsNull(), "(mpaaRating eq null)"},
		{"is not null", rating.IsNotNull(), "(mpaaRating ne null)"},
		{"float literal", year.Lt(public.NumberValue(float32(2001.5))), "(year lt 2001.5f)"},
		{"long literal", year.Gt(public.NumberValue(int64(1900))), "(year gt 1900L)"},
		{"negative literal", duration.Gt(public.NumberValue(-180)), "(duration gt -180)"},
		{"negated literal", duration.Gt(public.NumberValue(180).Neg()), "(duration gt -180)"},
		{"quoted text", title.Eq(public.TextValue("Schindler's List")), "(title eq 'Schindler''s List')"},
		{
			"utc date",
			releaseDate.Gt(public.DateTimeValue(time.Date(1994, time.October, 14, 0, 0, 0, 0, time.UTC))),
			"(releaseDate gt cast(1994-10-14T00:00:00.000Z,Edm.DateTimeOffset))",
		},
		{"date only", releaseDate.Gte(public.DateValue(2000, time.January, 1)), "(releaseDate ge cast(2000-01-01,Edm.Date))"},
		{"time of day", releaseDate.Lt(public.TimeOfDayValue(10, 30, 0)), "(releaseDate lt cast(10:30:00,Edm.TimeOfDay))"},
		{"nested member", e.Equal(e.Field("Studio.HeadquartersCity"), e.Value("Burbank")), "(studio/city eq 'Burbank')"},
		{"wire name path", e.Equal(e.Field("studio/name"), e.Value("MGM")), "(studio/name eq 'MGM')"},
		{
			"consecutive where",
			e.And(winner.Not(), duration.Div(public.NumberValue(60.0)).Round().Eq(public.NumberValue(2.0))),
			"(not(bestPictureWinner) and (round((duration div 60.0)) eq 2.0))",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := CompileFilter(movies, c.exp)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestCompileFilterRejects(t *testing.T) {
	cases := []struct {
		name string
		exp  e.Visitable
		kind error
	}{
		{"xor", e.Equal(e.Xor(e.Field("Year"), e.Value(1024)), e.Value(0)), ErrUnsupported},
		{"left shift", e.Equal(e.LeftShift(e.Field("Year"), e.Value(1)), e.Value(0)), ErrUnsupported},
		{
			"negated field inside product",
			e.GreaterThan(e.Mul(e.Value(5), e.Negate(e.Field("Duration"))), e.Value(-180)),
			ErrUnsupported,
		},
		{"negated field", e.LessThanEqual(e.Negate(e.Field("Year")), e.Value(-2000)), ErrUnsupported},
		{"double negation of product", e.Negate(e.Negate(e.Mul(e.Field("Year"), e.Value(2)))), ErrUnsupported},
		{"negated string", e.Equal(e.Field("Title"), e.Negate(e.Value("x"))), ErrUnsupported},
		{"unknown function", e.Equal(e.Call("normalize", e.Field("Title")), e.Value("x")), ErrUnsupported},
		{"hash code", e.Equal(e.Call("gethashcode", e.Field("Id")), e.Value(42)), ErrUnsupported},
		{"wrong arity", e.Call(e.FunctionStartsWith, e.Field("Title")), ErrUnsupported},
		{"substring arity", e.Call(e.FunctionSubstring, e.Field("Title")), ErrUnsupported},
		{"non utc date", e.Equal(e.Field("ReleaseDate"), e.Value(time.Date(2000, 1, 1, 0, 0, 0, 0, time.FixedZone("X", 3600)))), ErrUnsupported},
		{"local date", e.Equal(e.Field("ReleaseDate"), e.Value(time.Date(2000, 1, 1, 0, 0, 0, 0, time.Local))), ErrUnsupported},
		{"struct literal", e.Equal(e.Field("Studio"), e.Value(studio{})), ErrUnsupported},
		{"unknown field", e.Equal(e.Field("Budget"), e.Value(1)), ErrUnknownField},
		{"json skipped field", e.Equal(e.Field("Secret"), e.Value("x")), ErrUnknownField},
		{"unexported field", e.Equal(e.Field("internal"), e.Value("x")), ErrUnknownField},
		{"empty handle", public.Logical{}, ErrUnsupported},
		{"no expression", nil, ErrUnsupported},
		{"missing right operand", e.Equal(e.Field("Title"), nil), ErrUnsupported},
		{"missing left operand", e.Equal(nil, e.Value(1)), ErrUnsupported},
		{"empty typed operand", title.Eq(public.Text{}), ErrUnsupported},
		{"missing not operand", e.Not(nil), ErrUnsupported},
		{"missing negated operand", e.Equal(e.Field("Year"), e.Negate(nil)), ErrUnsupported},
		{"missing null check operand", e.IsNull(nil), ErrUnsupported},
		{"missing function argument", e.Call(e.FunctionToLower, nil), ErrUnsupported},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := CompileFilter(movies, c.exp)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.ErrorIs(t, err, c.kind)
			assert.ErrorIs(t, err, ErrTranslation)

			var terr *TranslationError
			require.True(t, errors.As(err, &terr))
			assert.NotEmpty(t, terr.Construct)
		})
	}
}

func TestUnsupportedAndUnknownFieldAreDistinct(t *testing.T) {
	_, err := CompileFilter(movies, e.Field("Budget"))
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.NotErrorIs(t, err, ErrUnsupported)

	_, err = CompileFilter(movies, e.Call("normalize", e.Field("Title")))
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.NotErrorIs(t, err, ErrUnknownField)
	assert.Contains(t, err.Error(), "normalize(Title)")
}

func TestCompileOrderKey(t *testing.T) {
	got, err := CompileOrderKey(movies, e.Field("Year"))
	require.NoError(t, err)
	assert.Equal(t, "year", got)

	got, err = CompileOrderKey(movies, title)
	require.NoError(t, err)
	assert.Equal(t, "title", got)

	rejected := []e.Visitable{
		e.ToLower(e.Field("ID")),
		e.Call("tostring", e.Field("Year")),
		e.Add(e.Field("Year"), e.Value(1)),
		e.Value(1),
		e.Not(e.Field("BestPictureWinner")),
	}
	for _, key := range rejected {
		t.Run(e.Describe(key), func(t *testing.T) {
			_, err := CompileOrderKey(movies, key)
			assert.ErrorIs(t, err, ErrUnsupported)
		})
	}

	_, err = CompileOrderKey(movies, e.Field("Budget"))
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestCompileSelection(t *testing.T) {
	got, err := CompileSelection(movies, []e.Visitable{e.Field("ID"), e.Field("Title"), e.Field("title")})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "title"}, got)

	_, err = CompileSelection(movies, []e.Visitable{e.Field("ID"), e.ToLower(e.Field("Title"))})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestOpenSchemaPassesNamesThrough(t *testing.T) {
	schema := SchemaFor[map[string]any]()
	got, err := CompileFilter(schema, e.Equal(e.Field("anything.nested"), e.Value(1)))
	require.NoError(t, err)
	assert.Equal(t, "(anything/nested eq 1)", got)
}
