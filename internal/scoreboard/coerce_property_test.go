package scoreboard

import (
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestCoercionProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	whitespace := gen.SliceOf(gen.OneConstOf(" ", "\t", "\r", "\n")).Map(func(parts []string) string {
		return strings.Join(parts, "")
	})

	properties.Property("blank input coerces to zero", prop.ForAll(
		func(ws string) bool {
			return CoerceNumeric(ws) == DefaultNumeric
		},
		whitespace,
	))

	properties.Property("integers keep their trimmed text", prop.ForAll(
		func(n int32, lead, trail string) bool {
			text := strconv.Itoa(int(n))
			return CoerceNumeric(lead+text+trail) == text
		},
		gen.Int32(),
		whitespace,
		whitespace,
	))

	properties.Property("non-integers coerce to zero", prop.ForAll(
		func(s string) bool {
			return CoerceNumeric(s+"x") == DefaultNumeric
		},
		gen.AlphaString(),
	))

	properties.Property("numeric fields always hold integer text", prop.ForAll(
		func(raw string) bool {
			st := NewState()
			if err := st.Apply(Set(ScoreHome, raw), Set(Downs, raw)); err != nil {
				return false
			}
			for _, f := range []Field{ScoreHome, Downs} {
				if _, err := strconv.ParseInt(st.Get(f), 10, 32); err != nil {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.Property("possession flags are exclusive", prop.ForAll(
		func(code string) bool {
			home, away := DerivePossession(code)
			switch code {
			case "H":
				return home == "1" && away == ""
			case "V":
				return home == "" && away == "1"
			default:
				return home == "" && away == ""
			}
		},
		gen.OneGenOf(gen.OneConstOf("H", "V", ""), gen.AlphaString()),
	))

	properties.TestingRun(t)
}
