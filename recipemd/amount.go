package recipemd

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// vulgarFraction is the character class of Unicode vulgar fraction glyphs
// (¼–¾ and ⅐–⅞).
const vulgarFraction = `[\x{00BC}-\x{00BE}\x{2150}-\x{215E}]`

// vulgarFractionValues maps each vulgar fraction glyph to its numeric value.
var vulgarFractionValues = map[string]decimal.Decimal{
	"¼": decimal.RequireFromString("0.25"),
	"½": decimal.RequireFromString("0.5"),
	"¾": decimal.RequireFromString("0.75"),
	"⅐": fraction(1, 7),
	"⅑": fraction(1, 9),
	"⅒": decimal.RequireFromString("0.1"),
	"⅓": fraction(1, 3),
	"⅔": fraction(2, 3),
	"⅕": decimal.RequireFromString("0.2"),
	"⅖": decimal.RequireFromString("0.4"),
	"⅗": decimal.RequireFromString("0.6"),
	"⅘": decimal.RequireFromString("0.8"),
	"⅙": fraction(1, 6),
	"⅚": fraction(5, 6),
	"⅛": decimal.RequireFromString("0.125"),
	"⅜": decimal.RequireFromString("0.375"),
	"⅝": decimal.RequireFromString("0.625"),
	"⅞": decimal.RequireFromString("0.875"),
}

func fraction(num, den int64) decimal.Decimal {
	return decimal.NewFromInt(num).Div(decimal.NewFromInt(den))
}

// amountPatterns are tried in order; the first match wins. Every pattern
// starts with an optional minus sign (group 1) and ends with the unit
// remainder (last group). The factor function may report no value for
// degenerate matches (zero denominator), in which case the next pattern is
// tried.
var amountPatterns = []struct {
	re     *regexp.Regexp
	factor func(m []string) (decimal.Decimal, bool)
}{
	{
		// improper fraction (1 1/2)
		re: regexp.MustCompile(`^\s*(-?)\s*(\d+)\s+(\d+)\s*/\s*(\d+)(.*)$`),
		factor: func(m []string) (decimal.Decimal, bool) {
			den := decimal.RequireFromString(m[4])
			if den.IsZero() {
				return decimal.Decimal{}, false
			}
			whole := decimal.RequireFromString(m[2])
			num := decimal.RequireFromString(m[3])
			return whole.Add(num.Div(den)), true
		},
	},
	{
		// improper fraction with unicode vulgar fraction (1 ½)
		re: regexp.MustCompile(`^\s*(-?)\s*(\d+)\s+(` + vulgarFraction + `)(.*)$`),
		factor: func(m []string) (decimal.Decimal, bool) {
			return decimal.RequireFromString(m[2]).Add(vulgarFractionValues[m[3]]), true
		},
	},
	{
		// proper fraction (5/6)
		re: regexp.MustCompile(`^\s*(-?)\s*(\d+)\s*/\s*(\d+)(.*)$`),
		factor: func(m []string) (decimal.Decimal, bool) {
			den := decimal.RequireFromString(m[3])
			if den.IsZero() {
				return decimal.Decimal{}, false
			}
			return decimal.RequireFromString(m[2]).Div(den), true
		},
	},
	{
		// unicode vulgar fraction (⅚)
		re: regexp.MustCompile(`^\s*(-?)\s*(` + vulgarFraction + `)(.*)$`),
		factor: func(m []string) (decimal.Decimal, bool) {
			return vulgarFractionValues[m[2]], true
		},
	},
	{
		// decimal with period or comma separator (5.4 or 5,4)
		re: regexp.MustCompile(`^\s*(-?)\s*(\d*)[.,](\d+)(.*)$`),
		factor: func(m []string) (decimal.Decimal, bool) {
			whole := m[2]
			if whole == "" {
				whole = "0"
			}
			return decimal.RequireFromString(whole + "." + m[3]), true
		},
	},
	{
		// integer (4)
		re: regexp.MustCompile(`^\s*(-?)\s*(\d+)(.*)$`),
		factor: func(m []string) (decimal.Decimal, bool) {
			return decimal.RequireFromString(m[2]), true
		},
	},
}

// ParseAmount extracts an Amount from a raw string like "1 1/2 pinches" or
// "½ pieces". The text after the matched number (trimmed) becomes the unit;
// a string with no recognizable number becomes a unit-only amount. Returns
// nil for an empty (or whitespace-only) string. ParseAmount never fails.
func ParseAmount(s string) *Amount {
	for _, p := range amountPatterns {
		m := p.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		factor, ok := p.factor(m)
		if !ok {
			continue
		}
		if m[1] == "-" {
			factor = factor.Neg()
		}
		return &Amount{Factor: &factor, Unit: strings.TrimSpace(m[len(m)-1])}
	}

	unit := strings.TrimSpace(s)
	if unit == "" {
		return nil
	}
	return &Amount{Unit: unit}
}
