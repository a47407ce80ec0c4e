package calculation

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	one         = decimal.NewFromInt(1)
	twelve      = decimal.NewFromInt(12)
	hundred     = decimal.NewFromInt(100)
	nearZeroTol = decimal.NewFromFloat(0.0001)
)

// pow raises base to exp through float64. Exact decimal exponentiation over
// hundreds of periods grows the coefficient to thousands of digits.
func pow(base decimal.Decimal, exp float64) decimal.Decimal {
	return decimal.NewFromFloat(math.Pow(base.InexactFloat64(), exp))
}

// percent converts 5.5 to 0.055
func percent(p decimal.Decimal) decimal.Decimal {
	return p.Div(hundred)
}

func nearZero(d decimal.Decimal) bool {
	return d.Abs().LessThan(nearZeroTol)
}

func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func maxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

func minDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
