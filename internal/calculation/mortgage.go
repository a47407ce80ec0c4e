package calculation

import (
	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	insuredPriceCeiling = decimal.NewFromInt(1500000)
	firstTierCeiling    = decimal.NewFromInt(500000)
	minMonthlyRate      = decimal.New(1, -9)
)

// MonthlyPayment returns the fixed monthly payment that repays principal at
// annualRatePercent over years, rounded to the cent. A zero rate divides the
// principal evenly; degenerate inputs return zero.
func MonthlyPayment(principal, annualRatePercent decimal.Decimal, years int) decimal.Decimal {
	if !principal.IsPositive() || years <= 0 || annualRatePercent.IsNegative() {
		return decimal.Zero
	}
	return money(principal.Mul(paymentFactor(annualRatePercent, years)))
}

// paymentFactor is the unrounded payment per dollar of principal
func paymentFactor(annualRatePercent decimal.Decimal, years int) decimal.Decimal {
	n := decimal.NewFromInt(int64(years) * 12)
	if annualRatePercent.IsZero() {
		return one.Div(n)
	}
	r := monthlyRate(annualRatePercent)
	if r.LessThan(minMonthlyRate) {
		return one.Div(n)
	}
	growth := pow(one.Add(r), n.InexactFloat64())
	denom := growth.Sub(one)
	if !denom.IsPositive() {
		return one.Div(n)
	}
	return r.Mul(growth).Div(denom)
}

// MaxPrincipalForPayment is the inverse of MonthlyPayment: the largest
// principal a monthly payment can carry.
func MaxPrincipalForPayment(payment, annualRatePercent decimal.Decimal, years int) decimal.Decimal {
	if !payment.IsPositive() || years <= 0 || annualRatePercent.IsNegative() {
		return decimal.Zero
	}
	return money(payment.Div(paymentFactor(annualRatePercent, years)))
}

// AmortizationSchedule lists every monthly payment with its interest and principal split.
// The final payment absorbs rounding so the balance ends at exactly zero.
func AmortizationSchedule(principal, annualRatePercent decimal.Decimal, years int) []domain.AmortizationRow {
	payment := MonthlyPayment(principal, annualRatePercent, years)
	if payment.IsZero() {
		return nil
	}

	n := years * 12
	r := monthlyRate(annualRatePercent)
	balance := principal
	rows := make([]domain.AmortizationRow, 0, n)

	for month := 1; month <= n; month++ {
		interest := money(balance.Mul(r))
		pay := payment
		principalPart := pay.Sub(interest)
		if month == n || principalPart.GreaterThan(balance) {
			principalPart = balance
			pay = principalPart.Add(interest)
		}
		balance = balance.Sub(principalPart)

		rows = append(rows, domain.AmortizationRow{
			Month:     month,
			Payment:   pay,
			Interest:  interest,
			Principal: principalPart,
			Balance:   balance,
		})
		if balance.IsZero() {
			break
		}
	}
	return rows
}

// TotalInterest sums the interest column of the schedule
func TotalInterest(principal, annualRatePercent decimal.Decimal, years int) decimal.Decimal {
	total := decimal.Zero
	for _, row := range AmortizationSchedule(principal, annualRatePercent, years) {
		total = total.Add(row.Interest)
	}
	return total
}

// SummarizeMortgage bundles payment, total interest and optionally the full schedule
func SummarizeMortgage(principal, annualRatePercent decimal.Decimal, years int, withSchedule bool) *domain.MortgageSummary {
	schedule := AmortizationSchedule(principal, annualRatePercent, years)
	total := decimal.Zero
	for _, row := range schedule {
		total = total.Add(row.Interest)
	}
	summary := &domain.MortgageSummary{
		Principal:      principal,
		RatePercent:    annualRatePercent,
		Years:          years,
		MonthlyPayment: MonthlyPayment(principal, annualRatePercent, years),
		TotalInterest:  total,
	}
	if withSchedule {
		summary.Schedule = schedule
	}
	return summary
}

// MinimumDownPayment applies the Canadian minimum: 5% of the first $500,000,
// 10% of the remainder, and 20% of the full price from $1.5M up.
func MinimumDownPayment(price decimal.Decimal) decimal.Decimal {
	if !price.IsPositive() {
		return decimal.Zero
	}
	if price.GreaterThanOrEqual(insuredPriceCeiling) {
		return money(price.Mul(decimal.NewFromFloat(0.20)))
	}
	if price.LessThanOrEqual(firstTierCeiling) {
		return money(price.Mul(decimal.NewFromFloat(0.05)))
	}
	first := firstTierCeiling.Mul(decimal.NewFromFloat(0.05))
	rest := price.Sub(firstTierCeiling).Mul(decimal.NewFromFloat(0.10))
	return money(first.Add(rest))
}

// insurancePremiumRate returns the mortgage default insurance premium as a
// percent of the insured principal.
func insurancePremiumRate(price, downPaymentPercent decimal.Decimal) decimal.Decimal {
	switch {
	case downPaymentPercent.GreaterThanOrEqual(decimal.NewFromInt(20)):
		return decimal.Zero
	case price.GreaterThanOrEqual(insuredPriceCeiling):
		return decimal.Zero
	case downPaymentPercent.LessThan(decimal.NewFromInt(10)):
		return decimal.NewFromFloat(4.00)
	case downPaymentPercent.LessThan(decimal.NewFromInt(15)):
		return decimal.NewFromFloat(3.10)
	default:
		return decimal.NewFromFloat(2.80)
	}
}

// MortgageInsurancePremium is the default insurance premium added to the
// principal when less than 20% is put down.
func MortgageInsurancePremium(price, downPaymentPercent decimal.Decimal) decimal.Decimal {
	if !price.IsPositive() {
		return decimal.Zero
	}
	rate := insurancePremiumRate(price, downPaymentPercent)
	if rate.IsZero() {
		return decimal.Zero
	}
	insured := price.Mul(one.Sub(percent(downPaymentPercent)))
	return money(insured.Mul(percent(rate)))
}

func monthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(twelve).Div(hundred)
}
