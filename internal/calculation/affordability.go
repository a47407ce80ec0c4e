package calculation

import (
	"fmt"

	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/shopspring/decimal"
)

// ClassifyAffordability expresses cost as a percentage of gross monthly income and
// tests it against thresholdPercent. A ratio equal to the threshold is within it.
// Non-positive income yields an InsufficientData result with a zero ratio.
func ClassifyAffordability(cost, grossMonthlyIncome, thresholdPercent decimal.Decimal) domain.AffordabilityRatio {
	result := domain.AffordabilityRatio{Threshold: thresholdPercent}
	if !grossMonthlyIncome.IsPositive() {
		result.InsufficientData = true
		return result
	}
	result.Ratio = cost.Div(grossMonthlyIncome).Mul(hundred)
	result.WithinThreshold = result.Ratio.LessThanOrEqual(thresholdPercent)
	return result
}

// ValidateFinancialInput checks the housing analyzer input field by field
func ValidateFinancialInput(in domain.FinancialInput) domain.Validation {
	switch {
	case in.AnnualIncome.IsNegative():
		return domain.Invalid("annual_income", "must not be negative")
	case in.MonthlyDebts.IsNegative():
		return domain.Invalid("monthly_debts", "must not be negative")
	case in.DownPaymentPercent.IsNegative() || in.DownPaymentPercent.GreaterThan(hundred):
		return domain.Invalid("down_payment_percent", "must be between 0 and 100")
	case in.HomePrice.IsNegative():
		return domain.Invalid("home_price", "must not be negative")
	case in.AmortizationYears < 0 || in.AmortizationYears > 30:
		return domain.Invalid("amortization_years", "must be between 1 and 30")
	case in.MortgageRatePercent != nil && (in.MortgageRatePercent.IsNegative() || in.MortgageRatePercent.GreaterThan(decimal.NewFromInt(25))):
		return domain.Invalid("mortgage_rate_percent", "must be between 0 and 25")
	}
	return domain.Valid()
}

// AnalyzeHousing runs the full purchase analysis for a city. An unknown city or
// postal code returns an error wrapping domain.ErrInsufficientData.
func (e *Engine) AnalyzeHousing(in domain.FinancialInput) (*domain.CalculationResult, error) {
	if err := ValidateFinancialInput(in).Err(); err != nil {
		return nil, err
	}

	city, ok := e.lookupCity(in)
	if !ok {
		e.logger().Debugf("housing lookup missed city=%q postal=%q", in.City, in.PostalCode)
		return nil, fmt.Errorf("city %q: %w", firstNonEmpty(in.PostalCode, in.City), domain.ErrInsufficientData)
	}
	province, ok := e.Tables.Province(city.Province)
	if !ok {
		return nil, fmt.Errorf("province %q: %w", city.Province, domain.ErrInsufficientData)
	}

	price := in.HomePrice
	if price.IsZero() {
		price = city.AvgHomePrice
	}
	rate := e.Assumptions.MortgageRatePercent
	if in.MortgageRatePercent != nil {
		rate = *in.MortgageRatePercent
	}
	years := in.AmortizationYears
	if years == 0 {
		years = e.Assumptions.AmortizationYears
	}

	result := &domain.CalculationResult{
		City:               city.Name,
		Province:           province.Code,
		HomePrice:          price,
		MortgageRate:       rate,
		AmortizationYears:  years,
		DownPayment:        money(price.Mul(percent(in.DownPaymentPercent))),
		MinimumDownPayment: MinimumDownPayment(price),
		InsurancePremium:   MortgageInsurancePremium(price, in.DownPaymentPercent),
		MonthlyHeating:     province.HeatingMonthly,
	}
	if result.DownPayment.LessThan(result.MinimumDownPayment) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"down payment of $%s is below the minimum of $%s for this price",
			result.DownPayment.StringFixed(2), result.MinimumDownPayment.StringFixed(2)))
	}

	result.Principal = price.Sub(result.DownPayment).Add(result.InsurancePremium)
	result.MonthlyPayment = MonthlyPayment(result.Principal, rate, years)
	result.MonthlyPropertyTax = money(price.Mul(percent(city.PropertyTaxRate)).Div(twelve))
	result.MonthlyHousingCost = result.MonthlyPayment.Add(result.MonthlyPropertyTax).Add(result.MonthlyHeating)

	grossMonthly := in.AnnualIncome.Div(twelve)
	th := e.Thresholds
	result.GDS = ClassifyAffordability(result.MonthlyHousingCost, grossMonthly, th.GDS)
	result.TDS = ClassifyAffordability(result.MonthlyHousingCost.Add(in.MonthlyDebts), grossMonthly, th.TDS)
	result.Rent = ClassifyAffordability(city.AvgRent, grossMonthly, th.Rent)
	result.Classification = e.classify(result.GDS, result.TDS)

	result.MaxAffordablePrice = e.maxAffordablePrice(grossMonthly, in, city, province, rate, years)
	result.Gap = price.Sub(result.MaxAffordablePrice)
	result.RecommendedIncome = e.recommendedIncome(result.MonthlyHousingCost, in.MonthlyDebts)

	e.logger().Debugf("housing %s price=%s gds=%s tds=%s class=%s",
		city.Key, price.StringFixed(0), result.GDS.Ratio.StringFixed(2), result.TDS.Ratio.StringFixed(2), result.Classification)
	return result, nil
}

func (e *Engine) lookupCity(in domain.FinancialInput) (domain.CityCostRecord, bool) {
	if in.PostalCode != "" {
		if city, ok := e.Tables.CityByPostalCode(in.PostalCode); ok {
			return city, true
		}
	}
	if in.City == "" {
		return domain.CityCostRecord{}, false
	}
	return e.Tables.City(in.City)
}

func (e *Engine) classify(gds, tds domain.AffordabilityRatio) domain.Classification {
	if gds.InsufficientData || tds.InsufficientData {
		return domain.ClassInsufficientData
	}
	if gds.WithinThreshold && tds.WithinThreshold {
		return domain.ClassAffordable
	}
	if gds.Ratio.LessThanOrEqual(e.Thresholds.StretchGDS) && tds.Ratio.LessThanOrEqual(e.Thresholds.StretchTDS) {
		return domain.ClassStretch
	}
	return domain.ClassUnaffordable
}

// maxAffordablePrice solves for the price whose mortgage, property tax and
// heating exactly meet the tighter of the GDS and TDS limits.
func (e *Engine) maxAffordablePrice(grossMonthly decimal.Decimal, in domain.FinancialInput,
	city domain.CityCostRecord, province domain.ProvinceRecord, rate decimal.Decimal, years int) decimal.Decimal {
	if !grossMonthly.IsPositive() {
		return decimal.Zero
	}
	gdsBudget := grossMonthly.Mul(percent(e.Thresholds.GDS))
	tdsBudget := grossMonthly.Mul(percent(e.Thresholds.TDS)).Sub(in.MonthlyDebts)
	budget := minDecimal(gdsBudget, tdsBudget).Sub(province.HeatingMonthly)
	if !budget.IsPositive() {
		return decimal.Zero
	}

	// Below the insured ceiling the premium rate depends only on the down
	// payment share, so on either side of it the principal is proportional to price.
	down := percent(in.DownPaymentPercent)
	solve := func(premiumPercent decimal.Decimal) decimal.Decimal {
		principalPerDollar := one.Sub(down).Mul(one.Add(percent(premiumPercent)))
		costPerDollar := principalPerDollar.Mul(paymentFactor(rate, years)).
			Add(percent(city.PropertyTaxRate).Div(twelve))
		if !costPerDollar.IsPositive() {
			return decimal.Zero
		}
		return money(budget.Div(costPerDollar))
	}

	// Prices at or above the ceiling cannot be insured and carry no premium
	if uninsured := solve(decimal.Zero); uninsured.GreaterThanOrEqual(insuredPriceCeiling) {
		return uninsured
	}
	return solve(insurancePremiumRate(decimal.Zero, in.DownPaymentPercent))
}

// recommendedIncome is the annual gross income that brings both ratios within their thresholds
func (e *Engine) recommendedIncome(housing, debts decimal.Decimal) decimal.Decimal {
	if !e.Thresholds.GDS.IsPositive() || !e.Thresholds.TDS.IsPositive() {
		return decimal.Zero
	}
	byGDS := housing.Div(percent(e.Thresholds.GDS))
	byTDS := housing.Add(debts).Div(percent(e.Thresholds.TDS))
	return money(maxDecimal(byGDS, byTDS).Mul(twelve))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
