package calculation

import (
	"fmt"

	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hoursPerYear      = decimal.NewFromInt(2080)
	maxSavingsPercent = decimal.NewFromInt(90)
)

// RequiredSalary computes the gross annual salary needed to live in a city at a lifestyle
func (e *Engine) RequiredSalary(in domain.SalaryInput) (*domain.SalaryResult, error) {
	lifestyle, ok := domain.ParseLifestyle(string(in.Lifestyle))
	if !ok {
		return nil, domain.NewValidationError("lifestyle", "must be modest, comfortable or affluent")
	}
	if in.SavingsRatePercent.IsNegative() || in.SavingsRatePercent.GreaterThanOrEqual(maxSavingsPercent) {
		return nil, domain.NewValidationError("savings_rate_percent", "must be between 0 and 90")
	}
	if in.MonthlyRent != nil && in.MonthlyRent.IsNegative() {
		return nil, domain.NewValidationError("monthly_rent", "must not be negative")
	}

	city, ok := e.Tables.City(in.City)
	if !ok {
		return nil, fmt.Errorf("city %q: %w", in.City, domain.ErrInsufficientData)
	}
	province, ok := e.Tables.Province(city.Province)
	if !ok {
		return nil, fmt.Errorf("province %q: %w", city.Province, domain.ErrInsufficientData)
	}
	profile, ok := e.Tables.Lifestyle(lifestyle)
	if !ok {
		return nil, fmt.Errorf("lifestyle %q: %w", lifestyle, domain.ErrInsufficientData)
	}

	rent := city.AvgRent.Mul(profile.RentFactor)
	if in.MonthlyRent != nil {
		rent = *in.MonthlyRent
	}
	utilities := utilityBreakdown(province, DefaultUtilityUsage(province.Code)).Total
	living := profile.BaseMonthly.Mul(city.CostMultiplier)

	result := &domain.SalaryResult{
		City:             city.Name,
		Province:         province.Code,
		Lifestyle:        lifestyle,
		MonthlyRent:      money(rent),
		MonthlyUtilities: utilities,
		MonthlyLiving:    money(living),
		EffectiveTaxRate: province.EffectiveTaxRate,
	}
	result.MonthlyBudget = result.MonthlyRent.Add(result.MonthlyUtilities).Add(result.MonthlyLiving)

	net := result.MonthlyBudget.Mul(twelve).Div(one.Sub(percent(in.SavingsRatePercent)))
	keep := one.Sub(percent(province.EffectiveTaxRate))
	if !keep.IsPositive() {
		return nil, fmt.Errorf("effective tax rate for %s: %w", province.Code, domain.ErrInsufficientData)
	}
	result.NetAnnual = money(net)
	result.GrossAnnual = money(net.Div(keep))
	result.HourlyEquivalent = money(result.GrossAnnual.Div(hoursPerYear))

	e.logger().Debugf("salary %s %s gross=%s", city.Key, lifestyle, result.GrossAnnual.StringFixed(2))
	return result, nil
}

// EquivalentSalary scales salary by the ratio of destination to origin cost multipliers
func (e *Engine) EquivalentSalary(salary decimal.Decimal, fromCity, toCity string) (*domain.RelocationResult, error) {
	if salary.IsNegative() {
		return nil, domain.NewValidationError("salary", "must not be negative")
	}
	from, ok := e.Tables.City(fromCity)
	if !ok {
		return nil, fmt.Errorf("city %q: %w", fromCity, domain.ErrInsufficientData)
	}
	to, ok := e.Tables.City(toCity)
	if !ok {
		return nil, fmt.Errorf("city %q: %w", toCity, domain.ErrInsufficientData)
	}

	equivalent := money(salary.Mul(to.CostMultiplier).Div(from.CostMultiplier))
	result := &domain.RelocationResult{
		FromCity:         from.Name,
		ToCity:           to.Name,
		Salary:           salary,
		EquivalentSalary: equivalent,
		Difference:       equivalent.Sub(salary),
	}
	if salary.IsPositive() {
		result.PercentChange = result.Difference.Div(salary).Mul(hundred).Round(2)
	}
	return result, nil
}
