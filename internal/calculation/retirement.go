package calculation

import (
	"fmt"

	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/shopspring/decimal"
)

// Plausibility bounds for retirement inputs
const (
	MinCurrentAge     = 18
	MaxCurrentAge     = 80
	MaxLifeExpectancy = 110
)

var (
	minReturnPercent    = decimal.NewFromInt(1)
	maxReturnPercent    = decimal.NewFromInt(15)
	maxInflationPercent = decimal.NewFromInt(10)
)

// ValidateRetirementInputs checks inputs before any projection is computed
func ValidateRetirementInputs(in domain.RetirementInputs) domain.Validation {
	switch {
	case in.CurrentAge < MinCurrentAge || in.CurrentAge > MaxCurrentAge:
		return domain.Invalid("current_age", fmt.Sprintf("must be between %d and %d", MinCurrentAge, MaxCurrentAge))
	case in.RetirementAge <= in.CurrentAge:
		return domain.Invalid("retirement_age", "must be greater than current age")
	case in.LifeExpectancy < 0 || in.LifeExpectancy > MaxLifeExpectancy:
		return domain.Invalid("life_expectancy", fmt.Sprintf("must not exceed %d", MaxLifeExpectancy))
	case in.RetirementAge >= in.TerminalAge():
		return domain.Invalid("retirement_age", fmt.Sprintf("must be less than life expectancy of %d", in.TerminalAge()))
	case in.ExpectedReturnPercent.LessThan(minReturnPercent) || in.ExpectedReturnPercent.GreaterThan(maxReturnPercent):
		return domain.Invalid("expected_return_percent", "must be between 1% and 15%")
	case in.InflationPercent.IsNegative() || in.InflationPercent.GreaterThan(maxInflationPercent):
		return domain.Invalid("inflation_percent", "must be between 0% and 10%")
	case in.CurrentSavings.IsNegative():
		return domain.Invalid("current_savings", "must not be negative")
	case in.MonthlyContribution.IsNegative():
		return domain.Invalid("monthly_contribution", "must not be negative")
	case in.Province == "":
		return domain.Invalid("province", "is required")
	}
	if _, ok := domain.ParseLifestyle(string(in.Lifestyle)); !ok {
		return domain.Invalid("lifestyle", "must be modest, comfortable or affluent")
	}
	return domain.Valid()
}

// ProjectRetirement projects savings to the retirement age and compares them
// with the corpus needed to fund the province's lifestyle baseline until the
// terminal age.
func (e *Engine) ProjectRetirement(in domain.RetirementInputs) (*domain.RetirementResult, error) {
	if err := ValidateRetirementInputs(in).Err(); err != nil {
		return nil, err
	}
	province, ok := e.Tables.Province(in.Province)
	if !ok {
		return nil, fmt.Errorf("province %q: %w", in.Province, domain.ErrInsufficientData)
	}
	lifestyle, _ := domain.ParseLifestyle(string(in.Lifestyle))
	baseline, ok := province.RetirementCost[lifestyle]
	if !ok {
		return nil, fmt.Errorf("%s baseline for %s: %w", lifestyle, province.Code, domain.ErrInsufficientData)
	}

	years := in.RetirementAge - in.CurrentAge
	annualReturn := percent(in.ExpectedReturnPercent)
	inflation := percent(in.InflationPercent)
	r := annualReturn.Div(twelve)
	months := years * 12

	result := &domain.RetirementResult{
		YearsToRetirement: years,
		YearsInRetirement: in.TerminalAge() - in.RetirementAge,
	}

	result.FutureValueSavings = money(in.CurrentSavings.Mul(pow(one.Add(annualReturn), float64(years))))
	result.FutureValueContributions = money(in.MonthlyContribution.Mul(annuityFactor(r, months)))
	result.ProjectedSavings = result.FutureValueSavings.Add(result.FutureValueContributions)

	inflationFactor := pow(one.Add(inflation), float64(years))
	cost := baseline.Mul(inflationFactor)
	if in.IncludeGovernmentPensions {
		result.GovernmentPensionOffset = money(minDecimal(e.Tables.Pensions().Total().Mul(inflationFactor), cost))
		cost = cost.Sub(result.GovernmentPensionOffset)
	}
	result.AnnualCostAtRetirement = money(maxDecimal(cost, decimal.Zero))

	realRate := annualReturn.Sub(inflation)
	result.RealReturnPercent = realRate.Mul(hundred)
	result.RequiredCorpus = money(presentValueAnnuity(result.AnnualCostAtRetirement, realRate, result.YearsInRetirement))

	result.Gap = result.RequiredCorpus.Sub(result.ProjectedSavings)
	if !result.Gap.IsPositive() {
		result.Status = domain.StatusFunded
		result.RecommendedMonthlySavings = decimal.Zero
	} else {
		result.Status = domain.StatusShortfall
		result.RecommendedMonthlySavings = money(result.Gap.Div(annuityDueFactor(r, months)))
	}

	result.Timeline = accumulationTimeline(in, annualReturn, r)

	e.logger().Debugf("retirement %d->%d projected=%s required=%s status=%s",
		in.CurrentAge, in.RetirementAge, result.ProjectedSavings.StringFixed(2),
		result.RequiredCorpus.StringFixed(2), result.Status)
	return result, nil
}

// EarliestFundedAge searches retirement ages upward from the age after
// CurrentAge and returns the first one whose projection is funded.
// ok is false when no age before the terminal age is funded.
func (e *Engine) EarliestFundedAge(in domain.RetirementInputs) (age int, result *domain.RetirementResult, ok bool, err error) {
	trial := in
	trial.RetirementAge = in.CurrentAge + 1
	if err := ValidateRetirementInputs(trial).Err(); err != nil {
		return 0, nil, false, err
	}

	for candidate := in.CurrentAge + 1; candidate < in.TerminalAge(); candidate++ {
		trial.RetirementAge = candidate
		res, err := e.ProjectRetirement(trial)
		if err != nil {
			return 0, nil, false, err
		}
		if res.Funded() {
			return candidate, res, true, nil
		}
	}
	return 0, nil, false, nil
}

// annuityFactor is the future value of 1 paid at the end of each of n periods
func annuityFactor(r decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	if nearZero(r) {
		return decimal.NewFromInt(int64(n))
	}
	return pow(one.Add(r), float64(n)).Sub(one).Div(r)
}

// annuityDueFactor is annuityFactor with payments at the start of each period
func annuityDueFactor(r decimal.Decimal, n int) decimal.Decimal {
	if nearZero(r) {
		return decimal.NewFromInt(int64(n))
	}
	return annuityFactor(r, n).Mul(one.Add(r))
}

// presentValueAnnuity discounts n annual payments at rate. A near-zero real
// rate degenerates to payment times n.
func presentValueAnnuity(payment, rate decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	if nearZero(rate) {
		return payment.Mul(decimal.NewFromInt(int64(n)))
	}
	discount := pow(one.Add(rate), -float64(n))
	return payment.Mul(one.Sub(discount)).Div(rate)
}

func accumulationTimeline(in domain.RetirementInputs, annualReturn, monthly decimal.Decimal) []domain.RetirementYear {
	years := in.RetirementAge - in.CurrentAge
	timeline := make([]domain.RetirementYear, 0, years+1)
	for y := 0; y <= years; y++ {
		savings := in.CurrentSavings.Mul(pow(one.Add(annualReturn), float64(y)))
		contributions := in.MonthlyContribution.Mul(annuityFactor(monthly, y*12))
		timeline = append(timeline, domain.RetirementYear{
			Age:     in.CurrentAge + y,
			Balance: money(savings).Add(money(contributions)),
		})
	}
	return timeline
}
