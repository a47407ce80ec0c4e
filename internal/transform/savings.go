package transform

import (
	"fmt"

	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/shopspring/decimal"
)

// AdjustContribution adds Delta to the monthly contribution. Negative deltas save less.
type AdjustContribution struct {
	Delta decimal.Decimal
}

func (ac *AdjustContribution) Name() string {
	return "adjust_contribution"
}

func (ac *AdjustContribution) Description() string {
	if ac.Delta.IsNegative() {
		return fmt.Sprintf("Save $%s less per month", ac.Delta.Neg().StringFixed(2))
	}
	return fmt.Sprintf("Save $%s more per month", ac.Delta.StringFixed(2))
}

func (ac *AdjustContribution) Validate(base *domain.RetirementInputs) error {
	if base == nil {
		return NewTransformError(ac.Name(), "validate", "base inputs cannot be nil", nil)
	}
	if base.MonthlyContribution.Add(ac.Delta).IsNegative() {
		return NewTransformError(ac.Name(), "validate",
			fmt.Sprintf("contribution of %s would become negative", base.MonthlyContribution.StringFixed(2)), nil)
	}
	return nil
}

func (ac *AdjustContribution) Apply(base *domain.RetirementInputs) (*domain.RetirementInputs, error) {
	modified := clone(base)
	modified.MonthlyContribution = base.MonthlyContribution.Add(ac.Delta)
	return modified, nil
}

// AdjustReturn replaces the expected annual return
type AdjustReturn struct {
	ReturnPercent decimal.Decimal
}

func (ar *AdjustReturn) Name() string {
	return "adjust_return"
}

func (ar *AdjustReturn) Description() string {
	return fmt.Sprintf("Assume %s%% annual returns", ar.ReturnPercent.StringFixed(1))
}

func (ar *AdjustReturn) Validate(base *domain.RetirementInputs) error {
	if base == nil {
		return NewTransformError(ar.Name(), "validate", "base inputs cannot be nil", nil)
	}
	if ar.ReturnPercent.LessThan(decimal.NewFromInt(1)) || ar.ReturnPercent.GreaterThan(decimal.NewFromInt(15)) {
		return NewTransformError(ar.Name(), "validate", fmt.Sprintf("return must be between 1%% and 15%%, got %s", ar.ReturnPercent), nil)
	}
	return nil
}

func (ar *AdjustReturn) Apply(base *domain.RetirementInputs) (*domain.RetirementInputs, error) {
	modified := clone(base)
	modified.ExpectedReturnPercent = ar.ReturnPercent
	return modified, nil
}

// AdjustInflation replaces the inflation assumption
type AdjustInflation struct {
	InflationPercent decimal.Decimal
}

func (ai *AdjustInflation) Name() string {
	return "adjust_inflation"
}

func (ai *AdjustInflation) Description() string {
	return fmt.Sprintf("Assume %s%% inflation", ai.InflationPercent.StringFixed(1))
}

func (ai *AdjustInflation) Validate(base *domain.RetirementInputs) error {
	if base == nil {
		return NewTransformError(ai.Name(), "validate", "base inputs cannot be nil", nil)
	}
	if ai.InflationPercent.IsNegative() || ai.InflationPercent.GreaterThan(decimal.NewFromInt(10)) {
		return NewTransformError(ai.Name(), "validate", fmt.Sprintf("inflation must be between 0%% and 10%%, got %s", ai.InflationPercent), nil)
	}
	return nil
}

func (ai *AdjustInflation) Apply(base *domain.RetirementInputs) (*domain.RetirementInputs, error) {
	modified := clone(base)
	modified.InflationPercent = ai.InflationPercent
	return modified, nil
}
