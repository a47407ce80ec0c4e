package domain

import (
	"github.com/shopspring/decimal"
)

// DefaultLifeExpectancy is the terminal age assumed when inputs leave it unset
const DefaultLifeExpectancy = 90

// RetirementInputs describe a saver's situation today
type RetirementInputs struct {
	CurrentAge                int             `yaml:"current_age" json:"current_age"`
	RetirementAge             int             `yaml:"retirement_age" json:"retirement_age"`
	CurrentSavings            decimal.Decimal `yaml:"current_savings" json:"current_savings"`
	MonthlyContribution       decimal.Decimal `yaml:"monthly_contribution" json:"monthly_contribution"`
	ExpectedReturnPercent     decimal.Decimal `yaml:"expected_return_percent" json:"expected_return_percent"`
	InflationPercent          decimal.Decimal `yaml:"inflation_percent" json:"inflation_percent"`
	Province                  string          `yaml:"province" json:"province"`
	Lifestyle                 Lifestyle       `yaml:"lifestyle,omitempty" json:"lifestyle,omitempty"`
	LifeExpectancy            int             `yaml:"life_expectancy,omitempty" json:"life_expectancy,omitempty"`
	IncludeGovernmentPensions bool            `yaml:"include_government_pensions,omitempty" json:"include_government_pensions,omitempty"`
}

// TerminalAge returns the life expectancy, defaulting when unset
func (r RetirementInputs) TerminalAge() int {
	if r.LifeExpectancy <= 0 {
		return DefaultLifeExpectancy
	}
	return r.LifeExpectancy
}

// RetirementStatus labels a projection
type RetirementStatus string

const (
	StatusFunded    RetirementStatus = "funded"
	StatusShortfall RetirementStatus = "shortfall"
)

// RetirementYear is one row of the accumulation timeline
type RetirementYear struct {
	Age     int             `json:"age"`
	Balance decimal.Decimal `json:"balance"`
}

// RetirementResult is the output of a retirement projection
type RetirementResult struct {
	YearsToRetirement         int              `json:"years_to_retirement"`
	YearsInRetirement         int              `json:"years_in_retirement"`
	FutureValueSavings        decimal.Decimal  `json:"future_value_savings"`
	FutureValueContributions  decimal.Decimal  `json:"future_value_contributions"`
	ProjectedSavings          decimal.Decimal  `json:"projected_savings"`
	AnnualCostAtRetirement    decimal.Decimal  `json:"annual_cost_at_retirement"`
	GovernmentPensionOffset   decimal.Decimal  `json:"government_pension_offset"`
	RealReturnPercent         decimal.Decimal  `json:"real_return_percent"`
	RequiredCorpus            decimal.Decimal  `json:"required_corpus"`
	Gap                       decimal.Decimal  `json:"gap"`
	RecommendedMonthlySavings decimal.Decimal  `json:"recommended_monthly_savings"`
	Status                    RetirementStatus `json:"status"`
	Timeline                  []RetirementYear `json:"timeline,omitempty"`
}

// Funded reports whether projected savings cover the required corpus
func (r *RetirementResult) Funded() bool {
	return r.Status == StatusFunded
}
