package domain

import (
	"github.com/shopspring/decimal"
)

// Jurisdiction identifies the level of government paying a benefit
type Jurisdiction string

const (
	JurisdictionFederal    Jurisdiction = "federal"
	JurisdictionProvincial Jurisdiction = "provincial"
)

// Frequency is how often a benefit amount is paid
type Frequency string

const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyAnnual  Frequency = "annual"
	FrequencyOneTime Frequency = "one_time"
)

// Criteria are the eligibility thresholds of a benefit. A nil or empty field is not restrictive.
type Criteria struct {
	MinAge             *int             `yaml:"min_age,omitempty" json:"min_age,omitempty"`
	MaxAge             *int             `yaml:"max_age,omitempty" json:"max_age,omitempty"`
	MaxIncome          *decimal.Decimal `yaml:"max_income,omitempty" json:"max_income,omitempty"`
	Provinces          []string         `yaml:"provinces,omitempty" json:"provinces,omitempty"`
	RequiresChildren   *bool            `yaml:"requires_children,omitempty" json:"requires_children,omitempty"`
	RequiresStudent    *bool            `yaml:"requires_student,omitempty" json:"requires_student,omitempty"`
	RequiresDisability *bool            `yaml:"requires_disability,omitempty" json:"requires_disability,omitempty"`
	RequiresSenior     *bool            `yaml:"requires_senior,omitempty" json:"requires_senior,omitempty"`
}

// BenefitRecord is one entry of the benefits catalogue
type BenefitRecord struct {
	ID           string          `yaml:"id" json:"id"`
	Name         string          `yaml:"name" json:"name"`
	Jurisdiction Jurisdiction    `yaml:"jurisdiction" json:"jurisdiction"`
	MaxAmount    decimal.Decimal `yaml:"max_amount" json:"max_amount"`
	Frequency    Frequency       `yaml:"frequency" json:"frequency"`
	Description  string          `yaml:"description,omitempty" json:"description,omitempty"`
	Criteria     Criteria        `yaml:"criteria" json:"criteria"`
}

// AnnualValue normalizes MaxAmount to a yearly figure
func (b BenefitRecord) AnnualValue() decimal.Decimal {
	if b.Frequency == FrequencyMonthly {
		return b.MaxAmount.Mul(decimal.NewFromInt(12))
	}
	return b.MaxAmount
}

// UserProfile is the subset of a stored profile the calculators need
type UserProfile struct {
	ID            string          `yaml:"id,omitempty" json:"id,omitempty"`
	Age           int             `yaml:"age" json:"age"`
	AnnualIncome  decimal.Decimal `yaml:"annual_income" json:"annual_income"`
	Province      string          `yaml:"province" json:"province"`
	HouseholdSize int             `yaml:"household_size,omitempty" json:"household_size,omitempty"`
	HasChildren   bool            `yaml:"has_children,omitempty" json:"has_children,omitempty"`
	IsStudent     bool            `yaml:"is_student,omitempty" json:"is_student,omitempty"`
	IsDisabled    bool            `yaml:"is_disabled,omitempty" json:"is_disabled,omitempty"`
	IsSenior      bool            `yaml:"is_senior,omitempty" json:"is_senior,omitempty"`
}

// EligibilityResult is the filtered benefit list with its yearly total
type EligibilityResult struct {
	Eligible         []BenefitRecord `json:"eligible"`
	TotalAnnualValue decimal.Decimal `json:"total_annual_value"`
}
