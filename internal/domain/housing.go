package domain

import (
	"github.com/shopspring/decimal"
)

// FinancialInput is the housing analyzer input captured from the user
type FinancialInput struct {
	AnnualIncome        decimal.Decimal  `yaml:"annual_income" json:"annual_income"`
	MonthlyDebts        decimal.Decimal  `yaml:"monthly_debts" json:"monthly_debts"`
	DownPaymentPercent  decimal.Decimal  `yaml:"down_payment_percent" json:"down_payment_percent"`
	City                string           `yaml:"city,omitempty" json:"city,omitempty"`
	PostalCode          string           `yaml:"postal_code,omitempty" json:"postal_code,omitempty"`
	HomePrice           decimal.Decimal  `yaml:"home_price,omitempty" json:"home_price,omitempty"` // Zero uses the city benchmark
	MortgageRatePercent *decimal.Decimal `yaml:"mortgage_rate_percent,omitempty" json:"mortgage_rate_percent,omitempty"`
	AmortizationYears   int              `yaml:"amortization_years,omitempty" json:"amortization_years,omitempty"`
}

// Classification labels a housing result
type Classification string

const (
	ClassAffordable       Classification = "affordable"
	ClassStretch          Classification = "stretch"
	ClassUnaffordable     Classification = "unaffordable"
	ClassInsufficientData Classification = "insufficient_data"
)

// AffordabilityRatio is a cost expressed as a percentage of gross monthly income
type AffordabilityRatio struct {
	Ratio            decimal.Decimal `json:"ratio"`
	Threshold        decimal.Decimal `json:"threshold"`
	WithinThreshold  bool            `json:"within_threshold"`
	InsufficientData bool            `json:"insufficient_data,omitempty"`
}

// Thresholds are the percentage-of-income policy limits
type Thresholds struct {
	GDS        decimal.Decimal `yaml:"gds" json:"gds"`
	TDS        decimal.Decimal `yaml:"tds" json:"tds"`
	Rent       decimal.Decimal `yaml:"rent" json:"rent"`
	StretchGDS decimal.Decimal `yaml:"stretch_gds" json:"stretch_gds"`
	StretchTDS decimal.Decimal `yaml:"stretch_tds" json:"stretch_tds"`
}

// DefaultThresholds returns the conventional Canadian underwriting limits
func DefaultThresholds() Thresholds {
	return Thresholds{
		GDS:        decimal.NewFromInt(32),
		TDS:        decimal.NewFromInt(40),
		Rent:       decimal.NewFromInt(30),
		StretchGDS: decimal.NewFromInt(39),
		StretchTDS: decimal.NewFromInt(44),
	}
}

// CalculationResult is the housing analyzer output
type CalculationResult struct {
	City               string             `json:"city"`
	Province           string             `json:"province"`
	HomePrice          decimal.Decimal    `json:"home_price"`
	DownPayment        decimal.Decimal    `json:"down_payment"`
	MinimumDownPayment decimal.Decimal    `json:"minimum_down_payment"`
	InsurancePremium   decimal.Decimal    `json:"insurance_premium"`
	Principal          decimal.Decimal    `json:"principal"`
	MortgageRate       decimal.Decimal    `json:"mortgage_rate"`
	AmortizationYears  int                `json:"amortization_years"`
	MonthlyPayment     decimal.Decimal    `json:"monthly_payment"`
	MonthlyPropertyTax decimal.Decimal    `json:"monthly_property_tax"`
	MonthlyHeating     decimal.Decimal    `json:"monthly_heating"`
	MonthlyHousingCost decimal.Decimal    `json:"monthly_housing_cost"`
	GDS                AffordabilityRatio `json:"gds"`
	TDS                AffordabilityRatio `json:"tds"`
	Rent               AffordabilityRatio `json:"rent"`
	MaxAffordablePrice decimal.Decimal    `json:"max_affordable_price"`
	RecommendedIncome  decimal.Decimal    `json:"recommended_income"`
	Gap                decimal.Decimal    `json:"gap"`
	Classification     Classification     `json:"classification"`
	Warnings           []string           `json:"warnings,omitempty"`
}

// AmortizationRow is one month of a mortgage schedule
type AmortizationRow struct {
	Month     int             `json:"month"`
	Payment   decimal.Decimal `json:"payment"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Balance   decimal.Decimal `json:"balance"`
}

// MortgageSummary bundles a payment calculation with its schedule
type MortgageSummary struct {
	Principal      decimal.Decimal   `json:"principal"`
	RatePercent    decimal.Decimal   `json:"rate_percent"`
	Years          int               `json:"years"`
	MonthlyPayment decimal.Decimal   `json:"monthly_payment"`
	TotalInterest  decimal.Decimal   `json:"total_interest"`
	Schedule       []AmortizationRow `json:"schedule,omitempty"`
}

// LiveRates are optional market overrides supplied by a rate source
type LiveRates struct {
	MortgageRatePercent   decimal.Decimal `json:"mortgage_rate_percent"`
	InflationPercent      decimal.Decimal `json:"inflation_percent"`
	ExpectedReturnPercent decimal.Decimal `json:"expected_return_percent"`
	Source                string          `json:"source"`
}
