package domain

import (
	"github.com/shopspring/decimal"
)

// SalaryInput describes the living situation a required salary is computed for
type SalaryInput struct {
	City               string           `yaml:"city" json:"city"`
	Lifestyle          Lifestyle        `yaml:"lifestyle,omitempty" json:"lifestyle,omitempty"`
	MonthlyRent        *decimal.Decimal `yaml:"monthly_rent,omitempty" json:"monthly_rent,omitempty"` // Overrides the city average
	SavingsRatePercent decimal.Decimal  `yaml:"savings_rate_percent,omitempty" json:"savings_rate_percent,omitempty"`
}

// SalaryResult is the output of the salary requirement calculator
type SalaryResult struct {
	City             string          `json:"city"`
	Province         string          `json:"province"`
	Lifestyle        Lifestyle       `json:"lifestyle"`
	MonthlyRent      decimal.Decimal `json:"monthly_rent"`
	MonthlyUtilities decimal.Decimal `json:"monthly_utilities"`
	MonthlyLiving    decimal.Decimal `json:"monthly_living"`
	MonthlyBudget    decimal.Decimal `json:"monthly_budget"`
	NetAnnual        decimal.Decimal `json:"net_annual"`
	GrossAnnual      decimal.Decimal `json:"gross_annual"`
	HourlyEquivalent decimal.Decimal `json:"hourly_equivalent"`
	EffectiveTaxRate decimal.Decimal `json:"effective_tax_rate"`
}

// RelocationResult compares purchasing power between two cities
type RelocationResult struct {
	FromCity         string          `json:"from_city"`
	ToCity           string          `json:"to_city"`
	Salary           decimal.Decimal `json:"salary"`
	EquivalentSalary decimal.Decimal `json:"equivalent_salary"`
	Difference       decimal.Decimal `json:"difference"`
	PercentChange    decimal.Decimal `json:"percent_change"`
}

// UtilityUsage is a household's monthly consumption
type UtilityUsage struct {
	Province        string          `yaml:"province" json:"province"`
	ElectricityKWh  decimal.Decimal `yaml:"electricity_kwh" json:"electricity_kwh"`
	GasCubicMetres  decimal.Decimal `yaml:"gas_cubic_metres" json:"gas_cubic_metres"`
	IncludeWater    bool            `yaml:"include_water" json:"include_water"`
	IncludeInternet bool            `yaml:"include_internet" json:"include_internet"`
}

// UtilityBreakdown is the monthly utility bill for one province
type UtilityBreakdown struct {
	Province    string          `json:"province"`
	Electricity decimal.Decimal `json:"electricity"`
	Gas         decimal.Decimal `json:"gas"`
	Water       decimal.Decimal `json:"water"`
	Internet    decimal.Decimal `json:"internet"`
	Total       decimal.Decimal `json:"total"`
}
