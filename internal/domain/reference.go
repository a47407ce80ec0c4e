package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Lifestyle selects the spending baseline used by the retirement and salary calculators
type Lifestyle string

const (
	LifestyleModest      Lifestyle = "modest"
	LifestyleComfortable Lifestyle = "comfortable"
	LifestyleAffluent    Lifestyle = "affluent"
)

// Lifestyles lists the supported lifestyles from lowest to highest spending
func Lifestyles() []Lifestyle {
	return []Lifestyle{LifestyleModest, LifestyleComfortable, LifestyleAffluent}
}

// ParseLifestyle normalizes s and reports whether it names a supported lifestyle.
// An empty string selects the comfortable baseline.
func ParseLifestyle(s string) (Lifestyle, bool) {
	key := NormalizeKey(s)
	if key == "" {
		return LifestyleComfortable, true
	}
	for _, l := range Lifestyles() {
		if string(l) == key {
			return l, true
		}
	}
	return "", false
}

// CityCostRecord holds sample market figures for a single city
type CityCostRecord struct {
	Key             string          `yaml:"key" json:"key"`
	Name            string          `yaml:"name" json:"name"`
	Province        string          `yaml:"province" json:"province"`
	AvgRent         decimal.Decimal `yaml:"avg_rent" json:"avg_rent"`             // Monthly, one-bedroom
	AvgHomePrice    decimal.Decimal `yaml:"avg_home_price" json:"avg_home_price"` // Benchmark price
	CostMultiplier  decimal.Decimal `yaml:"cost_multiplier" json:"cost_multiplier"`
	PropertyTaxRate decimal.Decimal `yaml:"property_tax_rate" json:"property_tax_rate"` // Percent of assessed value per year
	PostalPrefixes  []string        `yaml:"postal_prefixes,omitempty" json:"postal_prefixes,omitempty"`
	Source          string          `yaml:"source,omitempty" json:"source,omitempty"`
}

// ProvinceRecord holds tax, utility and retirement cost figures for a province or territory
type ProvinceRecord struct {
	Code             string                        `yaml:"code" json:"code"`
	Name             string                        `yaml:"name" json:"name"`
	EffectiveTaxRate decimal.Decimal               `yaml:"effective_tax_rate" json:"effective_tax_rate"` // Percent, combined federal and provincial
	ElectricityRate  decimal.Decimal               `yaml:"electricity_rate" json:"electricity_rate"`     // Dollars per kWh
	GasRate          decimal.Decimal               `yaml:"gas_rate" json:"gas_rate"`                     // Dollars per cubic metre
	WaterMonthly     decimal.Decimal               `yaml:"water_monthly" json:"water_monthly"`
	InternetMonthly  decimal.Decimal               `yaml:"internet_monthly" json:"internet_monthly"`
	HeatingMonthly   decimal.Decimal               `yaml:"heating_monthly" json:"heating_monthly"`
	RetirementCost   map[Lifestyle]decimal.Decimal `yaml:"retirement_cost" json:"retirement_cost"` // Annual, in today's dollars
	Source           string                        `yaml:"source,omitempty" json:"source,omitempty"`
}

// LifestyleProfile scales everyday spending for the salary calculator
type LifestyleProfile struct {
	RentFactor  decimal.Decimal `yaml:"rent_factor" json:"rent_factor"`
	BaseMonthly decimal.Decimal `yaml:"base_monthly" json:"base_monthly"` // National average living costs excluding housing
}

// GovernmentPensions holds the public pension estimates used as a retirement cost offset
type GovernmentPensions struct {
	CPPAnnual decimal.Decimal `yaml:"cpp_annual" json:"cpp_annual"`
	OASAnnual decimal.Decimal `yaml:"oas_annual" json:"oas_annual"`
}

// Total returns the combined annual pension estimate
func (g GovernmentPensions) Total() decimal.Decimal {
	return g.CPPAnnual.Add(g.OASAnnual)
}

// NormalizeKey trims s, collapses inner whitespace and folds case so lookups
// are insensitive to how a user typed a city or province.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
