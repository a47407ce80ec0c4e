package compare

import (
	"fmt"

	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/shopspring/decimal"
)

// CityResult holds the housing and cost-of-living metrics for one city
type CityResult struct {
	City     string `json:"city"`
	Province string `json:"province"`

	HomePrice          decimal.Decimal       `json:"homePrice"`
	MonthlyPayment     decimal.Decimal       `json:"monthlyPayment"`
	MonthlyHousingCost decimal.Decimal       `json:"monthlyHousingCost"`
	GDS                decimal.Decimal       `json:"gds"`
	TDS                decimal.Decimal       `json:"tds"`
	MaxAffordablePrice decimal.Decimal       `json:"maxAffordablePrice"`
	Classification     domain.Classification `json:"classification"`
	AverageRent        decimal.Decimal       `json:"averageRent"`
	EquivalentSalary   decimal.Decimal       `json:"equivalentSalary"` // income needed here to match the base city

	// Comparison to Base
	HousingCostDiffFromBase decimal.Decimal `json:"housingCostDiffFromBase"`
	SalaryDiffFromBase      decimal.Decimal `json:"salaryDiffFromBase"`
	SalaryPctFromBase       decimal.Decimal `json:"salaryPctFromBase"`

	Housing *domain.CalculationResult `json:"-"`
}

// ComparisonSet represents a base city compared against alternatives
type ComparisonSet struct {
	BaseCity           string          `json:"baseCity"`
	AnnualIncome       decimal.Decimal `json:"annualIncome"`
	DownPaymentPercent decimal.Decimal `json:"downPaymentPercent"`
	BaseResult         *CityResult     `json:"baseResult"`
	AlternativeResults []CityResult    `json:"alternativeResults"`
	Recommendations    []string        `json:"recommendations"`
}

// ScenarioResult holds a retirement projection for one what-if scenario
type ScenarioResult struct {
	ScenarioName string `json:"scenarioName"`
	Description  string `json:"description"`

	RetirementAge             int                     `json:"retirementAge"`
	MonthlyContribution       decimal.Decimal         `json:"monthlyContribution"`
	ProjectedSavings          decimal.Decimal         `json:"projectedSavings"`
	RequiredCorpus            decimal.Decimal         `json:"requiredCorpus"`
	Gap                       decimal.Decimal         `json:"gap"`
	RecommendedMonthlySavings decimal.Decimal         `json:"recommendedMonthlySavings"`
	Status                    domain.RetirementStatus `json:"status"`

	GapDiffFromBase     decimal.Decimal `json:"gapDiffFromBase"`
	SavingsDiffFromBase decimal.Decimal `json:"savingsDiffFromBase"`

	Inputs domain.RetirementInputs  `json:"inputs"`
	Result *domain.RetirementResult `json:"-"`
}

// WhatIfSet represents a base retirement projection compared against template variations
type WhatIfSet struct {
	BaseResult         *ScenarioResult  `json:"baseResult"`
	AlternativeResults []ScenarioResult `json:"alternativeResults"`
	Recommendations    []string         `json:"recommendations"`
}

// MetricsCalculator extracts comparison metrics from calculator results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CityMetrics builds a CityResult from a housing analysis and relocation result
func (mc *MetricsCalculator) CityMetrics(h *domain.CalculationResult, avgRent decimal.Decimal, rel *domain.RelocationResult) CityResult {
	result := CityResult{
		City:               h.City,
		Province:           h.Province,
		HomePrice:          h.HomePrice,
		MonthlyPayment:     h.MonthlyPayment,
		MonthlyHousingCost: h.MonthlyHousingCost,
		GDS:                h.GDS.Ratio,
		TDS:                h.TDS.Ratio,
		MaxAffordablePrice: h.MaxAffordablePrice,
		Classification:     h.Classification,
		AverageRent:        avgRent,
		Housing:            h,
	}
	if rel != nil {
		result.EquivalentSalary = rel.EquivalentSalary
		result.SalaryDiffFromBase = rel.Difference
		result.SalaryPctFromBase = rel.PercentChange
	}
	return result
}

// CityComparison fills the housing delta between a city and the base
func (mc *MetricsCalculator) CityComparison(city, base CityResult) CityResult {
	city.HousingCostDiffFromBase = city.MonthlyHousingCost.Sub(base.MonthlyHousingCost)
	return city
}

// ScenarioMetrics builds a ScenarioResult from a retirement projection
func (mc *MetricsCalculator) ScenarioMetrics(name string, in domain.RetirementInputs, r *domain.RetirementResult) ScenarioResult {
	return ScenarioResult{
		ScenarioName:              name,
		RetirementAge:             in.RetirementAge,
		MonthlyContribution:       in.MonthlyContribution,
		ProjectedSavings:          r.ProjectedSavings,
		RequiredCorpus:            r.RequiredCorpus,
		Gap:                       r.Gap,
		RecommendedMonthlySavings: r.RecommendedMonthlySavings,
		Status:                    r.Status,
		Inputs:                    in,
		Result:                    r,
	}
}

// ScenarioComparison fills the deltas between a scenario and the base
func (mc *MetricsCalculator) ScenarioComparison(scenario, base ScenarioResult) ScenarioResult {
	scenario.GapDiffFromBase = scenario.Gap.Sub(base.Gap)
	scenario.SavingsDiffFromBase = scenario.ProjectedSavings.Sub(base.ProjectedSavings)
	return scenario
}

// GenerateRecommendations creates recommendations based on city comparison results
func GenerateRecommendations(set *ComparisonSet) []string {
	recommendations := []string{}
	if set.BaseResult == nil || len(set.AlternativeResults) == 0 {
		return recommendations
	}
	base := set.BaseResult

	cheapest := base
	for i := range set.AlternativeResults {
		if set.AlternativeResults[i].MonthlyHousingCost.LessThan(cheapest.MonthlyHousingCost) {
			cheapest = &set.AlternativeResults[i]
		}
	}
	if cheapest != base {
		savings := base.MonthlyHousingCost.Sub(cheapest.MonthlyHousingCost)
		recommendations = append(recommendations,
			"Lowest Housing Cost: "+cheapest.City+" saves $"+savings.StringFixed(0)+" per month versus "+base.City)
	}

	lowestSalary := base
	for i := range set.AlternativeResults {
		if set.AlternativeResults[i].SalaryPctFromBase.LessThan(lowestSalary.SalaryPctFromBase) {
			lowestSalary = &set.AlternativeResults[i]
		}
	}
	if lowestSalary != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Cost of Living: %s needs %s%% less income for the same lifestyle",
				lowestSalary.City, lowestSalary.SalaryPctFromBase.Neg().StringFixed(1)))
	}

	if base.Classification != domain.ClassAffordable {
		for _, alt := range set.AlternativeResults {
			if alt.Classification == domain.ClassAffordable {
				recommendations = append(recommendations,
					"Within Limits: "+alt.City+" is affordable at your income while "+base.City+" is "+string(base.Classification))
			}
		}
	}

	return recommendations
}

// GenerateWhatIfRecommendations creates recommendations based on what-if results
func GenerateWhatIfRecommendations(set *WhatIfSet) []string {
	recommendations := []string{}
	if set.BaseResult == nil || len(set.AlternativeResults) == 0 {
		return recommendations
	}

	best := set.BaseResult
	for i := range set.AlternativeResults {
		if set.AlternativeResults[i].Gap.LessThan(best.Gap) {
			best = &set.AlternativeResults[i]
		}
	}
	if best != set.BaseResult {
		closed := set.BaseResult.Gap.Sub(best.Gap)
		recommendations = append(recommendations,
			"Biggest Improvement: "+best.ScenarioName+" narrows the gap by $"+closed.StringFixed(0))
	}

	if set.BaseResult.Status != domain.StatusFunded {
		for _, alt := range set.AlternativeResults {
			if alt.Status == domain.StatusFunded {
				recommendations = append(recommendations, "Fully Funded: "+alt.ScenarioName+" ("+alt.Description+")")
			}
		}
	}

	return recommendations
}
