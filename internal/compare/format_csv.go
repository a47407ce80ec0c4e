package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for a city comparison
func (cf *CSVFormatter) Format(set *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"City",
		"Type",
		"Province",
		"Home Price",
		"Monthly Payment",
		"Monthly Housing Cost",
		"GDS %",
		"TDS %",
		"Max Affordable Price",
		"Classification",
		"Equivalent Salary",
		"Housing Diff from Base",
		"Salary % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if set.BaseResult != nil {
		if err := writer.Write(cf.cityRow(set.BaseResult, "base")); err != nil {
			return "", err
		}
	}
	for i := range set.AlternativeResults {
		if err := writer.Write(cf.cityRow(&set.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) cityRow(r *CityResult, kind string) []string {
	return []string{
		r.City,
		kind,
		r.Province,
		r.HomePrice.StringFixed(2),
		r.MonthlyPayment.StringFixed(2),
		r.MonthlyHousingCost.StringFixed(2),
		r.GDS.StringFixed(2),
		r.TDS.StringFixed(2),
		r.MaxAffordablePrice.StringFixed(2),
		string(r.Classification),
		r.EquivalentSalary.StringFixed(2),
		r.HousingCostDiffFromBase.StringFixed(2),
		r.SalaryPctFromBase.StringFixed(2),
	}
}

// FormatWhatIf generates CSV output for a what-if comparison
func (cf *CSVFormatter) FormatWhatIf(set *WhatIfSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Retirement Age",
		"Monthly Contribution",
		"Projected Savings",
		"Required Corpus",
		"Gap",
		"Status",
		"Gap Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	write := func(r *ScenarioResult, kind string) error {
		return writer.Write([]string{
			r.ScenarioName,
			kind,
			strconv.Itoa(r.RetirementAge),
			r.MonthlyContribution.StringFixed(2),
			r.ProjectedSavings.StringFixed(2),
			r.RequiredCorpus.StringFixed(2),
			r.Gap.StringFixed(2),
			string(r.Status),
			r.GapDiffFromBase.StringFixed(2),
		})
	}
	if set.BaseResult != nil {
		if err := write(set.BaseResult, "base"); err != nil {
			return "", err
		}
	}
	for i := range set.AlternativeResults {
		if err := write(&set.AlternativeResults[i], "alternative"); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
