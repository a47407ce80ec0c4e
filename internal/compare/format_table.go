package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing cities
func (tf *TableFormatter) Format(set *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("CITY COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 88) + "\n")
	sb.WriteString(fmt.Sprintf("Base City: %s\n", set.BaseCity))
	sb.WriteString(fmt.Sprintf("Income: $%s   Down Payment: %s%%\n", tf.formatDecimal(set.AnnualIncome), set.DownPaymentPercent.StringFixed(1)))
	sb.WriteString("\n")

	nameWidth := 20
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, "City",
		numWidth, "Home Price",
		numWidth, "Housing/mo",
		numWidth, "GDS",
		numWidth, "Equiv Salary",
		numWidth, "Verdict"))
	sb.WriteString(strings.Repeat("-", 88) + "\n")

	if set.BaseResult != nil {
		sb.WriteString(tf.formatCityRow(set.BaseResult, nameWidth, numWidth, true))
	}
	if len(set.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for i := range set.AlternativeResults {
			sb.WriteString(tf.formatCityRow(&set.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}
	sb.WriteString(strings.Repeat("=", 88) + "\n")

	if len(set.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for _, alt := range set.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.City))
			sb.WriteString(fmt.Sprintf("  Housing Cost:     %s$%s/month\n",
				tf.deltaSymbol(alt.HousingCostDiffFromBase), tf.formatDecimal(alt.HousingCostDiffFromBase.Abs())))
			sb.WriteString(fmt.Sprintf("  Salary Needed:    %s$%s (%s%%)\n",
				tf.deltaSymbol(alt.SalaryDiffFromBase), tf.formatDecimal(alt.SalaryDiffFromBase.Abs()), alt.SalaryPctFromBase.StringFixed(1)))
		}
		sb.WriteString("\n")
	}

	tf.writeRecommendations(&sb, set.Recommendations)
	return sb.String()
}

// FormatWhatIf generates a formatted table comparing retirement scenarios
func (tf *TableFormatter) FormatWhatIf(set *WhatIfSet) string {
	var sb strings.Builder

	sb.WriteString("RETIREMENT WHAT-IF COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 88) + "\n")

	nameWidth := 24
	numWidth := 15

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Retire Age",
		numWidth, "Projected",
		numWidth, "Required",
		numWidth, "Gap"))
	sb.WriteString(strings.Repeat("-", 88) + "\n")

	rows := []*ScenarioResult{}
	if set.BaseResult != nil {
		rows = append(rows, set.BaseResult)
	}
	for i := range set.AlternativeResults {
		rows = append(rows, &set.AlternativeResults[i])
	}
	for i, r := range rows {
		name := r.ScenarioName
		if i == 0 && set.BaseResult != nil {
			name += " (base)"
		}
		gap := "$" + tf.formatDecimal(r.Gap)
		if r.Gap.LessThanOrEqual(decimal.Zero) {
			gap = "funded"
		}
		sb.WriteString(fmt.Sprintf("%-*s %*d %*s %*s %*s\n",
			nameWidth, tf.truncate(name, nameWidth),
			numWidth, r.RetirementAge,
			numWidth, "$"+tf.formatDecimal(r.ProjectedSavings),
			numWidth, "$"+tf.formatDecimal(r.RequiredCorpus),
			numWidth, gap))
	}
	sb.WriteString(strings.Repeat("=", 88) + "\n")

	if len(set.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for _, alt := range set.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.ScenarioName, alt.Description))
			sb.WriteString(fmt.Sprintf("  Projected Savings: %s$%s\n",
				tf.deltaSymbol(alt.SavingsDiffFromBase), tf.formatDecimal(alt.SavingsDiffFromBase.Abs())))
			// a smaller gap is better
			sb.WriteString(fmt.Sprintf("  Gap Change:        %s$%s\n",
				tf.deltaSymbol(alt.GapDiffFromBase.Neg()), tf.formatDecimal(alt.GapDiffFromBase.Abs())))
		}
		sb.WriteString("\n")
	}

	tf.writeRecommendations(&sb, set.Recommendations)
	return sb.String()
}

func (tf *TableFormatter) writeRecommendations(sb *strings.Builder, recs []string) {
	if len(recs) == 0 {
		return
	}
	sb.WriteString("\nRECOMMENDATIONS\n")
	sb.WriteString(strings.Repeat("-", 88) + "\n")
	for _, rec := range recs {
		sb.WriteString(fmt.Sprintf("• %s\n", rec))
	}
	sb.WriteString("\n")
}

// formatCityRow formats a single city row
func (tf *TableFormatter) formatCityRow(r *CityResult, nameWidth, numWidth int, isBase bool) string {
	name := r.City
	if isBase {
		name += " (base)"
	}
	return fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "$"+tf.formatDecimal(r.HomePrice),
		numWidth, "$"+tf.formatDecimal(r.MonthlyHousingCost),
		numWidth, r.GDS.StringFixed(1)+"%",
		numWidth, "$"+tf.formatDecimal(r.EquivalentSalary),
		numWidth, string(r.Classification))
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns a + or - symbol for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each city
func (tf *TableFormatter) FormatCompact(set *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", set.BaseCity))

	for i, alt := range set.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.HousingCostDiffFromBase.IsPositive() {
			change = fmt.Sprintf("+$%s/mo", tf.formatDecimal(alt.HousingCostDiffFromBase))
		} else if alt.HousingCostDiffFromBase.IsNegative() {
			change = fmt.Sprintf("-$%s/mo", tf.formatDecimal(alt.HousingCostDiffFromBase.Abs()))
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.City, change))
	}

	return sb.String()
}
