package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVFormatter writes one section,metric,value row per figure
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(r *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Section", "Metric", "Value"}); err != nil {
		return nil, err
	}

	var rows [][]string
	add := func(section, metric string, v decimal.Decimal) {
		rows = append(rows, []string{section, metric, v.StringFixed(2)})
	}
	addText := func(section, metric, v string) {
		rows = append(rows, []string{section, metric, v})
	}

	if m := r.Mortgage; m != nil {
		add("mortgage", "principal", m.Principal)
		add("mortgage", "rate_percent", m.RatePercent)
		addText("mortgage", "years", strconv.Itoa(m.Years))
		add("mortgage", "monthly_payment", m.MonthlyPayment)
		add("mortgage", "total_interest", m.TotalInterest)
	}
	if h := r.Housing; h != nil {
		addText("housing", "city", h.City)
		add("housing", "home_price", h.HomePrice)
		add("housing", "down_payment", h.DownPayment)
		add("housing", "insurance_premium", h.InsurancePremium)
		add("housing", "monthly_payment", h.MonthlyPayment)
		add("housing", "monthly_housing_cost", h.MonthlyHousingCost)
		add("housing", "gds", h.GDS.Ratio)
		add("housing", "tds", h.TDS.Ratio)
		add("housing", "rent", h.Rent.Ratio)
		add("housing", "max_affordable_price", h.MaxAffordablePrice)
		add("housing", "recommended_income", h.RecommendedIncome)
		addText("housing", "classification", string(h.Classification))
	}
	if ret := r.Retirement; ret != nil {
		add("retirement", "projected_savings", ret.ProjectedSavings)
		add("retirement", "annual_cost", ret.AnnualCostAtRetirement)
		add("retirement", "required_corpus", ret.RequiredCorpus)
		add("retirement", "gap", ret.Gap)
		add("retirement", "recommended_monthly_savings", ret.RecommendedMonthlySavings)
		addText("retirement", "status", string(ret.Status))
	}
	if b := r.Benefits; b != nil {
		for _, rec := range b.Eligible {
			add("benefits", rec.ID, rec.AnnualValue())
		}
		add("benefits", "total", b.TotalAnnualValue)
	}
	if s := r.Salary; s != nil {
		add("salary", "monthly_budget", s.MonthlyBudget)
		add("salary", "net_annual", s.NetAnnual)
		add("salary", "gross_annual", s.GrossAnnual)
		add("salary", "hourly", s.HourlyEquivalent)
	}
	if rel := r.Relocation; rel != nil {
		add("relocation", "equivalent_salary", rel.EquivalentSalary)
		add("relocation", "difference", rel.Difference)
		add("relocation", "percent_change", rel.PercentChange)
	}
	for _, u := range r.Utilities {
		add("utilities", u.Province, u.Total)
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
