package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/maplemetrics/maplemetrics/internal/domain"
)

// ConsoleFormatter renders the detailed text report
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(r *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	title := strings.ToUpper(reportTitle(r))
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf, title)
	if !r.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf)

	if r.Empty() {
		fmt.Fprintln(&buf, "No calculations were run.")
		return buf.Bytes(), nil
	}

	if r.Mortgage != nil {
		writeMortgage(&buf, r.Mortgage)
	}
	if r.Housing != nil {
		writeHousing(&buf, r.Housing)
	}
	if r.Retirement != nil {
		writeRetirement(&buf, r.Retirement)
	}
	if r.Benefits != nil {
		writeBenefits(&buf, r.Benefits)
	}
	if r.Salary != nil {
		writeSalary(&buf, r.Salary)
	}
	if r.Relocation != nil {
		writeRelocation(&buf, r.Relocation)
	}
	if len(r.Utilities) > 0 {
		writeUtilities(&buf, r.Utilities)
	}

	if len(r.Notes) > 0 {
		section(&buf, "NOTES")
		for _, n := range r.Notes {
			fmt.Fprintf(&buf, "• %s\n", n)
		}
		fmt.Fprintln(&buf)
	}

	section(&buf, "KEY ASSUMPTIONS")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	return buf.Bytes(), nil
}

func section(w io.Writer, name string) {
	fmt.Fprintln(w, name)
	fmt.Fprintln(w, strings.Repeat("-", len(name)))
}

func writeMortgage(w io.Writer, m *domain.MortgageSummary) {
	section(w, "MORTGAGE")
	fmt.Fprintf(w, "  Principal:          %s\n", FormatCurrency(m.Principal))
	fmt.Fprintf(w, "  Rate:               %s\n", FormatPercentage(m.RatePercent))
	fmt.Fprintf(w, "  Amortization:       %d years\n", m.Years)
	fmt.Fprintf(w, "  Monthly Payment:    %s\n", FormatCurrency(m.MonthlyPayment))
	fmt.Fprintf(w, "  Total Interest:     %s\n", FormatCurrency(m.TotalInterest))
	if n := len(m.Schedule); n > 0 {
		fmt.Fprintf(w, "  Schedule:           %d payments, first %s interest, last balance %s\n",
			n, FormatCurrency(m.Schedule[0].Interest), FormatCurrency(m.Schedule[n-1].Balance))
	}
	fmt.Fprintln(w)
}

func writeHousing(w io.Writer, h *domain.CalculationResult) {
	section(w, "HOUSING AFFORDABILITY")
	fmt.Fprintf(w, "  City:               %s, %s\n", h.City, h.Province)
	fmt.Fprintf(w, "  Home Price:         %s\n", FormatCurrency(h.HomePrice))
	fmt.Fprintf(w, "  Down Payment:       %s (minimum %s)\n", FormatCurrency(h.DownPayment), FormatCurrency(h.MinimumDownPayment))
	if h.InsurancePremium.IsPositive() {
		fmt.Fprintf(w, "  Insurance Premium:  %s\n", FormatCurrency(h.InsurancePremium))
	}
	fmt.Fprintf(w, "  Mortgage:           %s at %s over %d years\n", FormatCurrency(h.Principal), FormatPercentage(h.MortgageRate), h.AmortizationYears)
	fmt.Fprintf(w, "  Monthly Payment:    %s\n", FormatCurrency(h.MonthlyPayment))
	fmt.Fprintf(w, "  Housing Cost:       %s / month\n", FormatCurrency(h.MonthlyHousingCost))
	fmt.Fprintf(w, "  GDS:                %s\n", formatRatio(h.GDS))
	fmt.Fprintf(w, "  TDS:                %s\n", formatRatio(h.TDS))
	fmt.Fprintf(w, "  Rent:               %s\n", formatRatio(h.Rent))
	fmt.Fprintf(w, "  Max Affordable:     %s\n", FormatCurrency(h.MaxAffordablePrice))
	fmt.Fprintf(w, "  Recommended Income: %s\n", FormatCurrency(h.RecommendedIncome))
	fmt.Fprintf(w, "  Verdict:            %s\n", strings.ToUpper(string(h.Classification)))
	for _, warn := range h.Warnings {
		fmt.Fprintf(w, "  ! %s\n", warn)
	}
	fmt.Fprintln(w)
}

func formatRatio(r domain.AffordabilityRatio) string {
	if r.InsufficientData {
		return "n/a (no income)"
	}
	mark := "ok"
	if !r.WithinThreshold {
		mark = "over"
	}
	return fmt.Sprintf("%s of %s (%s)", FormatPercentage(r.Ratio), FormatPercentage(r.Threshold), mark)
}

func writeRetirement(w io.Writer, r *domain.RetirementResult) {
	section(w, "RETIREMENT PROJECTION")
	fmt.Fprintf(w, "  Years to Retirement: %d\n", r.YearsToRetirement)
	fmt.Fprintf(w, "  Years in Retirement: %d\n", r.YearsInRetirement)
	fmt.Fprintf(w, "  Projected Savings:   %s\n", FormatCurrency(r.ProjectedSavings))
	fmt.Fprintf(w, "  Annual Cost:         %s\n", FormatCurrency(r.AnnualCostAtRetirement))
	if r.GovernmentPensionOffset.IsPositive() {
		fmt.Fprintf(w, "  CPP/OAS Offset:      %s\n", FormatCurrency(r.GovernmentPensionOffset))
	}
	fmt.Fprintf(w, "  Required Corpus:     %s\n", FormatCurrency(r.RequiredCorpus))
	if r.Funded() {
		fmt.Fprintf(w, "  Status:              FUNDED (surplus %s)\n", FormatCurrency(r.Gap.Neg()))
	} else {
		fmt.Fprintf(w, "  Status:              SHORTFALL of %s\n", FormatCurrency(r.Gap))
		fmt.Fprintf(w, "  Save per Month:      %s\n", FormatCurrency(r.RecommendedMonthlySavings))
	}
	fmt.Fprintln(w)
}

func writeBenefits(w io.Writer, b *domain.EligibilityResult) {
	section(w, "BENEFITS")
	if len(b.Eligible) == 0 {
		fmt.Fprintln(w, "  No matching programs.")
	}
	for _, rec := range b.Eligible {
		fmt.Fprintf(w, "  %-40s %12s / year\n", rec.Name, FormatCurrency(rec.AnnualValue()))
	}
	fmt.Fprintf(w, "  %-40s %12s / year\n", "TOTAL", FormatCurrency(b.TotalAnnualValue))
	fmt.Fprintln(w)
}

func writeSalary(w io.Writer, s *domain.SalaryResult) {
	section(w, "REQUIRED SALARY")
	fmt.Fprintf(w, "  City:               %s, %s (%s)\n", s.City, s.Province, s.Lifestyle)
	fmt.Fprintf(w, "  Monthly Budget:     %s (rent %s, utilities %s, living %s)\n",
		FormatCurrency(s.MonthlyBudget), FormatCurrency(s.MonthlyRent), FormatCurrency(s.MonthlyUtilities), FormatCurrency(s.MonthlyLiving))
	fmt.Fprintf(w, "  Net Annual:         %s\n", FormatCurrency(s.NetAnnual))
	fmt.Fprintf(w, "  Gross Annual:       %s at %s tax\n", FormatCurrency(s.GrossAnnual), FormatPercentage(s.EffectiveTaxRate))
	fmt.Fprintf(w, "  Hourly:             %s\n", FormatCurrency(s.HourlyEquivalent))
	fmt.Fprintln(w)
}

func writeRelocation(w io.Writer, r *domain.RelocationResult) {
	section(w, "RELOCATION")
	fmt.Fprintf(w, "  %s in %s is worth %s in %s (%s)\n",
		FormatCurrency(r.Salary), r.FromCity, FormatCurrency(r.EquivalentSalary), r.ToCity, FormatPercentage(r.PercentChange))
	fmt.Fprintln(w)
}

func writeUtilities(w io.Writer, rows []domain.UtilityBreakdown) {
	section(w, "UTILITIES")
	fmt.Fprintf(w, "  %-4s %12s %12s %12s %12s %12s\n", "PROV", "ELECTRIC", "GAS", "WATER", "INTERNET", "TOTAL")
	for _, u := range rows {
		fmt.Fprintf(w, "  %-4s %12s %12s %12s %12s %12s\n", u.Province,
			FormatCurrency(u.Electricity), FormatCurrency(u.Gas), FormatCurrency(u.Water), FormatCurrency(u.Internet), FormatCurrency(u.Total))
	}
	fmt.Fprintln(w)
}

// ConsoleLiteFormatter renders a one-line-per-calculator summary
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(r *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, strings.ToUpper(reportTitle(r))+" SUMMARY")
	if r.Mortgage != nil {
		fmt.Fprintf(&buf, "Mortgage: %s/month, %s interest\n", FormatCurrency(r.Mortgage.MonthlyPayment), FormatCurrency(r.Mortgage.TotalInterest))
	}
	if r.Housing != nil {
		fmt.Fprintf(&buf, "Housing: %s in %s, GDS %s TDS %s\n", r.Housing.Classification, r.Housing.City,
			FormatPercentage(r.Housing.GDS.Ratio), FormatPercentage(r.Housing.TDS.Ratio))
	}
	if r.Retirement != nil {
		fmt.Fprintf(&buf, "Retirement: %s, gap %s\n", r.Retirement.Status, FormatCurrency(r.Retirement.Gap))
	}
	if r.Benefits != nil {
		fmt.Fprintf(&buf, "Benefits: %d programs, %s/year\n", len(r.Benefits.Eligible), FormatCurrency(r.Benefits.TotalAnnualValue))
	}
	if r.Salary != nil {
		fmt.Fprintf(&buf, "Salary: %s gross in %s\n", FormatCurrency(r.Salary.GrossAnnual), r.Salary.City)
	}
	if r.Relocation != nil {
		fmt.Fprintf(&buf, "Relocation: Δ %s (%s)\n", FormatCurrency(r.Relocation.Difference), FormatPercentage(r.Relocation.PercentChange))
	}
	for _, u := range r.Utilities {
		fmt.Fprintf(&buf, "Utilities %s: %s/month\n", u.Province, FormatCurrency(u.Total))
	}
	return buf.Bytes(), nil
}
