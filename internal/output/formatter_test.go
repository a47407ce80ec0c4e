package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func buildTestReport() *domain.Report {
	return &domain.Report{
		Title:       "Test Household",
		GeneratedAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
		Mortgage: &domain.MortgageSummary{
			Principal:      d("400000"),
			RatePercent:    d("5"),
			Years:          25,
			MonthlyPayment: d("2338.36"),
			TotalInterest:  d("301508.00"),
		},
		Housing: &domain.CalculationResult{
			City:               "Calgary",
			Province:           "AB",
			HomePrice:          d("590000"),
			DownPayment:        d("118000"),
			MonthlyPayment:     d("2759.26"),
			MonthlyHousingCost: d("3218.84"),
			GDS:                domain.AffordabilityRatio{Ratio: d("25.75"), Threshold: d("32"), WithinThreshold: true},
			TDS:                domain.AffordabilityRatio{Ratio: d("25.75"), Threshold: d("40"), WithinThreshold: true},
			Rent:               domain.AffordabilityRatio{Ratio: d("15.2"), Threshold: d("30"), WithinThreshold: true},
			MaxAffordablePrice: d("739692.00"),
			Classification:     domain.ClassAffordable,
			Warnings:           []string{"check closing costs"},
		},
		Retirement: &domain.RetirementResult{
			ProjectedSavings:          d("152965.49"),
			RequiredCorpus:            d("1571246.30"),
			Gap:                       d("1418280.81"),
			RecommendedMonthlySavings: d("2371.74"),
			Status:                    domain.StatusShortfall,
		},
		Benefits: &domain.EligibilityResult{
			Eligible: []domain.BenefitRecord{
				{ID: "ccb", Name: "Canada Child Benefit", MaxAmount: d("648.91"), Frequency: domain.FrequencyMonthly},
			},
			TotalAnnualValue: d("7786.92"),
		},
		Utilities: []domain.UtilityBreakdown{
			{Province: "ON", Electricity: d("84.50"), Gas: d("54"), Water: d("75"), Internet: d("90"), Total: d("303.50")},
		},
		Notes: []string{"what-if: retire two years later"},
	}
}

func TestFormatterFunc(t *testing.T) {
	var received *domain.Report
	f := FormatterFunc{
		ID: "test-formatter",
		F: func(r *domain.Report) ([]byte, error) {
			received = r
			return []byte("test output"), nil
		},
	}

	report := buildTestReport()
	out, err := f.Format(report)
	require.NoError(t, err)
	assert.Equal(t, "test-formatter", f.Name())
	assert.Same(t, report, received)
	assert.Equal(t, []byte("test output"), out)
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range FormatterNames() {
		f, err := GetFormatterByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, f.Name())
	}

	f, err := GetFormatterByName("")
	require.NoError(t, err)
	assert.Equal(t, "console", f.Name())

	_, err = GetFormatterByName("pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format: pdf")
}

func TestWriteFormatted(t *testing.T) {
	t.Chdir(t.TempDir())

	f := FormatterFunc{ID: "txt", F: func(*domain.Report) ([]byte, error) { return []byte("content"), nil }}
	filename, err := WriteFormatted(f, buildTestReport(), "txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "maplemetrics_report_"))
	assert.True(t, strings.HasSuffix(filename, ".txt"))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	f := FormatterFunc{ID: "broken", F: func(*domain.Report) ([]byte, error) { return nil, fmt.Errorf("formatter error") }}
	filename, err := WriteFormatted(f, buildTestReport(), "txt")
	require.Error(t, err)
	assert.Empty(t, filename)
	assert.Contains(t, err.Error(), "formatter error")
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"12.5", "$12.50"},
		{"999.999", "$1,000.00"},
		{"1234567.891", "$1,234,567.89"},
		{"-2500", "-$2,500.00"},
		{"100000", "$100,000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(d(tt.in)))
		})
	}
	assert.Equal(t, "32.00%", FormatPercentage(d("32")))
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "TEST HOUSEHOLD")
	assert.Contains(t, content, "Generated: 2025-03-01 09:30:00")
	assert.Contains(t, content, "Monthly Payment:    $2,338.36")
	assert.Contains(t, content, "Calgary, AB")
	assert.Contains(t, content, "25.75% of 32.00% (ok)")
	assert.Contains(t, content, "AFFORDABLE")
	assert.Contains(t, content, "! check closing costs")
	assert.Contains(t, content, "SHORTFALL of $1,418,280.81")
	assert.Contains(t, content, "Canada Child Benefit")
	assert.Contains(t, content, "$7,786.92")
	assert.Contains(t, content, "what-if: retire two years later")
	assert.Contains(t, content, "KEY ASSUMPTIONS")
}

func TestConsoleFormatter_Empty(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(&domain.Report{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "MAPLEMETRICS REPORT")
	assert.Contains(t, string(out), "No calculations were run.")
}

func TestConsoleFormatter_InsufficientData(t *testing.T) {
	r := &domain.Report{Housing: &domain.CalculationResult{
		City:           "Regina",
		GDS:            domain.AffordabilityRatio{InsufficientData: true},
		Classification: domain.ClassInsufficientData,
	}}
	out, err := ConsoleFormatter{}.Format(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "n/a (no income)")
	assert.Contains(t, string(out), "INSUFFICIENT_DATA")
}

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := ConsoleLiteFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "TEST HOUSEHOLD SUMMARY")
	assert.Contains(t, content, "Housing: affordable in Calgary")
	assert.Contains(t, content, "Retirement: shortfall")
	assert.Contains(t, content, "Benefits: 1 programs, $7,786.92/year")
	assert.Contains(t, content, "Utilities ON: $303.50/month")
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Section", "Metric", "Value"}, records[0])
	assert.Contains(t, records, []string{"mortgage", "monthly_payment", "2338.36"})
	assert.Contains(t, records, []string{"housing", "classification", "affordable"})
	assert.Contains(t, records, []string{"benefits", "ccb", "7786.92"})
	assert.Contains(t, records, []string{"utilities", "ON", "303.50"})
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Test Household", decoded["title"])
	assert.Contains(t, decoded, "housing")
	assert.NotContains(t, decoded, "salary")
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "<title>Test Household</title>")
	assert.Contains(t, content, "Housing in Calgary, AB")
	assert.Contains(t, content, "$2,759.26")
	assert.Contains(t, content, "Canada Child Benefit")
	assert.NotContains(t, content, "Required Salary")
}
