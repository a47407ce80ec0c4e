package benefits

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func ids(records []domain.BenefitRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func TestFilterEligible_AndSemantics(t *testing.T) {
	senior := domain.BenefitRecord{
		ID:        "senior-low-income",
		MaxAmount: decimal.NewFromInt(100),
		Frequency: domain.FrequencyMonthly,
		Criteria:  domain.Criteria{MinAge: intPtr(65), MaxIncome: decPtr(20000)},
	}
	records := []domain.BenefitRecord{senior}

	tests := []struct {
		name   string
		age    int
		income int64
		want   bool
	}{
		{"both met", 65, 20000, true},
		{"too young regardless of income", 64, 10000, false},
		{"too rich regardless of age", 70, 25000, false},
		{"both failed", 40, 90000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := domain.UserProfile{Age: tt.age, AnnualIncome: decimal.NewFromInt(tt.income)}
			got := FilterEligible(records, profile)
			assert.Equal(t, tt.want, len(got) == 1)
		})
	}
}

func TestFilterEligible_AbsentCriteriaAreNotRestrictive(t *testing.T) {
	open := domain.BenefitRecord{ID: "open", MaxAmount: decimal.NewFromInt(50), Frequency: domain.FrequencyAnnual}

	got := FilterEligible([]domain.BenefitRecord{open}, domain.UserProfile{})
	assert.Equal(t, []string{"open"}, ids(got))
}

func TestFilterEligible_FlagsAndProvinces(t *testing.T) {
	records := []domain.BenefitRecord{
		{ID: "kids", Criteria: domain.Criteria{RequiresChildren: boolPtr(true)}},
		{ID: "no-students", Criteria: domain.Criteria{RequiresStudent: boolPtr(false)}},
		{ID: "students", Criteria: domain.Criteria{RequiresStudent: boolPtr(true)}},
		{ID: "disability", Criteria: domain.Criteria{RequiresDisability: boolPtr(true)}},
		{ID: "senior", Criteria: domain.Criteria{RequiresSenior: boolPtr(true)}},
		{ID: "ontario", Criteria: domain.Criteria{Provinces: []string{"ON"}}},
		{ID: "max-age", Criteria: domain.Criteria{MaxAge: intPtr(30)}},
	}

	tests := []struct {
		name    string
		profile domain.UserProfile
		want    []string
	}{
		{
			name:    "student in ontario",
			profile: domain.UserProfile{Age: 22, Province: " on ", IsStudent: true},
			want:    []string{"students", "ontario", "max-age"},
		},
		{
			name:    "parent with disability in BC",
			profile: domain.UserProfile{Age: 45, Province: "BC", HasChildren: true, IsDisabled: true},
			want:    []string{"kids", "no-students", "disability"},
		},
		{
			name:    "senior without province",
			profile: domain.UserProfile{Age: 70, IsSenior: true},
			want:    []string{"no-students", "senior"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterEligible(records, tt.profile)))
		})
	}
}

func TestTotalAnnualValue(t *testing.T) {
	records := []domain.BenefitRecord{
		{ID: "m", MaxAmount: decimal.NewFromInt(100), Frequency: domain.FrequencyMonthly},
		{ID: "a", MaxAmount: decimal.NewFromInt(500), Frequency: domain.FrequencyAnnual},
		{ID: "o", MaxAmount: decimal.NewFromInt(250), Frequency: domain.FrequencyOneTime},
	}
	assert.True(t, TotalAnnualValue(records).Equal(decimal.NewFromInt(1950)))
	assert.True(t, TotalAnnualValue(nil).IsZero())
}

func TestEvaluate_Idempotent(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	profile := domain.UserProfile{
		Age:          34,
		AnnualIncome: decimal.NewFromInt(42000),
		Province:     "ON",
		HasChildren:  true,
	}

	first := Evaluate(catalog, profile)
	second := Evaluate(catalog, profile)

	if diff := cmp.Diff(first, second, decimalEqual); diff != "" {
		t.Errorf("repeated evaluation differs:\n%s", diff)
	}
	assert.Equal(t, []string{"ccb", "gst-hst-credit", "dental", "on-trillium"}, ids(first.Eligible))
	// 648.91*12 + 519 + 650 + 1421
	assert.Equal(t, "10376.92", first.TotalAnnualValue.StringFixed(2))
}

func TestFilterEligible_DoesNotMutateInput(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	before := ids(catalog)

	FilterEligible(catalog, domain.UserProfile{Age: 70, Province: "QC"})
	assert.Equal(t, before, ids(catalog))
}

func TestExplain(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	gis, ok := FindByID(catalog, "gis")
	require.True(t, ok)

	reasons := Explain(gis, domain.UserProfile{Age: 60, AnnualIncome: decimal.NewFromInt(30000)})
	assert.Len(t, reasons, 2)
	assert.Contains(t, reasons[0], "at least 65")
	assert.Contains(t, reasons[1], "income must not exceed $21768")

	assert.Empty(t, Explain(gis, domain.UserProfile{Age: 66, AnnualIncome: decimal.NewFromInt(15000)}))

	cwb, _ := FindByID(catalog, "cwb")
	assert.Equal(t, []string{"not available with student status"},
		Explain(cwb, domain.UserProfile{Age: 25, AnnualIncome: decimal.NewFromInt(20000), IsStudent: true}))
}
