package domain

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Toronto", "toronto"},
		{"  toronto  ", "toronto"},
		{"St.   John's", "st. john's"},
		{"\tQuébec City\n", "québec city"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeKey(tt.in))
		})
	}
}

func TestParseLifestyle(t *testing.T) {
	l, ok := ParseLifestyle(" Affluent ")
	assert.True(t, ok)
	assert.Equal(t, LifestyleAffluent, l)

	l, ok = ParseLifestyle("")
	assert.True(t, ok, "empty lifestyle defaults")
	assert.Equal(t, LifestyleComfortable, l)

	_, ok = ParseLifestyle("lavish")
	assert.False(t, ok)
}

func TestBenefitRecord_AnnualValue(t *testing.T) {
	monthly := BenefitRecord{MaxAmount: decimal.NewFromInt(100), Frequency: FrequencyMonthly}
	annual := BenefitRecord{MaxAmount: decimal.NewFromInt(100), Frequency: FrequencyAnnual}
	oneTime := BenefitRecord{MaxAmount: decimal.NewFromInt(100), Frequency: FrequencyOneTime}

	assert.True(t, monthly.AnnualValue().Equal(decimal.NewFromInt(1200)))
	assert.True(t, annual.AnnualValue().Equal(decimal.NewFromInt(100)))
	assert.True(t, oneTime.AnnualValue().Equal(decimal.NewFromInt(100)))
}

func TestValidation_Err(t *testing.T) {
	assert.NoError(t, Valid().Err())

	err := Invalid("retirement_age", "must exceed current age").Err()
	require.Error(t, err)
	assert.Equal(t, "invalid retirement_age: must exceed current age", err.Error())

	wrapped := fmt.Errorf("projection failed: %w", err)
	ve, ok := IsValidationError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "retirement_age", ve.Field)

	_, ok = IsValidationError(ErrInsufficientData)
	assert.False(t, ok)
}

func TestRetirementInputs_TerminalAge(t *testing.T) {
	assert.Equal(t, DefaultLifeExpectancy, RetirementInputs{}.TerminalAge())
	assert.Equal(t, 95, RetirementInputs{LifeExpectancy: 95}.TerminalAge())
}

func TestGovernmentPensions_Total(t *testing.T) {
	g := GovernmentPensions{CPPAnnual: decimal.NewFromInt(9000), OASAnnual: decimal.NewFromInt(8500)}
	assert.True(t, g.Total().Equal(decimal.NewFromInt(17500)))
}

func TestReport_Empty(t *testing.T) {
	r := &Report{Title: "empty"}
	assert.True(t, r.Empty())

	r.Utilities = []UtilityBreakdown{{Province: "ON"}}
	assert.False(t, r.Empty())
}
