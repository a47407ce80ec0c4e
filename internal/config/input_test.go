package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScenario = `
name: Calgary move
profile:
  age: 34
  annual_income: 72000
  province: AB
  household_size: 3
  has_children: true
housing:
  annual_income: 150000
  monthly_debts: 0
  down_payment_percent: 20
  city: Calgary
retirement:
  current_age: 40
  retirement_age: 65
  current_savings: 10000
  monthly_contribution: 200
  expected_return_percent: 5
  inflation_percent: 2
  province: ON
  lifestyle: comfortable
salary:
  city: toronto
relocation:
  salary: 100000
  from_city: toronto
  to_city: calgary
utilities:
  province: ON
  electricity_kwh: 650
  gas_cubic_metres: 120
  include_water: true
what_if:
  - "postpone_retirement:years=2"
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	parser := NewInputParser()
	scenario, err := parser.LoadFromFile(writeScenario(t, sampleScenario))
	require.NoError(t, err)

	assert.Equal(t, "Calgary move", scenario.Name)
	require.NotNil(t, scenario.Profile)
	assert.Equal(t, 34, scenario.Profile.Age)
	assert.True(t, scenario.Profile.HasChildren)

	require.NotNil(t, scenario.Housing)
	assert.Equal(t, "150000", scenario.Housing.AnnualIncome.String())
	assert.Equal(t, "Calgary", scenario.Housing.City)
	assert.Nil(t, scenario.Housing.MortgageRatePercent)

	require.NotNil(t, scenario.Retirement)
	assert.Equal(t, domain.LifestyleComfortable, scenario.Retirement.Lifestyle)
	assert.Equal(t, "5", scenario.Retirement.ExpectedReturnPercent.String())

	require.NotNil(t, scenario.Relocation)
	assert.Equal(t, "calgary", scenario.Relocation.ToCity)

	require.NotNil(t, scenario.Utilities)
	assert.True(t, scenario.Utilities.IncludeWater)
	assert.False(t, scenario.Utilities.IncludeInternet)

	assert.Equal(t, []string{"postpone_retirement:years=2"}, scenario.WhatIf)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			doc:     "housing: [",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "no sections",
			doc:     "name: empty\n",
			wantErr: "no calculator sections",
		},
		{
			name:    "negative profile income",
			doc:     "profile:\n  age: 30\n  annual_income: -1\n  province: ON\n",
			wantErr: "profile validation failed: invalid annual_income",
		},
		{
			name:    "profile age out of range",
			doc:     "profile:\n  age: 130\n  province: ON\n",
			wantErr: "invalid age",
		},
		{
			name:    "housing down payment over 100",
			doc:     "housing:\n  annual_income: 90000\n  down_payment_percent: 120\n  city: toronto\n",
			wantErr: "housing validation failed",
		},
		{
			name:    "housing without location",
			doc:     "housing:\n  annual_income: 90000\n  down_payment_percent: 20\n",
			wantErr: "city or postal_code is required",
		},
		{
			name:    "retirement age before current age",
			doc:     "retirement:\n  current_age: 50\n  retirement_age: 45\n  expected_return_percent: 5\n  inflation_percent: 2\n  province: ON\n",
			wantErr: "retirement validation failed",
		},
		{
			name:    "salary without city",
			doc:     "salary:\n  lifestyle: modest\n",
			wantErr: "salary validation failed",
		},
		{
			name:    "relocation missing destination",
			doc:     "relocation:\n  salary: 80000\n  from_city: toronto\n",
			wantErr: "both cities are required",
		},
		{
			name:    "negative utility usage",
			doc:     "utilities:\n  province: ON\n  electricity_kwh: -5\n",
			wantErr: "utilities validation failed",
		},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_ValidationErrorIsInspectable(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("salary:\n  lifestyle: modest\n"))
	require.Error(t, err)

	verr, ok := domain.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "city", verr.Field)
}
