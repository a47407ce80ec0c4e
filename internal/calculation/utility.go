package calculation

import (
	"fmt"
	"sort"

	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultUtilityUsage is a typical two-bedroom household's monthly consumption
func DefaultUtilityUsage(province string) domain.UtilityUsage {
	return domain.UtilityUsage{
		Province:        province,
		ElectricityKWh:  decimal.NewFromInt(650),
		GasCubicMetres:  decimal.NewFromInt(120),
		IncludeWater:    true,
		IncludeInternet: true,
	}
}

// UtilityCost prices a household's monthly usage in one province
func (e *Engine) UtilityCost(usage domain.UtilityUsage) (*domain.UtilityBreakdown, error) {
	if err := validateUsage(usage); err != nil {
		return nil, err
	}
	province, ok := e.Tables.Province(usage.Province)
	if !ok {
		return nil, fmt.Errorf("province %q: %w", usage.Province, domain.ErrInsufficientData)
	}
	b := utilityBreakdown(province, usage)
	return &b, nil
}

// CompareUtilities prices the same usage in every province, cheapest first
func (e *Engine) CompareUtilities(usage domain.UtilityUsage) ([]domain.UtilityBreakdown, error) {
	if err := validateUsage(usage); err != nil {
		return nil, err
	}
	provinces := e.Tables.Provinces()
	out := make([]domain.UtilityBreakdown, 0, len(provinces))
	for _, p := range provinces {
		out = append(out, utilityBreakdown(p, usage))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total.Equal(out[j].Total) {
			return out[i].Province < out[j].Province
		}
		return out[i].Total.LessThan(out[j].Total)
	})
	return out, nil
}

func validateUsage(usage domain.UtilityUsage) error {
	if usage.ElectricityKWh.IsNegative() {
		return domain.NewValidationError("electricity_kwh", "must not be negative")
	}
	if usage.GasCubicMetres.IsNegative() {
		return domain.NewValidationError("gas_cubic_metres", "must not be negative")
	}
	return nil
}

func utilityBreakdown(p domain.ProvinceRecord, usage domain.UtilityUsage) domain.UtilityBreakdown {
	b := domain.UtilityBreakdown{
		Province:    p.Code,
		Electricity: money(usage.ElectricityKWh.Mul(p.ElectricityRate)),
		Gas:         money(usage.GasCubicMetres.Mul(p.GasRate)),
	}
	if usage.IncludeWater {
		b.Water = p.WaterMonthly
	}
	if usage.IncludeInternet {
		b.Internet = p.InternetMonthly
	}
	b.Total = b.Electricity.Add(b.Gas).Add(b.Water).Add(b.Internet)
	return b
}
