// Package compare runs calculators across several cities or what-if scenarios and
// reports the differences against a base.
package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/maplemetrics/maplemetrics/internal/calculation"
	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/maplemetrics/maplemetrics/internal/transform"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of cities or scenarios evaluated at once
const DefaultConcurrency = 4

// CompareEngine orchestrates city and scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
	Concurrency       int
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
		Concurrency:       DefaultConcurrency,
	}
}

// CityOptions configures a city comparison
type CityOptions struct {
	BaseCity           string
	Cities             []string
	AnnualIncome       decimal.Decimal
	MonthlyDebts       decimal.Decimal
	DownPaymentPercent decimal.Decimal
}

// CompareCities analyzes housing in the base city and each alternative, and
// expresses the base income in each alternative's cost of living.
func (ce *CompareEngine) CompareCities(ctx context.Context, opts CityOptions) (*ComparisonSet, error) {
	if opts.BaseCity == "" {
		return nil, domain.NewValidationError("base_city", "is required")
	}
	if len(opts.Cities) == 0 {
		return nil, domain.NewValidationError("cities", "at least one city to compare is required")
	}

	cities := append([]string{opts.BaseCity}, opts.Cities...)
	results := make([]CityResult, len(cities))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ce.limit())
	for i, city := range cities {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := ce.analyzeCity(city, opts)
			if err != nil {
				return fmt.Errorf("failed to analyze %s: %w", city, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	base := results[0]
	alternatives := make([]CityResult, 0, len(results)-1)
	for _, r := range results[1:] {
		alternatives = append(alternatives, ce.MetricsCalculator.CityComparison(r, base))
	}

	set := &ComparisonSet{
		BaseCity:           base.City,
		AnnualIncome:       opts.AnnualIncome,
		DownPaymentPercent: opts.DownPaymentPercent,
		BaseResult:         &base,
		AlternativeResults: alternatives,
	}
	set.Recommendations = GenerateRecommendations(set)
	return set, nil
}

func (ce *CompareEngine) analyzeCity(city string, opts CityOptions) (CityResult, error) {
	housing, err := ce.CalcEngine.AnalyzeHousing(domain.FinancialInput{
		AnnualIncome:       opts.AnnualIncome,
		MonthlyDebts:       opts.MonthlyDebts,
		DownPaymentPercent: opts.DownPaymentPercent,
		City:               city,
	})
	if err != nil {
		return CityResult{}, err
	}
	rel, err := ce.CalcEngine.EquivalentSalary(opts.AnnualIncome, opts.BaseCity, city)
	if err != nil {
		return CityResult{}, err
	}

	var rent decimal.Decimal
	if rec, ok := ce.CalcEngine.Tables.City(city); ok {
		rent = rec.AvgRent
	}
	return ce.MetricsCalculator.CityMetrics(housing, rent, rel), nil
}

// CompareWhatIf projects the base inputs and one variation per entry in
// variations. An entry is either a template name or a transform spec such as
// "postpone_retirement:years=3".
func (ce *CompareEngine) CompareWhatIf(ctx context.Context, base domain.RetirementInputs, variations []string) (*WhatIfSet, error) {
	type variation struct {
		name        string
		description string
		transforms  []transform.RetirementTransform
	}

	vars := make([]variation, 0, len(variations))
	for _, v := range variations {
		if tmpl, ok := ce.TemplateRegistry.Get(v); ok {
			vars = append(vars, variation{tmpl.Name, tmpl.Description, tmpl.Transforms})
			continue
		}
		if !strings.Contains(v, ":") {
			return nil, fmt.Errorf("template %s not found", v)
		}
		t, err := ce.TransformRegistry.ParseTransformSpec(v)
		if err != nil {
			return nil, fmt.Errorf("invalid what-if %q: %w", v, err)
		}
		vars = append(vars, variation{t.Name(), t.Description(), []transform.RetirementTransform{t}})
	}

	baseResult, err := ce.CalcEngine.ProjectRetirement(base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseMetrics := ce.MetricsCalculator.ScenarioMetrics("base", base, baseResult)
	baseMetrics.Description = "Current plan"

	alternatives := make([]ScenarioResult, len(vars))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ce.limit())
	for i, v := range vars {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			modified, err := transform.ApplyTransforms(&base, v.transforms)
			if err != nil {
				return fmt.Errorf("failed to apply %s: %w", v.name, err)
			}
			r, err := ce.CalcEngine.ProjectRetirement(*modified)
			if err != nil {
				return fmt.Errorf("failed to calculate scenario %s: %w", v.name, err)
			}
			m := ce.MetricsCalculator.ScenarioMetrics(v.name, *modified, r)
			m.Description = v.description
			alternatives[i] = ce.MetricsCalculator.ScenarioComparison(m, baseMetrics)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := &WhatIfSet{
		BaseResult:         &baseMetrics,
		AlternativeResults: alternatives,
	}
	set.Recommendations = GenerateWhatIfRecommendations(set)
	return set, nil
}

func (ce *CompareEngine) limit() int {
	if ce.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return ce.Concurrency
}
