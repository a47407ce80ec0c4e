// Package benefits matches a user profile against the government benefits catalogue.
// Matching is a strict AND of every criterion a record declares; there is no scoring.
package benefits

import (
	"fmt"

	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/shopspring/decimal"
)

// FilterEligible returns the records whose every present criterion the profile meets,
// in input order. The input slice is not modified.
func FilterEligible(records []domain.BenefitRecord, profile domain.UserProfile) []domain.BenefitRecord {
	eligible := make([]domain.BenefitRecord, 0, len(records))
	for _, r := range records {
		if len(failedCriteria(r.Criteria, profile)) == 0 {
			eligible = append(eligible, r)
		}
	}
	return eligible
}

// TotalAnnualValue sums the yearly value of records, annualizing monthly benefits
func TotalAnnualValue(records []domain.BenefitRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.AnnualValue())
	}
	return total
}

// Evaluate filters records and totals the eligible ones
func Evaluate(records []domain.BenefitRecord, profile domain.UserProfile) domain.EligibilityResult {
	eligible := FilterEligible(records, profile)
	return domain.EligibilityResult{
		Eligible:         eligible,
		TotalAnnualValue: TotalAnnualValue(eligible),
	}
}

// Explain lists, in plain words, every criterion of record the profile fails.
// An empty result means the profile is eligible.
func Explain(record domain.BenefitRecord, profile domain.UserProfile) []string {
	return failedCriteria(record.Criteria, profile)
}

func failedCriteria(c domain.Criteria, p domain.UserProfile) []string {
	var failed []string
	if c.MinAge != nil && p.Age < *c.MinAge {
		failed = append(failed, fmt.Sprintf("must be at least %d years old", *c.MinAge))
	}
	if c.MaxAge != nil && p.Age > *c.MaxAge {
		failed = append(failed, fmt.Sprintf("must be at most %d years old", *c.MaxAge))
	}
	if c.MaxIncome != nil && p.AnnualIncome.GreaterThan(*c.MaxIncome) {
		failed = append(failed, fmt.Sprintf("income must not exceed $%s", c.MaxIncome.StringFixed(0)))
	}
	if len(c.Provinces) > 0 && !inProvince(c.Provinces, p.Province) {
		failed = append(failed, fmt.Sprintf("only available in %v", c.Provinces))
	}
	failed = appendFlag(failed, c.RequiresChildren, p.HasChildren, "children in the household")
	failed = appendFlag(failed, c.RequiresStudent, p.IsStudent, "student status")
	failed = appendFlag(failed, c.RequiresDisability, p.IsDisabled, "a qualifying disability")
	failed = appendFlag(failed, c.RequiresSenior, p.IsSenior, "senior status")
	return failed
}

func appendFlag(failed []string, required *bool, actual bool, what string) []string {
	if required == nil || *required == actual {
		return failed
	}
	if *required {
		return append(failed, "requires "+what)
	}
	return append(failed, "not available with "+what)
}

func inProvince(allowed []string, province string) bool {
	want := domain.NormalizeKey(province)
	if want == "" {
		return false
	}
	for _, code := range allowed {
		if domain.NormalizeKey(code) == want {
			return true
		}
	}
	return false
}
