package calculation

import (
	"errors"
	"fmt"
	"time"

	"github.com/maplemetrics/maplemetrics/internal/benefits"
	"github.com/maplemetrics/maplemetrics/internal/domain"
)

// RunScenario runs every calculator a scenario has a section for and collects
// the results into a report. A section whose city or province is missing from
// the reference tables is skipped with a note; validation errors abort the run.
func (e *Engine) RunScenario(s *domain.Scenario, catalog []domain.BenefitRecord) (*domain.Report, error) {
	if s == nil {
		return nil, errors.New("scenario is nil")
	}

	report := &domain.Report{
		Title:       s.Name,
		GeneratedAt: time.Now().UTC(),
	}
	skip := func(section string, err error) error {
		if errors.Is(err, domain.ErrInsufficientData) {
			report.Notes = append(report.Notes, fmt.Sprintf("%s skipped: %v", section, err))
			e.logger().Warnf("scenario %q: %s skipped: %v", s.Name, section, err)
			return nil
		}
		return fmt.Errorf("%s: %w", section, err)
	}

	if s.Housing != nil {
		housing, err := e.AnalyzeHousing(*s.Housing)
		if err != nil {
			if err := skip("housing", err); err != nil {
				return nil, err
			}
		} else {
			report.Housing = housing
			report.Mortgage = SummarizeMortgage(housing.Principal, housing.MortgageRate, housing.AmortizationYears, false)
			report.Notes = append(report.Notes, housing.Warnings...)
		}
	}

	if s.Retirement != nil {
		retirement, err := e.ProjectRetirement(*s.Retirement)
		if err != nil {
			if err := skip("retirement", err); err != nil {
				return nil, err
			}
		} else {
			report.Retirement = retirement
		}
	}

	if s.Profile != nil && catalog != nil {
		eligibility := benefits.Evaluate(catalog, *s.Profile)
		report.Benefits = &eligibility
	}

	if s.Salary != nil {
		salary, err := e.RequiredSalary(*s.Salary)
		if err != nil {
			if err := skip("salary", err); err != nil {
				return nil, err
			}
		} else {
			report.Salary = salary
		}
	}

	if s.Relocation != nil {
		rel, err := e.EquivalentSalary(s.Relocation.Salary, s.Relocation.FromCity, s.Relocation.ToCity)
		if err != nil {
			if err := skip("relocation", err); err != nil {
				return nil, err
			}
		} else {
			report.Relocation = rel
		}
	}

	if s.Utilities != nil {
		if s.Utilities.Province == "" {
			ranked, err := e.CompareUtilities(*s.Utilities)
			if err != nil {
				return nil, fmt.Errorf("utilities: %w", err)
			}
			report.Utilities = ranked
		} else {
			bill, err := e.UtilityCost(*s.Utilities)
			if err != nil {
				if err := skip("utilities", err); err != nil {
					return nil, err
				}
			} else {
				report.Utilities = []domain.UtilityBreakdown{*bill}
			}
		}
	}

	return report, nil
}
