package config

import (
	"fmt"
	"os"

	"github.com/maplemetrics/maplemetrics/internal/calculation"
	"github.com/maplemetrics/maplemetrics/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a scenario document
func (ip *InputParser) Parse(data []byte) (*domain.Scenario, error) {
	var scenario domain.Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}

	return &scenario, nil
}

// ValidateScenario validates every section present in the scenario
func (ip *InputParser) ValidateScenario(s *domain.Scenario) error {
	if !s.HasSections() {
		return fmt.Errorf("scenario %q has no calculator sections", s.Name)
	}
	if s.Profile != nil {
		if err := ip.validateProfile(s.Profile); err != nil {
			return fmt.Errorf("profile validation failed: %w", err)
		}
	}
	if s.Housing != nil {
		if err := calculation.ValidateFinancialInput(*s.Housing).Err(); err != nil {
			return fmt.Errorf("housing validation failed: %w", err)
		}
		if s.Housing.City == "" && s.Housing.PostalCode == "" {
			return fmt.Errorf("housing validation failed: %w", domain.NewValidationError("city", "city or postal_code is required"))
		}
	}
	if s.Retirement != nil {
		if err := calculation.ValidateRetirementInputs(*s.Retirement).Err(); err != nil {
			return fmt.Errorf("retirement validation failed: %w", err)
		}
	}
	if s.Salary != nil && s.Salary.City == "" {
		return fmt.Errorf("salary validation failed: %w", domain.NewValidationError("city", "is required"))
	}
	if s.Relocation != nil {
		if s.Relocation.FromCity == "" || s.Relocation.ToCity == "" {
			return fmt.Errorf("relocation validation failed: %w", domain.NewValidationError("from_city", "both cities are required"))
		}
		if s.Relocation.Salary.IsNegative() {
			return fmt.Errorf("relocation validation failed: %w", domain.NewValidationError("salary", "must not be negative"))
		}
	}
	if s.Utilities != nil {
		if s.Utilities.ElectricityKWh.IsNegative() || s.Utilities.GasCubicMetres.IsNegative() {
			return fmt.Errorf("utilities validation failed: %w", domain.NewValidationError("usage", "must not be negative"))
		}
	}
	return nil
}

func (ip *InputParser) validateProfile(p *domain.UserProfile) error {
	if p.Age < 0 || p.Age > 120 {
		return domain.NewValidationError("age", "must be between 0 and 120")
	}
	if p.AnnualIncome.IsNegative() {
		return domain.NewValidationError("annual_income", "must not be negative")
	}
	if p.HouseholdSize < 0 {
		return domain.NewValidationError("household_size", "must not be negative")
	}
	return nil
}
