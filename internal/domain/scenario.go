package domain

import (
	"github.com/shopspring/decimal"
)

// Scenario is one household's input file. Each section is optional; the
// calculators run for whichever sections are present.
type Scenario struct {
	Name       string            `yaml:"name" json:"name"`
	Profile    *UserProfile      `yaml:"profile,omitempty" json:"profile,omitempty"`
	Housing    *FinancialInput   `yaml:"housing,omitempty" json:"housing,omitempty"`
	Retirement *RetirementInputs `yaml:"retirement,omitempty" json:"retirement,omitempty"`
	Salary     *SalaryInput      `yaml:"salary,omitempty" json:"salary,omitempty"`
	Relocation *RelocationInput  `yaml:"relocation,omitempty" json:"relocation,omitempty"`
	Utilities  *UtilityUsage     `yaml:"utilities,omitempty" json:"utilities,omitempty"`
	WhatIf     []string          `yaml:"what_if,omitempty" json:"what_if,omitempty"`
}

// RelocationInput asks what salary in ToCity matches Salary in FromCity
type RelocationInput struct {
	Salary   decimal.Decimal `yaml:"salary" json:"salary"`
	FromCity string          `yaml:"from_city" json:"from_city"`
	ToCity   string          `yaml:"to_city" json:"to_city"`
}

// HasSections reports whether any calculator section is present
func (s *Scenario) HasSections() bool {
	return s.Profile != nil || s.Housing != nil || s.Retirement != nil ||
		s.Salary != nil || s.Relocation != nil || s.Utilities != nil
}
