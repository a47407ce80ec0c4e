package domain

import (
	"time"
)

// Report collects whichever calculator results a run produced for the output formatters
type Report struct {
	Title       string             `json:"title"`
	GeneratedAt time.Time          `json:"generated_at"`
	Mortgage    *MortgageSummary   `json:"mortgage,omitempty"`
	Housing     *CalculationResult `json:"housing,omitempty"`
	Retirement  *RetirementResult  `json:"retirement,omitempty"`
	Benefits    *EligibilityResult `json:"benefits,omitempty"`
	Salary      *SalaryResult      `json:"salary,omitempty"`
	Relocation  *RelocationResult  `json:"relocation,omitempty"`
	Utilities   []UtilityBreakdown `json:"utilities,omitempty"`
	Notes       []string           `json:"notes,omitempty"`
}

// Empty reports whether no calculator contributed to the report
func (r *Report) Empty() bool {
	return r.Mortgage == nil && r.Housing == nil && r.Retirement == nil &&
		r.Benefits == nil && r.Salary == nil && r.Relocation == nil && len(r.Utilities) == 0
}
