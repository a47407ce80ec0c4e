package transform

import (
	"fmt"

	"github.com/maplemetrics/maplemetrics/internal/domain"
)

// ChangeLifestyle switches the retirement spending baseline
type ChangeLifestyle struct {
	Lifestyle domain.Lifestyle
}

func (cl *ChangeLifestyle) Name() string {
	return "change_lifestyle"
}

func (cl *ChangeLifestyle) Description() string {
	return fmt.Sprintf("Plan for a %s lifestyle", cl.Lifestyle)
}

func (cl *ChangeLifestyle) Validate(base *domain.RetirementInputs) error {
	if base == nil {
		return NewTransformError(cl.Name(), "validate", "base inputs cannot be nil", nil)
	}
	if cl.Lifestyle == "" {
		return NewTransformError(cl.Name(), "validate", "lifestyle cannot be empty", nil)
	}
	if _, ok := domain.ParseLifestyle(string(cl.Lifestyle)); !ok {
		return NewTransformError(cl.Name(), "validate", fmt.Sprintf("unknown lifestyle %q", cl.Lifestyle), nil)
	}
	return nil
}

func (cl *ChangeLifestyle) Apply(base *domain.RetirementInputs) (*domain.RetirementInputs, error) {
	lifestyle, _ := domain.ParseLifestyle(string(cl.Lifestyle))
	modified := clone(base)
	modified.Lifestyle = lifestyle
	return modified, nil
}

// IncludeGovernmentPensions toggles the CPP/OAS offset against retirement costs
type IncludeGovernmentPensions struct {
	Include bool
}

func (ig *IncludeGovernmentPensions) Name() string {
	return "include_pensions"
}

func (ig *IncludeGovernmentPensions) Description() string {
	if ig.Include {
		return "Count CPP and OAS toward retirement income"
	}
	return "Ignore CPP and OAS"
}

func (ig *IncludeGovernmentPensions) Validate(base *domain.RetirementInputs) error {
	if base == nil {
		return NewTransformError(ig.Name(), "validate", "base inputs cannot be nil", nil)
	}
	return nil
}

func (ig *IncludeGovernmentPensions) Apply(base *domain.RetirementInputs) (*domain.RetirementInputs, error) {
	modified := clone(base)
	modified.IncludeGovernmentPensions = ig.Include
	return modified, nil
}
