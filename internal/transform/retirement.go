package transform

import (
	"fmt"

	"github.com/maplemetrics/maplemetrics/internal/calculation"
	"github.com/maplemetrics/maplemetrics/internal/domain"
)

// PostponeRetirement shifts the retirement age by Years. Negative values retire earlier.
type PostponeRetirement struct {
	Years int
}

func (pt *PostponeRetirement) Name() string {
	return "postpone_retirement"
}

func (pt *PostponeRetirement) Description() string {
	if pt.Years < 0 {
		return fmt.Sprintf("Retire %d years earlier", -pt.Years)
	}
	return fmt.Sprintf("Postpone retirement by %d years", pt.Years)
}

func (pt *PostponeRetirement) Validate(base *domain.RetirementInputs) error {
	if base == nil {
		return NewTransformError(pt.Name(), "validate", "base inputs cannot be nil", nil)
	}

	newAge := base.RetirementAge + pt.Years
	if newAge <= base.CurrentAge {
		return NewTransformError(pt.Name(), "validate", fmt.Sprintf("retirement age %d must be after current age %d", newAge, base.CurrentAge), nil)
	}
	if newAge >= base.TerminalAge() {
		return NewTransformError(pt.Name(), "validate", fmt.Sprintf("retirement age %d must be before life expectancy %d", newAge, base.TerminalAge()), nil)
	}

	return nil
}

func (pt *PostponeRetirement) Apply(base *domain.RetirementInputs) (*domain.RetirementInputs, error) {
	modified := clone(base)
	modified.RetirementAge += pt.Years
	return modified, nil
}

// SetRetirementAge sets the retirement age to an absolute value.
// Unlike PostponeRetirement which is relative, this sets an exact age.
type SetRetirementAge struct {
	Age int
}

func (sra *SetRetirementAge) Name() string {
	return "set_retirement_age"
}

func (sra *SetRetirementAge) Description() string {
	return fmt.Sprintf("Retire at age %d", sra.Age)
}

func (sra *SetRetirementAge) Validate(base *domain.RetirementInputs) error {
	if base == nil {
		return NewTransformError(sra.Name(), "validate", "base inputs cannot be nil", nil)
	}
	if sra.Age <= base.CurrentAge {
		return NewTransformError(sra.Name(), "validate", fmt.Sprintf("age %d must be after current age %d", sra.Age, base.CurrentAge), nil)
	}
	if sra.Age >= base.TerminalAge() {
		return NewTransformError(sra.Name(), "validate", fmt.Sprintf("age %d must be before life expectancy %d", sra.Age, base.TerminalAge()), nil)
	}
	return nil
}

func (sra *SetRetirementAge) Apply(base *domain.RetirementInputs) (*domain.RetirementInputs, error) {
	modified := clone(base)
	modified.RetirementAge = sra.Age
	return modified, nil
}

// SetLifeExpectancy changes how long retirement must be funded
type SetLifeExpectancy struct {
	Age int
}

func (sle *SetLifeExpectancy) Name() string {
	return "set_life_expectancy"
}

func (sle *SetLifeExpectancy) Description() string {
	return fmt.Sprintf("Plan to age %d", sle.Age)
}

func (sle *SetLifeExpectancy) Validate(base *domain.RetirementInputs) error {
	if base == nil {
		return NewTransformError(sle.Name(), "validate", "base inputs cannot be nil", nil)
	}
	if sle.Age <= base.RetirementAge {
		return NewTransformError(sle.Name(), "validate", fmt.Sprintf("age %d must be after retirement age %d", sle.Age, base.RetirementAge), nil)
	}
	if sle.Age > calculation.MaxLifeExpectancy {
		return NewTransformError(sle.Name(), "validate", fmt.Sprintf("age %d exceeds %d", sle.Age, calculation.MaxLifeExpectancy), nil)
	}
	return nil
}

func (sle *SetLifeExpectancy) Apply(base *domain.RetirementInputs) (*domain.RetirementInputs, error) {
	modified := clone(base)
	modified.LifeExpectancy = sle.Age
	return modified, nil
}
