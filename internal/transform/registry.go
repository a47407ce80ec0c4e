package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (RetirementTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("postpone_retirement", createPostponeRetirement)
	registry.Register("set_retirement_age", createSetRetirementAge)
	registry.Register("set_life_expectancy", createSetLifeExpectancy)
	registry.Register("adjust_contribution", createAdjustContribution)
	registry.Register("adjust_return", createAdjustReturn)
	registry.Register("adjust_inflation", createAdjustInflation)
	registry.Register("change_lifestyle", createChangeLifestyle)
	registry.Register("include_pensions", createIncludePensions)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (RetirementTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "postpone_retirement:years=2"
func (r *TransformRegistry) ParseTransformSpec(spec string) (RetirementTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses each spec, stopping at the first error
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]RetirementTransform, error) {
	out := make([]RetirementTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Factory functions for each transform

func intParam(transform, key string, params map[string]string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func decimalParam(transform, key string, params map[string]string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func createPostponeRetirement(params map[string]string) (RetirementTransform, error) {
	years, err := intParam("postpone_retirement", "years", params)
	if err != nil {
		return nil, err
	}
	return &PostponeRetirement{Years: years}, nil
}

func createSetRetirementAge(params map[string]string) (RetirementTransform, error) {
	age, err := intParam("set_retirement_age", "age", params)
	if err != nil {
		return nil, err
	}
	return &SetRetirementAge{Age: age}, nil
}

func createSetLifeExpectancy(params map[string]string) (RetirementTransform, error) {
	age, err := intParam("set_life_expectancy", "age", params)
	if err != nil {
		return nil, err
	}
	return &SetLifeExpectancy{Age: age}, nil
}

func createAdjustContribution(params map[string]string) (RetirementTransform, error) {
	delta, err := decimalParam("adjust_contribution", "delta", params)
	if err != nil {
		return nil, err
	}
	return &AdjustContribution{Delta: delta}, nil
}

func createAdjustReturn(params map[string]string) (RetirementTransform, error) {
	rate, err := decimalParam("adjust_return", "rate", params)
	if err != nil {
		return nil, err
	}
	return &AdjustReturn{ReturnPercent: rate}, nil
}

func createAdjustInflation(params map[string]string) (RetirementTransform, error) {
	rate, err := decimalParam("adjust_inflation", "rate", params)
	if err != nil {
		return nil, err
	}
	return &AdjustInflation{InflationPercent: rate}, nil
}

func createChangeLifestyle(params map[string]string) (RetirementTransform, error) {
	name, ok := params["lifestyle"]
	if !ok {
		return nil, fmt.Errorf("change_lifestyle requires 'lifestyle' parameter")
	}
	lifestyle, valid := domain.ParseLifestyle(name)
	if !valid || name == "" {
		return nil, fmt.Errorf("invalid lifestyle value: %q", name)
	}
	return &ChangeLifestyle{Lifestyle: lifestyle}, nil
}

func createIncludePensions(params map[string]string) (RetirementTransform, error) {
	include := true
	if raw, ok := params["include"]; ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid include value: %w", err)
		}
		include = v
	}
	return &IncludeGovernmentPensions{Include: include}, nil
}
