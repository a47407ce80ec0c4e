package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []RetirementTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common what-if scenarios
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	for _, years := range []int{1, 2, 5} {
		registry.Register(Template{
			Name:        fmt.Sprintf("retire_later_%dyr", years),
			Description: fmt.Sprintf("Retire %d year(s) later", years),
			Transforms:  []RetirementTransform{&PostponeRetirement{Years: years}},
		})
	}
	registry.Register(Template{
		Name:        "retire_earlier_2yr",
		Description: "Retire 2 years earlier",
		Transforms:  []RetirementTransform{&PostponeRetirement{Years: -2}},
	})

	for _, amount := range []int64{100, 250, 500} {
		registry.Register(Template{
			Name:        fmt.Sprintf("save_more_%d", amount),
			Description: fmt.Sprintf("Save $%d more per month", amount),
			Transforms:  []RetirementTransform{&AdjustContribution{Delta: decimal.NewFromInt(amount)}},
		})
	}

	registry.Register(Template{
		Name:        "low_returns",
		Description: "Assume 4% annual returns",
		Transforms:  []RetirementTransform{&AdjustReturn{ReturnPercent: decimal.NewFromInt(4)}},
	})
	registry.Register(Template{
		Name:        "high_inflation",
		Description: "Assume 4% inflation",
		Transforms:  []RetirementTransform{&AdjustInflation{InflationPercent: decimal.NewFromInt(4)}},
	})

	for _, l := range domain.Lifestyles() {
		registry.Register(Template{
			Name:        "lifestyle_" + string(l),
			Description: fmt.Sprintf("Plan for a %s lifestyle", l),
			Transforms:  []RetirementTransform{&ChangeLifestyle{Lifestyle: l}},
		})
	}

	registry.Register(Template{
		Name:        "with_pensions",
		Description: "Count CPP and OAS toward retirement income",
		Transforms:  []RetirementTransform{&IncludeGovernmentPensions{Include: true}},
	})

	// Combination templates
	registry.Register(Template{
		Name:        "conservative",
		Description: "Conservative plan: retire 2 years later, save $250 more, assume 4% returns",
		Transforms: []RetirementTransform{
			&PostponeRetirement{Years: 2},
			&AdjustContribution{Delta: decimal.NewFromInt(250)},
			&AdjustReturn{ReturnPercent: decimal.NewFromInt(4)},
		},
	})
	registry.Register(Template{
		Name:        "frugal",
		Description: "Frugal plan: modest lifestyle, save $500 more, count CPP and OAS",
		Transforms: []RetirementTransform{
			&ChangeLifestyle{Lifestyle: domain.LifestyleModest},
			&AdjustContribution{Delta: decimal.NewFromInt(500)},
			&IncludeGovernmentPensions{Include: true},
		},
	})

	return registry
}

// ApplyTemplate applies a template to base inputs
func ApplyTemplate(base *domain.RetirementInputs, template Template) (*domain.RetirementInputs, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	order := []string{"Retirement Timing", "Savings", "Market Assumptions", "Lifestyle", "Combination Strategies"}
	categories := map[string][]Template{}
	for _, name := range registry.List() {
		t := registry.templates[name]
		var category string
		switch {
		case strings.HasPrefix(name, "retire_"):
			category = "Retirement Timing"
		case strings.HasPrefix(name, "save_"):
			category = "Savings"
		case name == "low_returns" || name == "high_inflation":
			category = "Market Assumptions"
		case strings.HasPrefix(name, "lifestyle_") || name == "with_pensions":
			category = "Lifestyle"
		default:
			category = "Combination Strategies"
		}
		categories[category] = append(categories[category], t)
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-22s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  maplemetrics retire --current-age 40 ... --what-if retire_later_2yr,save_more_250\n")

	return sb.String()
}
