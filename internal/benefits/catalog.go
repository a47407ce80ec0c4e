package benefits

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/maplemetrics/maplemetrics/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var embeddedCatalog []byte

type catalogDocument struct {
	Benefits []domain.BenefitRecord `yaml:"benefits"`
}

var (
	catalogOnce sync.Once
	catalog     []domain.BenefitRecord
	catalogErr  error
)

// DefaultCatalog returns a copy of the embedded benefits catalogue
func DefaultCatalog() ([]domain.BenefitRecord, error) {
	catalogOnce.Do(func() {
		catalog, catalogErr = ParseCatalog(embeddedCatalog)
	})
	if catalogErr != nil {
		return nil, catalogErr
	}
	return append([]domain.BenefitRecord(nil), catalog...), nil
}

// ParseCatalog decodes and validates a YAML benefits document
func ParseCatalog(data []byte) ([]domain.BenefitRecord, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse benefits catalog: %w", err)
	}

	seen := make(map[string]bool, len(doc.Benefits))
	for i, b := range doc.Benefits {
		if b.ID == "" {
			return nil, fmt.Errorf("benefit %d has no id", i)
		}
		if seen[b.ID] {
			return nil, fmt.Errorf("duplicate benefit id %s", b.ID)
		}
		seen[b.ID] = true

		switch b.Jurisdiction {
		case domain.JurisdictionFederal, domain.JurisdictionProvincial:
		default:
			return nil, fmt.Errorf("benefit %s: unknown jurisdiction %q", b.ID, b.Jurisdiction)
		}
		switch b.Frequency {
		case domain.FrequencyMonthly, domain.FrequencyAnnual, domain.FrequencyOneTime:
		default:
			return nil, fmt.Errorf("benefit %s: unknown frequency %q", b.ID, b.Frequency)
		}
		if b.MaxAmount.IsNegative() {
			return nil, fmt.Errorf("benefit %s: max amount must not be negative", b.ID)
		}
	}
	return doc.Benefits, nil
}

// FindByID returns the record with id
func FindByID(records []domain.BenefitRecord, id string) (domain.BenefitRecord, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return domain.BenefitRecord{}, false
}
