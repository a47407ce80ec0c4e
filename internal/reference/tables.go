// Package reference loads the static city and province figures the calculators look up.
// Tables are built once and never mutated; every accessor returns a copy.
package reference

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultSource is the provenance stamped on records that do not name one
const DefaultSource = "sample estimate"

//go:embed data/reference.yaml
var embeddedData []byte

type document struct {
	Lifestyles map[domain.Lifestyle]domain.LifestyleProfile `yaml:"lifestyles"`
	Pensions   domain.GovernmentPensions                    `yaml:"pensions"`
	Provinces  []domain.ProvinceRecord                      `yaml:"provinces"`
	Cities     []domain.CityCostRecord                      `yaml:"cities"`
}

type postalEntry struct {
	prefix string
	city   string
}

// Tables is an immutable set of reference records
type Tables struct {
	cities        map[string]domain.CityCostRecord
	cityAliases   map[string]string
	provinces     map[string]domain.ProvinceRecord
	provinceAlias map[string]string
	lifestyles    map[domain.Lifestyle]domain.LifestyleProfile
	pensions      domain.GovernmentPensions
	postal        []postalEntry
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
	defaultErr    error
)

// Default returns the tables built from the embedded data, parsing them on first use
func Default() (*Tables, error) {
	defaultOnce.Do(func() {
		defaultTables, defaultErr = Parse(embeddedData)
	})
	return defaultTables, defaultErr
}

// MustDefault is Default for callers that treat broken embedded data as a programming error
func MustDefault() *Tables {
	t, err := Default()
	if err != nil {
		panic(fmt.Sprintf("embedded reference data is invalid: %v", err))
	}
	return t
}

// LoadFile reads an override reference document from disk
func LoadFile(path string) (*Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference data %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a reference document from r
func Load(r io.Reader) (*Tables, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference data: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML reference document
func Parse(data []byte) (*Tables, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse reference data: %w", err)
	}

	t := &Tables{
		cities:        make(map[string]domain.CityCostRecord, len(doc.Cities)),
		cityAliases:   make(map[string]string, len(doc.Cities)),
		provinces:     make(map[string]domain.ProvinceRecord, len(doc.Provinces)),
		provinceAlias: make(map[string]string, len(doc.Provinces)),
		lifestyles:    make(map[domain.Lifestyle]domain.LifestyleProfile, len(doc.Lifestyles)),
		pensions:      doc.Pensions,
	}

	for _, l := range domain.Lifestyles() {
		p, ok := doc.Lifestyles[l]
		if !ok {
			return nil, fmt.Errorf("lifestyle %q is missing", l)
		}
		t.lifestyles[l] = p
	}

	for _, p := range doc.Provinces {
		code := domain.NormalizeKey(p.Code)
		if code == "" {
			return nil, fmt.Errorf("province %q has no code", p.Name)
		}
		if _, dup := t.provinces[code]; dup {
			return nil, fmt.Errorf("duplicate province code %s", p.Code)
		}
		for _, l := range domain.Lifestyles() {
			if _, ok := p.RetirementCost[l]; !ok {
				return nil, fmt.Errorf("province %s has no %s retirement cost", p.Code, l)
			}
		}
		p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
		if p.Source == "" {
			p.Source = DefaultSource
		}
		t.provinces[code] = p
		t.provinceAlias[domain.NormalizeKey(p.Name)] = code
	}

	for _, c := range doc.Cities {
		key := domain.NormalizeKey(c.Key)
		if key == "" {
			key = domain.NormalizeKey(c.Name)
		}
		if key == "" {
			return nil, fmt.Errorf("city record without key or name")
		}
		if _, dup := t.cities[key]; dup {
			return nil, fmt.Errorf("duplicate city %s", c.Key)
		}
		if _, ok := t.provinces[domain.NormalizeKey(c.Province)]; !ok {
			return nil, fmt.Errorf("city %s references unknown province %s", c.Key, c.Province)
		}
		if !c.CostMultiplier.IsPositive() {
			return nil, fmt.Errorf("city %s must have a positive cost multiplier", c.Key)
		}
		c.Key = key
		c.Province = strings.ToUpper(strings.TrimSpace(c.Province))
		if c.Source == "" {
			c.Source = DefaultSource
		}
		t.cities[key] = c
		t.cityAliases[domain.NormalizeKey(c.Name)] = key
		for _, prefix := range c.PostalPrefixes {
			t.postal = append(t.postal, postalEntry{prefix: normalizePostal(prefix), city: key})
		}
	}

	// Longest prefix first so "C1A" wins over a bare "C"
	sort.SliceStable(t.postal, func(i, j int) bool {
		return len(t.postal[i].prefix) > len(t.postal[j].prefix)
	})

	return t, nil
}

// City looks a city up by key or display name. ok is false when the city is unknown.
func (t *Tables) City(key string) (domain.CityCostRecord, bool) {
	norm := domain.NormalizeKey(key)
	c, ok := t.cities[norm]
	if !ok {
		alias, found := t.cityAliases[norm]
		if !found {
			return domain.CityCostRecord{}, false
		}
		c = t.cities[alias]
	}
	return cloneCity(c), true
}

// CityByPostalCode matches the leading characters of a Canadian postal code
func (t *Tables) CityByPostalCode(code string) (domain.CityCostRecord, bool) {
	norm := normalizePostal(code)
	if norm == "" {
		return domain.CityCostRecord{}, false
	}
	for _, e := range t.postal {
		if strings.HasPrefix(norm, e.prefix) {
			return cloneCity(t.cities[e.city]), true
		}
	}
	return domain.CityCostRecord{}, false
}

// Province looks a province up by two-letter code or full name
func (t *Tables) Province(codeOrName string) (domain.ProvinceRecord, bool) {
	norm := domain.NormalizeKey(codeOrName)
	p, ok := t.provinces[norm]
	if !ok {
		code, found := t.provinceAlias[norm]
		if !found {
			return domain.ProvinceRecord{}, false
		}
		p = t.provinces[code]
	}
	return cloneProvince(p), true
}

// Lifestyle returns the spending profile for l
func (t *Tables) Lifestyle(l domain.Lifestyle) (domain.LifestyleProfile, bool) {
	p, ok := t.lifestyles[l]
	return p, ok
}

// Pensions returns the government pension estimates
func (t *Tables) Pensions() domain.GovernmentPensions {
	return t.pensions
}

// Cities returns every city sorted by key
func (t *Tables) Cities() []domain.CityCostRecord {
	out := make([]domain.CityCostRecord, 0, len(t.cities))
	for _, c := range t.cities {
		out = append(out, cloneCity(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Provinces returns every province sorted by code
func (t *Tables) Provinces() []domain.ProvinceRecord {
	out := make([]domain.ProvinceRecord, 0, len(t.provinces))
	for _, p := range t.provinces {
		out = append(out, cloneProvince(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func normalizePostal(code string) string {
	return strings.ToUpper(strings.Join(strings.Fields(code), ""))
}

func cloneCity(c domain.CityCostRecord) domain.CityCostRecord {
	if c.PostalPrefixes != nil {
		c.PostalPrefixes = append([]string(nil), c.PostalPrefixes...)
	}
	return c
}

func cloneProvince(p domain.ProvinceRecord) domain.ProvinceRecord {
	if p.RetirementCost != nil {
		costs := make(map[domain.Lifestyle]decimal.Decimal, len(p.RetirementCost))
		for k, v := range p.RetirementCost {
			costs[k] = v
		}
		p.RetirementCost = costs
	}
	return p
}
