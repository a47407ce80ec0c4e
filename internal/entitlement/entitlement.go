// Package entitlement decides which calculators a subscription tier may use.
// It sits outside the calculation package; callers check Allows before invoking a calculator.
package entitlement

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maplemetrics/maplemetrics/internal/domain"
)

// Tier is an ordered subscription level
type Tier int

const (
	TierFree Tier = iota
	TierBasic
	TierPremium
)

func (t Tier) String() string {
	switch t {
	case TierFree:
		return "free"
	case TierBasic:
		return "basic"
	case TierPremium:
		return "premium"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// ParseTier reads a tier name. Unknown or empty names fall back to free.
func ParseTier(s string) (Tier, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "free":
		return TierFree, true
	case "basic":
		return TierBasic, true
	case "premium", "pro":
		return TierPremium, true
	default:
		return TierFree, false
	}
}

// Feature names a gated capability
type Feature string

const (
	FeatureMortgage      Feature = "mortgage"
	FeatureAffordability Feature = "affordability"
	FeatureHousing       Feature = "housing"
	FeatureBenefits      Feature = "benefits"
	FeatureCityLookup    Feature = "city_lookup"
	FeatureRetirement    Feature = "retirement"
	FeatureSalary        Feature = "salary"
	FeatureUtilities     Feature = "utilities"
	FeatureCompare       Feature = "compare"
	FeatureWhatIf        Feature = "what_if"
	FeatureSnapshots     Feature = "snapshots"
)

var requiredTier = map[Feature]Tier{
	FeatureMortgage:      TierFree,
	FeatureAffordability: TierFree,
	FeatureHousing:       TierFree,
	FeatureBenefits:      TierFree,
	FeatureCityLookup:    TierFree,
	FeatureRetirement:    TierBasic,
	FeatureSalary:        TierBasic,
	FeatureUtilities:     TierBasic,
	FeatureCompare:       TierPremium,
	FeatureWhatIf:        TierPremium,
	FeatureSnapshots:     TierPremium,
}

// Required returns the lowest tier that includes feature. Unknown features require premium.
func Required(feature Feature) Tier {
	if t, ok := requiredTier[feature]; ok {
		return t
	}
	return TierPremium
}

// Allows reports whether tier includes feature
func Allows(tier Tier, feature Feature) bool {
	return tier >= Required(feature)
}

// Check returns an error wrapping domain.ErrFeatureLocked when tier does not include feature
func Check(tier Tier, feature Feature) error {
	if Allows(tier, feature) {
		return nil
	}
	return fmt.Errorf("%s needs the %s tier, have %s: %w", feature, Required(feature), tier, domain.ErrFeatureLocked)
}

// Features lists every feature the tier includes, sorted by name
func Features(tier Tier) []Feature {
	var out []Feature
	for f, req := range requiredTier {
		if tier >= req {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
