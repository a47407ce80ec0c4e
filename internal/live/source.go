// Package live supplies current market rates that override the static assumptions.
package live

import (
	"context"

	"github.com/maplemetrics/maplemetrics/internal/calculation"
	"github.com/maplemetrics/maplemetrics/internal/domain"
)

// Source provides current market rates
type Source interface {
	Rates(ctx context.Context) (domain.LiveRates, error)
}

// StaticSource always returns the same rates
type StaticSource struct {
	rates domain.LiveRates
}

// NewStaticSource returns a source serving the given assumptions
func NewStaticSource(a calculation.Assumptions) *StaticSource {
	return &StaticSource{rates: ratesFromAssumptions(a)}
}

// Rates returns the configured rates
func (s *StaticSource) Rates(ctx context.Context) (domain.LiveRates, error) {
	if err := ctx.Err(); err != nil {
		return domain.LiveRates{}, err
	}
	return s.rates, nil
}

func ratesFromAssumptions(a calculation.Assumptions) domain.LiveRates {
	return domain.LiveRates{
		MortgageRatePercent:   a.MortgageRatePercent,
		InflationPercent:      a.InflationPercent,
		ExpectedReturnPercent: a.ExpectedReturnPercent,
		Source:                "static",
	}
}
