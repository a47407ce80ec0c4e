// Package calculation implements the MapleMetrics formula set: amortization,
// affordability ratios, retirement projection, salary requirements and utility costs.
// Every calculation is a pure function of its inputs and the injected reference tables.
package calculation

import (
	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/maplemetrics/maplemetrics/internal/reference"
	"github.com/shopspring/decimal"
)

// Assumptions are the fallback market values used when an input or live source does not supply one
type Assumptions struct {
	MortgageRatePercent   decimal.Decimal `json:"mortgage_rate_percent"`
	AmortizationYears     int             `json:"amortization_years"`
	InflationPercent      decimal.Decimal `json:"inflation_percent"`
	ExpectedReturnPercent decimal.Decimal `json:"expected_return_percent"`
}

// DefaultAssumptions returns the static defaults
func DefaultAssumptions() Assumptions {
	return Assumptions{
		MortgageRatePercent:   decimal.NewFromFloat(5.5),
		AmortizationYears:     25,
		InflationPercent:      decimal.NewFromFloat(2.5),
		ExpectedReturnPercent: decimal.NewFromInt(6),
	}
}

// Engine evaluates calculations against an immutable set of reference tables
type Engine struct {
	Tables      *reference.Tables
	Thresholds  domain.Thresholds
	Assumptions Assumptions
	Logger      Logger
}

// NewEngine creates an engine with default thresholds and assumptions
func NewEngine(tables *reference.Tables) *Engine {
	return &Engine{
		Tables:      tables,
		Thresholds:  domain.DefaultThresholds(),
		Assumptions: DefaultAssumptions(),
		Logger:      NopLogger{},
	}
}

// NewDefaultEngine creates an engine over the embedded reference tables
func NewDefaultEngine() (*Engine, error) {
	tables, err := reference.Default()
	if err != nil {
		return nil, err
	}
	return NewEngine(tables), nil
}

// SetLogger sets the logger; nil resets to a no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// WithRates returns a copy of the engine whose assumptions are overridden by
// the positive fields of rates. The receiver is left untouched.
func (e *Engine) WithRates(rates domain.LiveRates) *Engine {
	cp := *e
	if rates.MortgageRatePercent.IsPositive() {
		cp.Assumptions.MortgageRatePercent = rates.MortgageRatePercent
	}
	if rates.InflationPercent.IsPositive() {
		cp.Assumptions.InflationPercent = rates.InflationPercent
	}
	if rates.ExpectedReturnPercent.IsPositive() {
		cp.Assumptions.ExpectedReturnPercent = rates.ExpectedReturnPercent
	}
	return &cp
}

func (e *Engine) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}
