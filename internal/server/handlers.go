package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/maplemetrics/maplemetrics/internal/benefits"
	"github.com/maplemetrics/maplemetrics/internal/calculation"
	"github.com/maplemetrics/maplemetrics/internal/compare"
	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/maplemetrics/maplemetrics/internal/storage"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var maxMortgageRate = decimal.NewFromInt(25)

// prepare fetches the stored profile and current rates concurrently and
// returns an engine carrying those rates. A rate source failure falls back to
// the static assumptions; a missing profile yields nil.
func (h *Handler) prepare(ctx context.Context, profileID string) (*calculation.Engine, *domain.UserProfile, error) {
	var rates domain.LiveRates
	var profile *domain.UserProfile

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := h.rates.Rates(gctx)
		if err != nil {
			h.logger.Warn("rate source failed, using static assumptions", zap.Error(err))
			return nil
		}
		rates = r
		return nil
	})
	if profileID != "" && h.profiles != nil {
		g.Go(func() error {
			p, err := h.profiles.Get(gctx, profileID)
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			profile = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return h.engine.WithRates(rates), profile, nil
}

// respond writes result and saves it as a snapshot when profileID is set
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, profileID, kind, status string, result any) {
	body := envelope{Status: status, Result: result}
	if profileID != "" && h.store != nil {
		snap, err := storage.NewSnapshot(profileID, kind, result)
		if err == nil {
			err = h.store.Save(r.Context(), snap)
		}
		if err != nil {
			h.logger.Error("failed to save snapshot", zap.String("profile_id", profileID), zap.String("kind", kind), zap.Error(err))
		} else {
			body.SnapshotID = snap.ID
		}
	}
	writeJSON(w, http.StatusOK, body)
}

type mortgageRequest struct {
	ProfileID   string           `json:"profileId"`
	Principal   decimal.Decimal  `json:"principal"`
	RatePercent *decimal.Decimal `json:"rate_percent"`
	Years       int              `json:"years"`
	Schedule    bool             `json:"schedule"`
}

func (h *Handler) mortgage(w http.ResponseWriter, r *http.Request) {
	var req mortgageRequest
	if !h.decode(w, r, &req) {
		return
	}
	engine, _, err := h.prepare(r.Context(), req.ProfileID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	rate := engine.Assumptions.MortgageRatePercent
	if req.RatePercent != nil {
		rate = *req.RatePercent
	}
	years := req.Years
	if years == 0 {
		years = engine.Assumptions.AmortizationYears
	}
	switch {
	case !req.Principal.IsPositive():
		h.writeError(w, r, domain.NewValidationError("principal", "must be positive"))
		return
	case rate.IsNegative() || rate.GreaterThan(maxMortgageRate):
		h.writeError(w, r, domain.NewValidationError("rate_percent", "must be between 0 and 25"))
		return
	case years < 1 || years > 30:
		h.writeError(w, r, domain.NewValidationError("years", "must be between 1 and 30"))
		return
	}

	summary := calculation.SummarizeMortgage(req.Principal, rate, years, req.Schedule)
	h.respond(w, r, req.ProfileID, "mortgage", StatusOK, summary)
}

type affordabilityRequest struct {
	ProfileID          string           `json:"profileId"`
	Cost               decimal.Decimal  `json:"cost"`
	GrossMonthlyIncome decimal.Decimal  `json:"gross_monthly_income"`
	Ratio              string           `json:"ratio"` // gds, tds or rent
	ThresholdPercent   *decimal.Decimal `json:"threshold_percent"`
}

func (h *Handler) affordability(w http.ResponseWriter, r *http.Request) {
	var req affordabilityRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Cost.IsNegative() {
		h.writeError(w, r, domain.NewValidationError("cost", "must not be negative"))
		return
	}

	th := h.engine.Thresholds
	var threshold decimal.Decimal
	switch req.Ratio {
	case "", "gds":
		threshold = th.GDS
	case "tds":
		threshold = th.TDS
	case "rent":
		threshold = th.Rent
	default:
		h.writeError(w, r, domain.NewValidationError("ratio", "must be gds, tds or rent"))
		return
	}
	if req.ThresholdPercent != nil {
		if !req.ThresholdPercent.IsPositive() {
			h.writeError(w, r, domain.NewValidationError("threshold_percent", "must be positive"))
			return
		}
		threshold = *req.ThresholdPercent
	}

	result := calculation.ClassifyAffordability(req.Cost, req.GrossMonthlyIncome, threshold)
	status := StatusOK
	if result.InsufficientData {
		status = StatusInsufficientData
	}
	h.respond(w, r, req.ProfileID, "affordability", status, result)
}

type housingRequest struct {
	ProfileID string `json:"profileId"`
	domain.FinancialInput
}

func (h *Handler) housing(w http.ResponseWriter, r *http.Request) {
	var req housingRequest
	if !h.decode(w, r, &req) {
		return
	}
	engine, profile, err := h.prepare(r.Context(), req.ProfileID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.AnnualIncome.IsZero() && profile != nil {
		req.AnnualIncome = profile.AnnualIncome
	}

	result, err := engine.AnalyzeHousing(req.FinancialInput)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	status := StatusOK
	if result.Classification == domain.ClassInsufficientData {
		status = StatusInsufficientData
	}
	h.respond(w, r, req.ProfileID, "housing", status, result)
}

// retirementBody is RetirementInputs as sent by callers. The rate fields
// shadow the embedded ones so an omitted rate can be told apart from an explicit 0.
type retirementBody struct {
	domain.RetirementInputs
	ExpectedReturnPercent *decimal.Decimal `json:"expected_return_percent"`
	InflationPercent      *decimal.Decimal `json:"inflation_percent"`
}

// resolve fills what the caller left out: age and province from the stored
// profile, rates from the engine's current assumptions
func (b retirementBody) resolve(a calculation.Assumptions, profile *domain.UserProfile) domain.RetirementInputs {
	in := b.RetirementInputs
	if profile != nil {
		if in.CurrentAge == 0 {
			in.CurrentAge = profile.Age
		}
		if in.Province == "" {
			in.Province = profile.Province
		}
	}
	in.ExpectedReturnPercent = a.ExpectedReturnPercent
	if b.ExpectedReturnPercent != nil {
		in.ExpectedReturnPercent = *b.ExpectedReturnPercent
	}
	in.InflationPercent = a.InflationPercent
	if b.InflationPercent != nil {
		in.InflationPercent = *b.InflationPercent
	}
	return in
}

type retirementRequest struct {
	ProfileID string `json:"profileId"`
	Earliest  bool   `json:"earliest"`
	retirementBody
}

type retirementResponse struct {
	Projection        *domain.RetirementResult `json:"projection"`
	EarliestFundedAge *int                     `json:"earliest_funded_age,omitempty"`
}

func (h *Handler) retirement(w http.ResponseWriter, r *http.Request) {
	var req retirementRequest
	if !h.decode(w, r, &req) {
		return
	}
	engine, profile, err := h.prepare(r.Context(), req.ProfileID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	in := req.resolve(engine.Assumptions, profile)

	projection, err := engine.ProjectRetirement(in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := retirementResponse{Projection: projection}
	if req.Earliest {
		age, _, ok, err := engine.EarliestFundedAge(in)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		if ok {
			resp.EarliestFundedAge = &age
		}
	}
	h.respond(w, r, req.ProfileID, "retirement", StatusOK, resp)
}

type whatIfRequest struct {
	ProfileID  string                  `json:"profileId"`
	Inputs     retirementBody          `json:"inputs"`
	Variations []string                `json:"variations"`
}

func (h *Handler) whatIf(w http.ResponseWriter, r *http.Request) {
	var req whatIfRequest
	if !h.decode(w, r, &req) {
		return
	}
	if len(req.Variations) == 0 {
		h.writeError(w, r, domain.NewValidationError("variations", "at least one template or transform is required"))
		return
	}
	engine, profile, err := h.prepare(r.Context(), req.ProfileID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	in := req.Inputs.resolve(engine.Assumptions, profile)
	set, err := compare.NewCompareEngine(engine).CompareWhatIf(r.Context(), in, req.Variations)
	if err != nil {
		if _, ok := domain.IsValidationError(err); !ok && !errors.Is(err, domain.ErrInsufficientData) {
			// unknown templates and bad transform parameters are caller errors
			writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, req.ProfileID, "what_if", StatusOK, set)
}

type benefitsRequest struct {
	ProfileID string `json:"profileId"`
	domain.UserProfile
}

func (h *Handler) benefits(w http.ResponseWriter, r *http.Request) {
	var req benefitsRequest
	if !h.decode(w, r, &req) {
		return
	}
	_, stored, err := h.prepare(r.Context(), req.ProfileID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	profile := req.UserProfile
	if profile.Province == "" && stored != nil {
		profile = *stored
	}
	switch {
	case profile.Age < 0 || profile.Age > 120:
		h.writeError(w, r, domain.NewValidationError("age", "must be between 0 and 120"))
		return
	case profile.AnnualIncome.IsNegative():
		h.writeError(w, r, domain.NewValidationError("annual_income", "must not be negative"))
		return
	}

	result := benefits.Evaluate(h.catalog, profile)
	h.respond(w, r, req.ProfileID, "benefits", StatusOK, result)
}

type salaryRequest struct {
	ProfileID string `json:"profileId"`
	domain.SalaryInput
}

func (h *Handler) salary(w http.ResponseWriter, r *http.Request) {
	var req salaryRequest
	if !h.decode(w, r, &req) {
		return
	}
	result, err := h.engine.RequiredSalary(req.SalaryInput)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, req.ProfileID, "salary", StatusOK, result)
}

type utilitiesRequest struct {
	ProfileID string `json:"profileId"`
	domain.UtilityUsage
}

func (h *Handler) utilities(w http.ResponseWriter, r *http.Request) {
	var req utilitiesRequest
	if !h.decode(w, r, &req) {
		return
	}

	var result []domain.UtilityBreakdown
	if req.Province == "" {
		ranked, err := h.engine.CompareUtilities(req.UtilityUsage)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		result = ranked
	} else {
		bill, err := h.engine.UtilityCost(req.UtilityUsage)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		result = []domain.UtilityBreakdown{*bill}
	}
	h.respond(w, r, req.ProfileID, "utilities", StatusOK, result)
}

func (h *Handler) city(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	rec, ok := h.engine.Tables.City(key)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "city " + key + " not found"})
		return
	}
	writeJSON(w, http.StatusOK, envelope{Status: StatusOK, Result: rec})
}

type compareRequest struct {
	ProfileID          string          `json:"profileId"`
	BaseCity           string          `json:"base_city"`
	Cities             []string        `json:"cities"`
	AnnualIncome       decimal.Decimal `json:"annual_income"`
	MonthlyDebts       decimal.Decimal `json:"monthly_debts"`
	DownPaymentPercent decimal.Decimal `json:"down_payment_percent"`
}

func (h *Handler) compareCities(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if !h.decode(w, r, &req) {
		return
	}
	engine, _, err := h.prepare(r.Context(), req.ProfileID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	set, err := compare.NewCompareEngine(engine).CompareCities(r.Context(), compare.CityOptions{
		BaseCity:           req.BaseCity,
		Cities:             req.Cities,
		AnnualIncome:       req.AnnualIncome,
		MonthlyDebts:       req.MonthlyDebts,
		DownPaymentPercent: req.DownPaymentPercent,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, req.ProfileID, "compare", StatusOK, set)
}

func (h *Handler) snapshots(w http.ResponseWriter, r *http.Request) {
	profileID := r.URL.Query().Get("profile")
	if profileID == "" {
		h.writeError(w, r, domain.NewValidationError("profile", "is required"))
		return
	}
	if h.store == nil {
		writeJSON(w, http.StatusOK, envelope{Status: StatusOK, Result: []any{}})
		return
	}

	list, err := h.store.ListByProfile(r.Context(), profileID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Status: StatusOK, Result: list})
}

func (h *Handler) createProfile(w http.ResponseWriter, r *http.Request) {
	if h.profiles == nil {
		writeJSON(w, http.StatusNotImplemented, errorBody{Error: "profiles are not enabled"})
		return
	}
	var p domain.UserProfile
	if !h.decode(w, r, &p) {
		return
	}
	if p.Province == "" {
		h.writeError(w, r, domain.NewValidationError("province", "is required"))
		return
	}
	id, err := h.profiles.Put(r.Context(), p)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	p.ID = id
	writeJSON(w, http.StatusCreated, envelope{Status: StatusOK, Result: p})
}

func (h *Handler) versionInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}
