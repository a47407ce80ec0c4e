package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/maplemetrics/maplemetrics/internal/benefits"
	"github.com/maplemetrics/maplemetrics/internal/calculation"
	"github.com/maplemetrics/maplemetrics/internal/config"
	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/maplemetrics/maplemetrics/internal/live"
	"github.com/maplemetrics/maplemetrics/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testEnv struct {
	handler  *Handler
	store    *storage.MemoryStore
	profiles *storage.ProfileStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	engine, err := calculation.NewDefaultEngine()
	require.NoError(t, err)
	catalog, err := benefits.DefaultCatalog()
	require.NoError(t, err)

	env := &testEnv{store: storage.NewMemoryStore(), profiles: storage.NewProfileStore()}
	env.handler = NewHandler(Deps{
		Engine:   engine,
		Catalog:  catalog,
		Store:    env.store,
		Profiles: env.profiles,
		Version:  "1.2.3",
	})
	return env
}

// do sends body to path and decodes the JSON response into a map
func (e *testEnv) do(t *testing.T, method, path, tier string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if tier != "" {
		req.Header.Set(TierHeader, tier)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

func result(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	r, ok := body["result"].(map[string]any)
	require.True(t, ok, "result is not an object: %v", body)
	return r
}

func TestMortgage(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodPost, "/api/mortgage", "", map[string]any{"principal": 400000})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusOK, body["status"])
	r := result(t, body)
	assert.Equal(t, "2456.35", r["monthly_payment"])
	assert.Equal(t, float64(25), r["years"])
	assert.Nil(t, r["schedule"])
	assert.Nil(t, body["snapshotId"])
}

func TestMortgage_WithScheduleAndSnapshot(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodPost, "/api/mortgage", "", map[string]any{
		"principal": 120000, "rate_percent": 0, "years": 10, "schedule": true, "profileId": "p-1",
	})
	require.Equal(t, http.StatusOK, code)
	r := result(t, body)
	assert.Equal(t, "1000", r["monthly_payment"])
	assert.Len(t, r["schedule"], 120)

	id, ok := body["snapshotId"].(string)
	require.True(t, ok)
	snap, err := env.store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "p-1", snap.ProfileID)
	assert.Equal(t, "mortgage", snap.Kind)
}

func TestMortgage_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"zero principal", map[string]any{"principal": 0}, "principal"},
		{"negative rate", map[string]any{"principal": 1000, "rate_percent": -1}, "rate_percent"},
		{"too many years", map[string]any{"principal": 1000, "years": 40}, "years"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := env.do(t, http.MethodPost, "/api/mortgage", "", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, code)
			assert.Equal(t, tt.field, body["field"])
			assert.NotEmpty(t, body["reason"])
		})
	}
}

func TestBadRequests(t *testing.T) {
	env := newTestEnv(t)

	code, _ := env.do(t, http.MethodPost, "/api/mortgage", "", `{"principal": `)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := env.do(t, http.MethodPost, "/api/mortgage", "", `{"principle": 1000}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["error"], "unknown field")

	req := httptest.NewRequest(http.MethodGet, "/api/mortgage", nil)
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestBodyTooLarge(t *testing.T) {
	engine, err := calculation.NewDefaultEngine()
	require.NoError(t, err)
	h := NewHandler(Deps{Engine: engine, MaxBodyBytes: 16})

	req := httptest.NewRequest(http.MethodPost, "/api/mortgage", bytes.NewBufferString(`{"principal": 400000, "years": 25}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestAffordability(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodPost, "/api/affordability", "", map[string]any{
		"cost": 3200, "gross_monthly_income": 10000,
	})
	require.Equal(t, http.StatusOK, code)
	r := result(t, body)
	assert.Equal(t, "32", r["ratio"])
	assert.Equal(t, true, r["within_threshold"])

	code, body = env.do(t, http.MethodPost, "/api/affordability", "", map[string]any{
		"cost": 1500, "gross_monthly_income": 0, "ratio": "rent",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusInsufficientData, body["status"])
	assert.Equal(t, true, result(t, body)["insufficient_data"])

	code, body = env.do(t, http.MethodPost, "/api/affordability", "", map[string]any{"cost": 1, "gross_monthly_income": 1, "ratio": "ltv"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "ratio", body["field"])
}

func TestHousing(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodPost, "/api/housing", "", map[string]any{
		"annual_income": 150000, "down_payment_percent": 20, "city": "Calgary",
	})
	require.Equal(t, http.StatusOK, code)
	r := result(t, body)
	assert.Equal(t, "Calgary", r["city"])
	assert.Equal(t, "affordable", r["classification"])
}

func TestHousing_InsufficientData(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodPost, "/api/housing", "", map[string]any{
		"annual_income": 90000, "down_payment_percent": 20, "city": "Gotham",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusInsufficientData, body["status"])
	assert.Contains(t, body["reason"], "Gotham")

	code, body = env.do(t, http.MethodPost, "/api/housing", "", map[string]any{
		"down_payment_percent": 20, "city": "Regina",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusInsufficientData, body["status"])
	assert.Equal(t, "insufficient_data", result(t, body)["classification"])
}

func TestHousing_UsesStoredProfileIncome(t *testing.T) {
	env := newTestEnv(t)
	id, err := env.profiles.Put(context.Background(), domain.UserProfile{
		Age: 40, Province: "AB", AnnualIncome: decimal.NewFromInt(150000),
	})
	require.NoError(t, err)

	code, body := env.do(t, http.MethodPost, "/api/housing", "", map[string]any{
		"profileId": id, "down_payment_percent": 20, "city": "Calgary",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusOK, body["status"])
	assert.Equal(t, "affordable", result(t, body)["classification"])
	assert.NotEmpty(t, body["snapshotId"])
}

func TestTierGating(t *testing.T) {
	env := newTestEnv(t)
	retirement := map[string]any{
		"current_age": 40, "retirement_age": 65, "current_savings": 10000,
		"monthly_contribution": 200, "expected_return_percent": 5, "inflation_percent": 2,
		"province": "ON",
	}

	code, body := env.do(t, http.MethodPost, "/api/retirement", "", retirement)
	assert.Equal(t, http.StatusPaymentRequired, code)
	assert.Equal(t, "basic", body["requiredTier"])

	code, body = env.do(t, http.MethodPost, "/api/retirement", "unknown-tier", retirement)
	assert.Equal(t, http.StatusPaymentRequired, code, "unknown tiers are free")

	code, body = env.do(t, http.MethodPost, "/api/retirement", "basic", retirement)
	require.Equal(t, http.StatusOK, code)
	projection := result(t, body)["projection"].(map[string]any)
	assert.Equal(t, "shortfall", projection["status"])

	code, _ = env.do(t, http.MethodPost, "/api/compare/cities", "basic", map[string]any{})
	assert.Equal(t, http.StatusPaymentRequired, code)
}

func TestRetirement_Earliest(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodPost, "/api/retirement", "premium", map[string]any{
		"current_age": 30, "retirement_age": 60, "current_savings": 100000,
		"monthly_contribution": 2500, "expected_return_percent": 6, "inflation_percent": 2,
		"province": "NB", "lifestyle": "modest", "earliest": true,
	})
	require.Equal(t, http.StatusOK, code)
	r := result(t, body)
	age, ok := r["earliest_funded_age"].(float64)
	require.True(t, ok, "expected an earliest funded age: %v", r)
	assert.Greater(t, age, float64(30))
	assert.Less(t, age, float64(90))
}

func TestRetirement_Validation(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodPost, "/api/retirement", "basic", map[string]any{
		"current_age": 40, "retirement_age": 35, "province": "ON",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "retirement_age", body["field"])
}

func TestWhatIf(t *testing.T) {
	env := newTestEnv(t)
	inputs := map[string]any{
		"current_age": 40, "retirement_age": 65, "current_savings": 10000,
		"monthly_contribution": 200, "expected_return_percent": 5, "inflation_percent": 2,
		"province": "ON",
	}

	code, body := env.do(t, http.MethodPost, "/api/retirement/whatif", "premium", map[string]any{
		"inputs": inputs, "variations": []string{"save_more_500", "postpone_retirement:years=2"},
	})
	require.Equal(t, http.StatusOK, code)
	alts := result(t, body)["alternativeResults"].([]any)
	assert.Len(t, alts, 2)

	code, _ = env.do(t, http.MethodPost, "/api/retirement/whatif", "premium", map[string]any{
		"inputs": inputs, "variations": []string{"retire_never"},
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = env.do(t, http.MethodPost, "/api/retirement/whatif", "premium", map[string]any{"inputs": inputs})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "variations", body["field"])
}

func TestBenefits(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodPost, "/api/benefits", "", map[string]any{
		"age": 34, "annual_income": 45000, "province": "ON", "household_size": 3, "has_children": true,
	})
	require.Equal(t, http.StatusOK, code)
	r := result(t, body)
	assert.NotEmpty(t, r["eligible"])
	assert.NotEqual(t, "0", r["total_annual_value"])

	code, body = env.do(t, http.MethodPost, "/api/benefits", "", map[string]any{"age": 150, "province": "ON"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "age", body["field"])
}

func TestBenefits_StoredProfile(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodPost, "/api/profiles", "", map[string]any{
		"age": 70, "annual_income": 18000, "province": "ON", "is_senior": true,
	})
	require.Equal(t, http.StatusCreated, code)
	id := result(t, body)["id"].(string)

	code, body = env.do(t, http.MethodPost, "/api/benefits", "", map[string]any{"profileId": id})
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, result(t, body)["eligible"])
}

func TestSalaryAndUtilities(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodPost, "/api/salary", "basic", map[string]any{"city": "Toronto"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Toronto", result(t, body)["city"])

	code, body = env.do(t, http.MethodPost, "/api/salary", "basic", map[string]any{"city": "Gotham"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusInsufficientData, body["status"])

	code, body = env.do(t, http.MethodPost, "/api/utilities", "basic", map[string]any{
		"province": "QC", "electricity_kwh": 650, "gas_cubic_metres": 0, "include_water": true,
	})
	require.Equal(t, http.StatusOK, code)
	bills := body["result"].([]any)
	require.Len(t, bills, 1)
	assert.Equal(t, "QC", bills[0].(map[string]any)["province"])

	code, body = env.do(t, http.MethodPost, "/api/utilities", "basic", map[string]any{"electricity_kwh": 650})
	require.Equal(t, http.StatusOK, code)
	assert.Greater(t, len(body["result"].([]any)), 1)
}

func TestCityLookup(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodGet, "/api/cities/halifax", "", nil)
	require.Equal(t, http.StatusOK, code)
	r := result(t, body)
	assert.Equal(t, "Halifax", r["name"])
	assert.Equal(t, "1900", r["avg_rent"])

	code, _ = env.do(t, http.MethodGet, "/api/cities/gotham", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCompareCities(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodPost, "/api/compare/cities", "premium", map[string]any{
		"base_city": "toronto", "cities": []string{"calgary", "halifax"},
		"annual_income": 150000, "down_payment_percent": 20, "profileId": "p-9",
	})
	require.Equal(t, http.StatusOK, code)
	r := result(t, body)
	assert.Equal(t, "Toronto", r["baseCity"])
	assert.Len(t, r["alternativeResults"], 2)

	code, body = env.do(t, http.MethodGet, "/api/snapshots?profile=p-9", "premium", nil)
	require.Equal(t, http.StatusOK, code)
	snaps := body["result"].([]any)
	require.Len(t, snaps, 1)
	assert.Equal(t, "compare", snaps[0].(map[string]any)["kind"])

	code, body = env.do(t, http.MethodGet, "/api/snapshots", "premium", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "profile", body["field"])
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodGet, "/api/version", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "1.2.3", body["version"])
}

type failingRates struct{}

func (failingRates) Rates(context.Context) (domain.LiveRates, error) {
	return domain.LiveRates{}, errors.New("rate feed down")
}

type fixedRates struct{ rates domain.LiveRates }

func (f fixedRates) Rates(context.Context) (domain.LiveRates, error) { return f.rates, nil }

func TestLiveRatesApplied(t *testing.T) {
	engine, err := calculation.NewDefaultEngine()
	require.NoError(t, err)

	tests := []struct {
		name     string
		rates    live.Source
		wantRate string
	}{
		{"zero keeps default", fixedRates{domain.LiveRates{}}, "5.5"},
		{"live override", fixedRates{domain.LiveRates{MortgageRatePercent: decimal.NewFromInt(6), Source: "redis"}}, "6"},
		{"failure falls back", failingRates{}, "5.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &testEnv{handler: NewHandler(Deps{Engine: engine, Rates: tt.rates})}
			code, body := env.do(t, http.MethodPost, "/api/mortgage", "", map[string]any{"principal": 400000})
			require.Equal(t, http.StatusOK, code)
			assert.Equal(t, tt.wantRate, result(t, body)["rate_percent"])
		})
	}
}

// retireAt40 leaves every rate to the server
func retireAt40() map[string]any {
	return map[string]any{
		"current_age": 40, "retirement_age": 65, "current_savings": 10000,
		"monthly_contribution": 500, "province": "ON",
	}
}

func projectAt40(t *testing.T, engine *calculation.Engine, returnPct, inflationPct float64) *domain.RetirementResult {
	t.Helper()
	r, err := engine.ProjectRetirement(domain.RetirementInputs{
		CurrentAge: 40, RetirementAge: 65,
		CurrentSavings: decimal.NewFromInt(10000), MonthlyContribution: decimal.NewFromInt(500),
		ExpectedReturnPercent: decimal.NewFromFloat(returnPct), InflationPercent: decimal.NewFromFloat(inflationPct),
		Province: "ON",
	})
	require.NoError(t, err)
	return r
}

func TestLiveRatesReachCalculators(t *testing.T) {
	engine, err := calculation.NewDefaultEngine()
	require.NoError(t, err)
	liveRates := fixedRates{domain.LiveRates{
		MortgageRatePercent:   decimal.NewFromInt(6),
		InflationPercent:      decimal.NewFromInt(4),
		ExpectedReturnPercent: decimal.NewFromInt(7),
		Source:                "redis",
	}}
	withLive := projectAt40(t, engine, 7, 4)
	withStatic := projectAt40(t, engine, 6, 2.5)

	tests := []struct {
		name  string
		rates live.Source
		path  string
		body  map[string]any
		check func(t *testing.T, r map[string]any)
	}{
		{
			name: "mortgage rate", rates: liveRates, path: "/api/mortgage",
			body: map[string]any{"principal": 400000},
			check: func(t *testing.T, r map[string]any) {
				assert.Equal(t, "6", r["rate_percent"])
			},
		},
		{
			name: "housing rate", rates: liveRates, path: "/api/housing",
			body: map[string]any{"annual_income": 150000, "down_payment_percent": 20, "city": "Calgary"},
			check: func(t *testing.T, r map[string]any) {
				assert.Equal(t, "6", r["mortgage_rate"])
			},
		},
		{
			name: "retirement inflation and return", rates: liveRates, path: "/api/retirement",
			body: retireAt40(),
			check: func(t *testing.T, r map[string]any) {
				p := r["projection"].(map[string]any)
				assert.Equal(t, withLive.AnnualCostAtRetirement.String(), p["annual_cost_at_retirement"])
				assert.Equal(t, withLive.RequiredCorpus.String(), p["required_corpus"])
			},
		},
		{
			name: "retirement static defaults", rates: nil, path: "/api/retirement",
			body: retireAt40(),
			check: func(t *testing.T, r map[string]any) {
				p := r["projection"].(map[string]any)
				assert.Equal(t, withStatic.AnnualCostAtRetirement.String(), p["annual_cost_at_retirement"])
				assert.Equal(t, withStatic.RequiredCorpus.String(), p["required_corpus"])
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &testEnv{handler: NewHandler(Deps{Engine: engine, Rates: tt.rates})}
			code, body := env.do(t, http.MethodPost, tt.path, "premium", tt.body)
			require.Equal(t, http.StatusOK, code, "%v", body)
			tt.check(t, result(t, body))
		})
	}
}

func TestRetirement_ExplicitRatesWin(t *testing.T) {
	engine, err := calculation.NewDefaultEngine()
	require.NoError(t, err)
	env := &testEnv{handler: NewHandler(Deps{Engine: engine, Rates: fixedRates{domain.LiveRates{
		InflationPercent: decimal.NewFromInt(4),
	}}})}

	body := retireAt40()
	body["inflation_percent"] = 0
	body["expected_return_percent"] = 5
	code, resp := env.do(t, http.MethodPost, "/api/retirement", "basic", body)
	require.Equal(t, http.StatusOK, code, "%v", resp)

	want := projectAt40(t, engine, 5, 0)
	p := result(t, resp)["projection"].(map[string]any)
	assert.Equal(t, want.AnnualCostAtRetirement.String(), p["annual_cost_at_retirement"], "explicit 0% inflation is kept")

	body["expected_return_percent"] = 0
	code, resp = env.do(t, http.MethodPost, "/api/retirement", "basic", body)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "expected_return_percent", resp["field"])
}

func TestWhatIf_DefaultsRatesAndProfile(t *testing.T) {
	engine, err := calculation.NewDefaultEngine()
	require.NoError(t, err)
	profiles := storage.NewProfileStore()
	id, err := profiles.Put(context.Background(), domain.UserProfile{Age: 40, Province: "ON"})
	require.NoError(t, err)
	env := &testEnv{handler: NewHandler(Deps{
		Engine:   engine,
		Profiles: profiles,
		Rates: fixedRates{domain.LiveRates{
			InflationPercent:      decimal.NewFromInt(4),
			ExpectedReturnPercent: decimal.NewFromInt(7),
		}},
	})}

	// Age and province come from the stored profile, rates from the live source
	inputs := map[string]any{"retirement_age": 65, "current_savings": 10000, "monthly_contribution": 500}
	code, body := env.do(t, http.MethodPost, "/api/retirement/whatif", "premium", map[string]any{
		"profileId": id, "inputs": inputs, "variations": []string{"save_more_250"},
	})
	require.Equal(t, http.StatusOK, code, "%v", body)

	want := projectAt40(t, engine, 7, 4)
	base := result(t, body)["baseResult"].(map[string]any)
	assert.Equal(t, want.RequiredCorpus.String(), base["requiredCorpus"])
	assert.Equal(t, string(want.Status), base["status"])
}

func TestServer_RateLimit(t *testing.T) {
	engine, err := calculation.NewDefaultEngine()
	require.NoError(t, err)
	cfg := config.DefaultAppConfig().Server
	cfg.RateLimit = 2
	cfg.RateWindow = time.Hour

	srv := New(cfg, Deps{Engine: engine})
	defer srv.Close()

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		codes[i] = w.Code
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestServer_Run(t *testing.T) {
	engine, err := calculation.NewDefaultEngine()
	require.NoError(t, err)
	cfg := config.DefaultAppConfig().Server
	cfg.Address = "127.0.0.1:0"
	cfg.ShutdownTimeout = time.Second

	srv := New(cfg, Deps{Engine: engine})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := LoggingMiddleware(zap.New(core), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(TierHeader, "basic")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, "basic", fields["tier"])
}
