package live

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maplemetrics/maplemetrics/internal/calculation"
	"github.com/maplemetrics/maplemetrics/internal/config"
	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Key suffixes appended to the configured prefix
const (
	KeyMortgageRate   = "mortgage_rate"
	KeyInflation      = "inflation"
	KeyExpectedReturn = "expected_return"
)

// RedisClient is the subset of *redis.Client used by RedisSource
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Close() error
}

// RedisSource reads rate overrides from redis and falls back to static
// assumptions for any value that is missing, unparsable or unreachable.
type RedisSource struct {
	client   RedisClient
	prefix   string
	timeout  time.Duration
	fallback domain.LiveRates
	logger   *zap.Logger
}

// NewRedisSource wraps an existing client
func NewRedisSource(client RedisClient, prefix string, fallback calculation.Assumptions, logger *zap.Logger) *RedisSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSource{
		client:   client,
		prefix:   prefix,
		fallback: ratesFromAssumptions(fallback),
		logger:   logger,
	}
}

// Dial creates a RedisSource connected to cfg.Address
func Dial(cfg config.RedisConfig, fallback calculation.Assumptions, logger *zap.Logger) *RedisSource {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	src := NewRedisSource(client, cfg.KeyPrefix, fallback, logger)
	src.timeout = cfg.Timeout
	return src
}

// Rates returns the current rates. Redis failures are logged, never returned.
func (s *RedisSource) Rates(ctx context.Context) (domain.LiveRates, error) {
	if err := ctx.Err(); err != nil {
		return domain.LiveRates{}, err
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	rates := s.fallback
	overridden := false
	read := func(key string, dst *decimal.Decimal) {
		v, ok := s.lookup(ctx, key)
		if ok {
			*dst = v
			overridden = true
		}
	}
	read(KeyMortgageRate, &rates.MortgageRatePercent)
	read(KeyInflation, &rates.InflationPercent)
	read(KeyExpectedReturn, &rates.ExpectedReturnPercent)

	if overridden {
		rates.Source = "redis"
	}
	return rates, nil
}

func (s *RedisSource) lookup(ctx context.Context, key string) (decimal.Decimal, bool) {
	full := s.prefix + key
	raw, err := s.client.Get(ctx, full).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Zero, false
	}
	if err != nil {
		s.logger.Warn("rate lookup failed, using fallback", zap.String("key", full), zap.Error(err))
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(raw)
	if err != nil || v.IsNegative() {
		s.logger.Warn("ignoring invalid rate value", zap.String("key", full), zap.String("value", raw))
		return decimal.Zero, false
	}
	return v, true
}

// RateUpdate holds the overrides to write; nil fields are left unchanged
type RateUpdate struct {
	MortgageRatePercent   *decimal.Decimal
	InflationPercent      *decimal.Decimal
	ExpectedReturnPercent *decimal.Decimal
}

// SetRates writes the non-nil fields of u
func (s *RedisSource) SetRates(ctx context.Context, u RateUpdate) error {
	fields := []struct {
		key   string
		value *decimal.Decimal
	}{
		{KeyMortgageRate, u.MortgageRatePercent},
		{KeyInflation, u.InflationPercent},
		{KeyExpectedReturn, u.ExpectedReturnPercent},
	}

	for _, f := range fields {
		if f.value != nil && f.value.IsNegative() {
			return domain.NewValidationError(f.key, "must not be negative")
		}
	}

	written := 0
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if err := s.client.Set(ctx, s.prefix+f.key, f.value.String(), 0).Err(); err != nil {
			return fmt.Errorf("failed to set %s: %w", f.key, err)
		}
		written++
		s.logger.Info("rate override set", zap.String("key", s.prefix+f.key), zap.String("value", f.value.String()))
	}
	if written == 0 {
		return domain.NewValidationError("rates", "at least one rate is required")
	}
	return nil
}

// Close releases the redis connection
func (s *RedisSource) Close() error {
	return s.client.Close()
}
