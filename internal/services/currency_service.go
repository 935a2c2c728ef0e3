package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/campaign-tracker/backend/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	fxCacheKey       = "fx:INR:USD"
	fxMaxBodyBytes   = 1 << 20
	fxRetryBaseDelay = 500 * time.Millisecond
)

var (
	ErrAmountRequired = errors.New("amount is required")
	ErrAmountInvalid  = errors.New("amount must be a number")
)

// UpstreamError reports a failed or unusable exchange-rate response. Raw is
// the decoded upstream payload when it was JSON, otherwise the body text or
// the transport error message.
type UpstreamError struct {
	Raw any
	Err error

	transient bool
}

func (e *UpstreamError) Error() string {
	return "currency api failed: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

type Conversion struct {
	AmountINR float64
	USDRate   float64
	AmountUSD float64
}

// ParseAmount parses the amount query parameter.
func ParseAmount(raw string) (float64, error) {
	if raw == "" {
		return 0, ErrAmountRequired
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrAmountInvalid
	}
	return v, nil
}

// CurrencyService converts INR amounts to USD using a public rate API.
type CurrencyService struct {
	apiURL     string
	httpClient *http.Client
	rdb        *redis.Client
	cacheTTL   time.Duration
	maxRetries int
	retryDelay time.Duration
	log        *zap.Logger
}

// NewCurrencyService builds the gateway. rdb may be nil; the rate cache is
// only used when both rdb is set and cfg.FXCacheTTL is positive.
func NewCurrencyService(cfg *config.Config, rdb *redis.Client, log *zap.Logger) *CurrencyService {
	return &CurrencyService{
		apiURL: cfg.FXAPIURL,
		httpClient: &http.Client{
			Timeout: cfg.FXTimeout,
		},
		rdb:        rdb,
		cacheTTL:   cfg.FXCacheTTL,
		maxRetries: cfg.FXMaxRetries,
		retryDelay: fxRetryBaseDelay,
		log:        log,
	}
}

func (s *CurrencyService) Convert(ctx context.Context, amountINR float64) (*Conversion, error) {
	rate, err := s.USDRate(ctx)
	if err != nil {
		return nil, err
	}

	usd := decimal.NewFromFloat(amountINR).Mul(decimal.NewFromFloat(rate)).Round(2)
	return &Conversion{
		AmountINR: amountINR,
		USDRate:   rate,
		AmountUSD: usd.InexactFloat64(),
	}, nil
}

// USDRate returns how many USD one INR buys.
func (s *CurrencyService) USDRate(ctx context.Context) (float64, error) {
	if rate, ok := s.cachedRate(ctx); ok {
		return rate, nil
	}

	var (
		rate    float64
		lastErr error
	)
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return 0, &UpstreamError{Raw: ctx.Err().Error(), Err: ctx.Err()}
			case <-time.After(time.Duration(attempt) * s.retryDelay):
			}
		}

		var err error
		rate, err = s.fetchRate(ctx)
		if err == nil {
			lastErr = nil
			break
		}
		lastErr = err

		var upErr *UpstreamError
		if !errors.As(err, &upErr) || !upErr.transient {
			break
		}
		s.log.Warn("fx request failed", zap.Int("attempt", attempt+1), zap.Error(err))
	}
	if lastErr != nil {
		return 0, lastErr
	}

	s.storeRate(ctx, rate)
	return rate, nil
}

type fxResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

func (s *CurrencyService) fetchRate(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, &UpstreamError{Raw: err.Error(), Err: err, transient: true}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, fxMaxBodyBytes))
	if err != nil {
		return 0, &UpstreamError{Raw: err.Error(), Err: err, transient: true}
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return 0, &UpstreamError{Raw: string(body), Err: fmt.Errorf("decode response (HTTP %d): %w", resp.StatusCode, err)}
	}

	var payload fxResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, &UpstreamError{Raw: raw, Err: fmt.Errorf("unexpected response shape: %w", err)}
	}
	if payload.Result != "success" {
		return 0, &UpstreamError{Raw: raw, Err: fmt.Errorf("result %q", payload.Result)}
	}

	rate, ok := payload.Rates["USD"]
	if !ok || rate <= 0 {
		return 0, &UpstreamError{Raw: raw, Err: errors.New("USD rate missing")}
	}
	return rate, nil
}

func (s *CurrencyService) cachedRate(ctx context.Context) (float64, bool) {
	if s.rdb == nil || s.cacheTTL <= 0 {
		return 0, false
	}
	rate, err := s.rdb.Get(ctx, fxCacheKey).Float64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Debug("fx cache read failed", zap.Error(err))
		}
		return 0, false
	}
	return rate, true
}

func (s *CurrencyService) storeRate(ctx context.Context, rate float64) {
	if s.rdb == nil || s.cacheTTL <= 0 {
		return
	}
	if err := s.rdb.Set(ctx, fxCacheKey, strconv.FormatFloat(rate, 'f', -1, 64), s.cacheTTL).Err(); err != nil {
		s.log.Debug("fx cache write failed", zap.Error(err))
	}
}
