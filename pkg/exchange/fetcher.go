// Package exchange produces exchange rates for directed currency pairs,
// backed by a TTL cache and collapsing concurrent duplicate fetches into a
// single upstream call.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/moneydash/fx/pkg/currency"
	"github.com/moneydash/fx/pkg/domain"
	"github.com/moneydash/fx/pkg/provider"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is the time-to-live for cached rates when none is configured.
const DefaultTTL = time.Hour

// Rate is a cached exchange rate. FetchedAt is the cache insertion time, not
// the time of any later read, so staleness stays auditable.
type Rate struct {
	Rate      float64   `json:"rate"`
	FetchedAt time.Time `json:"fetched_at"`
}

// RateCache is the cache contract the fetcher needs. *cache.Cache[Rate]
// satisfies it in-process; infra/cache provides a Redis-backed variant.
type RateCache interface {
	Get(key string) (Rate, bool)
	Set(key string, rate Rate, ttl time.Duration)
	Has(key string) bool
	Clear()
}

// PairKey builds the canonical cache key for a directed currency pair.
// (A,B) and (B,A) are distinct keys; rates are not assumed reciprocal.
func PairKey(from, to currency.Code) string {
	return from.String() + ":" + to.String()
}

// Fetcher resolves rates cache-first and deduplicates concurrent misses for
// the same pair key, so a burst of N identical requests costs one upstream
// call.
type Fetcher struct {
	provider provider.RateProvider
	cache    RateCache
	ttl      time.Duration
	logger   *slog.Logger
	group    singleflight.Group
	now      func() time.Time
}

// NewFetcher creates a rate fetcher. A ttl <= 0 falls back to DefaultTTL.
func NewFetcher(
	p provider.RateProvider,
	cache RateCache,
	ttl time.Duration,
	logger *slog.Logger,
) *Fetcher {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		provider: p,
		cache:    cache,
		ttl:      ttl,
		logger:   logger.With("component", "rate_fetcher"),
		now:      time.Now,
	}
}

// GetRate returns the exchange rate for from→to and the timestamp the rate
// was obtained. Identical pairs short-circuit to 1.0 without touching the
// cache or the provider. Failed fetches are returned to every concurrent
// waiter and never cached.
func (f *Fetcher) GetRate(
	ctx context.Context,
	from, to currency.Code,
) (float64, time.Time, error) {
	if from == to {
		return 1.0, f.now(), nil
	}

	key := PairKey(from, to)
	if cached, ok := f.cache.Get(key); ok {
		f.logger.Debug("rate served from cache",
			"key", key, "rate", cached.Rate, "fetched_at", cached.FetchedAt)
		return cached.Rate, cached.FetchedAt, nil
	}

	v, err, shared := f.group.Do(key, func() (any, error) {
		// A fetch that resolved while we queued for the flight may have
		// populated the cache already.
		if cached, ok := f.cache.Get(key); ok {
			return cached, nil
		}
		return f.fetch(ctx, from, to, key)
	})
	if err != nil {
		return 0, time.Time{}, err
	}

	rate := v.(Rate)
	if shared {
		f.logger.Debug("rate fetch shared with concurrent waiters", "key", key)
	}
	return rate.Rate, rate.FetchedAt, nil
}

// ClearCache drops every cached rate. Administrative reset and test
// isolation only.
func (f *Fetcher) ClearCache() {
	f.cache.Clear()
}

// fetch performs the single upstream call for a pair key and caches the
// result on success. The singleflight marker is removed by the caller when
// this returns, success or failure, so the next miss triggers a fresh fetch.
func (f *Fetcher) fetch(
	ctx context.Context,
	from, to currency.Code,
	key string,
) (any, error) {
	rate, err := f.provider.FetchSpotRate(ctx, from, to)
	if err != nil {
		if !errors.Is(err, domain.ErrUnsupportedPair) &&
			!errors.Is(err, domain.ErrUpstreamUnavailable) {
			err = fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
		}
		f.logger.Warn("upstream rate fetch failed",
			"provider", f.provider.Name(), "key", key, "error", err)
		return nil, err
	}

	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		f.logger.Warn("invalid rate received from provider",
			"provider", f.provider.Name(), "key", key, "rate", rate)
		return nil, fmt.Errorf("%w: invalid rate %v from %s",
			domain.ErrUpstreamUnavailable, rate, f.provider.Name())
	}

	cached := Rate{Rate: rate, FetchedAt: f.now()}
	f.cache.Set(key, cached, f.ttl)
	f.logger.Info("rate fetched from provider",
		"provider", f.provider.Name(), "key", key, "rate", rate, "ttl", f.ttl)
	return cached, nil
}
