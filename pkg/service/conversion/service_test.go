package conversion

import (
	"context"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/moneydash/fx/pkg/currency"
	"github.com/moneydash/fx/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRates returns a fixed rate and counts calls.
type stubRates struct {
	calls     atomic.Int32
	rate      float64
	fetchedAt time.Time
	err       error
}

func (s *stubRates) GetRate(
	_ context.Context,
	_, _ currency.Code,
) (float64, time.Time, error) {
	s.calls.Add(1)
	if s.err != nil {
		return 0, time.Time{}, s.err
	}
	return s.rate, s.fetchedAt, nil
}

func newTestService(rates RateSource) *Service {
	return New(rates, currency.NewRegistry(), nil)
}

func TestService_ConvertNegativeAmount(t *testing.T) {
	fetched := time.Now().Add(-10 * time.Minute)
	rates := &stubRates{rate: 15500, fetchedAt: fetched}
	svc := newTestService(rates)

	res, err := svc.ConvertCurrency(context.Background(), -150.0, "USD", "IDR")
	require.NoError(t, err)

	assert.Equal(t, -150.0, res.OriginalAmount)
	assert.Equal(t, currency.USD, res.OriginalCurrency)
	assert.Equal(t, -2325000.0, res.ConvertedAmount)
	assert.Equal(t, currency.IDR, res.ConvertedCurrency)
	assert.Equal(t, 15500.0, res.Rate)
	assert.Equal(t, fetched, res.RateTimestamp, "timestamp is the rate's, not the request's")
}

func TestService_SameCurrencyIdentity(t *testing.T) {
	rates := &stubRates{rate: 999} // must never be consulted
	svc := newTestService(rates)

	tests := []float64{100, -42.5, 0, 0.000001, 1e12}
	for _, amount := range tests {
		res, err := svc.ConvertCurrency(context.Background(), amount, "EUR", "EUR")
		require.NoError(t, err)
		assert.Equal(t, amount, res.ConvertedAmount, "identity conversion must be exact")
		assert.Equal(t, 1.0, res.Rate)
	}
	assert.EqualValues(t, 0, rates.calls.Load(), "identity conversion must not hit the rate source")
}

func TestService_SameCurrencyCaseInsensitive(t *testing.T) {
	rates := &stubRates{rate: 999}
	svc := newTestService(rates)

	res, err := svc.ConvertCurrency(context.Background(), 100, "usd", "USD")
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.ConvertedAmount)
	assert.EqualValues(t, 0, rates.calls.Load())
}

func TestService_SignPreservation(t *testing.T) {
	rates := &stubRates{rate: 0.92, fetchedAt: time.Now()}
	svc := newTestService(rates)

	tests := []struct {
		name   string
		amount float64
	}{
		{name: "negative", amount: -150},
		{name: "small negative", amount: -0.01},
		{name: "positive", amount: 250},
		{name: "zero", amount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.ConvertCurrency(context.Background(), tt.amount, "USD", "EUR")
			require.NoError(t, err)
			switch {
			case tt.amount < 0:
				assert.Negative(t, res.ConvertedAmount)
			case tt.amount > 0:
				assert.Positive(t, res.ConvertedAmount)
			default:
				assert.Zero(t, res.ConvertedAmount)
			}
		})
	}
}

func TestService_RejectsNonFiniteAmounts(t *testing.T) {
	rates := &stubRates{rate: 0.92}
	svc := newTestService(rates)

	for _, amount := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := svc.ConvertCurrency(context.Background(), amount, "USD", "EUR")
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	}
	assert.EqualValues(t, 0, rates.calls.Load(),
		"non-finite amounts must be rejected before any rate lookup")
}

func TestService_RejectsUnknownCodesBeforeLookup(t *testing.T) {
	rates := &stubRates{rate: 0.92}
	svc := newTestService(rates)

	tests := []struct {
		name     string
		from, to string
	}{
		{name: "malformed from", from: "DOLLARS", to: "EUR"},
		{name: "unknown from", from: "XYZ", to: "EUR"},
		{name: "unknown to", from: "USD", to: "ZZZ"},
		{name: "empty to", from: "USD", to: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ConvertCurrency(context.Background(), 10, tt.from, tt.to)
			assert.ErrorIs(t, err, domain.ErrInvalidCurrencyCode)
		})
	}
	assert.EqualValues(t, 0, rates.calls.Load())
}

func TestService_PropagatesRateErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "unsupported pair", err: domain.ErrUnsupportedPair},
		{name: "upstream unavailable", err: domain.ErrUpstreamUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&stubRates{err: tt.err})
			_, err := svc.ConvertCurrency(context.Background(), 10, "USD", "EUR")
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestService_NoRoundingApplied(t *testing.T) {
	rates := &stubRates{rate: 0.123456789, fetchedAt: time.Now()}
	svc := newTestService(rates)

	res, err := svc.ConvertCurrency(context.Background(), 1, "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 0.123456789, res.ConvertedAmount,
		"engine must not round; formatting is a presentation concern")
}

func TestService_SupportedCurrencies(t *testing.T) {
	svc := newTestService(&stubRates{rate: 1})
	codes := svc.SupportedCurrencies()
	assert.NotEmpty(t, codes)
	assert.Contains(t, codes, currency.USD)
}
