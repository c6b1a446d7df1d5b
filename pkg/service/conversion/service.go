// Package conversion is the single entry point the rest of the application
// uses to convert monetary amounts between currencies. It validates input,
// applies rates from the exchange fetcher and guarantees the returned errors
// wrap the domain taxonomy.
package conversion

import (
	"context"
	"log/slog"
	"time"

	"github.com/moneydash/fx/pkg/currency"
)

// RateSource yields a rate and the timestamp it was obtained for a directed
// currency pair. *exchange.Fetcher satisfies it.
type RateSource interface {
	GetRate(ctx context.Context, from, to currency.Code) (float64, time.Time, error)
}

// Result describes one completed conversion. It is an immutable value;
// RateTimestamp records when the rate was obtained (cache insertion time),
// not when this request ran.
type Result struct {
	OriginalAmount    float64       `json:"original_amount"`
	OriginalCurrency  currency.Code `json:"original_currency"`
	ConvertedAmount   float64       `json:"converted_amount"`
	ConvertedCurrency currency.Code `json:"converted_currency"`
	Rate              float64       `json:"rate"`
	RateTimestamp     time.Time     `json:"rate_timestamp"`
}

// Service converts amounts between currencies. It holds no per-request
// state; one instance backed by process-wide fetcher/cache singletons is
// safe for concurrent use.
type Service struct {
	rates    RateSource
	registry *currency.Registry
	logger   *slog.Logger
}

// New creates a conversion service.
func New(rates RateSource, registry *currency.Registry, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		rates:    rates,
		registry: registry,
		logger:   logger.With("service", "conversion"),
	}
}

// ConvertCurrency validates both codes against the registry and converts
// amount from fromCode to toCode. An unrecognized code is rejected before
// any network round trip.
func (s *Service) ConvertCurrency(
	ctx context.Context,
	amount float64,
	fromCode, toCode string,
) (*Result, error) {
	from, err := s.registry.Parse(fromCode)
	if err != nil {
		return nil, err
	}
	to, err := s.registry.Parse(toCode)
	if err != nil {
		return nil, err
	}

	res, err := s.Convert(ctx, amount, from, to)
	if err != nil {
		s.logger.Debug("conversion failed",
			"from", from, "to", to, "amount", amount, "error", err)
		return nil, err
	}
	return res, nil
}

// SupportedCurrencies lists the codes the service will accept.
func (s *Service) SupportedCurrencies() []currency.Code {
	return s.registry.ListSupported()
}
