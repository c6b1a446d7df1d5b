// Package domain holds the error taxonomy shared across the conversion
// subsystem. Every error returned from the public facade wraps one of these
// sentinels so callers can classify failures with errors.Is without knowing
// which layer produced them.
package domain

import "errors"

var (
	// ErrInvalidAmount is returned when an amount is NaN or infinite.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidCurrencyCode is returned when a currency code is malformed
	// or not present in the currency registry.
	ErrInvalidCurrencyCode = errors.New("invalid currency code")

	// ErrUnsupportedPair indicates the rate provider explicitly cannot quote
	// this currency pair. Not retryable.
	ErrUnsupportedPair = errors.New("unsupported currency pair")

	// ErrUpstreamUnavailable indicates a transient provider failure: network
	// error, timeout, or a non-2xx response. Callers may retry at a higher
	// layer; this subsystem never caches the failure.
	ErrUpstreamUnavailable = errors.New("exchange rate provider unavailable")
)
