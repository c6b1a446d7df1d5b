// Package provider defines the boundary to external exchange-rate sources.
package provider

import (
	"context"

	"github.com/moneydash/fx/pkg/currency"
)

// RateProvider fetches a spot rate between two currencies from an upstream
// source. Implementations must return a positive, finite rate on success.
//
// Failures are classified through the domain sentinels: an error wrapping
// domain.ErrUnsupportedPair when the source explicitly cannot quote the
// pair, and domain.ErrUpstreamUnavailable for transport failures, timeouts
// and non-2xx responses.
type RateProvider interface {
	// FetchSpotRate returns the current rate for one unit of from expressed
	// in to. It must honor ctx cancellation and deadlines.
	FetchSpotRate(ctx context.Context, from, to currency.Code) (float64, error)

	// Name identifies the provider in logs.
	Name() string
}
