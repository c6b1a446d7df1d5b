// Package exchangerateapi implements the rate provider boundary against
// exchangerate-api.com's v6 pair endpoint.
package exchangerateapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/moneydash/fx/pkg/config"
	"github.com/moneydash/fx/pkg/currency"
	"github.com/moneydash/fx/pkg/domain"
	"github.com/moneydash/fx/pkg/provider"
)

// pairResponse is the v6 pair conversion response.
// See: https://www.exchangerate-api.com/docs/pair-conversion-requests
type pairResponse struct {
	Result             string  `json:"result"`
	BaseCode           string  `json:"base_code"`
	TargetCode         string  `json:"target_code"`
	ConversionRate     float64 `json:"conversion_rate"`
	TimeLastUpdateUnix int64   `json:"time_last_update_unix"`
	ErrorType          string  `json:"error-type,omitempty"`
}

// Provider calls exchangerate-api.com for spot rates.
type Provider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a provider from config. The base URL should look like
// https://v6.exchangerate-api.com/v6.
func New(cfg *config.Provider, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		apiKey:  cfg.ApiKey,
		baseURL: cfg.ApiUrl,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger.With("provider", "exchangerate-api"),
	}
}

// FetchSpotRate returns the rate for one unit of from expressed in to.
// Transport failures and non-2xx responses map to
// domain.ErrUpstreamUnavailable; an API error-type naming an unknown
// currency maps to domain.ErrUnsupportedPair.
func (p *Provider) FetchSpotRate(
	ctx context.Context,
	from, to currency.Code,
) (float64, error) {
	url := fmt.Sprintf("%s/%s/pair/%s/%s", p.baseURL, p.apiKey, from, to)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v",
			domain.ErrUpstreamUnavailable, err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read response: %v",
			domain.ErrUpstreamUnavailable, err)
	}

	var apiResp pairResponse
	if jsonErr := json.Unmarshal(body, &apiResp); jsonErr != nil {
		if resp.StatusCode != http.StatusOK {
			return 0, fmt.Errorf("%w: API returned status %d",
				domain.ErrUpstreamUnavailable, resp.StatusCode)
		}
		return 0, fmt.Errorf("%w: failed to decode response: %v",
			domain.ErrUpstreamUnavailable, jsonErr)
	}

	if apiResp.Result != "success" {
		return 0, p.classifyError(resp.StatusCode, apiResp.ErrorType, from, to)
	}

	p.logger.Debug("spot rate fetched",
		"from", from, "to", to, "rate", apiResp.ConversionRate)
	return apiResp.ConversionRate, nil
}

// Name identifies the provider in logs.
func (p *Provider) Name() string {
	return "exchangerate-api"
}

// classifyError maps the API's error-type field onto the domain taxonomy.
func (p *Provider) classifyError(
	status int,
	errorType string,
	from, to currency.Code,
) error {
	switch errorType {
	case "unsupported-code", "malformed-request":
		return fmt.Errorf("%w: %s/%s (%s)",
			domain.ErrUnsupportedPair, from, to, errorType)
	default:
		return fmt.Errorf("%w: API returned status %d error-type %q",
			domain.ErrUpstreamUnavailable, status, errorType)
	}
}

// Ensure Provider implements provider.RateProvider.
var _ provider.RateProvider = (*Provider)(nil)
