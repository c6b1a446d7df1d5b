// Package conversion exposes the currency conversion endpoint.
package conversion

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/moneydash/fx/pkg/currency"
	"github.com/moneydash/fx/pkg/domain"
	conversionsvc "github.com/moneydash/fx/pkg/service/conversion"
	"github.com/moneydash/fx/pkg/settings"
	"github.com/moneydash/fx/webapi/common"
)

// Routes registers the conversion endpoints.
func Routes(
	app *fiber.App,
	svc *conversionsvc.Service,
	store settings.Store,
	logger *slog.Logger,
) {
	api := app.Group("/api")
	api.Get("/convert", Convert(svc, store, logger))
	api.Get("/currencies", ListCurrencies(svc))
}

// Convert handles GET /api/convert?amount=&from=&to=.
// When to is omitted, the target defaults to the requesting user's
// reporting currency, or the application default without a user.
func Convert(
	svc *conversionsvc.Service,
	store settings.Store,
	logger *slog.Logger,
) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *fiber.Ctx) error {
		req, err := common.BindQueryAndValidate[ConvertRequest](c)
		if err != nil {
			return nil // response already written
		}

		to := req.To
		if to == "" {
			to = reportingCurrency(c, store, req.UserID, logger).String()
		}

		res, err := svc.ConvertCurrency(c.Context(), *req.Amount, req.From, to)
		if err != nil {
			status := common.ErrorToStatusCode(err)
			// Upstream trouble is the only condition worth a server-side
			// error entry; invalid input and unsupported pairs are
			// expected, noisy conditions.
			if errors.Is(err, domain.ErrUpstreamUnavailable) {
				logger.Error("conversion failed, upstream unavailable",
					"from", req.From, "to", to, "error", err)
			} else {
				logger.Debug("conversion rejected",
					"from", req.From, "to", to, "error", err)
			}
			return common.ErrorResponseJSON(c, status, "Conversion failed", err.Error())
		}

		return common.SuccessResponseJSON(c,
			fiber.StatusOK, "Conversion successful", ToResponse(res))
	}
}

// ListCurrencies handles GET /api/currencies.
func ListCurrencies(svc *conversionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c,
			fiber.StatusOK, "Supported currencies", svc.SupportedCurrencies())
	}
}

// reportingCurrency resolves the target currency for requests that omit it.
// Settings lookups are best-effort: any failure falls back to the default
// rather than failing the conversion.
func reportingCurrency(
	c *fiber.Ctx,
	store settings.Store,
	rawUserID string,
	logger *slog.Logger,
) currency.Code {
	if store == nil || rawUserID == "" {
		return currency.DefaultCode
	}
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return currency.DefaultCode
	}
	code, err := store.ReportingCurrency(c.Context(), userID)
	if err != nil {
		logger.Warn("failed to load reporting currency, using default",
			"user_id", userID, "error", err)
		return currency.DefaultCode
	}
	return code
}
