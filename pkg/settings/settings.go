// Package settings exposes the per-user preferences this subsystem reads.
// The store is an external collaborator; only its boundary is defined here.
package settings

import (
	"context"

	"github.com/google/uuid"
	"github.com/moneydash/fx/pkg/currency"
)

// Store supplies a user's reporting/default currency. Read-only from the
// conversion subsystem's perspective.
type Store interface {
	// ReportingCurrency returns the currency a user wants amounts reported
	// in. Implementations fall back to currency.DefaultCode when the user
	// has no stored preference.
	ReportingCurrency(ctx context.Context, userID uuid.UUID) (currency.Code, error)
}
