// Package settings provides the gorm-backed implementation of the user
// settings store.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/moneydash/fx/pkg/currency"
	"github.com/moneydash/fx/pkg/settings"
	"gorm.io/gorm"
)

type store struct {
	db *gorm.DB
}

// New creates a settings store backed by the given database.
func New(db *gorm.DB) settings.Store {
	return &store{db: db}
}

// ReportingCurrency returns the user's stored reporting currency, falling
// back to currency.DefaultCode when the user has no row or no preference.
func (s *store) ReportingCurrency(
	ctx context.Context,
	userID uuid.UUID,
) (currency.Code, error) {
	var row UserSettings
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return currency.DefaultCode, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load user settings: %w", err)
	}

	code := strings.ToUpper(strings.TrimSpace(row.ReportingCurrency))
	if code == "" {
		return currency.DefaultCode, nil
	}
	return currency.Code(code), nil
}
