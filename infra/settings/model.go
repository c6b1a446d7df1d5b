package settings

import (
	"time"

	"github.com/google/uuid"
)

// UserSettings is the persistence model for per-user preferences.
type UserSettings struct {
	UserID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReportingCurrency string    `gorm:"size:3"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName overrides the default pluralized name.
func (UserSettings) TableName() string {
	return "user_settings"
}
