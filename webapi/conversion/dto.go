package conversion

import (
	"time"

	conversionsvc "github.com/moneydash/fx/pkg/service/conversion"
)

// ConvertRequest is the query contract for GET /api/convert. Amount is a
// pointer so a missing parameter is distinguishable from zero. To may be
// omitted; the user's reporting currency (or the default) is used instead.
type ConvertRequest struct {
	Amount *float64 `query:"amount" validate:"required"`
	From   string   `query:"from" validate:"required,len=3,alpha"`
	To     string   `query:"to" validate:"omitempty,len=3,alpha"`
	UserID string   `query:"user_id" validate:"omitempty,uuid"`
}

// ConvertResponse mirrors conversion.Result on the wire.
type ConvertResponse struct {
	OriginalAmount    float64   `json:"original_amount"`
	OriginalCurrency  string    `json:"original_currency"`
	ConvertedAmount   float64   `json:"converted_amount"`
	ConvertedCurrency string    `json:"converted_currency"`
	Rate              float64   `json:"rate"`
	RateTimestamp     time.Time `json:"rate_timestamp"`
}

// ToResponse converts a service result to the wire DTO.
func ToResponse(res *conversionsvc.Result) *ConvertResponse {
	if res == nil {
		return nil
	}
	return &ConvertResponse{
		OriginalAmount:    res.OriginalAmount,
		OriginalCurrency:  res.OriginalCurrency.String(),
		ConvertedAmount:   res.ConvertedAmount,
		ConvertedCurrency: res.ConvertedCurrency.String(),
		Rate:              res.Rate,
		RateTimestamp:     res.RateTimestamp,
	}
}
