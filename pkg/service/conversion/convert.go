package conversion

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/moneydash/fx/pkg/currency"
	"github.com/moneydash/fx/pkg/domain"
)

// Convert applies the current exchange rate to a signed amount. Negative
// amounts (liabilities, credit balances) are converted on their absolute
// value and the original sign is re-applied, so the sign of the result
// always matches the sign of the input. No rounding happens here; display
// formatting is a presentation concern and must not cost accounting
// precision.
func (s *Service) Convert(
	ctx context.Context,
	amount float64,
	from, to currency.Code,
) (*Result, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("%w: amount must be finite, got %v",
			domain.ErrInvalidAmount, amount)
	}

	// Identical currencies convert to the exact same amount, independent of
	// the rate source, to avoid floating-point drift on a no-op conversion.
	if from == to {
		return &Result{
			OriginalAmount:    amount,
			OriginalCurrency:  from,
			ConvertedAmount:   amount,
			ConvertedCurrency: to,
			Rate:              1.0,
			RateTimestamp:     time.Now(),
		}, nil
	}

	rate, fetchedAt, err := s.rates.GetRate(ctx, from, to)
	if err != nil {
		return nil, err
	}

	converted := math.Abs(amount) * rate
	if math.Signbit(amount) && amount != 0 {
		converted = -converted
	}

	return &Result{
		OriginalAmount:    amount,
		OriginalCurrency:  from,
		ConvertedAmount:   converted,
		ConvertedCurrency: to,
		Rate:              rate,
		RateTimestamp:     fetchedAt,
	}, nil
}
