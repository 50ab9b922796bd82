package metrics

import (
	"github.com/ydg06081/dong/internal/timeseries"
)

// PER bounds: ratios outside [0, 1000] are discarded as nonsensical
// (near-zero or negative TTM EPS). Fixed policy constants.
const (
	perFloor   = 0.0
	perCeiling = 1000.0
)

// DailyPER computes the daily price-to-earnings ratio from a daily price
// column and the daily-aligned TTM EPS column. Days where TTM EPS is
// missing or zero, or where the ratio falls outside the policy bounds,
// stay missing. Both slices must be parallel to the same daily index.
func DailyPER(prices []timeseries.Value, ttmEPS []timeseries.Value) []timeseries.Value {
	out := make([]timeseries.Value, len(prices))

	for i := range prices {
		if i >= len(ttmEPS) {
			break
		}
		price, eps := prices[i], ttmEPS[i]
		if !price.Valid || !eps.Valid || eps.Float == 0 {
			continue
		}

		ratio := price.Float / eps.Float
		if ratio < perFloor || ratio > perCeiling {
			continue
		}

		out[i] = timeseries.Num(ratio)
	}

	return out
}
