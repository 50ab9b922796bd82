package metrics

import (
	"github.com/ydg06081/dong/internal/timeseries"
)

// TrailingEPS computes trailing-twelve-month EPS per quarter.
//
// For quarter i the window is the last up-to-4 quarters [max(0,i-3)..i].
// Net income is summed over quarters with a value; with fewer than four
// quarters of data the sum is annualized by 4/count before dividing by
// shares outstanding. No value is produced when the window holds no data
// or shares is absent/non-positive.
// netIncome must be in chronological ascending order.
func TrailingEPS(netIncome []timeseries.Value, shares timeseries.Value) []timeseries.Value {
	out := make([]timeseries.Value, len(netIncome))
	if !shares.Valid || shares.Float <= 0 {
		return out
	}

	for i := range netIncome {
		start := i - 3
		if start < 0 {
			start = 0
		}

		sum := 0.0
		count := 0
		for j := start; j <= i; j++ {
			if netIncome[j].Valid {
				sum += netIncome[j].Float
				count++
			}
		}

		if count == 0 {
			continue
		}

		// 4분기 미만이면 연환산
		annualized := sum * (4.0 / float64(count))
		out[i] = timeseries.Num(annualized / shares.Float)
	}

	return out
}
