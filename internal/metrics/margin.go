package metrics

import (
	"github.com/ydg06081/dong/internal/timeseries"
)

// OperatingMargin computes operating income / revenue * 100 per quarter.
// Quarters where either value is missing or revenue is zero stay missing.
func OperatingMargin(revenue, operatingIncome []timeseries.Value) []timeseries.Value {
	out := make([]timeseries.Value, len(revenue))

	for i := range revenue {
		if i >= len(operatingIncome) {
			break
		}
		rev, op := revenue[i], operatingIncome[i]
		if !rev.Valid || !op.Valid || rev.Float == 0 {
			continue
		}

		out[i] = timeseries.Num(op.Float / rev.Float * 100)
	}

	return out
}
