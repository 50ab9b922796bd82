package metrics

import (
	"math"

	"github.com/ydg06081/dong/internal/timeseries"
)

// yoyLag: YoY compares against the quarter four periods earlier
const yoyLag = 4

// YoYGrowth computes year-over-year growth per quarter, in percent:
// (curr - prev) / |prev| * 100 where prev is the value 4 quarters
// earlier. The first four quarters, quarters where either value is
// missing, and prev == 0 yield no value.
// values must be in chronological ascending order.
func YoYGrowth(values []timeseries.Value) []timeseries.Value {
	out := make([]timeseries.Value, len(values))

	for i := yoyLag; i < len(values); i++ {
		curr, prev := values[i], values[i-yoyLag]
		if !curr.Valid || !prev.Valid || prev.Float == 0 {
			continue
		}

		growth := (curr.Float - prev.Float) / math.Abs(prev.Float) * 100
		out[i] = timeseries.Num(growth)
	}

	return out
}
