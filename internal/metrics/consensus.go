package metrics

import (
	"github.com/ydg06081/dong/internal/timeseries"
)

// Consensus verdicts for reported EPS vs the analyst estimate
const (
	ConsensusBeat  = "beat"
	ConsensusMiss  = "miss"
	ConsensusMatch = "match"
)

// Consensus compares reported EPS against the analyst estimate.
// Returns "" when either side is missing.
func Consensus(estimate, actual timeseries.Value) string {
	if !estimate.Valid || !actual.Valid {
		return ""
	}

	switch {
	case actual.Float > estimate.Float:
		return ConsensusBeat
	case actual.Float < estimate.Float:
		return ConsensusMiss
	default:
		return ConsensusMatch
	}
}
