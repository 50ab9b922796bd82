package timeseries

import (
	"sort"
	"time"
)

// Point is a single (date, value) observation
type Point struct {
	Date  time.Time
	Value float64
}

// DailySeries is an ordered sequence of (date, value) pairs,
// date-sorted with unique dates.
type DailySeries struct {
	Points []Point
}

// DateOnly truncates a timestamp to its calendar date in UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDailySeries builds a series from unordered points.
// Dates are normalized to calendar days; duplicates keep the last value.
func NewDailySeries(points []Point) DailySeries {
	normalized := make([]Point, len(points))
	for i, p := range points {
		normalized[i] = Point{Date: DateOnly(p.Date), Value: p.Value}
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].Date.Before(normalized[j].Date)
	})

	// Deduplicate, last value wins
	var out []Point
	for _, p := range normalized {
		if n := len(out); n > 0 && out[n-1].Date.Equal(p.Date) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}

	return DailySeries{Points: out}
}

// Len returns the number of observations
func (s DailySeries) Len() int {
	return len(s.Points)
}

// Empty reports whether the series has no observations
func (s DailySeries) Empty() bool {
	return len(s.Points) == 0
}

// Index returns the date index of the series
func (s DailySeries) Index() []time.Time {
	dates := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		dates[i] = p.Date
	}
	return dates
}

// Values returns the values of the series
func (s DailySeries) Values() []float64 {
	vals := make([]float64, len(s.Points))
	for i, p := range s.Points {
		vals[i] = p.Value
	}
	return vals
}

// Between returns the sub-series with from <= date <= to
func (s DailySeries) Between(from, to time.Time) DailySeries {
	from, to = DateOnly(from), DateOnly(to)

	var out []Point
	for _, p := range s.Points {
		if p.Date.Before(from) || p.Date.After(to) {
			continue
		}
		out = append(out, p)
	}
	return DailySeries{Points: out}
}

// CalendarIndex returns every calendar day in [from, to]
func CalendarIndex(from, to time.Time) []time.Time {
	from, to = DateOnly(from), DateOnly(to)

	var index []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		index = append(index, d)
	}
	return index
}
