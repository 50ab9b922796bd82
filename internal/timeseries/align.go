package timeseries

import (
	"sort"
	"time"
)

// AlignToDaily broadcasts a sparse quarterly table onto a dense daily
// index. Per column this is the reindex-onto-union / forward-fill /
// backward-fill / restrict sequence: each day takes the value of the
// latest quarter at or before it; days before the first valid quarter
// take the earliest valid quarter's value.
//
// The result index is always exactly the given daily index, no matter
// how far the quarterly dates extend beyond it. An empty quarterly
// table yields all-missing columns, not an error.
// ⭐ SSOT: 분기→일별 정렬은 이 함수에서만
func AlignToDaily(q *QuarterlyTable, index []time.Time) *DailyTable {
	out := NewDailyTable(index)
	if q == nil {
		return out
	}

	q.Sort()

	for _, name := range q.Columns {
		if col, ok := q.Nums[name]; ok {
			out.SetNum(name, alignNumColumn(q.Dates, col, index))
			continue
		}
		if col, ok := q.Texts[name]; ok {
			out.SetText(name, alignTextColumn(q.Dates, col, index))
		}
	}

	return out
}

// alignNumColumn fills one numeric column onto the daily index
func alignNumColumn(qdates []time.Time, cells []Value, index []time.Time) []Value {
	// Only valid cells participate in the fill; a quarter with a missing
	// cell is transparent, exactly like NaN under ffill/bfill.
	var dates []time.Time
	var vals []float64
	for i, c := range cells {
		if c.Valid {
			dates = append(dates, qdates[i])
			vals = append(vals, c.Float)
		}
	}

	out := make([]Value, len(index))
	if len(dates) == 0 {
		return out
	}

	for i, d := range index {
		if j := lastAtOrBefore(dates, d); j >= 0 {
			out[i] = Num(vals[j]) // forward fill
		} else {
			out[i] = Num(vals[0]) // backward fill from the earliest quarter
		}
	}
	return out
}

// alignTextColumn fills one text column onto the daily index
func alignTextColumn(qdates []time.Time, cells []string, index []time.Time) []string {
	var dates []time.Time
	var vals []string
	for i, c := range cells {
		if c != "" {
			dates = append(dates, qdates[i])
			vals = append(vals, c)
		}
	}

	out := make([]string, len(index))
	if len(dates) == 0 {
		return out
	}

	for i, d := range index {
		if j := lastAtOrBefore(dates, d); j >= 0 {
			out[i] = vals[j]
		} else {
			out[i] = vals[0]
		}
	}
	return out
}

// FillForward carries each observation forward onto the index without
// backward fill: days before the first observation stay missing.
// 거시경제 병합처럼 ffill만 필요한 경우 사용
func FillForward(s DailySeries, index []time.Time) []Value {
	out := make([]Value, len(index))
	if s.Empty() {
		return out
	}

	dates := s.Index()
	vals := s.Values()

	for i, d := range index {
		if j := lastAtOrBefore(dates, d); j >= 0 {
			out[i] = Num(vals[j])
		}
	}
	return out
}

// lastAtOrBefore returns the index of the last date <= d, or -1.
// dates must be sorted ascending.
func lastAtOrBefore(dates []time.Time, d time.Time) int {
	// First index with date > d
	n := sort.Search(len(dates), func(i int) bool {
		return dates[i].After(d)
	})
	return n - 1
}
