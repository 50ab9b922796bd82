package timeseries

import (
	"sort"
	"time"
)

// QuarterlyTable holds sparse quarterly records: one row per quarter-end
// date, named columns. A column is either numeric (Nums) or text (Texts);
// missing cells are Valid=false resp. "".
type QuarterlyTable struct {
	Dates   []time.Time
	Columns []string // column order
	Nums    map[string][]Value
	Texts   map[string][]string
}

// NewQuarterlyTable creates an empty table with the given numeric columns
func NewQuarterlyTable(numColumns ...string) *QuarterlyTable {
	t := &QuarterlyTable{
		Nums:  make(map[string][]Value),
		Texts: make(map[string][]string),
	}
	for _, name := range numColumns {
		t.Columns = append(t.Columns, name)
		t.Nums[name] = nil
	}
	return t
}

// AddTextColumn registers a text column
func (t *QuarterlyTable) AddTextColumn(name string) {
	if _, ok := t.Texts[name]; ok {
		return
	}
	t.Columns = append(t.Columns, name)
	t.Texts[name] = make([]string, len(t.Dates))
}

// AppendRow appends one quarter. Columns absent from the maps get a
// missing cell.
func (t *QuarterlyTable) AppendRow(date time.Time, nums map[string]Value, texts map[string]string) {
	t.Dates = append(t.Dates, DateOnly(date))
	for name := range t.Nums {
		t.Nums[name] = append(t.Nums[name], nums[name])
	}
	for name := range t.Texts {
		t.Texts[name] = append(t.Texts[name], texts[name])
	}
}

// SetNum replaces a numeric column; the slice must match the row count
func (t *QuarterlyTable) SetNum(name string, vals []Value) {
	if _, ok := t.Nums[name]; !ok {
		t.Columns = append(t.Columns, name)
	}
	t.Nums[name] = vals
}

// Len returns the number of quarters
func (t *QuarterlyTable) Len() int {
	return len(t.Dates)
}

// Empty reports whether the table has no rows
func (t *QuarterlyTable) Empty() bool {
	return t == nil || len(t.Dates) == 0
}

// Sort orders rows by date ascending, keeping all columns in step
func (t *QuarterlyTable) Sort() {
	idx := make([]int, len(t.Dates))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return t.Dates[idx[a]].Before(t.Dates[idx[b]])
	})

	dates := make([]time.Time, len(t.Dates))
	for i, j := range idx {
		dates[i] = t.Dates[j]
	}
	t.Dates = dates

	for name, col := range t.Nums {
		sorted := make([]Value, len(col))
		for i, j := range idx {
			sorted[i] = col[j]
		}
		t.Nums[name] = sorted
	}
	for name, col := range t.Texts {
		sorted := make([]string, len(col))
		for i, j := range idx {
			sorted[i] = col[j]
		}
		t.Texts[name] = sorted
	}
}

// DailyTable is a dense daily-resolution table: a fixed date index plus
// named columns, one cell per day.
type DailyTable struct {
	Dates   []time.Time
	Columns []string
	Nums    map[string][]Value
	Texts   map[string][]string
}

// NewDailyTable creates an empty table over the given date index
func NewDailyTable(index []time.Time) *DailyTable {
	dates := make([]time.Time, len(index))
	copy(dates, index)
	return &DailyTable{
		Dates: dates,
		Nums:  make(map[string][]Value),
		Texts: make(map[string][]string),
	}
}

// Len returns the number of days
func (t *DailyTable) Len() int {
	return len(t.Dates)
}

// SetNum sets a numeric column. len(vals) must equal Len().
func (t *DailyTable) SetNum(name string, vals []Value) {
	if _, ok := t.Nums[name]; !ok {
		t.Columns = append(t.Columns, name)
	}
	t.Nums[name] = vals
}

// SetText sets a text column. len(vals) must equal Len().
func (t *DailyTable) SetText(name string, vals []string) {
	if _, ok := t.Texts[name]; !ok {
		t.Columns = append(t.Columns, name)
	}
	t.Texts[name] = vals
}

// Num returns a numeric column, or nil if absent
func (t *DailyTable) Num(name string) []Value {
	return t.Nums[name]
}

// Text returns a text column, or nil if absent
func (t *DailyTable) Text(name string) []string {
	return t.Texts[name]
}

// HasColumn reports whether the named column exists
func (t *DailyTable) HasColumn(name string) bool {
	_, n := t.Nums[name]
	_, s := t.Texts[name]
	return n || s
}
