package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAlignToDailyRowCount(t *testing.T) {
	// 결과 인덱스는 항상 일별 인덱스와 정확히 일치해야 함
	tests := []struct {
		name     string
		quarters []time.Time
		index    []time.Time
	}{
		{
			name:     "quarters inside range",
			quarters: []time.Time{day(2024, 3, 31), day(2024, 6, 30)},
			index:    CalendarIndex(day(2024, 1, 1), day(2024, 12, 31)),
		},
		{
			name:     "quarters extend beyond range",
			quarters: []time.Time{day(2023, 12, 31), day(2024, 3, 31), day(2025, 6, 30)},
			index:    CalendarIndex(day(2024, 2, 1), day(2024, 2, 29)),
		},
		{
			name:     "no quarters",
			quarters: nil,
			index:    CalendarIndex(day(2024, 1, 1), day(2024, 1, 10)),
		},
		{
			name:     "empty index",
			quarters: []time.Time{day(2024, 3, 31)},
			index:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuarterlyTable("revenue")
			for i, d := range tt.quarters {
				q.AppendRow(d, map[string]Value{"revenue": Num(float64(i + 1))}, nil)
			}

			got := AlignToDaily(q, tt.index)
			require.Equal(t, len(tt.index), got.Len())
			require.Len(t, got.Num("revenue"), len(tt.index))
			assert.Equal(t, tt.index, got.Dates)
		})
	}
}

func TestAlignToDailySingleQuarterBroadcast(t *testing.T) {
	// 분기가 하나뿐이면 그 값이 모든 날짜로 전파됨
	q := NewQuarterlyTable("net_income")
	q.AppendRow(day(2024, 6, 30), map[string]Value{"net_income": Num(42)}, nil)

	index := CalendarIndex(day(2024, 1, 1), day(2024, 12, 31))
	got := AlignToDaily(q, index)

	col := got.Num("net_income")
	require.Len(t, col, len(index))
	for i, v := range col {
		require.True(t, v.Valid, "day %s should be filled", index[i].Format("2006-01-02"))
		require.Equal(t, 42.0, v.Float)
	}
}

func TestAlignToDailyForwardAndBackwardFill(t *testing.T) {
	q := NewQuarterlyTable("revenue")
	q.AppendRow(day(2024, 3, 31), map[string]Value{"revenue": Num(100)}, nil)
	q.AppendRow(day(2024, 6, 30), map[string]Value{"revenue": Num(200)}, nil)

	index := []time.Time{
		day(2024, 1, 15), // before first quarter -> backward fill
		day(2024, 3, 31), // on quarter end
		day(2024, 5, 1),  // between quarters -> forward fill
		day(2024, 6, 30),
		day(2024, 9, 1), // after last quarter -> forward fill
	}
	got := AlignToDaily(q, index)

	col := got.Num("revenue")
	want := []float64{100, 100, 100, 200, 200}
	for i, w := range want {
		require.True(t, col[i].Valid)
		assert.Equal(t, w, col[i].Float, "day %d", i)
	}
}

func TestAlignToDailyMissingCellsAreTransparent(t *testing.T) {
	// 결측 분기는 채움 대상에서 제외되어 이전/다음 유효값이 사용됨
	q := NewQuarterlyTable("revenue")
	q.AppendRow(day(2024, 3, 31), map[string]Value{"revenue": Num(100)}, nil)
	q.AppendRow(day(2024, 6, 30), map[string]Value{}, nil) // missing
	q.AppendRow(day(2024, 9, 30), map[string]Value{"revenue": Num(300)}, nil)

	index := []time.Time{day(2024, 7, 15), day(2024, 10, 15)}
	got := AlignToDaily(q, index)

	col := got.Num("revenue")
	// 2024-07-15: the missing 6/30 cell is skipped, last valid is 3/31
	require.True(t, col[0].Valid)
	assert.Equal(t, 100.0, col[0].Float)
	require.True(t, col[1].Valid)
	assert.Equal(t, 300.0, col[1].Float)
}

func TestAlignToDailyUnsortedInput(t *testing.T) {
	q := NewQuarterlyTable("revenue")
	q.AppendRow(day(2024, 9, 30), map[string]Value{"revenue": Num(3)}, nil)
	q.AppendRow(day(2024, 3, 31), map[string]Value{"revenue": Num(1)}, nil)
	q.AppendRow(day(2024, 6, 30), map[string]Value{"revenue": Num(2)}, nil)

	got := AlignToDaily(q, []time.Time{day(2024, 7, 1)})
	col := got.Num("revenue")
	require.True(t, col[0].Valid)
	assert.Equal(t, 2.0, col[0].Float)
}

func TestAlignToDailyEmptyTable(t *testing.T) {
	// 분기 데이터가 전혀 없으면 모든 셀이 결측인 컬럼을 반환 (에러 아님)
	q := NewQuarterlyTable("revenue", "net_income")
	index := CalendarIndex(day(2024, 1, 1), day(2024, 1, 5))

	got := AlignToDaily(q, index)
	require.Equal(t, len(index), got.Len())
	for _, v := range got.Num("revenue") {
		assert.False(t, v.Valid)
	}
	for _, v := range got.Num("net_income") {
		assert.False(t, v.Valid)
	}
}

func TestAlignToDailyTextColumn(t *testing.T) {
	q := NewQuarterlyTable()
	q.AddTextColumn("consensus")
	q.AppendRow(day(2024, 3, 31), nil, map[string]string{"consensus": "beat"})
	q.AppendRow(day(2024, 6, 30), nil, map[string]string{"consensus": "miss"})

	index := []time.Time{day(2024, 2, 1), day(2024, 4, 15), day(2024, 8, 1)}
	got := AlignToDaily(q, index)

	assert.Equal(t, []string{"beat", "beat", "miss"}, got.Text("consensus"))
}

func TestFillForward(t *testing.T) {
	s := NewDailySeries([]Point{
		{Date: day(2024, 1, 3), Value: 1.5},
		{Date: day(2024, 1, 5), Value: 2.5},
	})
	index := CalendarIndex(day(2024, 1, 1), day(2024, 1, 6))

	got := FillForward(s, index)
	require.Len(t, got, 6)

	// 첫 관측 이전은 결측 유지 (bfill 없음)
	assert.False(t, got[0].Valid)
	assert.False(t, got[1].Valid)
	assert.Equal(t, Num(1.5), got[2])
	assert.Equal(t, Num(1.5), got[3])
	assert.Equal(t, Num(2.5), got[4])
	assert.Equal(t, Num(2.5), got[5])
}

func TestNewDailySeries(t *testing.T) {
	s := NewDailySeries([]Point{
		{Date: day(2024, 1, 5), Value: 2},
		{Date: day(2024, 1, 3), Value: 1},
		{Date: time.Date(2024, 1, 5, 15, 30, 0, 0, time.UTC), Value: 3}, // dup date, later wins
	})

	require.Equal(t, 2, s.Len())
	assert.Equal(t, day(2024, 1, 3), s.Points[0].Date)
	assert.Equal(t, 3.0, s.Points[1].Value)
}

func TestBetween(t *testing.T) {
	s := NewDailySeries([]Point{
		{Date: day(2024, 1, 1), Value: 1},
		{Date: day(2024, 1, 15), Value: 2},
		{Date: day(2024, 2, 1), Value: 3},
	})

	got := s.Between(day(2024, 1, 10), day(2024, 1, 31))
	require.Equal(t, 1, got.Len())
	assert.Equal(t, 2.0, got.Points[0].Value)
}

func TestCalendarIndex(t *testing.T) {
	index := CalendarIndex(day(2024, 2, 27), day(2024, 3, 2))
	// 2024은 윤년
	require.Len(t, index, 5)
	assert.Equal(t, day(2024, 2, 29), index[2])
}
