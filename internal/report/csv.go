package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ydg06081/dong/internal/timeseries"
)

const dateLayout = "2006-01-02"

// WriteDailyTable writes a daily table to path as CSV. Columns gives the
// output order after the date column; columns absent from the table are
// written empty. Missing cells become empty strings.
func WriteDailyTable(path string, t *timeseries.DailyTable, columns []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory failed: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file failed: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := append([]string{ColDate}, columns...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}

	for i, date := range t.Dates {
		row := make([]string, 0, len(header))
		row = append(row, date.Format(dateLayout))
		for _, name := range columns {
			row = append(row, formatCell(t, name, i))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row failed: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush failed: %w", err)
	}
	return nil
}

func formatCell(t *timeseries.DailyTable, name string, i int) string {
	if col, ok := t.Nums[name]; ok {
		if !col[i].Valid {
			return ""
		}
		return strconv.FormatFloat(col[i].Float, 'f', -1, 64)
	}
	if col, ok := t.Texts[name]; ok {
		return col[i]
	}
	return ""
}

// ReadDailyTable reads a CSV written by WriteDailyTable. textColumns
// names the columns parsed as text; everything else is numeric, with
// empty cells as missing values.
func ReadDailyTable(path string, textColumns map[string]bool) (*timeseries.DailyTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file failed: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv failed: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty csv: %s", path)
	}

	header := records[0]
	if len(header) == 0 || header[0] != ColDate {
		return nil, fmt.Errorf("unexpected header in %s", path)
	}
	columns := header[1:]
	rows := records[1:]

	dates := make([]time.Time, len(rows))
	for i, row := range rows {
		d, err := time.Parse(dateLayout, row[0])
		if err != nil {
			return nil, fmt.Errorf("parse date %q failed: %w", row[0], err)
		}
		dates[i] = d
	}

	t := timeseries.NewDailyTable(dates)
	for c, name := range columns {
		if textColumns[name] {
			vals := make([]string, len(rows))
			for i, row := range rows {
				vals[i] = row[c+1]
			}
			t.SetText(name, vals)
			continue
		}
		vals := make([]timeseries.Value, len(rows))
		for i, row := range rows {
			cell := row[c+1]
			if cell == "" {
				continue
			}
			f, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("parse %s row %d: %w", name, i, err)
			}
			vals[i] = timeseries.Num(f)
		}
		t.SetNum(name, vals)
	}
	return t, nil
}

// AnalysisRow is one answered analysis request
type AnalysisRow struct {
	Date   time.Time
	Input  string
	Answer string
}

// WriteAnalysisResults writes analysis rows sorted by date
func WriteAnalysisResults(path string, rows []AnalysisRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory failed: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file failed: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "input", "answer"}); err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}
	for _, row := range rows {
		record := []string{row.Date.Format(dateLayout), row.Input, row.Answer}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row failed: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
