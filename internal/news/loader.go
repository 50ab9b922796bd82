// Package news loads news article CSVs and fills article bodies by
// fetching the linked pages.
package news

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"
)

// Article is one news record from the projected CSV
type Article struct {
	Date     time.Time
	Title    string
	Keywords []string
	Body     string
	URL      string
}

// Header layout of the projected news CSV
var csvHeader = []string{"date", "title", "keywords", "body", "url"}

// Load reads a news CSV into articles. Rows with unparseable dates are
// skipped.
func Load(path string) ([]Article, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file failed: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(csvHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv failed: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty csv: %s", path)
	}

	if !headerMatches(records[0]) {
		return nil, fmt.Errorf("unexpected header in %s: %v", path, records[0])
	}

	var articles []Article
	for _, row := range records[1:] {
		date, err := time.Parse("2006-01-02", row[0])
		if err != nil {
			continue
		}
		articles = append(articles, Article{
			Date:     date,
			Title:    row[1],
			Keywords: splitKeywords(row[2]),
			Body:     row[3],
			URL:      row[4],
		})
	}
	return articles, nil
}

// Save writes articles back to a news CSV
func Save(path string, articles []Article) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file failed: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}
	for _, a := range articles {
		row := []string{
			a.Date.Format("2006-01-02"),
			a.Title,
			strings.Join(a.Keywords, ","),
			a.Body,
			a.URL,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row failed: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func headerMatches(row []string) bool {
	if len(row) != len(csvHeader) {
		return false
	}
	for i, name := range csvHeader {
		if strings.TrimSpace(strings.ToLower(row[i])) != name {
			return false
		}
	}
	return true
}

func splitKeywords(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
