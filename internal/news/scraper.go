package news

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ydg06081/dong/pkg/httputil"
	"github.com/ydg06081/dong/pkg/logger"
)

// Scraper fills in missing article bodies by fetching the article URL
// ⭐ SSOT: 기사 본문 수집은 스크레이퍼에서만
type Scraper struct {
	httpClient *httputil.Client
	logger     *logger.Logger
}

// NewScraper creates a scraper
func NewScraper(httpClient *httputil.Client, log *logger.Logger) *Scraper {
	return &Scraper{httpClient: httpClient, logger: log}
}

// FillBodies fetches the body text for every article whose Body is
// empty and whose URL is set. Fetch failures are logged and skipped so
// one dead link does not abort the run. Returns the number of bodies
// filled.
func (s *Scraper) FillBodies(ctx context.Context, articles []Article) int {
	filled := 0
	for i := range articles {
		if articles[i].Body != "" || articles[i].URL == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return filled
		}

		body, err := s.fetchBody(ctx, articles[i].URL)
		if err != nil {
			s.logger.WithError(err).
				WithField("url", articles[i].URL).
				Warn("Article fetch failed")
			continue
		}
		articles[i].Body = body
		filled++
	}

	s.logger.WithField("filled", filled).Debug("Article bodies filled")
	return filled
}

func (s *Scraper) fetchBody(ctx context.Context, url string) (string, error) {
	resp, err := s.httpClient.Get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body failed: %w", err)
	}

	text, err := ExtractBody(string(body))
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("no article text found")
	}
	return text, nil
}

// ExtractBody pulls the main article text out of an HTML page. It
// prefers an <article> element, then common article body containers,
// then falls back to joining all <p> elements.
func ExtractBody(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse html failed: %w", err)
	}

	doc.Find("script, style, nav, header, footer").Remove()

	selectors := []string{
		"article",
		"#article-body",
		".article-body",
		"#newsct_article",
	}
	for _, sel := range selectors {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if text := collapse(node.Text()); text != "" {
				return text, nil
			}
		}
	}

	var parts []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := collapse(p.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n"), nil
}

// collapse trims and squeezes runs of whitespace to single spaces
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
