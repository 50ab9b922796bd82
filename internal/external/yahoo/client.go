package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ydg06081/dong/pkg/config"
	"github.com/ydg06081/dong/pkg/httputil"
	"github.com/ydg06081/dong/pkg/logger"
)

// Client handles communication with the Yahoo Finance JSON APIs
// ⭐ SSOT: Yahoo Finance API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	userAgent  string
}

// NewClient creates a new Yahoo Finance client
func NewClient(httpClient *httputil.Client, cfg config.YahooConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
	}
}

// fetchJSON performs a GET request with browser-like headers and returns
// the raw body. Yahoo serves error pages to clients without a User-Agent.
func (c *Client) fetchJSON(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body failed: %w", err)
	}

	return body, nil
}

// quoteSummaryResponse is the envelope of the v10 quoteSummary API
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []json.RawMessage `json:"result"`
		Error  *apiError         `json:"error"`
	} `json:"quoteSummary"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// rawValue is Yahoo's {raw, fmt} number wrapper
type rawValue struct {
	Raw *float64 `json:"raw"`
}

// quoteSummary fetches one quoteSummary module and returns the first result
func (c *Client) quoteSummary(ctx context.Context, symbol, module string) (json.RawMessage, error) {
	fullURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s", c.baseURL, symbol, module)

	body, err := c.fetchJSON(ctx, fullURL)
	if err != nil {
		return nil, err
	}

	var envelope quoteSummaryResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("parse quoteSummary response failed: %w", err)
	}

	if envelope.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quoteSummary error: %s", envelope.QuoteSummary.Error.Description)
	}
	if len(envelope.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("quoteSummary returned no result for %s", symbol)
	}

	return envelope.QuoteSummary.Result[0], nil
}
