package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ydg06081/dong/pkg/config"
	"github.com/ydg06081/dong/pkg/httputil"
	"github.com/ydg06081/dong/pkg/logger"
)

const (
	tokenURL = "https://www.reddit.com/api/v1/access_token"
	apiURL   = "https://oauth.reddit.com"
)

// Client handles Reddit API access via the password grant flow
// ⭐ SSOT: Reddit API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.RedditConfig

	token string
}

// Post is one subreddit submission
type Post struct {
	Title       string
	URL         string
	Created     time.Time
	Score       int64
	NumComments int64
	Author      string
	SelfText    string
}

// NewClient creates a new Reddit client
func NewClient(httpClient *httputil.Client, cfg config.RedditConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		cfg:        cfg,
	}
}

// tokenResponse is the OAuth token payload
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Authenticate obtains an access token with the password grant
func (c *Client) Authenticate(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", c.cfg.Username)
	form.Set("password", c.cfg.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create token request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read token response failed: %w", err)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return fmt.Errorf("parse token response failed: %w", err)
	}
	if token.AccessToken == "" {
		return fmt.Errorf("empty access token")
	}

	c.token = token.AccessToken
	c.logger.Debug("Reddit authentication succeeded")
	return nil
}

// listingResponse is the /new listing envelope
type listingResponse struct {
	Data struct {
		Children []struct {
			Data postData `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type postData struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	CreatedUTC  float64 `json:"created_utc"`
	Score       int64   `json:"score"`
	NumComments int64   `json:"num_comments"`
	Author      string  `json:"author"`
	SelfText    string  `json:"selftext"`
}

// FetchNewPosts fetches the newest posts of a subreddit.
// Authenticate must have been called first.
func (c *Client) FetchNewPosts(ctx context.Context, subreddit string, limit int) ([]Post, error) {
	if c.token == "" {
		return nil, fmt.Errorf("not authenticated")
	}

	fullURL := fmt.Sprintf("%s/r/%s/new?limit=%d", apiURL, url.PathEscape(subreddit), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read listing response failed: %w", err)
	}

	posts, err := parseListing(body)
	if err != nil {
		return nil, fmt.Errorf("parse listing failed: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"subreddit": subreddit,
		"count":     len(posts),
	}).Debug("Fetched subreddit posts")
	return posts, nil
}

// parseListing extracts posts from a listing payload
func parseListing(body []byte) ([]Post, error) {
	var listing listingResponse
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, err
	}

	var posts []Post
	for _, child := range listing.Data.Children {
		d := child.Data
		posts = append(posts, Post{
			Title:       d.Title,
			URL:         d.URL,
			Created:     time.Unix(int64(d.CreatedUTC), 0).UTC(),
			Score:       d.Score,
			NumComments: d.NumComments,
			Author:      d.Author,
			SelfText:    d.SelfText,
		})
	}
	return posts, nil
}
