package reddit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ydg06081/dong/pkg/config"
	"github.com/ydg06081/dong/pkg/httputil"
	"github.com/ydg06081/dong/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func TestParseListing(t *testing.T) {
	body := []byte(`{
		"data": {
			"children": [
				{"data": {
					"title": "New SOTA on ImageNet",
					"url": "https://example.com/paper",
					"created_utc": 1727740800.0,
					"score": 412,
					"num_comments": 57,
					"author": "ml_person",
					"selftext": "We trained a model."
				}},
				{"data": {
					"title": "Question about transformers",
					"url": "https://reddit.com/r/machinelearning/abc",
					"created_utc": 1727744400.0,
					"score": 3,
					"num_comments": 0,
					"author": "newbie",
					"selftext": ""
				}}
			]
		}
	}`)

	posts, err := parseListing(body)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "New SOTA on ImageNet", posts[0].Title)
	assert.Equal(t, int64(412), posts[0].Score)
	assert.Equal(t, int64(57), posts[0].NumComments)
	assert.Equal(t, "ml_person", posts[0].Author)
	assert.Equal(t, "We trained a model.", posts[0].SelfText)
	assert.Equal(t, time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), posts[0].Created)

	assert.Equal(t, "newbie", posts[1].Author)
	assert.Empty(t, posts[1].SelfText)
}

func TestParseListingEmpty(t *testing.T) {
	posts, err := parseListing([]byte(`{"data": {"children": []}}`))
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestParseListingInvalidJSON(t *testing.T) {
	_, err := parseListing([]byte(`not json`))
	assert.Error(t, err)
}

func TestFetchNewPostsRequiresAuth(t *testing.T) {
	c := NewClient(httputil.New(testLogger()), config.RedditConfig{
		Subreddit: "machinelearning",
		UserAgent: "test-agent",
	}, testLogger())

	_, err := c.FetchNewPosts(context.Background(), "machinelearning", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authenticated")
}
