package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ydg06081/dong/internal/external/reddit"
	"github.com/ydg06081/dong/pkg/httputil"
)

// redditCmd represents the reddit command
var redditCmd = &cobra.Command{
	Use:   "reddit",
	Short: "서브레딧 게시글 수집",
	Long: `Reddit API로 서브레딧 최신 게시글을 수집해 CSV로 저장합니다.

인증은 password grant 방식이며 REDDIT_* 환경변수가 필요합니다.

Example:
  go run ./cmd/dong reddit
  go run ./cmd/dong reddit --subreddit stocks --limit 25`,
	RunE: runReddit,
}

var (
	redditSubreddit string
	redditLimit     int
)

func init() {
	rootCmd.AddCommand(redditCmd)

	redditCmd.Flags().StringVar(&redditSubreddit, "subreddit", "", "대상 서브레딧 (기본: REDDIT_SUBREDDIT)")
	redditCmd.Flags().IntVar(&redditLimit, "limit", 0, "게시글 수 (기본: REDDIT_POST_LIMIT)")
}

func runReddit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	ctx := context.Background()

	subreddit := cfg.Reddit.Subreddit
	if redditSubreddit != "" {
		subreddit = redditSubreddit
	}
	limit := cfg.Reddit.PostLimit
	if redditLimit > 0 {
		limit = redditLimit
	}

	PrintRunHeader("Reddit 게시글 수집", nil, fmt.Sprintf("r/%s (limit %d)", subreddit, limit))

	client := reddit.NewClient(httputil.New(log), cfg.Reddit, log)
	if err := client.Authenticate(ctx); err != nil {
		PrintError(err.Error())
		return err
	}

	posts, err := client.FetchNewPosts(ctx, subreddit, limit)
	if err != nil {
		PrintError(err.Error())
		return err
	}

	path := filepath.Join(cfg.DataDir, fmt.Sprintf("reddit_%s.csv", subreddit))
	if err := writeRedditCSV(path, posts); err != nil {
		return err
	}

	fmt.Println()
	PrintSuccess(fmt.Sprintf("%d건 저장 -> %s", len(posts), path))
	return nil
}

// writeRedditCSV writes posts in the subreddit collection format
func writeRedditCSV(path string, posts []reddit.Post) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory failed: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file failed: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"created_utc", "title", "author", "score", "num_comments", "url", "selftext"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}
	for _, p := range posts {
		row := []string{
			p.Created.Format("2006-01-02 15:04:05"),
			p.Title,
			p.Author,
			fmt.Sprint(p.Score),
			fmt.Sprint(p.NumComments),
			p.URL,
			p.SelfText,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row failed: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
