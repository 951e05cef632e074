package testcorpus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/matchdb/pkg/logger"
)

// Verify asks a running server for its totals and compares them with exp.
func Verify(ctx context.Context, baseURL string, timeout time.Duration, exp Expected) error {
	client := &http.Client{Timeout: timeout}

	checks := []struct {
		path string
		want int
	}{
		{"/api/all_matches?per_page=10", exp.Matches},
		{"/api/tournaments", exp.Tournaments},
		{"/api/teams", exp.Teams},
		{"/api/seasons", exp.Seasons},
	}
	for _, c := range checks {
		got, err := fetchTotal(ctx, client, baseURL+c.path)
		if err != nil {
			return err
		}
		if got != c.want {
			return fmt.Errorf("%s: got %d, want %d", c.path, got, c.want)
		}
		logger.Get().Info(ctx, "verified", logger.String("path", c.path), logger.Int("total", got))
	}
	return nil
}

// fetchTotal reads either a {"total": n} page or a bare JSON array.
func fetchTotal(ctx context.Context, client *http.Client, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%s: unexpected status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response body: %w", err)
	}

	var page struct {
		Total *int `json:"total"`
	}
	if err := json.Unmarshal(body, &page); err == nil && page.Total != nil {
		return *page.Total, nil
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return 0, fmt.Errorf("%s: unexpected body: %w", url, err)
	}
	return len(rows), nil
}
