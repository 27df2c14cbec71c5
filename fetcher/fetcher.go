// Package fetcher is the NewsAPI-style HTTP client. It hands raw feed
// records to the enrichment pipeline and never touches storage itself.
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"news-intel-service/metrics"
	"news-intel-service/model"
)

type Client struct {
	baseURL  string
	apiKey   string
	pageSize int
	client   *http.Client
}

func New(baseURL, apiKey string, pageSize int) *Client {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		pageSize: pageSize,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// apiArticle mirrors the NewsAPI top-headlines response shape.
type apiArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string     `json:"author"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	URLToImage  string     `json:"urlToImage"`
	PublishedAt *time.Time `json:"publishedAt"`
	Content     string     `json:"content"`
}

// TopHeadlines fetches one page of headlines for a country. The caller
// decides how to degrade when this fails; the client only reports.
func (c *Client) TopHeadlines(ctx context.Context, country string) ([]model.RawArticle, error) {
	country = strings.ToLower(strings.TrimSpace(country))

	endpoint := fmt.Sprintf("%s?country=%s&pageSize=%d", c.baseURL, url.QueryEscape(country), c.pageSize)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ArticlesFetchedTotal.WithLabelValues(country, "error").Inc()
		return nil, fmt.Errorf("fetch headlines for %s: %w", country, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ArticlesFetchedTotal.WithLabelValues(country, "error").Inc()
		return nil, fmt.Errorf("fetch headlines for %s: HTTP %d", country, resp.StatusCode)
	}

	var payload struct {
		Status   string       `json:"status"`
		Articles []apiArticle `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.ArticlesFetchedTotal.WithLabelValues(country, "error").Inc()
		return nil, fmt.Errorf("decode headlines for %s: %w", country, err)
	}

	raw := make([]model.RawArticle, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		raw = append(raw, model.RawArticle{
			Source:      a.Source.Name,
			Author:      a.Author,
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			ImageURL:    a.URLToImage,
			Content:     a.Content,
			PublishedAt: a.PublishedAt,
		})
	}

	metrics.ArticlesFetchedTotal.WithLabelValues(country, "ok").Add(float64(len(raw)))
	slog.Debug("fetched headlines", slog.String("country", country), slog.Int("count", len(raw)))

	return raw, nil
}
