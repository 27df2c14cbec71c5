package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopHeadlines(t *testing.T) {
	var gotPath, gotQuery, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("X-Api-Key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{
					"source": {"id": "reuters", "name": "Reuters"},
					"author": "Jane Doe",
					"title": "OpenAI releases new model",
					"description": "A longer description.",
					"url": "https://example.com/a",
					"urlToImage": "https://example.com/a.jpg",
					"publishedAt": "2026-08-01T10:00:00Z",
					"content": "Full content here."
				},
				{
					"source": {"name": "Wired"},
					"title": "Second story",
					"url": "https://example.com/b"
				}
			]
		}`))
	}))
	defer server.Close()

	c := New(server.URL+"/v2/top-headlines", "secret", 20)
	raw, err := c.TopHeadlines(context.Background(), "US")
	require.NoError(t, err)
	require.Len(t, raw, 2)

	assert.Equal(t, "/v2/top-headlines", gotPath)
	assert.Equal(t, "country=us&pageSize=20", gotQuery)
	assert.Equal(t, "secret", gotKey)

	first := raw[0]
	assert.Equal(t, "Reuters", first.Source)
	assert.Equal(t, "Jane Doe", first.Author)
	assert.Equal(t, "OpenAI releases new model", first.Title)
	assert.Equal(t, "https://example.com/a", first.URL)
	assert.Equal(t, "https://example.com/a.jpg", first.ImageURL)
	assert.Equal(t, "Full content here.", first.Content)
	require.NotNil(t, first.PublishedAt)
	assert.Equal(t, 2026, first.PublishedAt.Year())

	second := raw[1]
	assert.Equal(t, "Wired", second.Source)
	assert.Nil(t, second.PublishedAt)
}

func TestTopHeadlinesNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := New(server.URL, "secret", 20)
	_, err := c.TopHeadlines(context.Background(), "us")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 429")
}

func TestTopHeadlinesBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"articles": [`))
	}))
	defer server.Close()

	c := New(server.URL, "secret", 20)
	_, err := c.TopHeadlines(context.Background(), "us")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode headlines")
}

func TestTopHeadlinesEmptyFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok", "articles": []}`))
	}))
	defer server.Close()

	c := New(server.URL, "secret", 20)
	raw, err := c.TopHeadlines(context.Background(), "us")
	require.NoError(t, err)
	assert.Empty(t, raw)
}
