package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-intel-service/analytics"
	"news-intel-service/cache"
	"news-intel-service/game"
	"news-intel-service/model"
	"news-intel-service/ratings"
	"news-intel-service/repository"
	"news-intel-service/service"
	"news-intel-service/store"
)

type memArticles struct {
	byID map[string]*model.Article
}

func (m *memArticles) FindByURL(_ context.Context, url string) (*model.Article, error) {
	for _, a := range m.byID {
		if a.URL == url {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memArticles) FindByID(_ context.Context, id string) (*model.Article, error) {
	a, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *memArticles) Save(_ context.Context, a *model.Article) error {
	copied := *a
	m.byID[a.ID] = &copied
	return nil
}

func (m *memArticles) Latest(_ context.Context, limit int) ([]model.Article, error) {
	var rows []model.Article
	for _, a := range m.byID {
		rows = append(rows, *a)
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (m *memArticles) LatestByCountry(_ context.Context, country string, limit int) ([]model.Article, error) {
	var rows []model.Article
	for _, a := range m.byID {
		if a.Country == country {
			rows = append(rows, *a)
		}
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (m *memArticles) CountByCountry(_ context.Context, country string) (int64, error) {
	var n int64
	for _, a := range m.byID {
		if a.Country == country {
			n++
		}
	}
	return n, nil
}

func (m *memArticles) Stats(context.Context) (*model.ArticleStats, error) {
	return &model.ArticleStats{TotalArticles: int64(len(m.byID))}, nil
}

func (m *memArticles) TrendingTopics(context.Context, time.Time) ([]model.TrendingTopic, error) {
	return []model.TrendingTopic{{Topic: "research", ArticleCount: 2}}, nil
}

type memSources struct{}

func (memSources) FindByName(context.Context, string) (*model.NewsSource, error) {
	return nil, repository.ErrNotFound
}
func (memSources) Save(context.Context, *model.NewsSource) error { return nil }

type memUsage struct{}

func (memUsage) Insert(context.Context, *model.UsageLog) error { return nil }

type memSubmissions struct {
	rows []model.Submission
}

func (m *memSubmissions) FindByURL(_ context.Context, url string) (*model.Submission, error) {
	for i := range m.rows {
		if m.rows[i].URL == url {
			copied := m.rows[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memSubmissions) Insert(_ context.Context, s *model.Submission) error {
	m.rows = append(m.rows, *s)
	return nil
}

func (m *memSubmissions) CountDistinctUsers(context.Context, string) (int64, error) { return 1, nil }

type memScores struct {
	byCountry map[string]*model.CountryScore
}

func (m *memScores) FindByCountry(_ context.Context, country string) (*model.CountryScore, error) {
	s, ok := m.byCountry[country]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *memScores) Save(_ context.Context, s *model.CountryScore) error {
	copied := *s
	m.byCountry[s.Country] = &copied
	return nil
}

func (m *memScores) Leaderboard(context.Context, int) ([]model.CountryScore, error) {
	var rows []model.CountryScore
	for _, s := range m.byCountry {
		rows = append(rows, *s)
	}
	return rows, nil
}

type memRatings struct{}

func (memRatings) Insert(context.Context, *model.ArticleRating) error { return nil }

type memCache struct{}

func (memCache) Get(context.Context, string) (*model.CountryNews, error) {
	return nil, cache.ErrMiss
}
func (memCache) Put(context.Context, *model.CountryNews) error { return nil }
func (memCache) Evict(context.Context, string) error           { return nil }

type memFeed struct{}

func (memFeed) TopHeadlines(context.Context, string) ([]model.RawArticle, error) {
	return nil, nil
}

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestRouter() (*gin.Engine, *memArticles) {
	gin.SetMode(gin.TestMode)

	articles := &memArticles{byID: map[string]*model.Article{}}
	st := store.New(articles, memSources{}, memUsage{}, passthroughTx{})
	newsSvc := service.NewNewsService(memFeed{}, memCache{}, st, articles, []string{"US"})
	gameSvc := game.NewService(&memSubmissions{}, &memScores{byCountry: map[string]*model.CountryScore{}}, passthroughTx{})
	ratingSvc := ratings.NewService(memRatings{}, articles, passthroughTx{})
	analyticsSvc := analytics.NewService(articles)

	server := NewServer(newsSvc, gameSvc, ratingSvc, analyticsSvc, nil, []string{"US"})
	return server.Router(), articles
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter()

	for _, path := range []string{"/", "/health", "/ready"} {
		rec := doRequest(t, router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestGetCountryNewsValidation(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/api/news/usa", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCountryNews(t *testing.T) {
	router, articles := newTestRouter()
	articles.byID["a1"] = &model.Article{ID: "a1", Country: "US", Title: "stored"}

	rec := doRequest(t, router, http.MethodGet, "/api/news/us", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var news model.CountryNews
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &news))
	assert.Equal(t, "US", news.Country)
	assert.Equal(t, 1, news.Total)
}

func TestSubmitValidationStatus(t *testing.T) {
	router, _ := newTestRouter()

	// missing required country
	rec := doRequest(t, router, http.MethodPost, "/api/game/submit", `{"url":"https://example.com/x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// invalid country surfaces as 400 from the service
	rec = doRequest(t, router, http.MethodPost, "/api/game/submit",
		`{"url":"https://example.com/x","country":"USA"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitOKOnBothRoutes(t *testing.T) {
	router, _ := newTestRouter()

	for _, path := range []string{"/api/game/submit", "/api/fans-race/submit"} {
		rec := doRequest(t, router, http.MethodPost, path,
			`{"url":"https://example.com/`+path+`","country":"us"}`)
		require.Equal(t, http.StatusOK, rec.Code, path)

		var result model.SubmissionResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "US", result.Country)
		assert.False(t, result.Duplicate)
	}
}

func TestRateUnknownArticleIs404(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/articles/missing/rate", `{"rating":4}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateArticle(t *testing.T) {
	router, articles := newTestRouter()
	articles.byID["a1"] = &model.Article{ID: "a1"}

	rec := doRequest(t, router, http.MethodPost, "/api/articles/a1/rate", `{"rating":4}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result model.RatingResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 4, result.Rating)
	assert.Equal(t, 1, result.RatingCount)
}

func TestTrendingEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/api/news/trending?days=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "research")
}

func TestStatsEndpoint(t *testing.T) {
	router, articles := newTestRouter()
	articles.byID["a1"] = &model.Article{ID: "a1"}

	rec := doRequest(t, router, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats model.ArticleStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.TotalArticles)
}
