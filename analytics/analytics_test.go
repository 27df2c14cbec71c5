package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-intel-service/model"
)

type fakeArticles struct {
	topics    []model.TrendingTopic
	lastSince time.Time
}

func (f *fakeArticles) TrendingTopics(_ context.Context, since time.Time) ([]model.TrendingTopic, error) {
	f.lastSince = since
	return f.topics, nil
}

func (f *fakeArticles) FindByURL(context.Context, string) (*model.Article, error) { return nil, nil }
func (f *fakeArticles) FindByID(context.Context, string) (*model.Article, error)  { return nil, nil }
func (f *fakeArticles) Save(context.Context, *model.Article) error                { return nil }
func (f *fakeArticles) Latest(context.Context, int) ([]model.Article, error)      { return nil, nil }
func (f *fakeArticles) LatestByCountry(context.Context, string, int) ([]model.Article, error) {
	return nil, nil
}
func (f *fakeArticles) CountByCountry(context.Context, string) (int64, error) { return 0, nil }
func (f *fakeArticles) Stats(context.Context) (*model.ArticleStats, error) {
	return &model.ArticleStats{TotalArticles: 42}, nil
}

func TestTrendingTopicsWindow(t *testing.T) {
	articles := &fakeArticles{}
	svc := NewService(articles)
	fixed := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	_, err := svc.TrendingTopics(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, articles.lastSince.Equal(fixed.AddDate(0, 0, -3)))

	_, err = svc.TrendingTopics(context.Background(), 0)
	require.NoError(t, err)
	assert.True(t, articles.lastSince.Equal(fixed.AddDate(0, 0, -7)), "zero window defaults to seven days")
}

func TestTrendingTopicsNeverNil(t *testing.T) {
	svc := NewService(&fakeArticles{})

	topics, err := svc.TrendingTopics(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, topics)
	assert.Empty(t, topics)
}

func TestStatsDelegates(t *testing.T) {
	svc := NewService(&fakeArticles{})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), stats.TotalArticles)
}
