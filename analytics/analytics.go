// Package analytics serves read-side aggregates over the article corpus.
package analytics

import (
	"context"
	"log/slog"
	"time"

	"news-intel-service/model"
	"news-intel-service/repository"
)

const defaultWindowDays = 7

type Service struct {
	articles repository.ArticleRepository
	now      func() time.Time
}

func NewService(articles repository.ArticleRepository) *Service {
	return &Service{articles: articles, now: time.Now}
}

// TrendingTopics groups recent articles by topic category and returns the
// groups ordered by volume, then average score. A non-positive window falls
// back to seven days.
func (s *Service) TrendingTopics(ctx context.Context, windowDays int) ([]model.TrendingTopic, error) {
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	since := s.now().AddDate(0, 0, -windowDays)

	topics, err := s.articles.TrendingTopics(ctx, since)
	if err != nil {
		return nil, err
	}

	slog.Debug("computed trending topics",
		slog.Int("windowDays", windowDays), slog.Int("topics", len(topics)))

	if topics == nil {
		topics = []model.TrendingTopic{}
	}
	return topics, nil
}

// Stats returns corpus-wide counters for the stats endpoint.
func (s *Service) Stats(ctx context.Context) (*model.ArticleStats, error) {
	return s.articles.Stats(ctx)
}
