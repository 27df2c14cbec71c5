// Package repository defines the persistence boundary of the service and
// its MongoDB implementation. Services depend on the small interfaces
// below so the aggregation logic stays testable without a live database.
package repository

import (
	"context"
	"errors"
	"time"

	"news-intel-service/model"
)

// ErrNotFound is returned when a lookup by key matches nothing.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
// Callers treat it as a recoverable conflict, never as a fatal error.
var ErrDuplicate = errors.New("duplicate key")

// Transactor wraps a function in one transaction. Every read-modify-write
// unit (article + source stats, submission + country score, rating +
// article counters) runs inside exactly one of these.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type ArticleRepository interface {
	FindByURL(ctx context.Context, url string) (*model.Article, error)
	FindByID(ctx context.Context, id string) (*model.Article, error)
	Save(ctx context.Context, a *model.Article) error
	Latest(ctx context.Context, limit int) ([]model.Article, error)
	LatestByCountry(ctx context.Context, country string, limit int) ([]model.Article, error)
	CountByCountry(ctx context.Context, country string) (int64, error)
	Stats(ctx context.Context) (*model.ArticleStats, error)
	TrendingTopics(ctx context.Context, since time.Time) ([]model.TrendingTopic, error)
}

type SourceRepository interface {
	FindByName(ctx context.Context, name string) (*model.NewsSource, error)
	Save(ctx context.Context, s *model.NewsSource) error
}

type SubmissionRepository interface {
	// FindByURL returns the earliest submission for the URL, or ErrNotFound.
	FindByURL(ctx context.Context, url string) (*model.Submission, error)
	Insert(ctx context.Context, s *model.Submission) error
	CountDistinctUsers(ctx context.Context, country string) (int64, error)
}

type ScoreRepository interface {
	FindByCountry(ctx context.Context, country string) (*model.CountryScore, error)
	Save(ctx context.Context, s *model.CountryScore) error
	Leaderboard(ctx context.Context, limit int) ([]model.CountryScore, error)
}

type RatingRepository interface {
	Insert(ctx context.Context, r *model.ArticleRating) error
}

type UsageLogRepository interface {
	Insert(ctx context.Context, u *model.UsageLog) error
}
