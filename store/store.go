// Package store owns the upsert-with-dedup persistence path for enriched
// articles and the per-source rolling statistics that go with it.
package store

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"news-intel-service/metrics"
	"news-intel-service/model"
	"news-intel-service/repository"
)

type Store struct {
	articles repository.ArticleRepository
	sources  repository.SourceRepository
	usage    repository.UsageLogRepository
	tx       repository.Transactor
	now      func() time.Time
}

func New(articles repository.ArticleRepository, sources repository.SourceRepository,
	usage repository.UsageLogRepository, tx repository.Transactor) *Store {
	return &Store{
		articles: articles,
		sources:  sources,
		usage:    usage,
		tx:       tx,
		now:      time.Now,
	}
}

// StoreArticles upserts a batch keyed by URL, in input order. Duplicate
// conflicts and per-row failures are folded into the summary; the batch
// itself never fails.
func (s *Store) StoreArticles(ctx context.Context, country string, batch []model.Article) model.StorageSummary {
	countryCode := strings.ToUpper(strings.TrimSpace(country))
	summary := model.StorageSummary{Country: countryCode, Requested: len(batch)}

	for _, incoming := range batch {
		if strings.TrimSpace(incoming.URL) == "" {
			metrics.ArticlesStoredTotal.WithLabelValues("skipped").Inc()
			continue
		}

		existing, err := s.articles.FindByURL(ctx, incoming.URL)
		isNew := errors.Is(err, repository.ErrNotFound)
		if err != nil && !isNew {
			slog.Warn("article lookup failed, skipping row",
				slog.String("url", incoming.URL), slog.String("error", err.Error()))
			metrics.ArticlesStoredTotal.WithLabelValues("failed").Inc()
			continue
		}

		entity := s.buildEntity(countryCode, incoming, existing, isNew)

		err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := s.articles.Save(ctx, entity); err != nil {
				return err
			}
			return s.updateSourceStats(ctx, incoming, entity)
		})

		switch {
		case err == nil:
			if isNew {
				summary.Inserted++
				metrics.ArticlesStoredTotal.WithLabelValues("inserted").Inc()
			} else {
				summary.Updated++
				metrics.ArticlesStoredTotal.WithLabelValues("updated").Inc()
			}
		case errors.Is(err, repository.ErrDuplicate):
			summary.Duplicates++
			metrics.ArticlesStoredTotal.WithLabelValues("duplicate").Inc()
			slog.Debug("duplicate article detected", slog.String("url", incoming.URL))
		default:
			metrics.ArticlesStoredTotal.WithLabelValues("failed").Inc()
			slog.Warn("failed to persist article",
				slog.String("title", incoming.Title), slog.String("error", err.Error()))
		}
	}

	s.logBatch(ctx, countryCode, len(batch))

	return summary
}

func (s *Store) buildEntity(countryCode string, incoming model.Article, existing *model.Article, isNew bool) *model.Article {
	now := s.now()

	var entity model.Article
	if isNew {
		entity = model.Article{
			ID:        incoming.ID,
			URL:       incoming.URL,
			CreatedAt: now,
		}
		if entity.ID == "" {
			entity.ID = "article-" + uuid.NewString()
		}
	} else {
		entity = *existing
	}
	entity.Title = incoming.Title

	// Full overwrite of derived fields: latest enrichment wins, rating and
	// view counters survive from the existing record.
	entity.Source = incoming.Source
	entity.Author = incoming.Author
	entity.PublishedAt = incoming.PublishedAt
	entity.Description = incoming.Description
	entity.Content = incoming.Content
	if strings.TrimSpace(entity.Content) == "" {
		entity.Content = incoming.Description
	}
	entity.Country = countryCode
	entity.Category = incoming.Category
	entity.TopicCategory = incoming.TopicCategory
	entity.RelevanceScore = normalizeScore(incoming.RelevanceScore)
	entity.AnalysisScore = normalizeScore(incoming.AnalysisScore)
	entity.CompositeScore = incoming.CompositeScore
	entity.Provenance = incoming.Provenance
	entity.Language = incoming.Language
	if entity.Language == "" {
		entity.Language = "en"
	}
	entity.SentimentScore = incoming.SentimentScore
	entity.ReadabilityScore = incoming.ReadabilityScore
	entity.WordCount = incoming.WordCount
	if entity.WordCount == 0 {
		entity.WordCount = estimateWordCount(incoming)
	}
	entity.ImageURL = incoming.ImageURL
	entity.Tags = incoming.Tags
	entity.Premium = incoming.Premium
	entity.Breaking = incoming.Breaking
	entity.UpdatedAt = now

	return &entity
}

// updateSourceStats attributes the article to its NewsSource record and
// rolls the running counters forward. The incremental average must equal a
// from-scratch mean over every attributed article.
func (s *Store) updateSourceStats(ctx context.Context, incoming model.Article, entity *model.Article) error {
	name := strings.TrimSpace(entity.Source)
	if name == "" {
		return nil
	}

	source, err := s.sources.FindByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		provenance := incoming.Provenance
		if provenance == "" {
			provenance = "newsapi"
		}
		source = &model.NewsSource{
			Name:      name,
			Domain:    extractDomain(entity.URL),
			APISource: provenance,
			Premium:   incoming.Premium,
			Active:    true,
			CreatedAt: s.now(),
		}
	} else if err != nil {
		return err
	}

	previousCount := source.ArticleCount
	source.ArticleCount = previousCount + 1

	if incoming.RelevanceScore != nil && incoming.AnalysisScore != nil {
		totalScore := float64(*incoming.RelevanceScore + *incoming.AnalysisScore)
		accumulated := 0.0
		if source.AvgQualityScore != nil {
			accumulated = *source.AvgQualityScore * float64(previousCount)
		}
		avg := round2((accumulated + totalScore) / float64(source.ArticleCount))
		source.AvgQualityScore = &avg
	}

	if entity.PublishedAt != nil {
		if source.LastArticleAt == nil || entity.PublishedAt.After(*source.LastArticleAt) {
			source.LastArticleAt = entity.PublishedAt
		}
	}

	return s.sources.Save(ctx, source)
}

func (s *Store) logBatch(ctx context.Context, countryCode string, size int) {
	entry := &model.UsageLog{
		ID:               uuid.NewString(),
		Provider:         "batch_storage",
		Endpoint:         "/store/" + countryCode,
		ArticlesReturned: size,
		CreatedAt:        s.now(),
	}
	if err := s.usage.Insert(ctx, entry); err != nil {
		slog.Warn("failed to write usage log entry", slog.String("error", err.Error()))
	}
	slog.Info("stored article batch",
		slog.String("endpoint", entry.Endpoint), slog.Int("size", size))
}

func normalizeScore(score *int) *int {
	if score == nil {
		return nil
	}
	v := *score
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return &v
}

func estimateWordCount(a model.Article) int {
	text := a.Content
	if strings.TrimSpace(text) == "" {
		text = a.Description
	}
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return len(strings.Fields(text))
}

func extractDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
