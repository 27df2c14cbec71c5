// Package service orchestrates the country-news read-through path: memo
// cache in front, feed fetch plus enrichment behind it, Mongo underneath.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"news-intel-service/cache"
	"news-intel-service/enricher"
	"news-intel-service/model"
	"news-intel-service/repository"
	"news-intel-service/store"
)

const countryPageSize = 50

// Feed abstracts the external headlines client.
type Feed interface {
	TopHeadlines(ctx context.Context, country string) ([]model.RawArticle, error)
}

type NewsService struct {
	feed      Feed
	cache     cache.CountryCache
	store     *store.Store
	articles  repository.ArticleRepository
	countries []string
	now       func() time.Time
}

func NewNewsService(feed Feed, memo cache.CountryCache, st *store.Store,
	articles repository.ArticleRepository, countries []string) *NewsService {
	return &NewsService{
		feed:      feed,
		cache:     memo,
		store:     st,
		articles:  articles,
		countries: countries,
		now:       time.Now,
	}
}

// CountryNews serves the memoized payload for a country, computing and
// caching it on a miss. A failing feed degrades to whatever is already
// stored instead of surfacing an error to the reader.
func (s *NewsService) CountryNews(ctx context.Context, country string) (*model.CountryNews, error) {
	countryCode := strings.ToUpper(strings.TrimSpace(country))

	cached, err := s.cache.Get(ctx, countryCode)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		slog.Warn("cache read failed, recomputing",
			slog.String("country", countryCode), slog.String("error", err.Error()))
	}

	news, fresh := s.computeCountryNews(ctx, countryCode)
	if fresh {
		if err := s.cache.Put(ctx, news); err != nil {
			slog.Warn("cache write failed",
				slog.String("country", countryCode), slog.String("error", err.Error()))
		}
	}
	return news, nil
}

// computeCountryNews runs fetch, enrich and store, then reads back the
// freshest stored rows. The second return reports whether the payload is
// complete enough to memoize.
func (s *NewsService) computeCountryNews(ctx context.Context, countryCode string) (*model.CountryNews, bool) {
	fresh := true

	raw, err := s.feed.TopHeadlines(ctx, countryCode)
	if err != nil {
		slog.Warn("feed fetch failed, serving stored articles",
			slog.String("country", countryCode), slog.String("error", err.Error()))
		fresh = false
	} else {
		s.EnrichAndStore(ctx, countryCode, raw)
	}

	articles, err := s.articles.LatestByCountry(ctx, countryCode, countryPageSize)
	if err != nil {
		slog.Error("reading stored articles failed",
			slog.String("country", countryCode), slog.String("error", err.Error()))
		articles = nil
		fresh = false
	}
	if articles == nil {
		articles = []model.Article{}
	}

	return &model.CountryNews{
		Country:  countryCode,
		Total:    len(articles),
		Articles: articles,
	}, fresh
}

// EnrichAndStore scores a raw batch and persists it, returning the storage
// summary.
func (s *NewsService) EnrichAndStore(ctx context.Context, country string, raw []model.RawArticle) model.StorageSummary {
	batch := enricher.EnrichBatch(country, raw)
	return s.store.StoreArticles(ctx, country, batch)
}

// RefreshCountries evicts the memo entries and re-runs the ingest path for
// each country. Per-country failures are reported, not fatal.
func (s *NewsService) RefreshCountries(ctx context.Context, countries []string) *model.RefreshResult {
	if len(countries) == 0 {
		countries = s.countries
	}

	result := &model.RefreshResult{Success: true, RefreshedAt: s.now()}
	for _, country := range countries {
		countryCode := strings.ToUpper(strings.TrimSpace(country))
		if countryCode == "" {
			continue
		}

		if err := s.cache.Evict(ctx, countryCode); err != nil {
			slog.Warn("cache evict failed",
				slog.String("country", countryCode), slog.String("error", err.Error()))
		}

		row := model.CountryRefreshResult{Country: countryCode}

		raw, err := s.feed.TopHeadlines(ctx, countryCode)
		if err != nil {
			slog.Warn("refresh fetch failed",
				slog.String("country", countryCode), slog.String("error", err.Error()))
			result.Success = false
		} else {
			summary := s.EnrichAndStore(ctx, countryCode, raw)
			row.Requested = summary.Requested
			row.Inserted = summary.Inserted
			row.Updated = summary.Updated
			row.Duplicates = summary.Duplicates
		}

		if total, err := s.articles.CountByCountry(ctx, countryCode); err == nil {
			row.TotalStored = total
		}

		result.Results = append(result.Results, row)
	}
	return result
}

// LatestFeed returns the newest stored articles across all countries.
func (s *NewsService) LatestFeed(ctx context.Context, limit int) ([]model.Article, error) {
	if limit <= 0 || limit > 100 {
		limit = countryPageSize
	}
	articles, err := s.articles.Latest(ctx, limit)
	if err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []model.Article{}
	}
	return articles, nil
}
