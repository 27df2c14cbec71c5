// Package enricher turns raw feed records into storable articles: it runs
// the scoring heuristics, normalizes country/category/source fields and
// assigns stable identifiers.
package enricher

import (
	"fmt"
	"hash/fnv"
	"strings"

	"news-intel-service/model"
	"news-intel-service/scoring"
)

// Provenance tags every article ingested through the feed pipeline.
const Provenance = "newsapi"

// EnrichBatch scores and normalizes a batch of raw articles for one
// country. Records that are entirely empty are dropped.
func EnrichBatch(country string, raw []model.RawArticle) []model.Article {
	countryCode := strings.ToUpper(strings.TrimSpace(country))
	enriched := make([]model.Article, 0, len(raw))

	for _, r := range raw {
		if r.URL == "" && r.Title == "" {
			continue
		}
		enriched = append(enriched, Enrich(countryCode, r))
	}

	return enriched
}

// Enrich derives all scores and metadata for a single raw article.
func Enrich(countryCode string, r model.RawArticle) model.Article {
	bundle := scoring.Score(r.Title, r.Description, r.Content, r.Source)

	source := r.Source
	if strings.TrimSpace(source) == "" {
		source = "Unknown"
	}

	category := r.Category
	if strings.TrimSpace(category) == "" {
		category = bundle.Topic
	}

	relevance := bundle.Relevance
	analysis := bundle.Analysis
	composite := bundle.Composite
	sentiment := bundle.Sentiment

	a := model.Article{
		ID:               identifier(r, countryCode),
		URL:              r.URL,
		Title:            r.Title,
		Source:           source,
		Author:           r.Author,
		PublishedAt:      r.PublishedAt,
		Description:      r.Description,
		Content:          r.Content,
		Country:          countryCode,
		TopicCategory:    bundle.Topic,
		Category:         category,
		RelevanceScore:   &relevance,
		AnalysisScore:    &analysis,
		CompositeScore:   &composite,
		Provenance:       Provenance,
		Language:         "en",
		SentimentScore:   &sentiment,
		ReadabilityScore: bundle.Readability,
		WordCount:        bundle.WordCount,
		ImageURL:         r.ImageURL,
		Tags:             bundle.Tags,
		Premium:          bundle.Premium,
		Breaking:         false,
	}

	return a
}

// identifier keeps a caller-supplied id, otherwise derives one from the URL
// (or title when the URL is absent) plus the country code. The same
// (url, country) pair always yields the same id, so re-ingesting a feed
// item maps to the same logical article.
func identifier(r model.RawArticle, countryCode string) string {
	if r.ID != "" {
		return r.ID
	}
	base := r.URL
	if base == "" {
		base = r.Title
	}
	if base == "" {
		base = countryCode + "-article"
	}
	h := fnv.New32a()
	h.Write([]byte(base))
	return fmt.Sprintf("%x-%s", h.Sum32(), countryCode)
}
