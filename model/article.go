package model

import "time"

// RawArticle is one record as handed over by the external feed client.
// Fields may be blank or missing; the enricher is responsible for filling
// in defaults before anything is persisted.
type RawArticle struct {
	ID          string     `json:"id,omitempty"`
	Source      string     `json:"source"`
	Author      string     `json:"author"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	ImageURL    string     `json:"imageUrl"`
	Content     string     `json:"content"`
	Category    string     `json:"category,omitempty"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// Article is the stored, enriched form. Identity is the URL: one article
// per URL ever exists, re-ingestion overwrites the derived fields.
type Article struct {
	ID               string     `bson:"_id" json:"id"`
	URL              string     `bson:"url" json:"url"`
	Title            string     `bson:"title" json:"title"`
	Source           string     `bson:"source" json:"source"`
	Author           string     `bson:"author,omitempty" json:"author,omitempty"`
	PublishedAt      *time.Time `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	Description      string     `bson:"description,omitempty" json:"description,omitempty"`
	Content          string     `bson:"content,omitempty" json:"content,omitempty"`
	Country          string     `bson:"country" json:"country"`
	Category         string     `bson:"category,omitempty" json:"category,omitempty"`
	TopicCategory    string     `bson:"topicCategory,omitempty" json:"topicCategory,omitempty"`
	RelevanceScore   *int       `bson:"relevanceScore,omitempty" json:"relevanceScore,omitempty"`
	AnalysisScore    *int       `bson:"analysisScore,omitempty" json:"analysisScore,omitempty"`
	CompositeScore   *float64   `bson:"compositeScore,omitempty" json:"compositeScore,omitempty"`
	Provenance       string     `bson:"provenance,omitempty" json:"provenance,omitempty"`
	Language         string     `bson:"language" json:"language"`
	SentimentScore   *float64   `bson:"sentimentScore,omitempty" json:"sentimentScore,omitempty"`
	ReadabilityScore int        `bson:"readabilityScore" json:"readabilityScore"`
	WordCount        int        `bson:"wordCount" json:"wordCount"`
	ImageURL         string     `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Tags             []string   `bson:"tags,omitempty" json:"tags,omitempty"`
	Premium          bool       `bson:"premium" json:"premium"`
	Breaking         bool       `bson:"breaking" json:"breaking"`
	RatingCount      int        `bson:"ratingCount" json:"ratingCount"`
	RatingTotal      int        `bson:"ratingTotal" json:"-"`
	AverageRating    *float64   `bson:"averageRating,omitempty" json:"averageRating,omitempty"`
	ViewCount        int        `bson:"viewCount" json:"viewCount"`
	ShareCount       int        `bson:"shareCount" json:"shareCount"`
	CreatedAt        time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time  `bson:"updatedAt" json:"updatedAt"`
	ArchivedAt       *time.Time `bson:"archivedAt,omitempty" json:"archivedAt,omitempty"`
}

// StorageSummary reports the outcome of one storeArticles batch.
type StorageSummary struct {
	Country    string `json:"country"`
	Requested  int    `json:"requested"`
	Inserted   int    `json:"inserted"`
	Updated    int    `json:"updated"`
	Duplicates int    `json:"duplicates"`
}

// CountryNews is the payload served (and memoized) for one country.
type CountryNews struct {
	Country  string    `json:"country"`
	Total    int       `json:"total"`
	Articles []Article `json:"articles"`
}

// RefreshResult aggregates per-country storage summaries for a refresh call.
type RefreshResult struct {
	Success     bool                   `json:"success"`
	Results     []CountryRefreshResult `json:"results"`
	RefreshedAt time.Time              `json:"refreshedAt"`
}

type CountryRefreshResult struct {
	Country     string `json:"country"`
	Requested   int    `json:"requested"`
	Inserted    int    `json:"inserted"`
	Updated     int    `json:"updated"`
	Duplicates  int    `json:"duplicates"`
	TotalStored int64  `json:"totalStored"`
}

// ArticleStats is the aggregate snapshot behind the stats endpoint.
type ArticleStats struct {
	TotalArticles     int64    `json:"totalArticles"`
	DistinctSources   int64    `json:"distinctSources"`
	AvgRelevanceScore *float64 `json:"avgRelevanceScore,omitempty"`
	AvgAnalysisScore  *float64 `json:"avgAnalysisScore,omitempty"`
}

// TrendingTopic is one row of the trending aggregation: articles from the
// window grouped by topic category.
type TrendingTopic struct {
	Topic         string     `bson:"_id" json:"topic"`
	ArticleCount  int64      `bson:"articleCount" json:"articleCount"`
	AvgScore      float64    `bson:"avgScore" json:"avgScore"`
	LatestArticle *time.Time `bson:"latestArticle" json:"latestArticle,omitempty"`
}

// UsageLog records one external-facing batch operation for observability.
type UsageLog struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	Provider         string    `bson:"provider" json:"provider"`
	Endpoint         string    `bson:"endpoint" json:"endpoint"`
	ArticlesReturned int       `bson:"articlesReturned" json:"articlesReturned"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
}
