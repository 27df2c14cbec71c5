package model

import "time"

// NewsSource keeps per-source rolling statistics. Identity is the source
// display name as it appears on articles, so "Reuters" and "Reuters
// Technology" are tracked as separate sources.
type NewsSource struct {
	Name             string     `bson:"_id" json:"name"`
	Domain           string     `bson:"domain,omitempty" json:"domain,omitempty"`
	CredibilityScore int        `bson:"credibilityScore,omitempty" json:"credibilityScore,omitempty"`
	BiasScore        float64    `bson:"biasScore,omitempty" json:"biasScore,omitempty"`
	FocusAreas       []string   `bson:"focusAreas,omitempty" json:"focusAreas,omitempty"`
	APISource        string     `bson:"apiSource,omitempty" json:"apiSource,omitempty"`
	Premium          bool       `bson:"premium" json:"premium"`
	Active           bool       `bson:"active" json:"active"`
	ArticleCount     int        `bson:"articleCount" json:"articleCount"`
	AvgQualityScore  *float64   `bson:"avgQualityScore,omitempty" json:"avgQualityScore,omitempty"`
	LastArticleAt    *time.Time `bson:"lastArticleAt,omitempty" json:"lastArticleAt,omitempty"`
	CreatedAt        time.Time  `bson:"createdAt" json:"createdAt"`
}
