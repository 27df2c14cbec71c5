package model

import "time"

// Submission is one user-submitted article URL for the country game.
// Rows are append-only; duplicates are recorded with the flag set and
// zero points so total_submissions still counts them.
type Submission struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	URL           string    `bson:"url" json:"url"`
	Country       string    `bson:"country" json:"country"`
	UserID        string    `bson:"userId,omitempty" json:"userId,omitempty"`
	ArticleTitle  string    `bson:"articleTitle,omitempty" json:"articleTitle,omitempty"`
	ArticleSource string    `bson:"articleSource,omitempty" json:"articleSource,omitempty"`
	Points        int       `bson:"points" json:"points"`
	Duplicate     bool      `bson:"duplicate" json:"duplicate"`
	DuplicateOf   string    `bson:"duplicateOf,omitempty" json:"duplicateOf,omitempty"`
	Method        string    `bson:"method,omitempty" json:"method,omitempty"`
	SubmittedAt   time.Time `bson:"submittedAt" json:"submittedAt"`
}

// SubmissionRequest is the submit operation input.
type SubmissionRequest struct {
	URL           string `json:"url" binding:"required"`
	Country       string `json:"country" binding:"required"`
	UserID        string `json:"userId"`
	ArticleTitle  string `json:"articleTitle"`
	ArticleSource string `json:"articleSource"`
	Points        *int   `json:"points"`
}

// SubmissionResult is what the submit operation returns to the caller.
type SubmissionResult struct {
	Country          string `json:"country"`
	PointsAwarded    int    `json:"pointsAwarded"`
	NewScore         int    `json:"newScore"`
	TotalSubmissions int    `json:"totalSubmissions"`
	Duplicate        bool   `json:"duplicate"`
	Message          string `json:"message"`
}

// CountryScore is the per-country aggregate. Score buckets only grow on
// non-duplicate submissions; total submissions counts every attempt.
type CountryScore struct {
	Country            string     `bson:"_id" json:"country"`
	Score              int        `bson:"score" json:"score"`
	TotalSubmissions   int        `bson:"totalSubmissions" json:"totalSubmissions"`
	UniqueContributors int        `bson:"uniqueContributors" json:"uniqueContributors"`
	DailyScore         int        `bson:"dailyScore" json:"dailyScore"`
	WeeklyScore        int        `bson:"weeklyScore" json:"weeklyScore"`
	MonthlyScore       int        `bson:"monthlyScore" json:"monthlyScore"`
	AvgPointsPerSub    float64    `bson:"avgPointsPerSubmission" json:"avgPointsPerSubmission"`
	LastSubmissionAt   *time.Time `bson:"lastSubmissionAt,omitempty" json:"lastSubmissionAt,omitempty"`
	RankPosition       int        `bson:"rankPosition,omitempty" json:"rankPosition,omitempty"`
	CreatedAt          time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time  `bson:"updatedAt" json:"updatedAt"`
}
