package model

import "time"

// ArticleRating is one immutable rating row; history is append-only.
type ArticleRating struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	ArticleID string    `bson:"articleId" json:"articleId"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	UserID    string    `bson:"userId,omitempty" json:"userId,omitempty"`
	RelScore  *int      `bson:"relScore,omitempty" json:"relScore,omitempty"`
	AnaScore  *int      `bson:"anaScore,omitempty" json:"anaScore,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// RatingInput carries either an explicit 1-5 rating or the score snapshot
// the rating is derived from.
type RatingInput struct {
	Rating   *int   `json:"rating"`
	Comment  string `json:"comment"`
	UserID   string `json:"userId"`
	RelScore *int   `json:"relScore"`
	AnaScore *int   `json:"anaScore"`
}

// RatingResult is returned after a rating has been recorded.
type RatingResult struct {
	ArticleID     string  `json:"articleId"`
	Rating        int     `json:"rating"`
	AverageRating float64 `json:"averageRating"`
	RatingCount   int     `json:"ratingCount"`
	Message       string  `json:"message"`
}
