// Package ratings appends article ratings and keeps the denormalized
// rating counters on the article in step with the rating history.
package ratings

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"news-intel-service/metrics"
	"news-intel-service/model"
	"news-intel-service/repository"
)

type Service struct {
	ratings  repository.RatingRepository
	articles repository.ArticleRepository
	tx       repository.Transactor
	now      func() time.Time
}

func NewService(ratings repository.RatingRepository, articles repository.ArticleRepository,
	tx repository.Transactor) *Service {
	return &Service{
		ratings:  ratings,
		articles: articles,
		tx:       tx,
		now:      time.Now,
	}
}

// Rate records one rating for the article and folds it into the article's
// running count, total and average. The rating row and the counter update
// commit together; repository.ErrNotFound surfaces for unknown ids.
func (s *Service) Rate(ctx context.Context, articleID string, in model.RatingInput) (*model.RatingResult, error) {
	var result *model.RatingResult
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		article, err := s.articles.FindByID(ctx, articleID)
		if err != nil {
			return err
		}

		rating := resolveRating(in)

		row := &model.ArticleRating{
			ID:        uuid.NewString(),
			ArticleID: articleID,
			Rating:    rating,
			Comment:   in.Comment,
			UserID:    in.UserID,
			RelScore:  in.RelScore,
			AnaScore:  in.AnaScore,
			CreatedAt: s.now(),
		}
		if err := s.ratings.Insert(ctx, row); err != nil {
			return err
		}

		article.RatingCount++
		article.RatingTotal += rating
		avg := round2(float64(article.RatingTotal) / float64(article.RatingCount))
		article.AverageRating = &avg
		article.UpdatedAt = s.now()
		if err := s.articles.Save(ctx, article); err != nil {
			return err
		}

		result = &model.RatingResult{
			ArticleID:     articleID,
			Rating:        rating,
			AverageRating: avg,
			RatingCount:   article.RatingCount,
			Message:       "Rating recorded",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RatingsTotal.Inc()
	slog.Info("article rating recorded",
		slog.String("articleId", articleID),
		slog.Int("rating", result.Rating),
		slog.Float64("average", result.AverageRating))

	return result, nil
}

// resolveRating prefers an explicit 1-5 rating and otherwise derives one
// from the score snapshot: the mean of both scores mapped onto the 1-5
// scale in 20-point bands. Missing snapshot halves default to 50.
func resolveRating(in model.RatingInput) int {
	if in.Rating != nil {
		v := *in.Rating
		if v < 1 {
			v = 1
		}
		if v > 5 {
			v = 5
		}
		return v
	}

	rel, ana := 50.0, 50.0
	if in.RelScore != nil {
		rel = float64(*in.RelScore)
	}
	if in.AnaScore != nil {
		ana = float64(*in.AnaScore)
	}

	derived := int(math.Round((rel + ana) / 2 / 20))
	if derived < 1 {
		derived = 1
	}
	if derived > 5 {
		derived = 5
	}
	return derived
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
