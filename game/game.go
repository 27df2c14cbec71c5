// Package game records user article submissions for the country race and
// keeps the per-country score aggregates incrementally consistent.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"news-intel-service/metrics"
	"news-intel-service/model"
	"news-intel-service/repository"
)

// ErrInvalidRequest flags submissions rejected before any persistence.
var ErrInvalidRequest = errors.New("invalid submission request")

var topTierSources = []string{"techcrunch", "wired", "reuters"}

type Service struct {
	submissions repository.SubmissionRepository
	scores      repository.ScoreRepository
	tx          repository.Transactor
	now         func() time.Time
}

func NewService(submissions repository.SubmissionRepository, scores repository.ScoreRepository,
	tx repository.Transactor) *Service {
	return &Service{
		submissions: submissions,
		scores:      scores,
		tx:          tx,
		now:         time.Now,
	}
}

// Submit records one submission and updates the country score as a single
// transactional unit. Duplicates are persisted with the flag set and award
// nothing; a concurrent submit losing the uniqueness race is reclassified
// as duplicate instead of failing.
func (s *Service) Submit(ctx context.Context, req model.SubmissionRequest) (*model.SubmissionResult, error) {
	country := strings.ToUpper(strings.TrimSpace(req.Country))
	if err := validateCountry(country); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.URL) == "" {
		return nil, fmt.Errorf("%w: url is required", ErrInvalidRequest)
	}

	var result *model.SubmissionResult
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		duplicate, duplicateOf, err := s.checkDuplicate(ctx, req.URL)
		if err != nil {
			return err
		}

		awarded := 0
		if !duplicate {
			awarded = resolvePoints(req)
		}

		submission := &model.Submission{
			ID:            uuid.NewString(),
			URL:           req.URL,
			Country:       country,
			UserID:        req.UserID,
			ArticleTitle:  req.ArticleTitle,
			ArticleSource: req.ArticleSource,
			Points:        awarded,
			Duplicate:     duplicate,
			DuplicateOf:   duplicateOf,
			Method:        "web",
			SubmittedAt:   s.now(),
		}

		if err := s.submissions.Insert(ctx, submission); err != nil {
			if !errors.Is(err, repository.ErrDuplicate) || duplicate {
				return err
			}
			// Lost the race against a concurrent submit of the same URL.
			duplicate = true
			awarded = 0
			submission.Duplicate = true
			submission.Points = 0
			if original, findErr := s.submissions.FindByURL(ctx, req.URL); findErr == nil {
				submission.DuplicateOf = original.ID
			}
			if err := s.submissions.Insert(ctx, submission); err != nil {
				return err
			}
		}

		score, err := s.applyToScore(ctx, country, awarded, duplicate)
		if err != nil {
			return err
		}

		message := "Submission accepted"
		if duplicate {
			message = "Submission already recorded"
		}
		result = &model.SubmissionResult{
			Country:          country,
			PointsAwarded:    awarded,
			NewScore:         score.Score,
			TotalSubmissions: score.TotalSubmissions,
			Duplicate:        duplicate,
			Message:          message,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SubmissionsTotal.WithLabelValues(country, strconv.FormatBool(result.Duplicate)).Inc()
	slog.Info("game submission recorded",
		slog.String("country", country),
		slog.Bool("duplicate", result.Duplicate),
		slog.Int("awarded", result.PointsAwarded))

	return result, nil
}

func (s *Service) checkDuplicate(ctx context.Context, url string) (bool, string, error) {
	original, err := s.submissions.FindByURL(ctx, url)
	switch {
	case err == nil:
		return true, original.ID, nil
	case errors.Is(err, repository.ErrNotFound):
		return false, "", nil
	default:
		return false, "", err
	}
}

func (s *Service) applyToScore(ctx context.Context, country string, awarded int, duplicate bool) (*model.CountryScore, error) {
	score, err := s.scores.FindByCountry(ctx, country)
	if errors.Is(err, repository.ErrNotFound) {
		score = &model.CountryScore{Country: country, CreatedAt: s.now()}
	} else if err != nil {
		return nil, err
	}

	if !duplicate {
		score.Score += awarded
		score.DailyScore += awarded
		score.WeeklyScore += awarded
		score.MonthlyScore += awarded
	}

	score.TotalSubmissions++
	now := s.now()
	score.LastSubmissionAt = &now
	score.UpdatedAt = now

	contributors, err := s.submissions.CountDistinctUsers(ctx, country)
	if err != nil {
		return nil, err
	}
	score.UniqueContributors = int(contributors)

	if score.TotalSubmissions > 0 {
		score.AvgPointsPerSub = float64(score.Score) / float64(score.TotalSubmissions)
	} else {
		score.AvgPointsPerSub = 0
	}

	if err := s.scores.Save(ctx, score); err != nil {
		return nil, err
	}
	return score, nil
}

// resolvePoints derives the award when the caller did not pin one. The
// strongest matching rule wins via max, not overwrite.
func resolvePoints(req model.SubmissionRequest) int {
	if req.Points != nil {
		v := *req.Points
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		return v
	}

	base := 1
	if source := strings.ToLower(req.ArticleSource); source != "" {
		for _, top := range topTierSources {
			if strings.Contains(source, top) {
				base = 3
				break
			}
		}
		if base == 1 && (strings.Contains(source, "ai") || strings.Contains(source, "intelligence")) {
			base = 2
		}
	}
	if strings.Contains(strings.ToLower(req.URL), "ai") && base < 2 {
		base = 2
	}
	return base
}

func validateCountry(country string) error {
	if len(country) != 2 {
		return fmt.Errorf("%w: country must be a 2-letter code", ErrInvalidRequest)
	}
	for _, r := range country {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("%w: country must be a 2-letter code", ErrInvalidRequest)
		}
	}
	return nil
}

// Leaderboard returns country rows ordered by lifetime score, with the
// rank position filled from the ordering.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]model.CountryScore, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.scores.Leaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].RankPosition = i + 1
	}
	return rows, nil
}
