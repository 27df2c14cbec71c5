package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"news-intel-service/game"
	"news-intel-service/model"
	"news-intel-service/repository"
)

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "news-intel-service"})
}

func (s *Server) getCountryNews(c *gin.Context) {
	country := c.Param("country")
	if len(country) != 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "country must be a 2-letter code"})
		return
	}

	news, err := s.news.CountryNews(c.Request.Context(), country)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, news)
}

func (s *Server) getLatestFeed(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	articles, err := s.news.LatestFeed(c.Request.Context(), limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(articles), "articles": articles})
}

func (s *Server) getCountries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"countries": s.countries})
}

type refreshRequest struct {
	Countries []string `json:"countries"`
	Priority  string   `json:"priority"`
	Sync      bool     `json:"sync"`
}

// triggerRefresh queues an async refresh by default; sync=true runs the
// pipeline inline and returns the per-country summaries.
func (s *Server) triggerRefresh(c *gin.Context) {
	// An empty or unreadable body means "refresh everything, async".
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = refreshRequest{}
	}

	if req.Sync {
		result := s.news.RefreshCountries(c.Request.Context(), req.Countries)
		c.JSON(http.StatusOK, result)
		return
	}

	requestID, err := s.publisher.TriggerRefresh(req.Countries, req.Priority)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"message":   "Refresh queued",
		"requestId": requestID,
	})
}

func (s *Server) getTrendingTopics(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	topics, err := s.analytics.TrendingTopics(c.Request.Context(), days)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"windowDays": days, "topics": topics})
}

func (s *Server) submitArticle(c *gin.Context) {
	var req model.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.game.Submit(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// getScores serves the plain country-to-score map the race widget polls.
func (s *Server) getScores(c *gin.Context) {
	rows, err := s.game.Leaderboard(c.Request.Context(), 100)
	if err != nil {
		s.fail(c, err)
		return
	}

	scores := make(map[string]int, len(rows))
	for _, row := range rows {
		scores[row.Country] = row.Score
	}
	c.JSON(http.StatusOK, gin.H{"scores": scores, "timestamp": time.Now()})
}

func (s *Server) getLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	rows, err := s.game.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": rows})
}

func (s *Server) rateArticle(c *gin.Context) {
	var input model.RatingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.ratings.Rate(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getStats(c *gin.Context) {
	stats, err := s.analytics.Stats(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// fail maps domain errors onto HTTP statuses.
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		slog.Error("request failed",
			slog.String("path", c.FullPath()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
