// Package api exposes the HTTP surface: news reads, refresh triggers, the
// country race endpoints and article ratings.
package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"news-intel-service/analytics"
	"news-intel-service/game"
	"news-intel-service/handler"
	"news-intel-service/metrics"
	"news-intel-service/ratings"
	"news-intel-service/service"
)

type Server struct {
	news      *service.NewsService
	game      *game.Service
	ratings   *ratings.Service
	analytics *analytics.Service
	publisher *handler.RefreshPublisher
	countries []string
}

func NewServer(news *service.NewsService, gameSvc *game.Service, ratingSvc *ratings.Service,
	analyticsSvc *analytics.Service, publisher *handler.RefreshPublisher, countries []string) *Server {
	return &Server{
		news:      news,
		game:      gameSvc,
		ratings:   ratingSvc,
		analytics: analyticsSvc,
		publisher: publisher,
		countries: countries,
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), metricsMiddleware())

	router.GET("/", s.healthCheck)
	router.GET("/health", s.healthCheck)
	router.GET("/ready", s.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/news/feed", s.getLatestFeed)
		apiGroup.GET("/news/trending", s.getTrendingTopics)
		apiGroup.GET("/news/countries", s.getCountries)
		apiGroup.GET("/news/:country", s.getCountryNews)
		apiGroup.POST("/news/refresh", s.triggerRefresh)

		apiGroup.POST("/game/submit", s.submitArticle)
		apiGroup.POST("/fans-race/submit", s.submitArticle)
		apiGroup.GET("/game/scores", s.getScores)
		apiGroup.GET("/leaderboard", s.getLeaderboard)

		apiGroup.POST("/articles/:id/rate", s.rateArticle)
		apiGroup.GET("/stats", s.getStats)
	}

	return router
}

// Run starts the HTTP server and blocks.
func (s *Server) Run(addr string) error {
	slog.Info("news intel API listening", slog.String("addr", addr))
	return s.Router().Run(addr)
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, statusLabel(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func statusLabel(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
