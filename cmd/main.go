package main

import (
	"context"
	"log/slog"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"news-intel-service/analytics"
	"news-intel-service/api"
	"news-intel-service/cache"
	"news-intel-service/config"
	"news-intel-service/fetcher"
	"news-intel-service/game"
	"news-intel-service/handler"
	"news-intel-service/logging"
	"news-intel-service/metrics"
	"news-intel-service/ratings"
	"news-intel-service/repository"
	"news-intel-service/service"
	"news-intel-service/store"
)

const serviceVersion = "1.0.0"

func main() {
	logging.Init(slog.LevelInfo)
	metrics.Init("news-intel-service", serviceVersion)

	cfg := config.Load()
	ctx := context.Background()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		slog.Error("failed to connect to MongoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer mongoClient.Disconnect(ctx)

	repos := repository.NewMongo(mongoClient, cfg.MongoDatabase)
	if err := repos.EnsureIndexes(ctx); err != nil {
		slog.Error("failed to ensure indexes", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("connected to MongoDB", slog.String("database", cfg.MongoDatabase))

	memo, err := cache.NewValkey(cfg.ValkeyAddr, cfg.ValkeyPassword, cfg.CacheTTL)
	if err != nil {
		slog.Error("failed to connect to Valkey", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer memo.Close()

	publisher, err := handler.NewRefreshPublisher(cfg.NATSUrl)
	if err != nil {
		slog.Error("failed to connect to NATS", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer publisher.Close()

	feed := fetcher.New(cfg.NewsAPIBaseURL, cfg.NewsAPIKey, cfg.PageSize)
	articleStore := store.New(repos.Articles(), repos.Sources(), repos.UsageLog(), repos)

	newsSvc := service.NewNewsService(feed, memo, articleStore, repos.Articles(), cfg.Countries)
	gameSvc := game.NewService(repos.Submissions(), repos.Scores(), repos)
	ratingSvc := ratings.NewService(repos.Ratings(), repos.Articles(), repos)
	analyticsSvc := analytics.NewService(repos.Articles())

	server := api.NewServer(newsSvc, gameSvc, ratingSvc, analyticsSvc, publisher, cfg.Countries)
	if err := server.Run(cfg.HTTPAddr); err != nil {
		slog.Error("HTTP server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
