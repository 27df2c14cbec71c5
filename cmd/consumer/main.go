package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"news-intel-service/cache"
	"news-intel-service/config"
	"news-intel-service/fetcher"
	"news-intel-service/logging"
	"news-intel-service/metrics"
	"news-intel-service/repository"
	"news-intel-service/service"
	"news-intel-service/store"
	"news-intel-service/worker"
)

const serviceVersion = "1.0.0"

func main() {
	logging.Init(slog.LevelInfo)
	metrics.Init("news-intel-consumer", serviceVersion)

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		slog.Error("failed to connect to MongoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer mongoClient.Disconnect(context.Background())

	repos := repository.NewMongo(mongoClient, cfg.MongoDatabase)
	if err := repos.EnsureIndexes(ctx); err != nil {
		slog.Error("failed to ensure indexes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	memo, err := cache.NewValkey(cfg.ValkeyAddr, cfg.ValkeyPassword, cfg.CacheTTL)
	if err != nil {
		slog.Error("failed to connect to Valkey", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer memo.Close()

	feed := fetcher.New(cfg.NewsAPIBaseURL, cfg.NewsAPIKey, cfg.PageSize)
	articleStore := store.New(repos.Articles(), repos.Sources(), repos.UsageLog(), repos)
	newsSvc := service.NewNewsService(feed, memo, articleStore, repos.Articles(), cfg.Countries)

	w, err := worker.New(cfg.NATSUrl, newsSvc, cfg.RefreshInterval, cfg.WorkerCount)
	if err != nil {
		slog.Error("failed to start refresh worker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer w.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("shutdown signal received")
		cancel()
	}()

	go serveHealth()

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("worker failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("consumer stopped")
}

func serveHealth() {
	mux := http.NewServeMux()
	health := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","service":"news-intel-consumer"}`))
	}
	mux.HandleFunc("/", health)
	mux.HandleFunc("/health", health)
	mux.HandleFunc("/ready", health)

	if err := http.ListenAndServe(":8081", mux); err != nil {
		slog.Warn("health server stopped", slog.String("error", err.Error()))
	}
}
