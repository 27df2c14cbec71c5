// Package worker consumes refresh requests off JetStream and runs the
// fetch-enrich-store pipeline for each requested country.
package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"news-intel-service/handler"
	"news-intel-service/metrics"
	"news-intel-service/model"
	"news-intel-service/service"
)

const refreshTimeout = 5 * time.Minute

type Worker struct {
	nc       *nats.Conn
	js       nats.JetStreamContext
	news     *service.NewsService
	interval time.Duration
	pending  int
}

// New connects to NATS and prepares the refresh consumer. A non-zero
// interval also schedules periodic refreshes of the configured countries.
func New(natsURL string, news *service.NewsService, interval time.Duration, maxPending int) (*Worker, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, err
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, err
	}

	if err := handler.EnsureStream(js); err != nil {
		nc.Close()
		return nil, err
	}

	if maxPending <= 0 {
		maxPending = 3
	}
	return &Worker{
		nc:       nc,
		js:       js,
		news:     news,
		interval: interval,
		pending:  maxPending,
	}, nil
}

func (w *Worker) Close() {
	if w.nc != nil {
		w.nc.Close()
	}
}

// Start subscribes and blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	_, err := w.js.Subscribe(handler.SubjectRefreshReq, w.handleRefreshRequest,
		nats.Durable("news-intel-workers"),
		nats.ManualAck(),
		nats.MaxAckPending(w.pending),
	)
	if err != nil {
		return err
	}

	if w.interval > 0 {
		go w.startScheduler(ctx)
	}

	slog.Info("refresh worker started", slog.Duration("interval", w.interval))

	<-ctx.Done()
	return ctx.Err()
}

func (w *Worker) handleRefreshRequest(msg *nats.Msg) {
	var req model.RefreshRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		slog.Warn("unreadable refresh request", slog.String("error", err.Error()))
		metrics.NatsMessagesReceived.WithLabelValues(handler.SubjectRefreshReq, "error").Inc()
		msg.Nak()
		return
	}
	metrics.NatsMessagesReceived.WithLabelValues(handler.SubjectRefreshReq, "ok").Inc()

	slog.Info("processing refresh request",
		slog.String("requestId", req.RequestID), slog.Any("countries", req.Countries))

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	result := w.news.RefreshCountries(ctx, req.Countries)

	out := model.RefreshResultMessage{RequestID: req.RequestID, Result: result}
	if !result.Success {
		out.Error = "one or more countries failed to refresh"
	}
	w.publishResult(out)

	msg.Ack()
}

func (w *Worker) publishResult(result model.RefreshResultMessage) {
	data, err := json.Marshal(result)
	if err != nil {
		slog.Warn("failed to marshal refresh result", slog.String("error", err.Error()))
		return
	}

	if _, err := w.js.Publish(handler.SubjectRefreshResult, data); err != nil {
		metrics.NatsMessagesPublished.WithLabelValues(handler.SubjectRefreshResult, "error").Inc()
		slog.Warn("failed to publish refresh result", slog.String("error", err.Error()))
		return
	}
	metrics.NatsMessagesPublished.WithLabelValues(handler.SubjectRefreshResult, "ok").Inc()
}

func (w *Worker) startScheduler(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.scheduleRefresh()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.scheduleRefresh()
		}
	}
}

// scheduleRefresh queues a refresh for the configured countries. An empty
// country list in the message means "all configured" to the service.
func (w *Worker) scheduleRefresh() {
	req := model.RefreshRequest{
		Priority:    "normal",
		RequestID:   "scheduled-" + time.Now().Format("20060102-150405"),
		RequestedAt: time.Now(),
	}

	data, err := json.Marshal(req)
	if err != nil {
		slog.Warn("failed to marshal scheduled refresh", slog.String("error", err.Error()))
		return
	}

	if _, err := w.js.Publish(handler.SubjectRefreshReq, data); err != nil {
		slog.Warn("failed to schedule refresh", slog.String("error", err.Error()))
		return
	}
	slog.Info("scheduled periodic refresh", slog.String("requestId", req.RequestID))
}
