// Package handler owns the NATS side of the refresh pipeline: the API
// publishes refresh requests here and the consumer binary answers them.
package handler

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"news-intel-service/metrics"
	"news-intel-service/model"
)

const (
	StreamName           = "NEWS_REFRESH"
	SubjectRefreshFilter = "news.refresh.>"
	SubjectRefreshReq    = "news.refresh.request"
	SubjectRefreshResult = "news.refresh.result"
)

// RefreshPublisher publishes refresh requests onto JetStream and logs the
// results coming back.
type RefreshPublisher struct {
	nc *nats.Conn
	js nats.JetStreamContext
}

func NewRefreshPublisher(natsURL string) (*RefreshPublisher, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, err
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, err
	}

	if err := EnsureStream(js); err != nil {
		nc.Close()
		return nil, err
	}

	p := &RefreshPublisher{nc: nc, js: js}
	go p.subscribeResults()

	return p, nil
}

func (p *RefreshPublisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}

// TriggerRefresh queues an async refresh and returns the request id the
// caller can correlate the result with.
func (p *RefreshPublisher) TriggerRefresh(countries []string, priority string) (string, error) {
	if priority == "" {
		priority = "normal"
	}
	req := model.RefreshRequest{
		Countries:   countries,
		Priority:    priority,
		RequestID:   uuid.NewString(),
		RequestedAt: time.Now(),
	}

	data, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	if _, err := p.js.Publish(SubjectRefreshReq, data); err != nil {
		metrics.NatsMessagesPublished.WithLabelValues(SubjectRefreshReq, "error").Inc()
		return "", err
	}
	metrics.NatsMessagesPublished.WithLabelValues(SubjectRefreshReq, "ok").Inc()

	slog.Info("queued refresh request",
		slog.String("requestId", req.RequestID),
		slog.String("priority", priority),
		slog.Any("countries", countries))

	return req.RequestID, nil
}

func (p *RefreshPublisher) subscribeResults() {
	_, err := p.js.Subscribe(SubjectRefreshResult, func(msg *nats.Msg) {
		var result model.RefreshResultMessage
		if err := json.Unmarshal(msg.Data, &result); err != nil {
			slog.Warn("unreadable refresh result", slog.String("error", err.Error()))
			msg.Ack()
			return
		}
		metrics.NatsMessagesReceived.WithLabelValues(SubjectRefreshResult, "ok").Inc()

		if result.Error != "" {
			slog.Warn("refresh finished with errors",
				slog.String("requestId", result.RequestID), slog.String("error", result.Error))
		} else if result.Result != nil {
			slog.Info("refresh finished",
				slog.String("requestId", result.RequestID),
				slog.Int("countries", len(result.Result.Results)))
		}
		msg.Ack()
	}, nats.Durable("news-intel-results"))
	if err != nil {
		slog.Warn("failed to subscribe to refresh results", slog.String("error", err.Error()))
	}
}

// EnsureStream creates the refresh stream if it does not exist yet.
func EnsureStream(js nats.JetStreamContext) error {
	_, err := js.AddStream(&nats.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{SubjectRefreshFilter},
		Retention: nats.WorkQueuePolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	})
	if err != nil && err != nats.ErrStreamNameAlreadyInUse {
		return err
	}
	return nil
}
