// Package cache memoizes per-country news payloads in Valkey so repeat
// reads within the TTL never hit the feed or the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"news-intel-service/metrics"
	"news-intel-service/model"
)

// ErrMiss is returned when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// CountryCache is the memoization boundary the news service depends on.
type CountryCache interface {
	Get(ctx context.Context, country string) (*model.CountryNews, error)
	Put(ctx context.Context, news *model.CountryNews) error
	Evict(ctx context.Context, country string) error
}

type ValkeyCache struct {
	client valkey.Client
	ttl    time.Duration
}

func NewValkey(addr, password string, ttl time.Duration) (*ValkeyCache, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:      []string{addr},
		Password:         password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	})
	if err != nil {
		return nil, err
	}
	return &ValkeyCache{client: client, ttl: ttl}, nil
}

func (c *ValkeyCache) Close() {
	c.client.Close()
}

func key(country string) string {
	return "news:country:" + strings.ToUpper(strings.TrimSpace(country))
}

func (c *ValkeyCache) Get(ctx context.Context, country string) (*model.CountryNews, error) {
	res := c.client.Do(ctx, c.client.B().Get().Key(key(country)).Build())
	if err := res.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			metrics.CacheOperationsTotal.WithLabelValues("miss").Inc()
			return nil, ErrMiss
		}
		return nil, err
	}

	data, err := res.AsBytes()
	if err != nil {
		return nil, err
	}

	var news model.CountryNews
	if err := json.Unmarshal(data, &news); err != nil {
		// A corrupt entry behaves like a miss so the caller recomputes.
		slog.Warn("dropping unreadable cache entry",
			slog.String("country", country), slog.String("error", err.Error()))
		metrics.CacheOperationsTotal.WithLabelValues("miss").Inc()
		return nil, ErrMiss
	}

	metrics.CacheOperationsTotal.WithLabelValues("hit").Inc()
	return &news, nil
}

func (c *ValkeyCache) Put(ctx context.Context, news *model.CountryNews) error {
	data, err := json.Marshal(news)
	if err != nil {
		return err
	}

	cmd := c.client.B().Set().Key(key(news.Country)).Value(string(data)).
		Ex(c.ttl).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return err
	}

	metrics.CacheOperationsTotal.WithLabelValues("put").Inc()
	return nil
}

func (c *ValkeyCache) Evict(ctx context.Context, country string) error {
	if err := c.client.Do(ctx, c.client.B().Del().Key(key(country)).Build()).Error(); err != nil {
		return err
	}
	metrics.CacheOperationsTotal.WithLabelValues("evict").Inc()
	return nil
}
