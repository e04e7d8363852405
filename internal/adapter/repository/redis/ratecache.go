package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/surcofin/cajaflow/internal/domain"
	"github.com/surcofin/cajaflow/internal/usecase"
)

const rateSnapshotKey = "rates:snapshot"

// RateCache fronts a RateSource with a shared Redis cache so concurrent
// dashboard requests reuse one quote instead of hitting the provider.
// Cache problems never fail the lookup; the source is queried directly.
type RateCache struct {
	client *redis.Client
	source usecase.RateSource
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRateCache creates a new RateCache around source.
func NewRateCache(client *redis.Client, source usecase.RateSource, ttl time.Duration, logger zerolog.Logger) *RateCache {
	return &RateCache{
		client: client,
		source: source,
		ttl:    ttl,
		logger: logger,
	}
}

// Snapshot returns the cached snapshot when fresh, otherwise queries the
// underlying source and caches the result for the configured TTL.
func (c *RateCache) Snapshot(ctx context.Context) (domain.RateSnapshot, error) {
	data, err := c.client.Get(ctx, rateSnapshotKey).Bytes()
	if err == nil {
		var snapshot domain.RateSnapshot
		if unmarshalErr := json.Unmarshal(data, &snapshot); unmarshalErr == nil {
			return snapshot, nil
		}
		c.logger.Warn().Msg("discarding unreadable cached rate snapshot")
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn().Err(err).Msg("rate cache unavailable, querying source")
	}

	snapshot, err := c.source.Snapshot(ctx)
	if err != nil {
		return domain.RateSnapshot{}, err
	}

	if data, marshalErr := json.Marshal(snapshot); marshalErr == nil {
		if setErr := c.client.Set(ctx, rateSnapshotKey, data, c.ttl).Err(); setErr != nil {
			c.logger.Warn().Err(setErr).Msg("failed to cache rate snapshot")
		}
	}

	return snapshot, nil
}
