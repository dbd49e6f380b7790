// Package predict provides an optional Redis-backed cache of phrase
// predictions. The cache key covers the model file so a retrained model never
// serves stale answers.
package predict

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/config"
	pkgredis "github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/redis"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "predict:"

// Prediction is a classification result.
type Prediction struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// Cache stores phrase predictions in Redis with a TTL. Concurrent lookups of
// the same phrase collapse into a single computation.
type Cache struct {
	client *pkgredis.Client
	cfg    config.RedisConfig
	group  singleflight.Group
	logger *slog.Logger
}

// NewCache creates a prediction cache backed by client.
func NewCache(client *pkgredis.Client, cfg config.RedisConfig) *Cache {
	return &Cache{
		client: client,
		cfg:    cfg,
		logger: slog.Default().With("component", "prediction-cache"),
	}
}

// Get returns the cached prediction for phrase, if present.
func (c *Cache) Get(ctx context.Context, modelFile, phrase string) (*Prediction, bool) {
	key := buildKey(modelFile, phrase)
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	var p Prediction
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		return nil, false
	}
	c.logger.Debug("cache hit", "phrase", phrase, "key", key)
	return &p, true
}

// Set stores a prediction for phrase. Failures are logged, never fatal: the
// cache is an accelerator, not a dependency.
func (c *Cache) Set(ctx context.Context, modelFile, phrase string, p Prediction) {
	key := buildKey(modelFile, phrase)
	data, err := json.Marshal(p)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.cfg.CacheTTL); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached prediction for phrase, or computes and
// caches it. The second return reports whether the cache answered.
func (c *Cache) GetOrCompute(
	ctx context.Context,
	modelFile, phrase string,
	computeFn func() (*Prediction, error),
) (*Prediction, bool, error) {
	if p, ok := c.Get(ctx, modelFile, phrase); ok {
		return p, true, nil
	}
	key := buildKey(modelFile, phrase)
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		if p, ok := c.Get(ctx, modelFile, phrase); ok {
			return p, nil
		}
		p, err := computeFn()
		if err != nil {
			return nil, err
		}
		c.Set(ctx, modelFile, phrase, *p)
		return p, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.(*Prediction), false, nil
}

func buildKey(modelFile, phrase string) string {
	sum := sha256.Sum256([]byte(modelFile + "\x00" + phrase))
	return fmt.Sprintf("%s%x", keyPrefix, sum[:16])
}
