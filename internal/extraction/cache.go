package extraction

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/logger"
	"github.com/mohit-756/interview-bot/internal/models"
)

const cacheKeyPrefix = "jd-taxonomy:"

// RedisCache keeps model-produced taxonomies in Redis. Errors are logged and
// treated as misses.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisCache wraps client; ttl <= 0 means no expiry
func NewRedisCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, log: logger.OrNop(log).Named("taxonomy-cache")}
}

// CacheKey derives the Redis key for a JD text
func CacheKey(jdText string) string {
	sum := sha256.Sum256([]byte(jdText))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *RedisCache) Get(ctx context.Context, jdText string) (models.JDTaxonomy, bool) {
	raw, err := c.client.Get(ctx, CacheKey(jdText)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache read failed", zap.Error(err))
		}
		return models.JDTaxonomy{}, false
	}

	var taxonomy models.JDTaxonomy
	if err := json.Unmarshal(raw, &taxonomy); err != nil {
		return models.JDTaxonomy{}, false
	}
	return taxonomy, true
}

func (c *RedisCache) Set(ctx context.Context, jdText string, taxonomy models.JDTaxonomy) {
	raw, err := json.Marshal(taxonomy)
	if err != nil {
		return
	}
	ttl := c.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, CacheKey(jdText), raw, ttl).Err(); err != nil {
		c.log.Warn("cache write failed", zap.Error(err))
	}
}
