package pipeline

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/globalvillage/api/internal/worldatlas"
)

// Cache holds the most recent upstream country collection. Misses and
// backend failures are indistinguishable to the caller: both mean
// "fetch again".
type Cache interface {
	Get(ctx context.Context) ([]worldatlas.RawCountry, bool)
	Set(ctx context.Context, countries []worldatlas.RawCountry)
}

const redisKey = "restcountries:all"

// RedisCache stores the collection as one JSON blob with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context) ([]worldatlas.RawCountry, bool) {
	data, err := c.client.Get(ctx, redisKey).Bytes()
	if err != nil {
		return nil, false
	}
	var countries []worldatlas.RawCountry
	if err := json.Unmarshal(data, &countries); err != nil {
		return nil, false
	}
	return countries, true
}

func (c *RedisCache) Set(ctx context.Context, countries []worldatlas.RawCountry) {
	data, err := json.Marshal(countries)
	if err != nil {
		return
	}
	// Best-effort: a write failure just means the next request fetches.
	c.client.Set(ctx, redisKey, data, c.ttl)
}

// MemoryCache is the single-process fallback when no Redis is
// configured.
type MemoryCache struct {
	mu        sync.RWMutex
	countries []worldatlas.RawCountry
	expires   time.Time
	ttl       time.Duration
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl}
}

func (c *MemoryCache) Get(_ context.Context) ([]worldatlas.RawCountry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.countries == nil || time.Now().After(c.expires) {
		return nil, false
	}
	return c.countries, true
}

func (c *MemoryCache) Set(_ context.Context, countries []worldatlas.RawCountry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.countries = countries
	c.expires = time.Now().Add(c.ttl)
}
