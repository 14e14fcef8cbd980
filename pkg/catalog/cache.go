package catalog

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

type localEntry struct {
	expires time.Time
	data    []byte
}

// Cache is a read-through cache with a short-lived in-process layer in
// front of redis. A nil redis client leaves only the local layer.
type Cache struct {
	mu       sync.Mutex
	client   *redis.Client
	local    map[string]localEntry
	localTtl time.Duration
}

func NewCache(addr, password string, db int) *Cache {
	var client *redis.Client
	if addr != "" {
		client = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		})
	}
	return &Cache{
		client:   client,
		local:    map[string]localEntry{},
		localTtl: time.Minute,
	}
}

func (c *Cache) Get(ctx context.Context, key string, out any) error {
	c.mu.Lock()
	entry, found := c.local[key]
	if found && entry.expires.After(time.Now()) {
		c.mu.Unlock()
		return sonic.Unmarshal(entry.data, out)
	}
	if found {
		delete(c.local, key)
	}
	c.mu.Unlock()
	if c.client == nil {
		return redis.Nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.local[key] = localEntry{expires: time.Now().Add(c.localTtl), data: data}
	c.mu.Unlock()
	return sonic.Unmarshal(data, out)
}

func (c *Cache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.local[key] = localEntry{expires: time.Now().Add(min(c.localTtl, expiration)), data: data}
	c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, key, data, expiration).Err()
}

func (c *Cache) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Handle fills out from the cache or, on a miss, from fn and stores the
// result. Errors from fn are returned without caching.
func Handle[T any](ctx context.Context, c *Cache, key string, out *T, fn func() (*T, error), expiration time.Duration) error {
	if err := c.Get(ctx, key, out); err == nil {
		return nil
	}
	fresh, err := fn()
	if err != nil {
		return err
	}
	*out = *fresh
	if err := c.Set(ctx, key, fresh, expiration); err != nil {
		log.Printf("cache set %s failed: %v", key, err)
	}
	return nil
}

// CachingSearchClient caches aggregate responses; aggregates change slowly
// and are re-requested on every category change. Item searches pass
// through untouched.
type CachingSearchClient struct {
	Inner SearchClient
	Cache *Cache
	Ttl   time.Duration
}

func NewCachingSearchClient(inner SearchClient, cache *Cache) *CachingSearchClient {
	return &CachingSearchClient{Inner: inner, Cache: cache, Ttl: 5 * time.Minute}
}

func (c *CachingSearchClient) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	return c.Inner.Search(ctx, req)
}

func (c *CachingSearchClient) Aggregate(ctx context.Context, req *AggregateRequest) (*AggregateResponse, error) {
	if c.Cache == nil {
		return c.Inner.Aggregate(ctx, req)
	}
	keyData, err := sonic.Marshal(req)
	if err != nil {
		return c.Inner.Aggregate(ctx, req)
	}
	result := &AggregateResponse{}
	err = Handle(ctx, c.Cache, "agg:"+string(keyData), result, func() (*AggregateResponse, error) {
		return c.Inner.Aggregate(ctx, req)
	}, c.Ttl)
	if err != nil {
		return nil, err
	}
	return result, nil
}
