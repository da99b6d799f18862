package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/repeto/placement-board/internal/models"
)

const (
	catalogKey = "catalog:categories"
	catalogTTL = 10 * time.Minute
)

// Catalog is an optional Redis cache for the category catalog. A nil
// *Catalog is valid and turns every call into a no-op, so callers never
// branch on whether caching is configured.
type Catalog struct {
	rdb *redis.Client
}

// NewCatalog returns nil when no address is configured.
func NewCatalog(addr string) *Catalog {
	if addr == "" {
		return nil
	}
	return &Catalog{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

func (c *Catalog) Get(ctx context.Context) ([]models.Category, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Catalog cache read failed: %v", err)
		}
		return nil, false
	}
	var categories []models.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		log.Printf("Catalog cache entry corrupt, dropping: %v", err)
		c.Invalidate(ctx)
		return nil, false
	}
	return categories, true
}

func (c *Catalog) Set(ctx context.Context, categories []models.Category) {
	if c == nil {
		return
	}
	data, err := json.Marshal(categories)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, catalogKey, data, catalogTTL).Err(); err != nil {
		log.Printf("Catalog cache write failed: %v", err)
	}
}

// Invalidate drops the cached catalog; called after every catalog write.
func (c *Catalog) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, catalogKey).Err(); err != nil {
		log.Printf("Catalog cache invalidation failed: %v", err)
	}
}
