package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chemtrack/chemtrack/internal/domain/chemicals"
)

const chemicalKeyPrefix = "chemical:"

// ChemicalCache is a read-through cache for chemical detail lookups.
// Entries are invalidated whenever the underlying inventory row is adjusted.
// Misses and redis faults both fall back to the database, so the cache is
// never authoritative.
type ChemicalCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

func NewChemicalCache(client *redis.Client, ttl time.Duration, log *slog.Logger) *ChemicalCache {
	return &ChemicalCache{client: client, ttl: ttl, log: log}
}

func (c *ChemicalCache) Get(ctx context.Context, inventoryID int64) (*chemicals.Chemical, bool) {
	data, err := c.client.Get(ctx, chemicalKey(inventoryID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("chemical cache read failed", "inventory_id", inventoryID, "err", err)
		}
		return nil, false
	}

	var chem chemicals.Chemical
	if err := json.Unmarshal(data, &chem); err != nil {
		c.log.Warn("chemical cache entry corrupt", "inventory_id", inventoryID, "err", err)
		return nil, false
	}
	return &chem, true
}

func (c *ChemicalCache) Set(ctx context.Context, chem *chemicals.Chemical) {
	data, err := json.Marshal(chem)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, chemicalKey(chem.InventoryID), data, c.ttl).Err(); err != nil {
		c.log.Warn("chemical cache write failed", "inventory_id", chem.InventoryID, "err", err)
	}
}

func (c *ChemicalCache) Invalidate(ctx context.Context, inventoryID int64) {
	if err := c.client.Del(ctx, chemicalKey(inventoryID)).Err(); err != nil {
		c.log.Warn("chemical cache invalidation failed", "inventory_id", inventoryID, "err", err)
	}
}

func chemicalKey(inventoryID int64) string {
	return fmt.Sprintf("%s%d", chemicalKeyPrefix, inventoryID)
}
