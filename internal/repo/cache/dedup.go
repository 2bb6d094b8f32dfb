package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// UpdateDeduper remembers which Telegram update ids were already handled, since
// both the webhook and the Kafka topic may redeliver an update.
type UpdateDeduper interface {
	// MarkProcessed reports true the first time updateID is seen within the TTL.
	MarkProcessed(ctx context.Context, updateID int64) (bool, error)
}

const dedupKeyPrefix = "price-bot:update:"

type redisDeduper struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisDeduper(client redis.UniversalClient, ttl time.Duration) UpdateDeduper {
	return &redisDeduper{client: client, ttl: ttl}
}

func (d *redisDeduper) MarkProcessed(ctx context.Context, updateID int64) (bool, error) {
	key := dedupKeyPrefix + strconv.FormatInt(updateID, 10)
	first, err := d.client.SetNX(ctx, key, 1, d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return first, nil
}

type memoryDeduper struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	seen map[int64]time.Time
}

// NewMemoryDeduper keeps update ids in process memory. Expired ids are swept on insert.
func NewMemoryDeduper(ttl time.Duration) UpdateDeduper {
	return &memoryDeduper{
		ttl:  ttl,
		now:  time.Now,
		seen: make(map[int64]time.Time),
	}
}

func (d *memoryDeduper) MarkProcessed(_ context.Context, updateID int64) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if expires, ok := d.seen[updateID]; ok && now.Before(expires) {
		return false, nil
	}

	for id, expires := range d.seen {
		if !now.Before(expires) {
			delete(d.seen, id)
		}
	}
	d.seen[updateID] = now.Add(d.ttl)
	return true, nil
}
