package datasource

import (
	"sync/atomic"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/favstats/internal/models"
)

// GameCache keeps decoded game documents in memory. Completed games never
// change, so a hit can be served without going back to the API.
type GameCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	hitCount  atomic.Uint64
	missCount atomic.Uint64
}

// NewGameCache creates a new game cache
func NewGameCache(ttl time.Duration, maxSize int) *GameCache {
	return &GameCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached game
func (gc *GameCache) Get(gameID string) (*models.Game, bool) {
	if item, found := gc.cache.Get(gameID); found {
		if game, ok := item.(*models.Game); ok {
			gc.hitCount.Add(1)
			return game, true
		}
	}
	gc.missCount.Add(1)
	return nil, false
}

// Set stores a game in cache. When the cache is full, expired entries are
// purged first and the game is dropped if there is still no room.
func (gc *GameCache) Set(gameID string, game *models.Game) {
	if gc.maxSize > 0 && gc.cache.ItemCount() >= gc.maxSize {
		gc.cache.DeleteExpired()
		if gc.cache.ItemCount() >= gc.maxSize {
			return
		}
	}
	gc.cache.Set(gameID, game, gc.ttl)
}

// Len returns the number of cached games
func (gc *GameCache) Len() int {
	return gc.cache.ItemCount()
}

// Flush removes all cached games
func (gc *GameCache) Flush() {
	gc.cache.Flush()
}

// Stats returns hit count, miss count and hit ratio
func (gc *GameCache) Stats() (hits, misses uint64, ratio float64) {
	hits = gc.hitCount.Load()
	misses = gc.missCount.Load()
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return hits, misses, ratio
}
