package directory

import (
	"context"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"eventreg-request-service/internal/domain"
	"eventreg-request-service/internal/logger"
)

const DefaultCleanupInterval = 30 * time.Minute

// CachedUserDirectory keeps users that were found for ttl. Misses and errors
// are never cached, so a user created after a NotFound is seen on the next call.
type CachedUserDirectory struct {
	next  UserDirectory
	cache *gocache.Cache
}

func NewCachedUserDirectory(next UserDirectory, ttl time.Duration) *CachedUserDirectory {
	return &CachedUserDirectory{
		next:  next,
		cache: gocache.New(ttl, DefaultCleanupInterval),
	}
}

func (d *CachedUserDirectory) Get(ctx context.Context, userID int64) (*domain.User, error) {
	key := strconv.FormatInt(userID, 10)
	if value, found := d.cache.Get(key); found {
		if u, ok := value.(*domain.User); ok {
			logger.Debug("user cache hit", "user_id", userID)
			return u, nil
		}
		logger.Error("wrong type assertion when getting value", "key", key)
	}

	u, err := d.next.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	d.cache.SetDefault(key, u)
	return u, nil
}

// Forget drops a cached user.
func (d *CachedUserDirectory) Forget(userID int64) {
	d.cache.Delete(strconv.FormatInt(userID, 10))
}
