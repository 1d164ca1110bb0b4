package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/logger"
	"github.com/Tatsuya-hasegawa/fastapi-security-practice/internal/models"
)

// UserCacheRepository caches resolved users by username in Redis.
// The TTL must stay short: a disabled flag flipped in the database is
// only observed once the cached entry expires. Cached entries never
// hold the password hash (it is excluded from the JSON encoding);
// credential checks always go to the database.
type UserCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewUserCacheRepository creates a new cache repository with the given TTL.
func NewUserCacheRepository(client *redis.Client, exp time.Duration) *UserCacheRepository {
	return &UserCacheRepository{
		client: client,
		exp:    exp,
	}
}

// Get returns the cached user for a username, or (nil, nil) on a miss.
func (r *UserCacheRepository) Get(ctx context.Context, username string) (*models.UserDB, error) {
	key := userKey(username)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logger.Log.Errorw("user cache get failed", "key", key, "error", err)
		return nil, err
	}

	var user models.UserDB
	if err := json.Unmarshal([]byte(val), &user); err != nil {
		logger.Log.Errorw("user cache decode failed", "key", key, "error", err)
		return nil, err
	}
	return &user, nil
}

// Set caches a user under its username.
func (r *UserCacheRepository) Set(ctx context.Context, user *models.UserDB) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	key := userKey(user.Username)
	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow("user cache set", "key", key, "error", err)

	return err
}

func userKey(username string) string {
	return "user:" + username
}
