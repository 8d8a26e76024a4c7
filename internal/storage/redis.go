package storage

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"marketplace-client/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisTokenStore keeps the auth token under a single key.
type RedisTokenStore struct {
	Client *redis.Client
	Key    string
}

func NewRedisTokenStore(client *redis.Client, key string) *RedisTokenStore {
	if key == "" {
		key = "marketplace:session:token"
	}
	return &RedisTokenStore{Client: client, Key: key}
}

func (s *RedisTokenStore) Load(ctx context.Context) (string, error) {
	token, err := s.Client.Get(ctx, s.Key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return token, err
}

func (s *RedisTokenStore) Save(ctx context.Context, token string) error {
	return s.Client.Set(ctx, s.Key, token, 0).Err()
}

func (s *RedisTokenStore) Clear(ctx context.Context) error {
	return s.Client.Del(ctx, s.Key).Err()
}

// RedisMenuCache caches restaurant menus as JSON with a TTL.
type RedisMenuCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisMenuCache(client *redis.Client, ttl time.Duration) *RedisMenuCache {
	return &RedisMenuCache{Client: client, TTL: ttl}
}

func (c *RedisMenuCache) MenuKey(restaurantID int64) string {
	return "menu:" + strconv.FormatInt(restaurantID, 10)
}

// GetMenu reports ok=false on a cache miss.
func (c *RedisMenuCache) GetMenu(ctx context.Context, restaurantID int64) ([]domain.MenuItem, bool, error) {
	raw, err := c.Client.Get(ctx, c.MenuKey(restaurantID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var items []domain.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (c *RedisMenuCache) SetMenu(ctx context.Context, restaurantID int64, items []domain.MenuItem) error {
	if items == nil {
		items = []domain.MenuItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.MenuKey(restaurantID), payload, c.TTL).Err()
}

func (c *RedisMenuCache) InvalidateMenu(ctx context.Context, restaurantID int64) error {
	return c.Client.Del(ctx, c.MenuKey(restaurantID)).Err()
}
