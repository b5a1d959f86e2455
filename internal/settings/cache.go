package settings

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Tesseract-Nexus/admin-bff/internal/domain"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/logger"
	"github.com/Tesseract-Nexus/admin-bff/internal/pkg/memocache"
)

// Store caches settings documents between the BFF and the settings service.
// Lookups are best-effort: a cache failure is treated as a miss.
type Store interface {
	Get(ctx context.Context, key string) (domain.SettingsDocument, bool)
	Set(ctx context.Context, key string, doc domain.SettingsDocument)
	Delete(ctx context.Context, key string)
}

// memoryStore is the default process-local store.
type memoryStore struct {
	cache *memocache.Cache[domain.SettingsDocument]
}

// NewMemoryStore creates an in-process settings store with the given TTL
// and entry bound.
func NewMemoryStore(ttl time.Duration, maxEntries int) Store {
	return &memoryStore{cache: memocache.New[domain.SettingsDocument](maxEntries, ttl)}
}

func (s *memoryStore) Get(_ context.Context, key string) (domain.SettingsDocument, bool) {
	return s.cache.Get(key)
}

func (s *memoryStore) Set(_ context.Context, key string, doc domain.SettingsDocument) {
	s.cache.Set(key, doc)
}

func (s *memoryStore) Delete(_ context.Context, key string) {
	s.cache.Delete(key)
}

// redisStore shares the cache across BFF replicas. Entries expire
// server-side via the key TTL.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed settings store from a redis URL.
func NewRedisStore(url string, ttl time.Duration) (Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &redisStore{client: redis.NewClient(opts), ttl: ttl}, nil
}

func (s *redisStore) redisKey(key string) string {
	return "bff:settings:" + key
}

func (s *redisStore) Get(ctx context.Context, key string) (domain.SettingsDocument, bool) {
	raw, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("settings cache read failed", "key", key, "error", err.Error())
		}
		return domain.SettingsDocument{}, false
	}
	var doc domain.SettingsDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.SettingsDocument{}, false
	}
	return doc, true
}

func (s *redisStore) Set(ctx context.Context, key string, doc domain.SettingsDocument) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, s.redisKey(key), raw, s.ttl).Err(); err != nil {
		logger.Warn("settings cache write failed", "key", key, "error", err.Error())
	}
}

func (s *redisStore) Delete(ctx context.Context, key string) {
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		logger.Warn("settings cache delete failed", "key", key, "error", err.Error())
	}
}
