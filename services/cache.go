package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"views-prediction-api/config"
	"views-prediction-api/logger"

	"github.com/redis/go-redis/v9"
)

const PredictionsChannel = "views:predictions"

// CacheService fronts Redis. A service without a client is valid: every
// operation becomes a no-op so the app runs without Redis.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(cfg config.RedisConfig, log *logger.Logger) (*CacheService, error) {
	if !cfg.Enabled() {
		return &CacheService{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	const attempts = 5
	var lastErr error
	for i := 0; i < attempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		lastErr = client.Ping(ctx).Err()
		cancel()
		if lastErr == nil {
			return &CacheService{client: client, ttl: cfg.CacheTTL}, nil
		}
		log.Warn("redis ping failed", "attempt", i+1, "of", attempts, "error", lastErr)
		time.Sleep(time.Second)
	}

	_ = client.Close()
	return &CacheService{}, fmt.Errorf("redis ping failed after %d attempts: %w", attempts, lastErr)
}

// NewCacheServiceWithClient wraps an existing client.
func NewCacheServiceWithClient(client *redis.Client, ttl time.Duration) *CacheService {
	return &CacheService{client: client, ttl: ttl}
}

func (s *CacheService) Available() bool {
	return s != nil && s.client != nil
}

// Get decodes the value at key into dest and reports whether it was found.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Available() {
		return false, nil
	}
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	if !s.Available() || s.ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}

func (s *CacheService) Publish(ctx context.Context, channel string, message interface{}) error {
	if !s.Available() {
		return nil
	}
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return s.client.Publish(ctx, channel, data).Err()
}

// Subscribe returns nil when Redis is not configured.
func (s *CacheService) Subscribe(ctx context.Context, channel string) *redis.PubSub {
	if !s.Available() {
		return nil
	}
	return s.client.Subscribe(ctx, channel)
}

func (s *CacheService) Close() error {
	if !s.Available() {
		return nil
	}
	return s.client.Close()
}
