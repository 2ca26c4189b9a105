// Package cache хранит отрендеренные страницы в Redis с ограниченным TTL.
package cache

import (
	"context"
	"errors"
	"log"
	"time"

	"yatube/internal/config"

	"github.com/redis/go-redis/v9"
)

// PageCache кэширует готовые ответы страниц по ключу.
// Get возвращает false при промахе; Clear снимает все ключи с префиксом.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration)
	Clear(ctx context.Context, prefix string) error
}

type RedisPageCache struct {
	client *redis.Client
}

// NewRedisPageCache подключается к Redis. Если Redis недоступен,
// кэш отключается и страницы отдаются без кэширования.
func NewRedisPageCache(cfg *config.Config) *RedisPageCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis недоступен: %v (работаем без кэша страниц)", err)
		return &RedisPageCache{client: nil}
	}

	log.Println("Успешное подключение к Redis")
	return &RedisPageCache{client: client}
}

// NewRedisPageCacheWithClient оборачивает готовый клиент. Используется в тестах.
func NewRedisPageCacheWithClient(client *redis.Client) *RedisPageCache {
	return &RedisPageCache{client: client}
}

func (c *RedisPageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c.client == nil {
		return nil, false
	}

	body, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Printf("Ошибка чтения из кэша страниц: %v", err)
		return nil, false
	}

	return body, true
}

func (c *RedisPageCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if c.client == nil {
		return
	}

	// Запись в кэш best-effort: сбой не должен ломать ответ.
	if err := c.client.Set(ctx, key, body, ttl).Err(); err != nil {
		log.Printf("Ошибка записи в кэш страниц: %v", err)
	}
}

func (c *RedisPageCache) Clear(ctx context.Context, prefix string) error {
	if c.client == nil {
		return nil
	}

	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}

	return iter.Err()
}
