package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pettouch/internal/models"
)

type CacheService interface {
	// Pet caching
	GetPet(ctx context.Context, petID uuid.UUID) (*models.Pet, error)
	SetPet(ctx context.Context, pet *models.Pet, ttl time.Duration) error
	DeletePet(ctx context.Context, petID uuid.UUID) error

	// Profile caching
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	SetProfile(ctx context.Context, profile *models.Profile, ttl time.Duration) error
	DeleteProfile(ctx context.Context, userID uuid.UUID) error

	// Admin stats caching
	GetAdminStats(ctx context.Context) (map[string]int, error)
	SetAdminStats(ctx context.Context, stats map[string]int, ttl time.Duration) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	IncrementRateLimit(ctx context.Context, key string, window time.Duration) error

	// Generic string operations for token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port and rediss://host:port forms
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetPet(ctx context.Context, petID uuid.UUID) (*models.Pet, error) {
	key := fmt.Sprintf("pettouch:pet:%s", petID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var pet models.Pet
	if err := json.Unmarshal(data, &pet); err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *redisCacheService) SetPet(ctx context.Context, pet *models.Pet, ttl time.Duration) error {
	key := fmt.Sprintf("pettouch:pet:%s", pet.ID.String())
	data, err := json.Marshal(pet)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeletePet(ctx context.Context, petID uuid.UUID) error {
	key := fmt.Sprintf("pettouch:pet:%s", petID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	key := fmt.Sprintf("pettouch:profile:%s", userID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var profile models.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *redisCacheService) SetProfile(ctx context.Context, profile *models.Profile, ttl time.Duration) error {
	key := fmt.Sprintf("pettouch:profile:%s", profile.ID.String())
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	key := fmt.Sprintf("pettouch:profile:%s", userID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetAdminStats(ctx context.Context) (map[string]int, error) {
	data, err := r.client.Get(ctx, "pettouch:admin:stats").Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var stats map[string]int
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *redisCacheService) SetAdminStats(ctx context.Context, stats map[string]int, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, "pettouch:admin:stats", data, ttl).Err()
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := r.client.Get(ctx, fmt.Sprintf("pettouch:ratelimit:%s", key)).Int()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	return count >= limit, nil
}

func (r *redisCacheService) IncrementRateLimit(ctx context.Context, key string, window time.Duration) error {
	fullKey := fmt.Sprintf("pettouch:ratelimit:%s", key)
	count, err := r.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		// First attempt in the window sets the expiry
		return r.client.Expire(ctx, fullKey, window).Err()
	}
	return nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
