package service

import (
	"context"
	"encoding/json"
	"time"

	"medical-appointments-api/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for cached public doctor searches
	doctorSearchKeyPrefix = "doctor_search:"

	// Timeout for individual Redis operations
	cacheOpTimeout = 5 * time.Second

	// How long a cached search result stays valid
	doctorSearchTTL = 5 * time.Minute
)

// DoctorSearchCache is the read-through cache in front of public doctor
// searches.
type DoctorSearchCache interface {
	Get(ctx context.Context, term string) ([]entity.Doctor, bool)
	Set(ctx context.Context, term string, doctors []entity.Doctor)
	Invalidate(ctx context.Context)
}

// DoctorCache caches public doctor search results in Redis. The cache is
// best-effort: every miss or Redis failure falls through to the
// database, and any doctor mutation invalidates all cached searches.
type DoctorCache struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewDoctorCache(client *redis.Client, log *logrus.Logger) *DoctorCache {
	return &DoctorCache{
		client: client,
		log:    log,
	}
}

// Get returns the cached result for a search term, and whether it was present.
func (c *DoctorCache) Get(ctx context.Context, term string) ([]entity.Doctor, bool) {
	opCtx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	payload, err := c.client.Get(opCtx, doctorSearchKeyPrefix+term).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warnf("Failed to read doctor search cache: %+v", err)
		}
		return nil, false
	}

	var doctors []entity.Doctor
	if err := json.Unmarshal(payload, &doctors); err != nil {
		c.log.Warnf("Failed to decode doctor search cache entry: %+v", err)
		return nil, false
	}

	return doctors, true
}

// Set stores a search result under its term.
func (c *DoctorCache) Set(ctx context.Context, term string, doctors []entity.Doctor) {
	payload, err := json.Marshal(doctors)
	if err != nil {
		c.log.Warnf("Failed to encode doctor search cache entry: %+v", err)
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	if err := c.client.Set(opCtx, doctorSearchKeyPrefix+term, payload, doctorSearchTTL).Err(); err != nil {
		c.log.Warnf("Failed to write doctor search cache: %+v", err)
	}
}

// Invalidate drops every cached search. Called whenever a doctor row changes.
func (c *DoctorCache) Invalidate(ctx context.Context) {
	opCtx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	keys, err := c.client.Keys(opCtx, doctorSearchKeyPrefix+"*").Result()
	if err != nil {
		c.log.Warnf("Failed to list doctor search cache keys: %+v", err)
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := c.client.Del(opCtx, keys...).Err(); err != nil {
		c.log.Warnf("Failed to invalidate doctor search cache: %+v", err)
	}
}
