package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/boxbox-club/boxbox-api/internal/repository/dao"
)

var ErrCacheMiss = dao.ErrCacheMiss

type ApiCacheDAO interface {
	Get(ctx context.Context, key string, now time.Time) (string, error)
	Put(ctx context.Context, key, payload string, ttlSeconds int, now time.Time) error
}

// CacheRepository fronts the api_caches table: a passive store of
// TTL-stamped payloads.
type CacheRepository struct {
	dao ApiCacheDAO
}

func NewCacheRepository(dao ApiCacheDAO) *CacheRepository {
	return &CacheRepository{
		dao: dao,
	}
}

func (r *CacheRepository) Get(ctx context.Context, key string, now time.Time) (string, error) {
	payload, err := r.dao.Get(ctx, key, now)
	if err != nil {
		return "", fmt.Errorf("r.dao.Get -> %w", err)
	}

	return payload, nil
}

func (r *CacheRepository) Put(ctx context.Context, key, payload string, ttlSeconds int, now time.Time) error {
	if err := r.dao.Put(ctx, key, payload, ttlSeconds, now); err != nil {
		return fmt.Errorf("r.dao.Put -> %w", err)
	}

	return nil
}
