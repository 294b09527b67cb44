package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrCacheMiss = errors.New("cache miss")

// ApiCache is a passive TTL-stamped row, not a cache engine: expiry is
// checked on read and there is no sweeper.
type ApiCache struct {
	CacheKey   string    `gorm:"primaryKey;size:128"`
	Payload    string    `gorm:"not null"`
	TTLSeconds int       `gorm:"not null"`
	FetchedAt  time.Time `gorm:"not null"`
}

type ApiCacheDAO struct {
	db *gorm.DB
}

func NewApiCacheDAO(db *gorm.DB) *ApiCacheDAO {
	return &ApiCacheDAO{
		db: db,
	}
}

func (d *ApiCacheDAO) Get(ctx context.Context, key string, now time.Time) (string, error) {
	var row ApiCache

	result := d.db.WithContext(ctx).First(&row, "cache_key = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", ErrCacheMiss
		}

		return "", result.Error
	}

	if now.After(row.FetchedAt.Add(time.Duration(row.TTLSeconds) * time.Second)) {
		return "", ErrCacheMiss
	}

	return row.Payload, nil
}

func (d *ApiCacheDAO) Put(ctx context.Context, key, payload string, ttlSeconds int, now time.Time) error {
	row := ApiCache{
		CacheKey:   key,
		Payload:    payload,
		TTLSeconds: ttlSeconds,
		FetchedAt:  now,
	}

	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		UpdateAll: true,
	}).Create(&row)

	return result.Error
}
