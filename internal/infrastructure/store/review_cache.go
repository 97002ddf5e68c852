package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
	"github.com/mapmark/pinpoint/internal/infrastructure/metrics"
)

const nearbyKeyPrefix = "reviews:nearby:"

// NearbyReviewCache caches radius search results in Redis. Any review write
// drops every cached search.
type NearbyReviewCache struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ contract.INearbyReviewCache = (*NearbyReviewCache)(nil)

// NewNearbyReviewCache creates a cache whose entries expire after ttl.
func NewNearbyReviewCache(rdb *redis.Client, ttl time.Duration) *NearbyReviewCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &NearbyReviewCache{rdb: rdb, ttl: ttl}
}

// nearbyKey rounds the centre to ~1m so equivalent queries share an entry.
// The radius is kept exact: radius=0 and radius=0.4 can match different reviews.
func nearbyKey(q entity.RadiusQuery) string {
	return fmt.Sprintf("%s%.5f:%.5f:%s:%d", nearbyKeyPrefix,
		q.Lat, q.Lng, strconv.FormatFloat(q.RadiusMeters, 'f', -1, 64), q.Limit)
}

func (c *NearbyReviewCache) GetNearby(ctx context.Context, q entity.RadiusQuery) (*contract.CachedReviews, bool, error) {
	b, err := c.rdb.Get(ctx, nearbyKey(q)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.NearbyCacheLookups.WithLabelValues("miss").Inc()
			return nil, false, nil
		}
		metrics.NearbyCacheLookups.WithLabelValues("error").Inc()
		return nil, false, err
	}
	var page contract.CachedReviews
	if err := json.Unmarshal(b, &page); err != nil {
		metrics.NearbyCacheLookups.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	metrics.NearbyCacheLookups.WithLabelValues("hit").Inc()
	return &page, true, nil
}

func (c *NearbyReviewCache) SetNearby(ctx context.Context, q entity.RadiusQuery, reviews []*entity.Review) error {
	page := contract.CachedReviews{Reviews: make([]entity.Review, 0, len(reviews))}
	for _, r := range reviews {
		page.Reviews = append(page.Reviews, *r)
	}
	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, nearbyKey(q), data, c.ttl).Err()
}

// InvalidateNearby drops every cached search.
func (c *NearbyReviewCache) InvalidateNearby(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, nearbyKeyPrefix+"*", 1000).Iterator()
	pipe := c.rdb.Pipeline()
	n := 0
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
		n++
		if n%200 == 0 {
			if _, err := pipe.Exec(ctx); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if n%200 != 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
