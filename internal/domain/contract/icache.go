package contract

import (
	"context"

	"github.com/mapmark/pinpoint/internal/domain/entity"
)

// CachedReviews is the cached payload of a nearby search.
type CachedReviews struct {
	Reviews []entity.Review `json:"reviews"`
}

// INearbyReviewCache caches radius search results.
type INearbyReviewCache interface {
	GetNearby(ctx context.Context, q entity.RadiusQuery) (*CachedReviews, bool, error)
	SetNearby(ctx context.Context, q entity.RadiusQuery, reviews []*entity.Review) error
	InvalidateNearby(ctx context.Context) error
}
