package contract

import (
	"context"

	"github.com/mapmark/pinpoint/internal/domain/entity"
)

type IReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	// FindWithinRadius returns up to q.Limit reviews inside the query circle, in no particular order.
	FindWithinRadius(ctx context.Context, q entity.RadiusQuery) ([]*entity.Review, error)
	ListByUsername(ctx context.Context, username string, pagination Pagination) ([]*entity.Review, int64, error)
	Delete(ctx context.Context, id string) error
}
