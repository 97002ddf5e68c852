package contract

import (
	"context"

	"github.com/mapmark/pinpoint/internal/domain/entity"
)

type IAdRepository interface {
	Create(ctx context.Context, ad *entity.Ad) error
	GetByID(ctx context.Context, id string) (*entity.Ad, error)
	// IncrementViews atomically bumps the view counter and returns the updated ad.
	IncrementViews(ctx context.Context, id string) (*entity.Ad, error)
	Update(ctx context.Context, ad *entity.Ad) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter entity.AdFilter) ([]*entity.Ad, int64, error)
}
