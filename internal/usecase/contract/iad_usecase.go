package usecasecontract

import (
	"context"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
)

type AdInput struct {
	Title       *string
	Description *string
	Category    *string
	Subcategory *string
	Country     *string
	City        *string
	Address     *string
	Price       *float64
	Currency    *string
	Status      *string
	Photos      []entity.AdPhoto
	Lat         *float64
	Lng         *float64
}

type IAdUseCase interface {
	CreateAd(ctx context.Context, ownerID string, in AdInput) (*entity.Ad, error)
	// GetAd returns the ad and counts the view.
	GetAd(ctx context.Context, adID string) (*entity.Ad, error)
	UpdateAd(ctx context.Context, adID, ownerID string, in AdInput) (*entity.Ad, error)
	DeleteAd(ctx context.Context, adID, ownerID string) error
	ListAds(ctx context.Context, filter entity.AdFilter) ([]*entity.Ad, contract.PaginationMeta, error)
}
