package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

const defaultCurrency = "USD"

type AdUsecase struct {
	adRepo        contract.IAdRepository
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
	maxPageSize   int
	now           func() time.Time
}

var _ usecasecontract.IAdUseCase = (*AdUsecase)(nil)

// NewAdUsecase creates a new AdUsecase.
func NewAdUsecase(adRepo contract.IAdRepository, uuidGenerator contract.IUUIDGenerator, logger usecasecontract.IAppLogger, cfg usecasecontract.IConfigProvider) *AdUsecase {
	return &AdUsecase{
		adRepo:        adRepo,
		uuidGenerator: uuidGenerator,
		logger:        logger,
		maxPageSize:   cfg.GetMaxPageSize(),
		now:           time.Now,
	}
}

// CreateAd validates and stores a new listing owned by ownerID. Status
// defaults to active and the currency is upper-cased.
func (uc *AdUsecase) CreateAd(ctx context.Context, ownerID string, in usecasecontract.AdInput) (*entity.Ad, error) {
	now := uc.now()
	ad := &entity.Ad{
		ID:        uc.uuidGenerator.NewUUID(),
		OwnerID:   ownerID,
		Currency:  defaultCurrency,
		Status:    entity.AdStatusActive,
		Photos:    []entity.AdPhoto{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyAdInput(ad, in); err != nil {
		return nil, err
	}
	required := []struct{ field, value string }{
		{"title", ad.Title},
		{"description", ad.Description},
		{"category", ad.Category},
		{"country", ad.Country},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, fmt.Errorf("%w: %s is required", entity.ErrValidation, r.field)
		}
	}
	if in.Price == nil {
		return nil, fmt.Errorf("%w: price is required", entity.ErrValidation)
	}

	if err := uc.adRepo.Create(ctx, ad); err != nil {
		return nil, fmt.Errorf("failed to create ad: %w", err)
	}
	return ad, nil
}

// GetAd returns an ad and counts the view atomically.
func (uc *AdUsecase) GetAd(ctx context.Context, adID string) (*entity.Ad, error) {
	ad, err := uc.adRepo.IncrementViews(ctx, adID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ad: %w", err)
	}
	return ad, nil
}

// UpdateAd replaces the editable fields of an ad. Only the owner may update it.
func (uc *AdUsecase) UpdateAd(ctx context.Context, adID, ownerID string, in usecasecontract.AdInput) (*entity.Ad, error) {
	ad, err := uc.ownedAd(ctx, adID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := applyAdInput(ad, in); err != nil {
		return nil, err
	}
	ad.UpdatedAt = uc.now()
	if err := uc.adRepo.Update(ctx, ad); err != nil {
		return nil, fmt.Errorf("failed to update ad: %w", err)
	}
	return ad, nil
}

// DeleteAd removes an ad. Only the owner may delete it.
func (uc *AdUsecase) DeleteAd(ctx context.Context, adID, ownerID string) error {
	ad, err := uc.ownedAd(ctx, adID, ownerID)
	if err != nil {
		return err
	}
	if err := uc.adRepo.Delete(ctx, ad.ID); err != nil {
		return fmt.Errorf("failed to delete ad: %w", err)
	}
	return nil
}

// ListAds returns a page of ads matching filter, newest first. Only active
// ads are listed unless another status is requested.
func (uc *AdUsecase) ListAds(ctx context.Context, filter entity.AdFilter) ([]*entity.Ad, contract.PaginationMeta, error) {
	if filter.Near != nil {
		if err := filter.Near.Validate(); err != nil {
			return nil, contract.PaginationMeta{}, err
		}
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, contract.PaginationMeta{}, fmt.Errorf("%w: minPrice cannot exceed maxPrice", entity.ErrValidation)
	}
	if filter.Status == "" {
		filter.Status = entity.AdStatusActive
	}
	pagination := normalizePagination(filter.Page, filter.Limit, uc.maxPageSize)
	filter.Page, filter.Limit = pagination.Page, pagination.PageSize

	ads, total, err := uc.adRepo.List(ctx, filter)
	if err != nil {
		return nil, contract.PaginationMeta{}, fmt.Errorf("failed to list ads: %w", err)
	}
	return ads, buildPaginationMeta(pagination, total), nil
}

func (uc *AdUsecase) ownedAd(ctx context.Context, adID, ownerID string) (*entity.Ad, error) {
	ad, err := uc.adRepo.GetByID(ctx, adID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ad: %w", err)
	}
	if ad.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: can only modify your own ads", entity.ErrForbidden)
	}
	return ad, nil
}

// applyAdInput copies the supplied fields onto ad.
func applyAdInput(ad *entity.Ad, in usecasecontract.AdInput) error {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&ad.Title, in.Title)
	set(&ad.Description, in.Description)
	set(&ad.Category, in.Category)
	set(&ad.Subcategory, in.Subcategory)
	set(&ad.Country, in.Country)
	set(&ad.City, in.City)
	set(&ad.Address, in.Address)
	if in.Currency != nil {
		ad.Currency = strings.ToUpper(strings.TrimSpace(*in.Currency))
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return fmt.Errorf("%w: price cannot be negative", entity.ErrValidation)
		}
		ad.Price = *in.Price
	}
	if in.Status != nil {
		status, ok := entity.ParseAdStatus(*in.Status)
		if !ok {
			return fmt.Errorf("%w: unknown status %q", entity.ErrValidation, *in.Status)
		}
		ad.Status = status
	}
	if in.Photos != nil {
		ad.Photos = in.Photos
	}
	if in.Lat != nil || in.Lng != nil {
		if err := ad.SetCoordinates(in.Lat, in.Lng); err != nil {
			return err
		}
	}
	return nil
}
