package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

const (
	DefaultNearbyRadiusMeters = 5000
	DefaultNearbyLimit        = 50
	MaxNearbyLimit            = 100
	maxReviewPhotos           = 5
	maxPhotoBytes             = 5 << 20
	maxReviewLength           = 2000
)

// ReviewUsecase handles geotagged reviews and their photos.
type ReviewUsecase struct {
	reviewRepo    contract.IReviewRepository
	userRepo      contract.IUserRepository
	photoStore    contract.IPhotoStore
	cache         contract.INearbyReviewCache
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
	maxPageSize   int
	now           func() time.Time
}

var _ usecasecontract.IReviewUseCase = (*ReviewUsecase)(nil)

// NewReviewUsecase creates a new ReviewUsecase.
func NewReviewUsecase(
	reviewRepo contract.IReviewRepository,
	userRepo contract.IUserRepository,
	photoStore contract.IPhotoStore,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
) *ReviewUsecase {
	return &ReviewUsecase{
		reviewRepo:    reviewRepo,
		userRepo:      userRepo,
		photoStore:    photoStore,
		uuidGenerator: uuidGenerator,
		logger:        logger,
		maxPageSize:   cfg.GetMaxPageSize(),
		now:           time.Now,
	}
}

// SetNearbyCache enables caching of radius searches.
func (uc *ReviewUsecase) SetNearbyCache(cache contract.INearbyReviewCache) {
	uc.cache = cache
}

// CreateReview stores the photos first, then the review pointing at them.
// If the review cannot be stored the uploaded photos are removed again.
func (uc *ReviewUsecase) CreateReview(ctx context.Context, in usecasecontract.CreateReviewInput) (*entity.Review, error) {
	text := strings.TrimSpace(in.Text)
	if len([]rune(text)) > maxReviewLength {
		return nil, fmt.Errorf("%w: review cannot exceed %d characters", entity.ErrValidation, maxReviewLength)
	}
	if len(in.Photos) > maxReviewPhotos {
		return nil, fmt.Errorf("%w: at most %d photos per review", entity.ErrValidation, maxReviewPhotos)
	}
	for _, p := range in.Photos {
		if len(p.Data) == 0 || len(p.Data) > maxPhotoBytes {
			return nil, fmt.Errorf("%w: photo %q must be between 1 byte and %d bytes", entity.ErrValidation, p.Filename, maxPhotoBytes)
		}
	}

	user, err := uc.userRepo.GetUserByID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find author: %w", err)
	}

	review, err := entity.NewReview(uc.uuidGenerator.NewUUID(), user.ID, user.Username, in.Lat, in.Lng, text, in.Rating, nil, uc.now())
	if err != nil {
		return nil, err
	}

	for _, p := range in.Photos {
		photo := &entity.Photo{
			ID:          uc.uuidGenerator.NewUUID(),
			Filename:    p.Filename,
			ContentType: p.ContentType,
			Data:        p.Data,
		}
		if err := uc.photoStore.Put(ctx, photo); err != nil {
			uc.discardPhotos(ctx, review.PhotoIDs)
			return nil, fmt.Errorf("failed to store photo: %w", err)
		}
		review.PhotoIDs = append(review.PhotoIDs, photo.ID)
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		uc.discardPhotos(ctx, review.PhotoIDs)
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	uc.invalidateNearby(ctx)
	return review, nil
}

// GetReview returns a review with its photos resolved.
func (uc *ReviewUsecase) GetReview(ctx context.Context, reviewID string) (*usecasecontract.ReviewWithPhotos, error) {
	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	photos, err := uc.resolvePhotos(ctx, review)
	if err != nil {
		return nil, err
	}
	return &usecasecontract.ReviewWithPhotos{Review: review, Photos: photos}, nil
}

// GetReviewsByLocation returns reviews within the radius of a point. Results
// are not ordered by distance.
func (uc *ReviewUsecase) GetReviewsByLocation(ctx context.Context, q entity.RadiusQuery) ([]*usecasecontract.ReviewWithPhotos, error) {
	if q.Limit < 1 {
		q.Limit = DefaultNearbyLimit
	}
	if q.Limit > MaxNearbyLimit {
		q.Limit = MaxNearbyLimit
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	reviews, err := uc.nearbyReviews(ctx, q)
	if err != nil {
		return nil, err
	}

	result := make([]*usecasecontract.ReviewWithPhotos, 0, len(reviews))
	for _, r := range reviews {
		photos, err := uc.resolvePhotos(ctx, r)
		if err != nil {
			return nil, err
		}
		result = append(result, &usecasecontract.ReviewWithPhotos{Review: r, Photos: photos})
	}
	return result, nil
}

// GetReviewsByUsername returns a page of one user's reviews, latest first.
func (uc *ReviewUsecase) GetReviewsByUsername(ctx context.Context, username string, page, limit int) ([]*entity.Review, contract.PaginationMeta, error) {
	pagination := normalizePagination(page, limit, uc.maxPageSize)
	reviews, total, err := uc.reviewRepo.ListByUsername(ctx, strings.TrimSpace(username), pagination)
	if err != nil {
		return nil, contract.PaginationMeta{}, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, buildPaginationMeta(pagination, total), nil
}

// DeleteReview removes the photo blobs before the review itself, so a
// failure part way leaves a review that can be deleted again rather than
// blobs nobody references.
func (uc *ReviewUsecase) DeleteReview(ctx context.Context, reviewID, userID string) error {
	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("failed to get review: %w", err)
	}
	if review.UserID != userID {
		return fmt.Errorf("%w: can only delete your own reviews", entity.ErrForbidden)
	}
	for _, id := range review.PhotoIDs {
		if err := uc.photoStore.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete photo %s: %w", id, err)
		}
	}
	if err := uc.reviewRepo.Delete(ctx, review.ID); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	uc.invalidateNearby(ctx)
	return nil
}

func (uc *ReviewUsecase) nearbyReviews(ctx context.Context, q entity.RadiusQuery) ([]*entity.Review, error) {
	if uc.cache != nil {
		cached, ok, err := uc.cache.GetNearby(ctx, q)
		if err != nil {
			uc.logger.Warnf("nearby cache read failed: %v", err)
		} else if ok {
			reviews := make([]*entity.Review, len(cached.Reviews))
			for i := range cached.Reviews {
				reviews[i] = &cached.Reviews[i]
			}
			return reviews, nil
		}
	}

	reviews, err := uc.reviewRepo.FindWithinRadius(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to search reviews: %w", err)
	}
	if uc.cache != nil {
		if err := uc.cache.SetNearby(ctx, q, reviews); err != nil {
			uc.logger.Warnf("nearby cache write failed: %v", err)
		}
	}
	return reviews, nil
}

// resolvePhotos loads the blobs of a review. Blobs that no longer exist are skipped.
func (uc *ReviewUsecase) resolvePhotos(ctx context.Context, review *entity.Review) ([]*entity.Photo, error) {
	photos := make([]*entity.Photo, 0, len(review.PhotoIDs))
	for _, id := range review.PhotoIDs {
		photo, err := uc.photoStore.Get(ctx, id)
		if err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				uc.logger.Warnf("review %s references missing photo %s", review.ID, id)
				continue
			}
			return nil, fmt.Errorf("failed to load photo %s: %w", id, err)
		}
		photos = append(photos, photo)
	}
	return photos, nil
}

func (uc *ReviewUsecase) discardPhotos(ctx context.Context, ids []string) {
	for _, id := range ids {
		if err := uc.photoStore.Delete(ctx, id); err != nil {
			uc.logger.Errorf("failed to discard photo %s: %v", id, err)
		}
	}
}

func (uc *ReviewUsecase) invalidateNearby(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateNearby(ctx); err != nil {
		uc.logger.Warnf("nearby cache invalidation failed: %v", err)
	}
}
