package usecasecontract

import (
	"context"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
)

type PhotoUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type CreateReviewInput struct {
	UserID string
	Lat    float64
	Lng    float64
	Text   string
	Rating int
	Photos []PhotoUpload
}

// ReviewWithPhotos is a review with its photo blobs resolved.
type ReviewWithPhotos struct {
	Review *entity.Review
	Photos []*entity.Photo
}

type IReviewUseCase interface {
	CreateReview(ctx context.Context, in CreateReviewInput) (*entity.Review, error)
	GetReview(ctx context.Context, reviewID string) (*ReviewWithPhotos, error)
	GetReviewsByLocation(ctx context.Context, q entity.RadiusQuery) ([]*ReviewWithPhotos, error)
	GetReviewsByUsername(ctx context.Context, username string, page, limit int) ([]*entity.Review, contract.PaginationMeta, error)
	DeleteReview(ctx context.Context, reviewID, userID string) error
}
