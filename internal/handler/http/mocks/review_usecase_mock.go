package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

type MockReviewUsecase struct {
	mock.Mock
}

var _ usecasecontract.IReviewUseCase = (*MockReviewUsecase)(nil)

func (m *MockReviewUsecase) CreateReview(ctx context.Context, in usecasecontract.CreateReviewInput) (*entity.Review, error) {
	args := m.Called(ctx, in)
	review, _ := args.Get(0).(*entity.Review)
	return review, args.Error(1)
}

func (m *MockReviewUsecase) GetReview(ctx context.Context, reviewID string) (*usecasecontract.ReviewWithPhotos, error) {
	args := m.Called(ctx, reviewID)
	result, _ := args.Get(0).(*usecasecontract.ReviewWithPhotos)
	return result, args.Error(1)
}

func (m *MockReviewUsecase) GetReviewsByLocation(ctx context.Context, q entity.RadiusQuery) ([]*usecasecontract.ReviewWithPhotos, error) {
	args := m.Called(ctx, q)
	results, _ := args.Get(0).([]*usecasecontract.ReviewWithPhotos)
	return results, args.Error(1)
}

func (m *MockReviewUsecase) GetReviewsByUsername(ctx context.Context, username string, page, limit int) ([]*entity.Review, contract.PaginationMeta, error) {
	args := m.Called(ctx, username, page, limit)
	reviews, _ := args.Get(0).([]*entity.Review)
	return reviews, args.Get(1).(contract.PaginationMeta), args.Error(2)
}

func (m *MockReviewUsecase) DeleteReview(ctx context.Context, reviewID, userID string) error {
	return m.Called(ctx, reviewID, userID).Error(0)
}
