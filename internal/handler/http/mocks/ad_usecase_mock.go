package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

type MockAdUsecase struct {
	mock.Mock
}

var _ usecasecontract.IAdUseCase = (*MockAdUsecase)(nil)

func (m *MockAdUsecase) CreateAd(ctx context.Context, ownerID string, in usecasecontract.AdInput) (*entity.Ad, error) {
	args := m.Called(ctx, ownerID, in)
	ad, _ := args.Get(0).(*entity.Ad)
	return ad, args.Error(1)
}

func (m *MockAdUsecase) GetAd(ctx context.Context, adID string) (*entity.Ad, error) {
	args := m.Called(ctx, adID)
	ad, _ := args.Get(0).(*entity.Ad)
	return ad, args.Error(1)
}

func (m *MockAdUsecase) UpdateAd(ctx context.Context, adID, ownerID string, in usecasecontract.AdInput) (*entity.Ad, error) {
	args := m.Called(ctx, adID, ownerID, in)
	ad, _ := args.Get(0).(*entity.Ad)
	return ad, args.Error(1)
}

func (m *MockAdUsecase) DeleteAd(ctx context.Context, adID, ownerID string) error {
	return m.Called(ctx, adID, ownerID).Error(0)
}

func (m *MockAdUsecase) ListAds(ctx context.Context, filter entity.AdFilter) ([]*entity.Ad, contract.PaginationMeta, error) {
	args := m.Called(ctx, filter)
	ads, _ := args.Get(0).([]*entity.Ad)
	return ads, args.Get(1).(contract.PaginationMeta), args.Error(2)
}
