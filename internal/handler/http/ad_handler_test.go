package http_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
	handler "github.com/mapmark/pinpoint/internal/handler/http"
	dto "github.com/mapmark/pinpoint/internal/handler/http/dto"
	mocks "github.com/mapmark/pinpoint/internal/handler/http/mocks"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

func setupAdRouter(uc *mocks.MockAdUsecase) *gin.Engine {
	h := handler.NewAdHandler(uc)
	r := gin.New()
	r.GET("/ads", h.ListAds)
	r.GET("/ads/:id", h.GetAd)
	r.POST("/ads", asUser("seller1"), h.CreateAd)
	r.PUT("/ads/:id", asUser("seller1"), h.UpdateAd)
	r.DELETE("/ads/:id", asUser("seller1"), h.DeleteAd)
	return r
}

func TestListAds_Filters(t *testing.T) {
	uc := new(mocks.MockAdUsecase)
	want := entity.AdFilter{
		Category: "cars",
		City:     "Addis Ababa",
		Status:   entity.AdStatusPending,
		MinPrice: floatPtr(10),
		Page:     2,
		Near:     &entity.RadiusQuery{Lat: 9, Lng: 38, RadiusMeters: 1500},
	}
	uc.On("ListAds", mock.Anything, want).Return([]*entity.Ad{{ID: "a1"}}, contract.PaginationMeta{CurrentPage: 2}, nil)

	w := doJSON(setupAdRouter(uc), http.MethodGet, "/ads?category=cars&city=Addis%20Ababa&status=pending&minPrice=10&page=2&lat=9&lng=38&radius=1500", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"a1"`)
	uc.AssertExpectations(t)
}

func TestListAds_NearDefaultsRadius(t *testing.T) {
	uc := new(mocks.MockAdUsecase)
	uc.On("ListAds", mock.Anything, mock.MatchedBy(func(f entity.AdFilter) bool {
		return f.Near != nil && f.Near.RadiusMeters == 5000
	})).Return([]*entity.Ad{}, contract.PaginationMeta{}, nil)

	w := doJSON(setupAdRouter(uc), http.MethodGet, "/ads?lat=9&lng=38", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

func TestListAds_BadQuery(t *testing.T) {
	for _, path := range []string{"/ads?status=archived", "/ads?lat=9", "/ads?minPrice=cheap"} {
		uc := new(mocks.MockAdUsecase)
		w := doJSON(setupAdRouter(uc), http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		uc.AssertNotCalled(t, "ListAds")
	}
}

func TestCreateAd(t *testing.T) {
	uc := new(mocks.MockAdUsecase)
	title := "Bike"
	uc.On("CreateAd", mock.Anything, "seller1", mock.MatchedBy(func(in usecasecontract.AdInput) bool {
		return *in.Title == title && *in.Lat == 9 && *in.Lng == 38
	})).Return(&entity.Ad{ID: "a1", Title: title}, nil)

	req := dto.AdRequest{Title: &title, Price: floatPtr(100), Location: &dto.LocationRequest{Lat: floatPtr(9), Lng: floatPtr(38)}}
	w := doJSON(setupAdRouter(uc), http.MethodPost, "/ads", req)

	assert.Equal(t, http.StatusCreated, w.Code)
	uc.AssertExpectations(t)
}

func TestCreateAd_NegativePrice(t *testing.T) {
	uc := new(mocks.MockAdUsecase)
	w := doJSON(setupAdRouter(uc), http.MethodPost, "/ads", dto.AdRequest{Price: floatPtr(-1)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "CreateAd")
}

func TestUpdateAndDeleteAd_NotOwner(t *testing.T) {
	uc := new(mocks.MockAdUsecase)
	uc.On("UpdateAd", mock.Anything, "a1", "seller1", mock.Anything).Return(nil, entity.ErrForbidden)
	uc.On("DeleteAd", mock.Anything, "a1", "seller1").Return(entity.ErrForbidden)
	r := setupAdRouter(uc)
	price := 5.0

	w := doJSON(r, http.MethodPut, "/ads/a1", dto.AdRequest{Price: &price})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodDelete, "/ads/a1", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetAd(t *testing.T) {
	uc := new(mocks.MockAdUsecase)
	uc.On("GetAd", mock.Anything, "a1").Return(&entity.Ad{ID: "a1", Views: 7}, nil)
	uc.On("GetAd", mock.Anything, "gone").Return(nil, entity.ErrNotFound)
	r := setupAdRouter(uc)

	w := doJSON(r, http.MethodGet, "/ads/a1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/ads/gone", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
