package http_test

import (
	"encoding/base64"
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

func setupReviewRouter(uc *mocks.MockReviewUsecase) *gin.Engine {
	h := handler.NewReviewHandler(uc)
	r := gin.New()
	r.GET("/reviews/nearby", h.GetNearbyReviews)
	r.GET("/reviews", h.ListByUsername)
	r.GET("/reviews/:id", h.GetReview)
	r.POST("/reviews", asUser("u1"), h.CreateReview)
	r.DELETE("/reviews/:id", asUser("u1"), h.DeleteReview)
	return r
}

func floatPtr(f float64) *float64 { return &f }

func TestGetNearbyReviews_Defaults(t *testing.T) {
	uc := new(mocks.MockReviewUsecase)
	want := entity.RadiusQuery{Lat: 9.03, Lng: 38.74, RadiusMeters: 5000, Limit: 50}
	review := &entity.Review{ID: "r1", Lat: 9.03, Lng: 38.74, Text: "great injera", Rating: 5}
	photo := &entity.Photo{ID: "p1", Filename: "a.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")}
	uc.On("GetReviewsByLocation", mock.Anything, want).
		Return([]*usecasecontract.ReviewWithPhotos{{Review: review, Photos: []*entity.Photo{photo}}}, nil)

	w := doJSON(setupReviewRouter(uc), http.MethodGet, "/reviews/nearby?lat=9.03&lng=38.74", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), base64.StdEncoding.EncodeToString([]byte("jpeg")))
	assert.Contains(t, w.Body.String(), `"distance":0`)
	uc.AssertExpectations(t)
}

func TestGetNearbyReviews_ExplicitZeroRadius(t *testing.T) {
	uc := new(mocks.MockReviewUsecase)
	want := entity.RadiusQuery{Lat: 1, Lng: 2, RadiusMeters: 0, Limit: 10}
	uc.On("GetReviewsByLocation", mock.Anything, want).Return([]*usecasecontract.ReviewWithPhotos{}, nil)

	w := doJSON(setupReviewRouter(uc), http.MethodGet, "/reviews/nearby?lat=1&lng=2&radius=0&limit=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
	uc.AssertExpectations(t)
}

func TestGetNearbyReviews_BadInput(t *testing.T) {
	cases := map[string]string{
		"missing lng":  "/reviews/nearby?lat=1",
		"bad lat":      "/reviews/nearby?lat=north&lng=2",
		"bad radius":   "/reviews/nearby?lat=1&lng=2&radius=far",
		"bad limit":    "/reviews/nearby?lat=1&lng=2&limit=many",
		"missing both": "/reviews/nearby",
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			uc := new(mocks.MockReviewUsecase)
			w := doJSON(setupReviewRouter(uc), http.MethodGet, path, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			uc.AssertNotCalled(t, "GetReviewsByLocation")
		})
	}
}

func TestGetNearbyReviews_OutOfRangeCoordinates(t *testing.T) {
	uc := new(mocks.MockReviewUsecase)
	uc.On("GetReviewsByLocation", mock.Anything, mock.Anything).Return(nil, entity.ErrValidation)

	w := doJSON(setupReviewRouter(uc), http.MethodGet, "/reviews/nearby?lat=91&lng=0", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReview(t *testing.T) {
	uc := new(mocks.MockReviewUsecase)
	uc.On("CreateReview", mock.Anything, mock.MatchedBy(func(in usecasecontract.CreateReviewInput) bool {
		return in.UserID == "u1" && in.Lat == 0 && in.Lng == 38.7 && len(in.Photos) == 1 && string(in.Photos[0].Data) == "png!"
	})).Return(&entity.Review{ID: "r1", UserID: "u1", Rating: 4}, nil)

	req := dto.CreateReviewRequest{
		Lat:    floatPtr(0),
		Lng:    floatPtr(38.7),
		Review: "nice",
		Rating: 4,
		Photos: []dto.PhotoRequest{{Filename: "a.png", ContentType: "image/png", Data: base64.StdEncoding.EncodeToString([]byte("png!"))}},
	}
	w := doJSON(setupReviewRouter(uc), http.MethodPost, "/reviews", req)

	assert.Equal(t, http.StatusCreated, w.Code)
	uc.AssertExpectations(t)
}

func TestCreateReview_Validation(t *testing.T) {
	cases := map[string]dto.CreateReviewRequest{
		"rating too high":  {Lat: floatPtr(1), Lng: floatPtr(1), Review: "x", Rating: 6},
		"missing lat":      {Lng: floatPtr(1), Review: "x", Rating: 3},
		"lng out of range": {Lat: floatPtr(1), Lng: floatPtr(181), Review: "x", Rating: 3},
		"photo not base64": {Lat: floatPtr(1), Lng: floatPtr(1), Review: "x", Rating: 3,
			Photos: []dto.PhotoRequest{{Filename: "a", ContentType: "image/png", Data: "***"}}},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			uc := new(mocks.MockReviewUsecase)
			w := doJSON(setupReviewRouter(uc), http.MethodPost, "/reviews", req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			uc.AssertNotCalled(t, "CreateReview")
		})
	}
}

func TestDeleteReview_NotAuthor(t *testing.T) {
	uc := new(mocks.MockReviewUsecase)
	uc.On("DeleteReview", mock.Anything, "r1", "u1").Return(entity.ErrForbidden)

	w := doJSON(setupReviewRouter(uc), http.MethodDelete, "/reviews/r1", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListByUsername(t *testing.T) {
	uc := new(mocks.MockReviewUsecase)
	uc.On("GetReviewsByUsername", mock.Anything, "alice", 1, 0).
		Return([]*entity.Review{{ID: "r1", Username: "alice"}}, contract.PaginationMeta{CurrentPage: 1, TotalItems: 1}, nil)
	r := setupReviewRouter(uc)

	w := doJSON(r, http.MethodGet, "/reviews?username=alice", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"r1"`)

	w = doJSON(r, http.MethodGet, "/reviews", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReview_NotFound(t *testing.T) {
	uc := new(mocks.MockReviewUsecase)
	uc.On("GetReview", mock.Anything, "nope").Return(nil, entity.ErrNotFound)

	w := doJSON(setupReviewRouter(uc), http.MethodGet, "/reviews/nope", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
