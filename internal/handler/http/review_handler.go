package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mapmark/pinpoint/internal/domain/entity"
	"github.com/mapmark/pinpoint/internal/handler/http/dto"
	"github.com/mapmark/pinpoint/internal/usecase"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

type ReviewHandler struct {
	reviewUsecase usecasecontract.IReviewUseCase
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewUsecase usecasecontract.IReviewUseCase) *ReviewHandler {
	return &ReviewHandler{reviewUsecase: reviewUsecase}
}

// CreateReview stores a geotagged review with its inline photos.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateReviewRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	input, err := req.ToInput(userID)
	if err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return
	}

	review, err := h.reviewUsecase.CreateReview(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err, "Failed to create review")
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.ToReviewResponse(review, nil))
}

// GetReview handles GET /reviews/:id.
func (h *ReviewHandler) GetReview(c *gin.Context) {
	result, err := h.reviewUsecase.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "Failed to fetch review")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToReviewResponse(result.Review, result.Photos))
}

// GetNearbyReviews handles GET /reviews/nearby?lat=&lng=&radius=&limit=.
// radius defaults to 5km only when absent; radius=0 matches the exact point.
func (h *ReviewHandler) GetNearbyReviews(c *gin.Context) {
	lat, ok := queryFloat(c, "lat")
	if !ok {
		return
	}
	lng, ok := queryFloat(c, "lng")
	if !ok {
		return
	}
	if lat == nil || lng == nil {
		ErrorHandler(c, http.StatusBadRequest, "lat and lng are required")
		return
	}
	radius, ok := queryFloat(c, "radius")
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", usecase.DefaultNearbyLimit)
	if !ok {
		return
	}

	q := entity.RadiusQuery{Lat: *lat, Lng: *lng, RadiusMeters: usecase.DefaultNearbyRadiusMeters, Limit: limit}
	if radius != nil {
		q.RadiusMeters = *radius
	}

	results, err := h.reviewUsecase.GetReviewsByLocation(c.Request.Context(), q)
	if err != nil {
		HandleError(c, err, "Failed to search reviews")
		return
	}
	response := make([]dto.ReviewResponse, 0, len(results))
	for _, r := range results {
		item := dto.ToReviewResponse(r.Review, r.Photos)
		distance := q.DistanceTo(r.Review.Lat, r.Review.Lng)
		item.Distance = &distance
		response = append(response, item)
	}
	SuccessHandler(c, http.StatusOK, response)
}

// ListByUsername handles GET /reviews?username=&page=&limit=.
func (h *ReviewHandler) ListByUsername(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		ErrorHandler(c, http.StatusBadRequest, "username is required")
		return
	}
	page, ok := queryInt(c, "page", 1)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}

	reviews, meta, err := h.reviewUsecase.GetReviewsByUsername(c.Request.Context(), username, page, limit)
	if err != nil {
		HandleError(c, err, "Failed to list reviews")
		return
	}
	items := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, dto.ToReviewResponse(r, nil))
	}
	SuccessHandler(c, http.StatusOK, dto.PageResponse{Items: items, Pagination: meta})
}

// DeleteReview handles DELETE /reviews/:id.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.reviewUsecase.DeleteReview(c.Request.Context(), c.Param("id"), userID); err != nil {
		HandleError(c, err, "Failed to delete review")
		return
	}
	MessageHandler(c, http.StatusOK, "Review deleted")
}
