package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mapmark/pinpoint/internal/domain/entity"
	"github.com/mapmark/pinpoint/internal/handler/http/dto"
	"github.com/mapmark/pinpoint/internal/usecase"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

type AdHandler struct {
	adUsecase usecasecontract.IAdUseCase
}

// NewAdHandler creates a new AdHandler.
func NewAdHandler(adUsecase usecasecontract.IAdUseCase) *AdHandler {
	return &AdHandler{adUsecase: adUsecase}
}

// CreateAd handles POST /ads.
func (h *AdHandler) CreateAd(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.AdRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	ad, err := h.adUsecase.CreateAd(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		HandleError(c, err, "Failed to create ad")
		return
	}
	SuccessHandler(c, http.StatusCreated, ad)
}

// GetAd handles GET /ads/:id and counts the view.
func (h *AdHandler) GetAd(c *gin.Context) {
	ad, err := h.adUsecase.GetAd(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "Failed to fetch ad")
		return
	}
	SuccessHandler(c, http.StatusOK, ad)
}

// UpdateAd handles PUT /ads/:id.
func (h *AdHandler) UpdateAd(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.AdRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	ad, err := h.adUsecase.UpdateAd(c.Request.Context(), c.Param("id"), userID, req.ToInput())
	if err != nil {
		HandleError(c, err, "Failed to update ad")
		return
	}
	SuccessHandler(c, http.StatusOK, ad)
}

// DeleteAd handles DELETE /ads/:id.
func (h *AdHandler) DeleteAd(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.adUsecase.DeleteAd(c.Request.Context(), c.Param("id"), userID); err != nil {
		HandleError(c, err, "Failed to delete ad")
		return
	}
	MessageHandler(c, http.StatusOK, "Ad deleted")
}

// ListAds filters the listing. A radius search is applied when both lat and
// lng are given.
func (h *AdHandler) ListAds(c *gin.Context) {
	filter, ok := adFilterFromQuery(c)
	if !ok {
		return
	}
	ads, meta, err := h.adUsecase.ListAds(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err, "Failed to list ads")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.PageResponse{Items: ads, Pagination: meta})
}

func adFilterFromQuery(c *gin.Context) (entity.AdFilter, bool) {
	filter := entity.AdFilter{
		Category:    strings.TrimSpace(c.Query("category")),
		Subcategory: strings.TrimSpace(c.Query("subcategory")),
		Country:     strings.TrimSpace(c.Query("country")),
		City:        strings.TrimSpace(c.Query("city")),
		Query:       strings.TrimSpace(c.Query("q")),
	}
	if raw := c.Query("status"); raw != "" {
		status, valid := entity.ParseAdStatus(raw)
		if !valid {
			ErrorHandler(c, http.StatusBadRequest, "invalid status")
			return filter, false
		}
		filter.Status = status
	}

	var ok bool
	if filter.MinPrice, ok = queryFloat(c, "minPrice"); !ok {
		return filter, false
	}
	if filter.MaxPrice, ok = queryFloat(c, "maxPrice"); !ok {
		return filter, false
	}
	if filter.Page, ok = queryInt(c, "page", 1); !ok {
		return filter, false
	}
	if filter.Limit, ok = queryInt(c, "limit", 0); !ok {
		return filter, false
	}

	lat, ok := queryFloat(c, "lat")
	if !ok {
		return filter, false
	}
	lng, ok := queryFloat(c, "lng")
	if !ok {
		return filter, false
	}
	radius, ok := queryFloat(c, "radius")
	if !ok {
		return filter, false
	}
	if (lat == nil) != (lng == nil) {
		ErrorHandler(c, http.StatusBadRequest, "lat and lng must be given together")
		return filter, false
	}
	if lat != nil {
		near := &entity.RadiusQuery{Lat: *lat, Lng: *lng, RadiusMeters: usecase.DefaultNearbyRadiusMeters}
		if radius != nil {
			near.RadiusMeters = *radius
		}
		filter.Near = near
	}
	return filter, true
}
