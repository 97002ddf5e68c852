package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/handler/http/dto"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

type PresenceHandler struct {
	registry    contract.IPresenceRegistry
	userUsecase usecasecontract.IUserUseCase
}

// NewPresenceHandler creates a new PresenceHandler.
func NewPresenceHandler(registry contract.IPresenceRegistry, userUsecase usecasecontract.IUserUseCase) *PresenceHandler {
	return &PresenceHandler{registry: registry, userUsecase: userUsecase}
}

// GetPresence reports whether a user has a live realtime connection and
// when they were last seen.
func (h *PresenceHandler) GetPresence(c *gin.Context) {
	userID := c.Param("userId")
	user, err := h.userUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err, "Failed to fetch presence")
		return
	}
	_, online, err := h.registry.Lookup(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err, "Failed to fetch presence")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.PresenceResponse{UserID: user.ID, Online: online, LastSeen: user.LastSeen})
}
