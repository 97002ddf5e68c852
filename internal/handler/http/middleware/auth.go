package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mapmark/pinpoint/internal/domain/entity"
	"github.com/mapmark/pinpoint/internal/handler/http/dto"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// AuthMiddleWare resolves the bearer token to an active user and stores the
// user's ID and role on the context.
func AuthMiddleWare(userUsecase usecasecontract.IUserUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Envelope{Error: "authorization token required"})
			return
		}

		user, err := userUsecase.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, entity.ErrUnauthorized):
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Envelope{Error: "invalid or expired token"})
			return
		case errors.Is(err, entity.ErrUnavailable):
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.Envelope{Error: "authentication is temporarily unavailable"})
			return
		default:
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Envelope{Error: "failed to authenticate"})
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, string(user.Role))
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
