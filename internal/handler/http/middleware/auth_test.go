package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mapmark/pinpoint/internal/domain/entity"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

type tokenUsecase struct {
	usecasecontract.IUserUseCase
}

func (tokenUsecase) Authenticate(_ context.Context, token string) (*entity.User, error) {
	switch token {
	case "good":
		return &entity.User{ID: "u1", Role: entity.UserRoleSeller}, nil
	case "store-down":
		return nil, fmt.Errorf("%w: users collection unreachable", entity.ErrUnavailable)
	case "store-broken":
		return nil, errors.New("decode failure")
	}
	return nil, fmt.Errorf("%w: invalid access token", entity.ErrUnauthorized)
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleWare(tokenUsecase{}), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserID)+"/"+c.GetString(ContextUserRole))
	})
	return r
}

func TestAuthMiddleWare(t *testing.T) {
	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid token", "Bearer good", http.StatusOK, "u1/seller"},
		{"lowercase scheme", "bearer good", http.StatusOK, "u1/seller"},
		{"missing header", "", http.StatusUnauthorized, "authorization token required"},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, "authorization token required"},
		{"rejected token", "Bearer bad", http.StatusUnauthorized, "invalid or expired token"},
		{"store unavailable", "Bearer store-down", http.StatusServiceUnavailable, "temporarily unavailable"},
		{"store failure", "Bearer store-broken", http.StatusInternalServerError, "failed to authenticate"},
	}
	r := newAuthRouter()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.body)
		})
	}
}

func TestRateLimiter_RejectsBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimiter(NewLimiter(1)))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, http.StatusNoContent, codes[0])
	assert.Contains(t, codes, http.StatusTooManyRequests)
}
