package http_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	handler "github.com/mapmark/pinpoint/internal/handler/http"
	mocks "github.com/mapmark/pinpoint/internal/handler/http/mocks"
	"github.com/mapmark/pinpoint/internal/infrastructure/realtime"
)

func TestGetPresence(t *testing.T) {
	registry := realtime.NewMemoryPresenceRegistry()
	users := mocks.NewMockUserUsecase()
	seen := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	users.MockUser.LastSeen = &seen
	r := gin.New()
	r.GET("/presence/:userId", handler.NewPresenceHandler(registry, users).GetPresence)

	w := doJSON(r, http.MethodGet, "/presence/mock-user-id", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"online":false`)
	assert.Contains(t, w.Body.String(), "2026-01-02T03:04:05Z")

	_ = registry.Register(context.Background(), "mock-user-id", "i:1")
	w = doJSON(r, http.MethodGet, "/presence/mock-user-id", nil)
	assert.Contains(t, w.Body.String(), `"online":true`)

	w = doJSON(r, http.MethodGet, "/presence/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	r := gin.New()
	r.GET("/ok", handler.NewHealthHandler(stubPinger{}).Health)
	r.GET("/down", handler.NewHealthHandler(stubPinger{err: errors.New("no primary")}).Health)

	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/ok", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, doJSON(r, http.MethodGet, "/down", nil).Code)
}
