package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mapmark/pinpoint/internal/handler/http/dto"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

// UserHandlerInterface defines the methods for user handler to allow interface-based dependency injection (for testing/mocking)
type UserHandlerInterface interface {
	CreateUser(*gin.Context)
	Login(*gin.Context)
	GetUser(*gin.Context)
	GetCurrentUser(*gin.Context)
	UpdateUser(*gin.Context)
	DeleteCurrentUser(*gin.Context)
	Follow(*gin.Context)
	Unfollow(*gin.Context)
}

// Ensure UserHandler implements UserHandlerInterface
var _ UserHandlerInterface = (*UserHandler)(nil)

type UserHandler struct {
	userUsecase usecasecontract.IUserUseCase
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userUsecase usecasecontract.IUserUseCase) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
	}
}

// CreateUser handles user registration (signup)
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	user, err := h.userUsecase.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		HandleError(c, err, "Failed to register user")
		return
	}

	SuccessHandler(c, http.StatusCreated, dto.ToUserResponse(*user))
}

// Login handles user authentication
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	user, accessToken, err := h.userUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		HandleError(c, err, "Failed to login")
		return
	}

	response := dto.LoginResponse{
		User:        dto.ToUserResponse(*user),
		AccessToken: accessToken,
	}

	SuccessHandler(c, http.StatusOK, response)
}

// GetUser handles retrieving a public profile by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userUsecase.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "Failed to fetch user")
		return
	}
	response := dto.ToUserResponse(*user)
	response.Email = ""
	SuccessHandler(c, http.StatusOK, response)
}

// GetCurrentUser handles retrieving the current authenticated user
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err, "Failed to fetch user")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
}

// UpdateUser handles updating user profile
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	updatedUser, err := h.userUsecase.UpdateProfile(c.Request.Context(), userID, req.Updates())
	if err != nil {
		HandleError(c, err, "Failed to update profile")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*updatedUser))
}

// DeleteCurrentUser deactivates the caller's account.
func (h *UserHandler) DeleteCurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.userUsecase.Deactivate(c.Request.Context(), userID); err != nil {
		HandleError(c, err, "Failed to deactivate account")
		return
	}
	MessageHandler(c, http.StatusOK, "Account deactivated")
}

// Follow handles POST /users/:id/follow.
func (h *UserHandler) Follow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.userUsecase.Follow(c.Request.Context(), userID, c.Param("id")); err != nil {
		HandleError(c, err, "Failed to follow user")
		return
	}
	MessageHandler(c, http.StatusOK, "Followed")
}

// Unfollow handles DELETE /users/:id/follow.
func (h *UserHandler) Unfollow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.userUsecase.Unfollow(c.Request.Context(), userID, c.Param("id")); err != nil {
		HandleError(c, err, "Failed to unfollow user")
		return
	}
	MessageHandler(c, http.StatusOK, "Unfollowed")
}
