package dto

import (
	"time"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
)

// Envelope wraps every JSON response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// UserResponse is the DTO for a user.
type UserResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email,omitempty"`
	Role      string     `json:"role"`
	FirstName *string    `json:"first_name"`
	LastName  *string    `json:"last_name"`
	AvatarURL *string    `json:"avatar_url"`
	Bio       string     `json:"bio,omitempty"`
	Country   string     `json:"country"`
	City      string     `json:"city,omitempty"`
	Followers int        `json:"followers"`
	Following int        `json:"following"`
	IsOnline  bool       `json:"is_online"`
	LastSeen  *time.Time `json:"last_seen,omitempty"`
	CreatedAt string     `json:"created_at"`
}

// LoginResponse is the DTO for a successful login.
type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
}

// converts an entity.User to a UserResponse DTO.
func ToUserResponse(user entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		AvatarURL: user.AvatarURL,
		Bio:       user.Bio,
		Country:   user.Country,
		City:      user.City,
		Followers: len(user.Followers),
		Following: len(user.Following),
		IsOnline:  user.IsOnline,
		LastSeen:  user.LastSeen,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

// PageResponse carries one page of items.
type PageResponse struct {
	Items      interface{}             `json:"items"`
	Pagination contract.PaginationMeta `json:"pagination"`
}

type PresenceResponse struct {
	UserID   string     `json:"userId"`
	Online   bool       `json:"online"`
	LastSeen *time.Time `json:"lastSeen,omitempty"`
}
