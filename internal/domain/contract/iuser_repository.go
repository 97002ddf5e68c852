package contract

import (
	"context"
	"time"

	"github.com/mapmark/pinpoint/internal/domain/entity"
)

type IUserRepository interface {
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetProfilesByIDs returns the public profiles of the given users, skipping unknown ids.
	GetProfilesByIDs(ctx context.Context, ids []string) ([]entity.PublicProfile, error)
	// UpdateProfile applies a partial update and returns the updated user.
	UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) (*entity.User, error)
	SetLastLogin(ctx context.Context, id string, at time.Time) error
	SetOnlineStatus(ctx context.Context, id string, online bool, lastSeen time.Time) error
	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error
	// SearchUsers matches query case-insensitively against username, email and names.
	SearchUsers(ctx context.Context, query, excludeID string, limit int) ([]entity.PublicProfile, error)
}
