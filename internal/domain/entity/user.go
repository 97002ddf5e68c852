package entity

import (
	"time"
)

// User represents a registered user in the system
type User struct {
	ID           string     `bson:"_id,omitempty" json:"id"`
	Username     string     `bson:"username" json:"username"`
	Email        string     `bson:"email" json:"email"`
	PasswordHash string     `bson:"password_hash" json:"-"`
	Role         UserRole   `bson:"role" json:"role"`
	Country      string     `bson:"country" json:"country"`
	City         string     `bson:"city,omitempty" json:"city,omitempty"`
	Bio          string     `bson:"bio,omitempty" json:"bio,omitempty"`
	Followers    []string   `bson:"followers" json:"followers"`
	Following    []string   `bson:"following" json:"following"`
	IsActive     bool       `bson:"is_active" json:"is_active"`
	IsOnline     bool       `bson:"is_online" json:"is_online"`
	LastSeen     *time.Time `bson:"last_seen,omitempty" json:"last_seen,omitempty"`
	LastLogin    *time.Time `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updated_at"`
	FirstName    *string    `bson:"firstname,omitempty" json:"firstname,omitempty"`
	LastName     *string    `bson:"lastname,omitempty" json:"lastname,omitempty"`
	AvatarURL    *string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
}

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleUser   UserRole = "user"
	UserRoleSeller UserRole = "seller"
)

func DefaultRole() UserRole {
	return UserRoleUser
}

// ParseUserRole maps free text onto a known role.
func ParseUserRole(s string) (UserRole, bool) {
	switch UserRole(s) {
	case "":
		return DefaultRole(), true
	case UserRoleUser, UserRoleSeller:
		return UserRole(s), true
	}
	return "", false
}

// PublicProfile is the subset of a user that other users may see.
type PublicProfile struct {
	ID        string     `bson:"_id" json:"id"`
	Username  string     `bson:"username" json:"username"`
	FirstName *string    `bson:"firstname,omitempty" json:"firstname,omitempty"`
	LastName  *string    `bson:"lastname,omitempty" json:"lastname,omitempty"`
	AvatarURL *string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	City      string     `bson:"city,omitempty" json:"city,omitempty"`
	Country   string     `bson:"country" json:"country"`
	IsOnline  bool       `bson:"is_online" json:"is_online"`
	LastSeen  *time.Time `bson:"last_seen,omitempty" json:"last_seen,omitempty"`
}

func (u *User) Profile() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		AvatarURL: u.AvatarURL,
		City:      u.City,
		Country:   u.Country,
		IsOnline:  u.IsOnline,
		LastSeen:  u.LastSeen,
	}
}
