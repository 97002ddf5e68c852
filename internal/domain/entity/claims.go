package entity

import "github.com/golang-jwt/jwt/v5"

// Claims is what an access token proves about its bearer.
type Claims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
