package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account. The password field holds the
// bcrypt hash and is never serialized.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username  string             `bson:"username" json:"username"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Username string `json:"username" example:"newuser"`
	Password string `json:"password" example:"newpass123"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Username string `json:"username" example:"newuser"`
	Password string `json:"password" example:"newpass123"`
}

// RegisterResponse is returned on successful registration
type RegisterResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Message  string `json:"message" example:"User created successfully"`
}

// TokenPairResponse is returned on successful login
type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// CheckAuthResponse describes the authenticated session
type CheckAuthResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	TokenExpires  int64  `json:"token_expires"`
}

// LogoutRequest carries the refresh token to blacklist
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshRequest carries the refresh token to exchange for a new access token
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// AccessTokenResponse is returned by the refresh endpoint
type AccessTokenResponse struct {
	Access string `json:"access"`
}
