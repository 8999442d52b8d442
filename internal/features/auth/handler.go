// ================== internal/features/auth/handler.go ==================
package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/xyz-asif/gotasks/internal/pkg/logger"
	"github.com/xyz-asif/gotasks/internal/pkg/response"
	"github.com/xyz-asif/gotasks/internal/pkg/token"
)

// UserStore is the subset of the user repository the handler needs
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

// BlacklistStore records revoked refresh tokens
type BlacklistStore interface {
	Blacklist(ctx context.Context, jti, userID string, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

type Handler struct {
	users     UserStore
	blacklist BlacklistStore
	tokens    *token.Config
	log       *logger.Logger
}

func NewHandler(users UserStore, blacklist BlacklistStore, tokens *token.Config, log *logger.Logger) *Handler {
	return &Handler{
		users:     users,
		blacklist: blacklist,
		tokens:    tokens,
		log:       log,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Create a user account with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} response.FieldErrors
// @Router /register/ [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if errs := ValidateRegister(&req); errs != nil {
		h.log.Warn("REGISTRATION_FAILED: Errors=%v", errs)
		response.ValidationFailed(c, errs)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.InternalServerError(c, "Failed to process password")
		return
	}

	user := &User{
		Username: req.Username,
		Password: string(hashedPassword),
	}

	if err := h.users.CreateUser(c.Request.Context(), user); err != nil {
		if isDuplicate(err) {
			errs := response.FieldErrors{"username": {"A user with that username already exists."}}
			h.log.Warn("REGISTRATION_FAILED: Errors=%v", errs)
			response.ValidationFailed(c, errs)
			return
		}
		response.InternalServerError(c, "Failed to create user")
		return
	}

	h.log.Info("USER_REGISTERED: ID=%s | Username=%s", user.ID.Hex(), user.Username)

	c.JSON(http.StatusCreated, RegisterResponse{
		ID:       user.ID.Hex(),
		Username: user.Username,
		Message:  "User created successfully",
	})
}

// Login godoc
// @Summary Obtain a token pair
// @Description Authenticate with username and password and receive access/refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} TokenPairResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /login/ [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Malformed bodies and missing fields get the same uniform answer
		response.Unauthorized(c, "Invalid credentials")
		return
	}

	if req.Username == "" || req.Password == "" {
		response.Unauthorized(c, "Invalid credentials")
		return
	}

	user, err := h.users.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		h.log.Error("Login error: %v", err)
		response.InternalServerError(c, "Server error during login")
		return
	}
	if user == nil {
		response.Unauthorized(c, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		response.Unauthorized(c, "Invalid credentials")
		return
	}

	access, refresh, err := token.GeneratePair(user.ID.Hex(), user.Username, h.tokens)
	if err != nil {
		h.log.Error("Login error: %v", err)
		response.InternalServerError(c, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, TokenPairResponse{Access: access, Refresh: refresh})
}

// CheckAuth godoc
// @Summary Check authentication status
// @Description Report the authenticated user and token expiry
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CheckAuthResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /check-auth/ [get]
func (h *Handler) CheckAuth(c *gin.Context) {
	c.JSON(http.StatusOK, CheckAuthResponse{
		Authenticated: true,
		UserID:        c.GetString("userID"),
		Username:      c.GetString("username"),
		TokenExpires:  c.GetInt64("tokenExpires"),
	})
}

// Logout godoc
// @Summary Log out
// @Description Blacklist the presented refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LogoutRequest true "Refresh token to revoke"
// @Success 200 {object} response.DetailResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /logout/ [post]
func (h *Handler) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Refresh token is required")
		return
	}

	if req.RefreshToken == "" {
		response.BadRequest(c, "Refresh token is required")
		return
	}

	claims, err := token.ValidateTokenOfType(req.RefreshToken, h.tokens.Secret, token.TypeRefresh)
	if err != nil {
		response.BadRequest(c, "Invalid or expired token")
		return
	}

	blacklisted, err := h.blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
	if err != nil {
		h.log.Error("Logout error: %v", err)
		response.InternalServerError(c, "Server error during logout")
		return
	}
	if blacklisted {
		response.BadRequest(c, "Invalid or expired token")
		return
	}

	if err := h.blacklist.Blacklist(c.Request.Context(), claims.ID, claims.UserID, claims.ExpiresAt.Time); err != nil {
		h.log.Error("Logout error: %v", err)
		response.InternalServerError(c, "Server error during logout")
		return
	}

	h.log.Info("USER_LOGGED_OUT: ID=%s", claims.UserID)
	response.Detail(c, "Logout successful")
}

// Refresh godoc
// @Summary Refresh the access token
// @Description Exchange a valid, non-blacklisted refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} AccessTokenResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /refresh/ [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Refresh == "" {
		response.Unauthorized(c, "Token is invalid or expired")
		return
	}

	claims, err := token.ValidateTokenOfType(req.Refresh, h.tokens.Secret, token.TypeRefresh)
	if err != nil {
		response.Unauthorized(c, "Token is invalid or expired")
		return
	}

	blacklisted, err := h.blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
	if err != nil {
		h.log.Error("Refresh error: %v", err)
		response.InternalServerError(c, "Server error during refresh")
		return
	}
	if blacklisted {
		response.Unauthorized(c, "Token is invalid or expired")
		return
	}

	access, err := token.GenerateAccessToken(claims.UserID, claims.Username, h.tokens)
	if err != nil {
		h.log.Error("Refresh error: %v", err)
		response.InternalServerError(c, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, AccessTokenResponse{Access: access})
}
