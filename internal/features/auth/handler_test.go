package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/xyz-asif/gotasks/internal/config"
	"github.com/xyz-asif/gotasks/internal/middleware"
	"github.com/xyz-asif/gotasks/internal/pkg/logger"
	"github.com/xyz-asif/gotasks/internal/pkg/token"
	apperrors "github.com/xyz-asif/gotasks/pkg/errors"
)

type fakeUserStore struct {
	byUsername map[string]*User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byUsername: map[string]*User{}}
}

func (s *fakeUserStore) CreateUser(_ context.Context, user *User) error {
	if _, ok := s.byUsername[user.Username]; ok {
		return apperrors.ErrDuplicate
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	s.byUsername[user.Username] = user
	return nil
}

func (s *fakeUserStore) GetUserByUsername(_ context.Context, username string) (*User, error) {
	return s.byUsername[username], nil
}

type fakeBlacklist struct {
	revoked map[string]bool
	failing bool
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{revoked: map[string]bool{}}
}

func (b *fakeBlacklist) Blacklist(_ context.Context, jti, _ string, _ time.Time) error {
	if b.failing {
		return apperrors.ErrInternal
	}
	b.revoked[jti] = true
	return nil
}

func (b *fakeBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	if b.failing {
		return false, apperrors.ErrInternal
	}
	return b.revoked[jti], nil
}

type authEnv struct {
	router    *gin.Engine
	users     *fakeUserStore
	blacklist *fakeBlacklist
	cfg       *config.Config
	tokens    *token.Config
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecret: "test-secret", JWTAccessExpireHours: 1, JWTRefreshExpireDays: 7}
	tokens := token.NewConfig(cfg.JWTSecret, cfg.JWTAccessExpireHours, cfg.JWTRefreshExpireDays)
	users := newFakeUserStore()
	blacklist := newFakeBlacklist()
	handler := NewHandler(users, blacklist, tokens, logger.New(logger.FATAL))

	r := gin.New()
	r.HandleMethodNotAllowed = true
	api := r.Group("/api")
	api.POST("/register/", handler.Register)
	api.POST("/login/", handler.Login)
	api.POST("/refresh/", handler.Refresh)
	api.GET("/check-auth/", middleware.Auth(cfg), handler.CheckAuth)
	api.POST("/logout/", middleware.Auth(cfg), handler.Logout)

	return &authEnv{router: r, users: users, blacklist: blacklist, cfg: cfg, tokens: tokens}
}

func (e *authEnv) do(t *testing.T, method, path string, payload any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *authEnv) registerUser(t *testing.T, username, password string) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &User{Username: username, Password: string(hash)}
	require.NoError(t, e.users.CreateUser(context.Background(), user))
	return user
}

func TestRegister_Success(t *testing.T) {
	env := newAuthEnv(t)

	w := env.do(t, "POST", "/api/register/", RegisterRequest{Username: "newuser", Password: "newpass123"}, nil)
	require.Equal(t, 201, w.Code)

	var body RegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "newuser", body.Username)
	require.NotEmpty(t, body.ID)
	require.Equal(t, "User created successfully", body.Message)

	// Stored password is hashed, never the plaintext
	stored := env.users.byUsername["newuser"]
	require.NotNil(t, stored)
	require.NotEqual(t, "newpass123", stored.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newpass123")))
}

func TestRegister_MissingFields(t *testing.T) {
	env := newAuthEnv(t)

	w := env.do(t, "POST", "/api/register/", map[string]string{}, nil)
	require.Equal(t, 400, w.Code)

	var errs map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errs))
	require.Equal(t, []string{"This field is required."}, errs["username"])
	require.Equal(t, []string{"This field is required."}, errs["password"])
}

func TestRegister_DuplicateUsername(t *testing.T) {
	env := newAuthEnv(t)
	env.registerUser(t, "newuser", "newpass123")

	w := env.do(t, "POST", "/api/register/", RegisterRequest{Username: "newuser", Password: "other"}, nil)
	require.Equal(t, 400, w.Code)

	var errs map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errs))
	require.Equal(t, []string{"A user with that username already exists."}, errs["username"])
}

func TestLogin_Success(t *testing.T) {
	env := newAuthEnv(t)
	user := env.registerUser(t, "alice", "pass123")

	w := env.do(t, "POST", "/api/login/", LoginRequest{Username: "alice", Password: "pass123"}, nil)
	require.Equal(t, 200, w.Code)

	var pair TokenPairResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))

	accessClaims, err := token.ValidateTokenOfType(pair.Access, env.cfg.JWTSecret, token.TypeAccess)
	require.NoError(t, err)
	require.Equal(t, user.ID.Hex(), accessClaims.UserID)

	_, err = token.ValidateTokenOfType(pair.Refresh, env.cfg.JWTSecret, token.TypeRefresh)
	require.NoError(t, err)
}

func TestLogin_UniformFailures(t *testing.T) {
	env := newAuthEnv(t)
	env.registerUser(t, "alice", "pass123")

	cases := []any{
		LoginRequest{Username: "alice", Password: "wrong"},
		LoginRequest{Username: "nobody", Password: "pass123"},
		LoginRequest{Username: "alice"},
		LoginRequest{Password: "pass123"},
		map[string]string{},
	}

	for _, payload := range cases {
		w := env.do(t, "POST", "/api/login/", payload, nil)
		require.Equal(t, 401, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, "Invalid credentials", body["error"])
	}
}

func TestCheckAuth(t *testing.T) {
	env := newAuthEnv(t)
	user := env.registerUser(t, "alice", "pass123")

	access, err := token.GenerateAccessToken(user.ID.Hex(), user.Username, env.tokens)
	require.NoError(t, err)

	w := env.do(t, "GET", "/api/check-auth/", nil, map[string]string{"Authorization": "Bearer " + access})
	require.Equal(t, 200, w.Code)

	var body CheckAuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Authenticated)
	require.Equal(t, user.ID.Hex(), body.UserID)
	require.Equal(t, "alice", body.Username)
	require.Greater(t, body.TokenExpires, time.Now().Unix())
}

func TestCheckAuth_Unauthenticated(t *testing.T) {
	env := newAuthEnv(t)

	w := env.do(t, "GET", "/api/check-auth/", nil, nil)
	require.Equal(t, 401, w.Code)

	w = env.do(t, "GET", "/api/check-auth/", nil, map[string]string{"Authorization": "Bearer bogus"})
	require.Equal(t, 401, w.Code)
}

func authHeaderFor(t *testing.T, env *authEnv, user *User) map[string]string {
	t.Helper()
	access, err := token.GenerateAccessToken(user.ID.Hex(), user.Username, env.tokens)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + access}
}

func TestLogout_Success(t *testing.T) {
	env := newAuthEnv(t)
	user := env.registerUser(t, "alice", "pass123")
	headers := authHeaderFor(t, env, user)

	refresh, err := token.GenerateRefreshToken(user.ID.Hex(), user.Username, env.tokens)
	require.NoError(t, err)

	w := env.do(t, "POST", "/api/logout/", LogoutRequest{RefreshToken: refresh}, headers)
	require.Equal(t, 200, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Logout successful", body["detail"])

	// Blacklisting the same token again reports it as invalid
	w = env.do(t, "POST", "/api/logout/", LogoutRequest{RefreshToken: refresh}, headers)
	require.Equal(t, 400, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Invalid or expired token", body["error"])
}

func TestLogout_MissingToken(t *testing.T) {
	env := newAuthEnv(t)
	user := env.registerUser(t, "alice", "pass123")
	headers := authHeaderFor(t, env, user)

	w := env.do(t, "POST", "/api/logout/", map[string]string{}, headers)
	require.Equal(t, 400, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Refresh token is required", body["error"])
}

func TestLogout_InvalidToken(t *testing.T) {
	env := newAuthEnv(t)
	user := env.registerUser(t, "alice", "pass123")
	headers := authHeaderFor(t, env, user)

	w := env.do(t, "POST", "/api/logout/", LogoutRequest{RefreshToken: "garbage"}, headers)
	require.Equal(t, 400, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Invalid or expired token", body["error"])

	// An access token is not a valid refresh token
	access, err := token.GenerateAccessToken(user.ID.Hex(), user.Username, env.tokens)
	require.NoError(t, err)
	w = env.do(t, "POST", "/api/logout/", LogoutRequest{RefreshToken: access}, headers)
	require.Equal(t, 400, w.Code)
}

func TestLogout_StoreFailure(t *testing.T) {
	env := newAuthEnv(t)
	user := env.registerUser(t, "alice", "pass123")
	headers := authHeaderFor(t, env, user)

	refresh, err := token.GenerateRefreshToken(user.ID.Hex(), user.Username, env.tokens)
	require.NoError(t, err)

	env.blacklist.failing = true
	w := env.do(t, "POST", "/api/logout/", LogoutRequest{RefreshToken: refresh}, headers)
	require.Equal(t, 500, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Server error during logout", body["error"])
}

func TestLogout_MethodNotAllowed(t *testing.T) {
	env := newAuthEnv(t)

	w := env.do(t, "GET", "/api/logout/", nil, nil)
	require.Equal(t, 405, w.Code)
}

func TestRefresh(t *testing.T) {
	env := newAuthEnv(t)
	user := env.registerUser(t, "alice", "pass123")

	refresh, err := token.GenerateRefreshToken(user.ID.Hex(), user.Username, env.tokens)
	require.NoError(t, err)

	w := env.do(t, "POST", "/api/refresh/", RefreshRequest{Refresh: refresh}, nil)
	require.Equal(t, 200, w.Code)

	var body AccessTokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	claims, err := token.ValidateTokenOfType(body.Access, env.cfg.JWTSecret, token.TypeAccess)
	require.NoError(t, err)
	require.Equal(t, user.ID.Hex(), claims.UserID)

	// A blacklisted refresh token can no longer be exchanged
	headers := authHeaderFor(t, env, user)
	w = env.do(t, "POST", "/api/logout/", LogoutRequest{RefreshToken: refresh}, headers)
	require.Equal(t, 200, w.Code)

	w = env.do(t, "POST", "/api/refresh/", RefreshRequest{Refresh: refresh}, nil)
	require.Equal(t, 401, w.Code)
}
