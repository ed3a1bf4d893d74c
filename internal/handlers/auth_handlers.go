package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"pettouch/internal/caching"
	"pettouch/internal/common"
	"pettouch/internal/models"
	"pettouch/internal/plans"
	"pettouch/internal/repositories"
	"pettouch/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	loginRateLimitWindow = 5 * time.Minute
	loginRateLimitMax    = 5
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	authService services.AuthService
	sessionSvc  services.SessionService
	profileRepo repositories.ProfileRepository
	cacheSvc    caching.CacheService
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService services.AuthService, sessionSvc services.SessionService, profileRepo repositories.ProfileRepository, cacheSvc caching.CacheService) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		sessionSvc:  sessionSvc,
		profileRepo: profileRepo,
		cacheSvc:    cacheSvc,
	}
}

// SignupRequest represents the signup request payload
type SignupRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	FullName *string `json:"full_name"`
}

// AuthResponse is returned from signup and login
type AuthResponse struct {
	models.TokenResponse
	User *models.Profile `json:"user"`
}

// Signup handles user registration
func (h *AuthHandlers) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}
	if len(req.Password) < 6 {
		return echo.NewHTTPError(http.StatusBadRequest, "Password must be at least 6 characters")
	}

	existing, err := h.profileRepo.GetByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		return echo.NewHTTPError(http.StatusConflict, "User already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	profile := &models.Profile{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		FullName:     req.FullName,
		Role:         "user",
		Plan:         string(plans.TierBasic),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusConflict, "User already exists")
		}
		log.Printf("Failed to create profile %s: %v", profile.Email, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
	}

	tokenResponse, err := h.authService.GenerateTokens(ctx, profile.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate tokens")
	}

	return c.JSON(http.StatusCreated, AuthResponse{
		TokenResponse: *tokenResponse,
		User:          profile,
	})
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles user login with email and password
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	rateKey := "login:" + req.Email
	limited, err := h.cacheSvc.IsRateLimited(ctx, rateKey, loginRateLimitMax, loginRateLimitWindow)
	if err != nil {
		log.Printf("Rate limit check failed for %s: %v", req.Email, err)
	}
	if limited {
		return echo.NewHTTPError(http.StatusTooManyRequests, "Too many attempts, please wait a few minutes before trying again")
	}

	profile, err := h.profileRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			h.recordFailedLogin(ctx, rateKey, req.Email)
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to look up user")
	}

	// Guard against accounts created before password storage was fixed
	if profile.PasswordHash == "" {
		h.recordFailedLogin(ctx, rateKey, req.Email)
		return echo.NewHTTPError(http.StatusUnauthorized, "Account not properly initialized. Please reset your password.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		h.recordFailedLogin(ctx, rateKey, req.Email)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	tokenResponse, err := h.authService.GenerateTokens(ctx, profile.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate tokens")
	}

	return c.JSON(http.StatusOK, AuthResponse{
		TokenResponse: *tokenResponse,
		User:          profile,
	})
}

// recordFailedLogin counts one failed attempt toward the fixed window.
// Successful logins do not count, so legitimate use never trips the limit.
func (h *AuthHandlers) recordFailedLogin(ctx context.Context, rateKey, email string) {
	if err := h.cacheSvc.IncrementRateLimit(ctx, rateKey, loginRateLimitWindow); err != nil {
		log.Printf("Rate limit increment failed for %s: %v", email, err)
	}
}

// RefreshRequest represents the token refresh request payload
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
	GrantType    string `json:"grant_type" validate:"required"`
}

// Refresh handles token refresh
func (h *AuthHandlers) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Refresh token is required")
	}
	if req.GrantType != "refresh_token" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid grant type")
	}

	tokenResponse, err := h.authService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired refresh token")
	}

	return c.JSON(http.StatusOK, tokenResponse)
}

// LogoutRequest represents the logout request payload
type LogoutRequest struct {
	TokenTypeHint *string `json:"token_type_hint"` // "access_token" or "refresh_token"
}

// Logout handles user logout by revoking tokens
func (h *AuthHandlers) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := common.GetUserIDFromContext(ctx); !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Authorization header missing")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	var req LogoutRequest
	if err := c.Bind(&req); err != nil {
		req.TokenTypeHint = nil
	}

	if err := h.authService.RevokeToken(ctx, tokenString, req.TokenTypeHint); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to revoke token")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}

// ResetPasswordRequest represents the password reset request payload
type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPassword accepts a reset request. The response never reveals
// whether the address has an account.
func (h *AuthHandlers) ResetPassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email is required")
	}

	if _, err := h.profileRepo.GetByEmail(ctx, req.Email); err == nil {
		// TODO: send the reset email once the notification service exists
		log.Printf("Password reset requested for %s", req.Email)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "If an account exists for that address, a reset link has been sent",
	})
}

// Me handles getting the current user's session
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	session, err := h.sessionSvc.Resolve(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve session")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":     session.Account,
		"plan":     session.Plan,
		"is_admin": session.IsAdmin,
	})
}
