package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"stocktrack/internal/caching"
	"stocktrack/internal/common"
	"stocktrack/internal/models"
)

// AuthService issues and revokes the tokens that carry tenant identity.
// Access tokens are HS256 JWTs; refresh tokens are opaque, hashed with
// SHA-256 and stored in redis under their hash.
type AuthService interface {
	GenerateTokens(ctx context.Context, userID, tenantID uuid.UUID) (*models.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	RevokeRefreshToken(ctx context.Context, refreshToken string) error
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
	CleanupExpiredTokens(ctx context.Context) error
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

type authService struct {
	cacheSvc   caching.CacheService
	jwtSecret  []byte
	tokenTTL   int // Access token TTL in seconds
	refreshTTL int // Refresh token TTL in seconds
	logger     *zap.Logger
}

func NewAuthService(cacheSvc caching.CacheService, jwtSecret string, tokenTTLSeconds, refreshTTLSeconds int, logger *zap.Logger) AuthService {
	return &authService{
		cacheSvc:   cacheSvc,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTLSeconds,
		refreshTTL: refreshTTLSeconds,
		logger:     logger,
	}
}

func (s *authService) GenerateTokens(ctx context.Context, userID, tenantID uuid.UUID) (*models.TokenResponse, error) {
	now := time.Now()
	tokenID := uuid.NewString()

	claims := TokenClaims{
		UserID:   userID.String(),
		TenantID: tenantID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "stocktrack-auth",
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{"stocktrack-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.tokenTTL) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        tokenID,
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessTokenString, err := accessToken.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %w", err)
	}

	refreshToken, err := generateSecureToken()
	if err != nil {
		return nil, err
	}
	refreshTokenHash := hashToken(refreshToken)

	refreshTokenData := fmt.Sprintf("%s:%s:%d", userID, tenantID, now.Unix()+int64(s.refreshTTL))
	cacheKey := fmt.Sprintf("refresh_token:%s", refreshTokenHash)
	if err := s.cacheSvc.SetString(ctx, cacheKey, refreshTokenData, time.Duration(s.refreshTTL)*time.Second); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &models.TokenResponse{
		AccessToken:  accessTokenString,
		TokenType:    "Bearer",
		ExpiresIn:    s.tokenTTL,
		RefreshToken: refreshToken,
		UserID:       userID.String(),
		TenantID:     tenantID.String(),
		IssuedAt:     now,
	}, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	cacheKey := fmt.Sprintf("refresh_token:%s", hashToken(refreshToken))
	tokenData, err := s.cacheSvc.GetString(ctx, cacheKey)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", common.ErrUnauthorized)
	}

	parts := strings.Split(tokenData, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: invalid refresh token", common.ErrUnauthorized)
	}

	expiry, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || time.Now().Unix() > expiry {
		s.cacheSvc.Delete(ctx, cacheKey)
		return nil, fmt.Errorf("%w: refresh token expired", common.ErrUnauthorized)
	}

	userID, err := uuid.Parse(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", common.ErrUnauthorized)
	}
	tenantID, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", common.ErrUnauthorized)
	}

	// Rotate: the presented token is consumed either way.
	if err := s.cacheSvc.Delete(ctx, cacheKey); err != nil {
		s.logger.Warn("failed to delete rotated refresh token", zap.Error(err))
	}

	return s.GenerateTokens(ctx, userID, tenantID)
}

func (s *authService) RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	cacheKey := fmt.Sprintf("refresh_token:%s", hashToken(refreshToken))
	return s.cacheSvc.Delete(ctx, cacheKey)
}

func (s *authService) ValidateToken(ctx context.Context, token string) (*TokenClaims, error) {
	jwtToken, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: token validation failed", common.ErrUnauthorized)
	}

	if claims, ok := jwtToken.Claims.(*TokenClaims); ok && jwtToken.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("%w: invalid token claims", common.ErrUnauthorized)
}

// CleanupExpiredTokens runs from the scheduler. Redis expires refresh tokens
// by TTL on its own; this exists as a hook for stores that do not.
func (s *authService) CleanupExpiredTokens(ctx context.Context) error {
	s.logger.Debug("expired token cleanup tick")
	return nil
}

// randRead is swapped out in tests to exercise the failure path.
var randRead = rand.Read

// generateSecureToken generates a cryptographically secure random token.
func generateSecureToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := randRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

// hashToken creates a SHA-256 hash of the token for secure storage
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
