package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"vidtube/internal/apperr"
	"vidtube/internal/config"
	"vidtube/internal/models"
	"vidtube/internal/repository"
)

// Domain errors for token flows.
var (
	ErrInvalidToken = apperr.Unauthorized("invalid or expired token")
	// ErrTokenReused signals a refresh token that was superseded by a later
	// rotation, login, or logout. A refresh token is single-use: presenting
	// one that no longer matches the stored current value is a replay.
	ErrTokenReused = apperr.Unauthorized("refresh token expired or already used")
)

// Claims defines the JWT claims carried by both token kinds.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// TokenService issues and rotates access/refresh pairs. The current
// refresh token is mirrored onto the user row; at most one is valid per
// user at any time.
type TokenService struct {
	users repository.Users
	cfg   config.JWT
}

func NewTokenService(users repository.Users, cfg config.JWT) *TokenService {
	return &TokenService{users: users, cfg: cfg}
}

var _ Tokens = (*TokenService)(nil)

// Issue mints a new pair for userID and persists the refresh token,
// overwriting any prior value. No pair is returned unless the persistence
// succeeded.
func (s *TokenService) Issue(ctx context.Context, userID int64) (models.TokenPair, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.TokenPair{}, apperr.Internal("failed to generate access and refresh token")
	}
	if u == nil {
		return models.TokenPair{}, apperr.Internal("failed to generate access and refresh token")
	}

	access, err := signToken(userID, s.cfg.AccessSecret, s.cfg.AccessTTL)
	if err != nil {
		return models.TokenPair{}, apperr.Internal("failed to generate access and refresh token")
	}
	refresh, err := signToken(userID, s.cfg.RefreshSecret, s.cfg.RefreshTTL)
	if err != nil {
		return models.TokenPair{}, apperr.Internal("failed to generate access and refresh token")
	}

	// Field-level update only: the rest of the record is untouched, so no
	// password re-hash happens on this save path.
	if err := s.users.UpdateRefreshToken(ctx, userID, refresh); err != nil {
		return models.TokenPair{}, apperr.Internal("failed to generate access and refresh token")
	}

	return models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Rotate exchanges a valid, current refresh token for a new pair. The
// exchange succeeds exactly once per token value: once a newer token has
// been issued (or the user logged out), the old one is rejected.
func (s *TokenService) Rotate(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	// Signature/expiry check happens before any store access.
	userID, err := parseToken(refreshToken, s.cfg.RefreshSecret)
	if err != nil {
		return models.TokenPair{}, ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("look up user %d for rotation: %w", userID, err)
	}
	if u == nil {
		return models.TokenPair{}, ErrInvalidToken
	}

	if u.RefreshToken == "" || u.RefreshToken != refreshToken {
		return models.TokenPair{}, ErrTokenReused
	}

	return s.Issue(ctx, userID)
}

// ParseAccess validates an access token and returns the embedded user id.
func (s *TokenService) ParseAccess(token string) (int64, error) {
	userID, err := parseToken(token, s.cfg.AccessSecret)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

// signToken issues an HS256 JWT for userID. The uuid jti makes every
// issued token distinct even within one clock tick.
func signToken(userID int64, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString([]byte(secret))
}

func parseToken(tokenStr, secret string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}
