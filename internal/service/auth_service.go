package service

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"vidtube/internal/apperr"
	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/storage"
)

// Domain errors for auth flows.
var (
	ErrInvalidPassword = apperr.Unauthorized("invalid password")
	ErrUserNotFound    = apperr.NotFound("user not found")
	ErrUserExists      = apperr.Conflict("user with this username or email already exists")
)

// RegisterParams carries validated-at-the-edge registration input. Avatar
// and cover image arrive as local temp file paths saved by the handler;
// the service uploads them and removes the temp files.
type RegisterParams struct {
	Username       string
	Email          string
	FullName       string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

// AuthService handles registration, login, logout and password changes.
type AuthService struct {
	users    repository.Users
	uploader storage.Uploader
	tokens   Tokens
}

func NewAuthService(users repository.Users, uploader storage.Uploader, tokens Tokens) *AuthService {
	return &AuthService{users: users, uploader: uploader, tokens: tokens}
}

var _ Authorization = (*AuthService)(nil)

// Register validates input, rejects duplicates, uploads the avatar (and
// optional cover image), and creates the user. Validation and the
// duplicate check run before any upload or persistence.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (*models.User, error) {
	for _, field := range []string{p.Username, p.Email, p.FullName, p.Password} {
		if strings.TrimSpace(field) == "" {
			s.removeTempFiles(p)
			return nil, apperr.BadRequest("all fields are required")
		}
	}

	exists, err := s.users.Exists(ctx, p.Username, p.Email)
	if err != nil {
		s.removeTempFiles(p)
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		s.removeTempFiles(p)
		return nil, ErrUserExists
	}

	if p.AvatarPath == "" {
		s.removeTempFiles(p)
		return nil, apperr.BadRequest("avatar is required")
	}

	avatarURL, err := s.uploadAndRemove(ctx, p.AvatarPath)
	if err != nil {
		s.removeTempFiles(p)
		return nil, apperr.BadRequest("avatar upload failed")
	}

	// Cover image is optional; a failed upload degrades to no cover image.
	var coverURL string
	if p.CoverImagePath != "" {
		coverURL, _ = s.uploadAndRemove(ctx, p.CoverImagePath)
	}

	hash, err := hashPassword(p.Password)
	if err != nil {
		return nil, apperr.BadRequest("invalid password")
	}

	id, err := s.users.Create(ctx, models.User{
		Username:     strings.ToLower(p.Username),
		Email:        p.Email,
		FullName:     p.FullName,
		Avatar:       avatarURL,
		CoverImage:   coverURL,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	created, err := s.users.GetByID(ctx, id)
	if err != nil || created == nil {
		return nil, apperr.Internal("failed to create user")
	}
	return created, nil
}

// Login authenticates by username or email and issues a token pair.
func (s *AuthService) Login(ctx context.Context, username, email, password string) (*models.User, models.TokenPair, error) {
	if strings.TrimSpace(username) == "" && strings.TrimSpace(email) == "" {
		return nil, models.TokenPair{}, apperr.BadRequest("username or email is required")
	}

	u, err := s.users.GetByUsernameOrEmail(ctx, strings.ToLower(username), email)
	if err != nil {
		return nil, models.TokenPair{}, fmt.Errorf("look up user for login: %w", err)
	}
	if u == nil {
		return nil, models.TokenPair{}, ErrUserNotFound
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return nil, models.TokenPair{}, ErrInvalidPassword
	}

	pair, err := s.tokens.Issue(ctx, u.ID)
	if err != nil {
		return nil, models.TokenPair{}, err
	}
	return u, pair, nil
}

// Logout clears the stored refresh token, invalidating the current one.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if err := s.users.UpdateRefreshToken(ctx, userID, ""); err != nil {
		return fmt.Errorf("clear refresh token for user %d: %w", userID, err)
	}
	return nil
}

// ChangePassword verifies the current password and persists a new hash
// with a single field-level update.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if strings.TrimSpace(current) == "" || strings.TrimSpace(next) == "" {
		return apperr.BadRequest("current and new password are required")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("look up user %d: %w", userID, err)
	}
	if u == nil {
		return ErrUserNotFound
	}

	if err := verifyPassword(u.PasswordHash, current); err != nil {
		return apperr.Unauthorized("current password is incorrect")
	}

	hash, err := hashPassword(next)
	if err != nil {
		return apperr.BadRequest("invalid new password")
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password for user %d: %w", userID, err)
	}
	return nil
}

// uploadAndRemove uploads a temp file and always removes it afterwards,
// so a failed upload cannot leave an orphan behind.
func (s *AuthService) uploadAndRemove(ctx context.Context, path string) (string, error) {
	url, err := s.uploader.Upload(ctx, path)
	_ = os.Remove(path)
	return url, err
}

// removeTempFiles discards any saved uploads on early failure paths.
func (s *AuthService) removeTempFiles(p RegisterParams) {
	if p.AvatarPath != "" {
		_ = os.Remove(p.AvatarPath)
	}
	if p.CoverImagePath != "" {
		_ = os.Remove(p.CoverImagePath)
	}
}

// hashPassword is the standalone credential-hashing helper; data-model
// code never touches crypto.
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// verifyPassword checks a plaintext password against a stored hash.
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
