package service

import (
	"context"
	"fmt"
	"os"
	"strings"

	"vidtube/internal/apperr"
	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/storage"
)

// ProfileService covers the authenticated user's own record.
type ProfileService struct {
	users    repository.Users
	uploader storage.Uploader
}

func NewProfileService(users repository.Users, uploader storage.Uploader) *ProfileService {
	return &ProfileService{users: users, uploader: uploader}
}

var _ Profile = (*ProfileService)(nil)

func (s *ProfileService) Me(ctx context.Context, userID int64) (*models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("look up user %d: %w", userID, err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *ProfileService) UpdateAccount(ctx context.Context, userID int64, fullName, email string) (*models.User, error) {
	if strings.TrimSpace(fullName) == "" || strings.TrimSpace(email) == "" {
		return nil, apperr.BadRequest("full name and email are required")
	}
	if err := s.users.UpdateAccount(ctx, userID, fullName, email); err != nil {
		return nil, fmt.Errorf("update account for user %d: %w", userID, err)
	}
	return s.Me(ctx, userID)
}

func (s *ProfileService) UpdateAvatar(ctx context.Context, userID int64, localPath string) (*models.User, error) {
	return s.updateImage(ctx, userID, localPath, "avatar", s.users.UpdateAvatar)
}

func (s *ProfileService) UpdateCoverImage(ctx context.Context, userID int64, localPath string) (*models.User, error) {
	return s.updateImage(ctx, userID, localPath, "cover image", s.users.UpdateCoverImage)
}

// updateImage uploads a temp file, removes it, and persists the URL with a
// field-level update.
func (s *ProfileService) updateImage(ctx context.Context, userID int64, localPath, kind string,
	persist func(context.Context, int64, string) error) (*models.User, error) {

	if localPath == "" {
		return nil, apperr.BadRequest(kind + " file is required")
	}

	url, err := s.uploader.Upload(ctx, localPath)
	_ = os.Remove(localPath)
	if err != nil {
		return nil, apperr.BadRequest(kind + " upload failed")
	}

	if err := persist(ctx, userID, url); err != nil {
		return nil, fmt.Errorf("persist %s for user %d: %w", kind, userID, err)
	}
	return s.Me(ctx, userID)
}
