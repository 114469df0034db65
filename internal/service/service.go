package service

import (
	"context"

	"vidtube/internal/config"
	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/storage"
)

// Authorization covers account lifecycle operations.
type Authorization interface {
	Register(ctx context.Context, p RegisterParams) (*models.User, error)
	Login(ctx context.Context, username, email, password string) (*models.User, models.TokenPair, error)
	Logout(ctx context.Context, userID int64) error
	ChangePassword(ctx context.Context, userID int64, current, next string) error
}

// Tokens issues and rotates access/refresh token pairs.
type Tokens interface {
	Issue(ctx context.Context, userID int64) (models.TokenPair, error)
	Rotate(ctx context.Context, refreshToken string) (models.TokenPair, error)
	ParseAccess(token string) (int64, error)
}

// Profile covers the authenticated user's own record.
type Profile interface {
	Me(ctx context.Context, userID int64) (*models.User, error)
	UpdateAccount(ctx context.Context, userID int64, fullName, email string) (*models.User, error)
	UpdateAvatar(ctx context.Context, userID int64, localPath string) (*models.User, error)
	UpdateCoverImage(ctx context.Context, userID int64, localPath string) (*models.User, error)
}

// Channels covers public channel views and subscriptions.
type Channels interface {
	ChannelProfile(ctx context.Context, username string, viewerID int64) (*models.ChannelProfile, error)
	ToggleSubscription(ctx context.Context, viewerID int64, channelUsername string) (bool, error)
}

// History covers watch recording and the watch-history view.
type History interface {
	Watch(ctx context.Context, userID, videoID int64) (*models.Video, error)
	WatchHistory(ctx context.Context, userID int64) ([]models.WatchEntry, error)
}

// Service aggregates all sub-services behind one value for the handlers.
type Service struct {
	Authorization
	Tokens
	Profile
	Channels
	History
}

func NewService(repos *repository.Repository, uploader storage.Uploader, jwtCfg config.JWT) *Service {
	tokens := NewTokenService(repos.Users, jwtCfg)
	return &Service{
		Authorization: NewAuthService(repos.Users, uploader, tokens),
		Tokens:        tokens,
		Profile:       NewProfileService(repos.Users, uploader),
		Channels:      NewChannelService(repos.Users, repos.Channels),
		History:       NewHistoryService(repos.Videos),
	}
}
