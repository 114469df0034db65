package repository

import (
	"context"
	"database/sql"
	"time"

	"vidtube/internal/models"
	"vidtube/internal/repository/db"
)

// InitDB re-exports the SQLite bootstrap for main.
var InitDB = db.InitDB

type Users interface {
	Create(ctx context.Context, u models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// GetByUsernameOrEmail matches either column. Returns (nil, nil) if not found.
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	Exists(ctx context.Context, username, email string) (bool, error)
	// UpdateRefreshToken overwrites the stored token; empty string clears it.
	UpdateRefreshToken(ctx context.Context, id int64, token string) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	UpdateAccount(ctx context.Context, id int64, fullName, email string) error
	UpdateAvatar(ctx context.Context, id int64, url string) error
	UpdateCoverImage(ctx context.Context, id int64, url string) error
}

type Channels interface {
	// Profile returns the channel view for username as seen by viewerID.
	// Returns (nil, nil) if no such channel.
	Profile(ctx context.Context, username string, viewerID int64) (*models.ChannelProfile, error)
	// ToggleSubscription flips the subscriber->channel edge and reports the
	// resulting state (true = now subscribed).
	ToggleSubscription(ctx context.Context, subscriberID, channelID int64) (bool, error)
}

type Videos interface {
	// GetByID returns (nil, nil) if not found.
	GetByID(ctx context.Context, id int64) (*models.Video, error)
	IncrementViews(ctx context.Context, id int64) error
	AppendWatch(ctx context.Context, userID, videoID int64, at time.Time) error
	WatchHistory(ctx context.Context, userID int64) ([]models.WatchEntry, error)
}

type Repository struct {
	Users    Users
	Channels Channels
	Videos   Videos
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserRepository(sqlDB),
		Channels: NewChannelRepository(sqlDB),
		Videos:   NewVideoRepository(sqlDB),
	}
}
