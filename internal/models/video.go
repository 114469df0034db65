package models

import "time"

// Video is an uploaded video owned by a user.
type Video struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	VideoFile   string    `json:"video_file"` // public URL in object storage
	Thumbnail   string    `json:"thumbnail"`
	DurationSec int       `json:"duration_s"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

// WatchEntry is one row of a user's watch history: the video joined with
// its owner's public identity.
type WatchEntry struct {
	Video
	OwnerUsername string    `json:"owner_username"`
	OwnerAvatar   string    `json:"owner_avatar"`
	WatchedAt     time.Time `json:"watched_at"`
}
