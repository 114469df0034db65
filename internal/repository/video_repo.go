package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vidtube/internal/models"
)

type VideoRepository struct {
	db *sql.DB
}

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

var _ Videos = (*VideoRepository)(nil)

const (
	selectVideoByIDSQL = `SELECT id, owner_id, title, description, video_file, thumbnail, duration_s, views, is_published, created_at
FROM videos WHERE id = ?`

	incrementViewsSQL = `UPDATE videos SET views = views + 1 WHERE id = ?`

	insertWatchSQL = `INSERT INTO watch_history (user_id, video_id, watched_at) VALUES (?, ?, ?)`

	// History view: watched videos joined with their owner's public identity,
	// newest first.
	selectWatchHistorySQL = `SELECT v.id, v.owner_id, v.title, v.description, v.video_file, v.thumbnail,
    v.duration_s, v.views, v.is_published, v.created_at,
    o.username, o.avatar, wh.watched_at
FROM watch_history wh
JOIN videos v ON v.id = wh.video_id
JOIN users o ON o.id = v.owner_id
WHERE wh.user_id = ?
ORDER BY wh.watched_at DESC`
)

func (r *VideoRepository) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	var v models.Video
	err := r.db.QueryRowContext(ctx, selectVideoByIDSQL, id).Scan(
		&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.VideoFile, &v.Thumbnail,
		&v.DurationSec, &v.Views, &v.IsPublished, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select video %d: %w", id, err)
	}
	return &v, nil
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, incrementViewsSQL, id); err != nil {
		return fmt.Errorf("increment views for video %d: %w", id, err)
	}
	return nil
}

func (r *VideoRepository) AppendWatch(ctx context.Context, userID, videoID int64, at time.Time) error {
	if at.IsZero() {
		at = time.Now().UTC()
	}
	if _, err := r.db.ExecContext(ctx, insertWatchSQL, userID, videoID, at.UTC()); err != nil {
		return fmt.Errorf("append watch user %d video %d: %w", userID, videoID, err)
	}
	return nil
}

func (r *VideoRepository) WatchHistory(ctx context.Context, userID int64) ([]models.WatchEntry, error) {
	rows, err := r.db.QueryContext(ctx, selectWatchHistorySQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select watch history for user %d: %w", userID, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []models.WatchEntry
	for rows.Next() {
		var e models.WatchEntry
		if err := rows.Scan(
			&e.ID, &e.OwnerID, &e.Title, &e.Description, &e.VideoFile, &e.Thumbnail,
			&e.DurationSec, &e.Views, &e.IsPublished, &e.CreatedAt,
			&e.OwnerUsername, &e.OwnerAvatar, &e.WatchedAt); err != nil {
			return nil, fmt.Errorf("scan watch history row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watch history: %w", err)
	}
	return entries, nil
}
