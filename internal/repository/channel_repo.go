package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vidtube/internal/models"
)

type ChannelRepository struct {
	db *sql.DB
}

func NewChannelRepository(db *sql.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

var _ Channels = (*ChannelRepository)(nil)

const (
	// Channel view: public user fields plus subscription aggregates
	// relative to the viewer.
	selectChannelProfileSQL = `SELECT u.id, u.username, u.full_name, u.avatar, u.cover_image,
    (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id) AS subscribers,
    (SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id) AS subscribed_to,
    EXISTS(SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = ?) AS is_subscribed
FROM users u WHERE u.username = ?`

	deleteSubscriptionSQL = `DELETE FROM subscriptions WHERE subscriber_id = ? AND channel_id = ?`
	insertSubscriptionSQL = `INSERT INTO subscriptions (subscriber_id, channel_id, created_at) VALUES (?, ?, ?)`
)

func (r *ChannelRepository) Profile(ctx context.Context, username string, viewerID int64) (*models.ChannelProfile, error) {
	var p models.ChannelProfile
	err := r.db.QueryRowContext(ctx, selectChannelProfileSQL, viewerID, username).Scan(
		&p.ID, &p.Username, &p.FullName, &p.Avatar, &p.CoverImage,
		&p.Subscribers, &p.SubscribedTo, &p.IsSubscribed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select channel profile %q: %w", username, err)
	}
	return &p, nil
}

// ToggleSubscription deletes the edge if present, inserts it otherwise.
func (r *ChannelRepository) ToggleSubscription(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteSubscriptionSQL, subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("delete subscription %d->%d: %w", subscriberID, channelID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected deleting subscription %d->%d: %w", subscriberID, channelID, err)
	}
	if n > 0 {
		return false, nil
	}
	if _, err := r.db.ExecContext(ctx, insertSubscriptionSQL, subscriberID, channelID, time.Now().UTC()); err != nil {
		return false, fmt.Errorf("insert subscription %d->%d: %w", subscriberID, channelID, err)
	}
	return true, nil
}
