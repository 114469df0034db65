package service

import (
	"context"
	"fmt"
	"strings"

	"vidtube/internal/apperr"
	"vidtube/internal/models"
	"vidtube/internal/repository"
)

var ErrChannelNotFound = apperr.NotFound("channel not found")

// ChannelService covers public channel views and subscriptions.
type ChannelService struct {
	users    repository.Users
	channels repository.Channels
}

func NewChannelService(users repository.Users, channels repository.Channels) *ChannelService {
	return &ChannelService{users: users, channels: channels}
}

var _ Channels = (*ChannelService)(nil)

func (s *ChannelService) ChannelProfile(ctx context.Context, username string, viewerID int64) (*models.ChannelProfile, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperr.BadRequest("username is required")
	}
	p, err := s.channels.Profile(ctx, strings.ToLower(username), viewerID)
	if err != nil {
		return nil, fmt.Errorf("load channel profile %q: %w", username, err)
	}
	if p == nil {
		return nil, ErrChannelNotFound
	}
	return p, nil
}

// ToggleSubscription subscribes the viewer to the channel, or unsubscribes
// if already subscribed. Returns the resulting state.
func (s *ChannelService) ToggleSubscription(ctx context.Context, viewerID int64, channelUsername string) (bool, error) {
	ch, err := s.users.GetByUsernameOrEmail(ctx, strings.ToLower(channelUsername), "")
	if err != nil {
		return false, fmt.Errorf("look up channel %q: %w", channelUsername, err)
	}
	if ch == nil {
		return false, ErrChannelNotFound
	}
	if ch.ID == viewerID {
		return false, apperr.BadRequest("cannot subscribe to your own channel")
	}

	subscribed, err := s.channels.ToggleSubscription(ctx, viewerID, ch.ID)
	if err != nil {
		return false, fmt.Errorf("toggle subscription to channel %d: %w", ch.ID, err)
	}
	return subscribed, nil
}
