package service

import (
	"context"
	"fmt"
	"time"

	"vidtube/internal/apperr"
	"vidtube/internal/models"
	"vidtube/internal/repository"
)

var ErrVideoNotFound = apperr.NotFound("video not found")

// HistoryService records watches and serves the watch-history view.
type HistoryService struct {
	videos repository.Videos
}

func NewHistoryService(videos repository.Videos) *HistoryService {
	return &HistoryService{videos: videos}
}

var _ History = (*HistoryService)(nil)

// Watch fetches a published video, appends a watch-history row for the
// viewer and bumps the view counter.
func (s *HistoryService) Watch(ctx context.Context, userID, videoID int64) (*models.Video, error) {
	v, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("load video %d: %w", videoID, err)
	}
	if v == nil || !v.IsPublished {
		return nil, ErrVideoNotFound
	}

	if err := s.videos.IncrementViews(ctx, videoID); err != nil {
		return nil, fmt.Errorf("increment views for video %d: %w", videoID, err)
	}
	if err := s.videos.AppendWatch(ctx, userID, videoID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("record watch for user %d: %w", userID, err)
	}

	v.Views++
	return v, nil
}

func (s *HistoryService) WatchHistory(ctx context.Context, userID int64) ([]models.WatchEntry, error) {
	entries, err := s.videos.WatchHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load watch history for user %d: %w", userID, err)
	}
	return entries, nil
}
