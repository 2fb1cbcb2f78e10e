package service

import (
	"context"
	"time"

	"timecraft/internal/model"
	"timecraft/internal/repository"
)

// BadgeService evaluates badge thresholds and records awards.
type BadgeService interface {
	Catalog(ctx context.Context) ([]model.Badge, error)
	UserBadges(ctx context.Context, userID uint) ([]model.UserBadge, error)
	// Evaluate awards every badge whose threshold the user now meets and
	// returns the newly awarded badges.
	Evaluate(ctx context.Context, userID uint) ([]model.Badge, error)
}

type badgeService struct {
	badges   repository.GamificationRepository
	progress repository.ProgressRepository
	content  repository.ContentRepository
}

// NewBadgeService creates a new badge service.
func NewBadgeService(
	badges repository.GamificationRepository,
	progress repository.ProgressRepository,
	content repository.ContentRepository,
) BadgeService {
	return &badgeService{badges: badges, progress: progress, content: content}
}

func (s *badgeService) Catalog(ctx context.Context) ([]model.Badge, error) {
	return s.badges.ListBadges(ctx)
}

func (s *badgeService) UserBadges(ctx context.Context, userID uint) ([]model.UserBadge, error) {
	return s.badges.ListUserBadges(ctx, userID)
}

// Evaluate compares each badge's threshold against the user's current
// counter for that metric. Awards are idempotent; already-held badges are
// skipped.
func (s *badgeService) Evaluate(ctx context.Context, userID uint) ([]model.Badge, error) {
	catalog, err := s.badges.ListBadges(ctx)
	if err != nil {
		return nil, err
	}

	counters := map[model.BadgeMetric]int64{}
	var awarded []model.Badge
	for _, badge := range catalog {
		held, err := s.badges.HasBadge(ctx, userID, badge.ID)
		if err != nil {
			return nil, err
		}
		if held {
			continue
		}

		value, ok := counters[badge.Metric]
		if !ok {
			value, err = s.metricValue(ctx, userID, badge.Metric)
			if err != nil {
				return nil, err
			}
			counters[badge.Metric] = value
		}
		if value < badge.Threshold {
			continue
		}

		award := &model.UserBadge{
			UserID:    userID,
			BadgeID:   badge.ID,
			AwardedAt: time.Now().UTC(),
		}
		if err := s.badges.AwardBadge(ctx, award); err != nil {
			return nil, err
		}
		awarded = append(awarded, badge)
	}
	return awarded, nil
}

func (s *badgeService) metricValue(ctx context.Context, userID uint, metric model.BadgeMetric) (int64, error) {
	switch metric {
	case model.MetricLessonsCompleted:
		return s.progress.CountCompletedLessons(ctx, userID)
	case model.MetricStreakDays:
		profile, err := s.badges.FindOrCreateProfile(ctx, userID)
		if err != nil {
			return 0, err
		}
		return int64(profile.CurrentStreak), nil
	case model.MetricXPEarned:
		profile, err := s.badges.FindOrCreateProfile(ctx, userID)
		if err != nil {
			return 0, err
		}
		return profile.XP, nil
	case model.MetricTracksCompleted:
		return s.countCompletedTracks(ctx, userID)
	}
	return 0, nil
}

// countCompletedTracks counts tracks where every lesson has a completed
// progress row.
func (s *badgeService) countCompletedTracks(ctx context.Context, userID uint) (int64, error) {
	tracks, err := s.content.ListTracks(ctx)
	if err != nil {
		return 0, err
	}

	var completed int64
	for _, track := range tracks {
		lessonIDs, err := s.content.LessonIDsForTrack(ctx, track.ID)
		if err != nil {
			return 0, err
		}
		if len(lessonIDs) == 0 {
			continue
		}
		done, err := s.progress.CountCompletedLessonsIn(ctx, userID, lessonIDs)
		if err != nil {
			return 0, err
		}
		if done == int64(len(lessonIDs)) {
			completed++
		}
	}
	return completed, nil
}
