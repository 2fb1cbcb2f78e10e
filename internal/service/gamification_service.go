package service

import (
	"context"
	"time"

	"timecraft/internal/cache"
	"timecraft/internal/model"
	"timecraft/internal/repository"
)

// levelThresholds maps level N to the total XP required to reach it.
// Thresholds roughly double every two levels.
var levelThresholds = []int64{
	0,     // level 1
	100,   // level 2
	250,   // level 3
	500,   // level 4
	1000,  // level 5
	1750,  // level 6
	2750,  // level 7
	4250,  // level 8
	6500,  // level 9
	10000, // level 10
	15000, // level 11
	22500, // level 12
	33500, // level 13
	50000, // level 14
	75000, // level 15
}

// LevelForXP returns the highest level whose threshold the XP total meets.
func LevelForXP(xp int64) int {
	level := 1
	for i, threshold := range levelThresholds {
		if xp < threshold {
			break
		}
		level = i + 1
	}
	return level
}

// NextLevelThreshold returns the XP total needed for the next level, or zero
// at the level cap.
func NextLevelThreshold(level int) int64 {
	if level < 1 || level >= len(levelThresholds) {
		return 0
	}
	return levelThresholds[level]
}

// ProfileView is a gamification profile enriched with derived progress data.
type ProfileView struct {
	model.GamificationProfile
	NextLevelXP     int64 `json:"next_level_xp"`
	LeaderboardRank int64 `json:"leaderboard_rank,omitempty"`
}

// GamificationService applies XP, level, and streak rules.
type GamificationService interface {
	Profile(ctx context.Context, userID uint) (*ProfileView, error)
	GrantXP(ctx context.Context, userID uint, amount int, reason, reference string) (*model.GamificationProfile, error)
	TouchStreak(ctx context.Context, userID uint, at time.Time) (*model.GamificationProfile, error)
	Transactions(ctx context.Context, userID uint, limit int) ([]model.XPTransaction, error)
	Leaderboard(ctx context.Context, limit int64) ([]cache.LeaderboardEntry, error)
}

type gamificationService struct {
	profiles    repository.GamificationRepository
	leaderboard *cache.Leaderboard
}

// NewGamificationService creates a new gamification service.
func NewGamificationService(profiles repository.GamificationRepository, leaderboard *cache.Leaderboard) GamificationService {
	return &gamificationService{profiles: profiles, leaderboard: leaderboard}
}

func (s *gamificationService) Profile(ctx context.Context, userID uint) (*ProfileView, error) {
	profile, err := s.profiles.FindOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &ProfileView{
		GamificationProfile: *profile,
		NextLevelXP:         NextLevelThreshold(profile.Level),
	}
	if s.leaderboard != nil {
		if rank, err := s.leaderboard.Rank(ctx, userID); err == nil {
			view.LeaderboardRank = rank
		}
	}
	return view, nil
}

// GrantXP adds XP, records the transaction, recomputes the level, and
// pushes the new total to the leaderboard. The leaderboard write is best
// effort; the database stays authoritative.
func (s *gamificationService) GrantXP(ctx context.Context, userID uint, amount int, reason, reference string) (*model.GamificationProfile, error) {
	if amount <= 0 {
		return s.profiles.FindOrCreateProfile(ctx, userID)
	}

	profile, err := s.profiles.FindOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.XP += int64(amount)
	profile.Level = LevelForXP(profile.XP)
	if err := s.profiles.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	tx := &model.XPTransaction{
		UserID:    userID,
		Amount:    amount,
		Reason:    reason,
		Reference: reference,
	}
	if err := s.profiles.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	if s.leaderboard != nil {
		_ = s.leaderboard.SetScore(ctx, userID, profile.XP)
	}
	return profile, nil
}

// TouchStreak updates the activity streak for the given moment: activity on
// the same day is a no-op, on the next day extends the streak, and after a
// gap the streak restarts at one. The longest streak is a watermark.
func (s *gamificationService) TouchStreak(ctx context.Context, userID uint, at time.Time) (*model.GamificationProfile, error) {
	profile, err := s.profiles.FindOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := dateOf(at)
	switch {
	case profile.LastActiveAt == nil:
		profile.CurrentStreak = 1
	case dateOf(*profile.LastActiveAt).Equal(today):
		// Already counted today.
	case dateOf(*profile.LastActiveAt).AddDate(0, 0, 1).Equal(today):
		profile.CurrentStreak++
	default:
		profile.CurrentStreak = 1
	}
	if profile.CurrentStreak > profile.LongestStreak {
		profile.LongestStreak = profile.CurrentStreak
	}

	activeAt := at.UTC()
	profile.LastActiveAt = &activeAt

	if err := s.profiles.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *gamificationService) Transactions(ctx context.Context, userID uint, limit int) ([]model.XPTransaction, error) {
	return s.profiles.ListTransactions(ctx, userID, limit)
}

func (s *gamificationService) Leaderboard(ctx context.Context, limit int64) ([]cache.LeaderboardEntry, error) {
	if s.leaderboard == nil {
		return nil, cache.ErrLeaderboardUnavailable
	}
	return s.leaderboard.Top(ctx, limit)
}

func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
