package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"timecraft/internal/cache"
	apperrors "timecraft/internal/errors"
	"timecraft/internal/model"
)

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int64
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},
		{1000, 5},
		{9999, 9},
		{10000, 10},
		{75000, 15},
		{1000000, 15},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForXP(tt.xp), "xp=%d", tt.xp)
	}
}

func TestNextLevelThreshold(t *testing.T) {
	assert.Equal(t, int64(100), NextLevelThreshold(1))
	assert.Equal(t, int64(250), NextLevelThreshold(2))
	assert.Equal(t, int64(0), NextLevelThreshold(15))
}

func TestGrantXP_LevelsUp(t *testing.T) {
	repo := new(MockGamificationRepository)
	svc := NewGamificationService(repo, nil)

	profile := &model.GamificationProfile{UserID: 7, XP: 90, Level: 1}
	repo.On("FindOrCreateProfile", mock.Anything, uint(7)).Return(profile, nil)
	repo.On("UpdateProfile", mock.Anything, profile).Return(nil)
	repo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx *model.XPTransaction) bool {
		return tx.UserID == 7 && tx.Amount == 20 && tx.Reason == "lesson_completed"
	})).Return(nil)

	updated, err := svc.GrantXP(context.Background(), 7, 20, "lesson_completed", "lesson:3")

	assert.NoError(t, err)
	assert.Equal(t, int64(110), updated.XP)
	assert.Equal(t, 2, updated.Level)
	repo.AssertExpectations(t)
}

func TestGrantXP_ZeroAmountIsNoop(t *testing.T) {
	repo := new(MockGamificationRepository)
	svc := NewGamificationService(repo, nil)

	profile := &model.GamificationProfile{UserID: 7, XP: 50, Level: 1}
	repo.On("FindOrCreateProfile", mock.Anything, uint(7)).Return(profile, nil)

	updated, err := svc.GrantXP(context.Background(), 7, 0, "noop", "")

	assert.NoError(t, err)
	assert.Equal(t, int64(50), updated.XP)
	repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
}

func TestLeaderboard_UnavailableWithoutRedis(t *testing.T) {
	repo := new(MockGamificationRepository)
	svc := NewGamificationService(repo, nil)

	_, err := svc.Leaderboard(context.Background(), 10)

	assert.ErrorIs(t, err, cache.ErrLeaderboardUnavailable)
	httpErr := apperrors.MapErrorToHTTP(err)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
	assert.Equal(t, "LEADERBOARD_UNAVAILABLE", httpErr.Code)
}

func TestTouchStreak(t *testing.T) {
	yesterday := fixedTime(9)
	twoDaysAgo := fixedTime(8)

	tests := []struct {
		name        string
		lastActive  *time.Time
		current     int
		longest     int
		wantCurrent int
		wantLongest int
	}{
		{"first activity", nil, 0, 0, 1, 1},
		{"same day is a no-op", timePtr(fixedTime(10)), 4, 6, 4, 6},
		{"previous day extends", &yesterday, 4, 6, 5, 6},
		{"new longest watermark", &yesterday, 6, 6, 7, 7},
		{"gap resets to one", &twoDaysAgo, 9, 9, 1, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockGamificationRepository)
			svc := NewGamificationService(repo, nil)

			profile := &model.GamificationProfile{
				UserID:        3,
				CurrentStreak: tt.current,
				LongestStreak: tt.longest,
				LastActiveAt:  tt.lastActive,
			}
			repo.On("FindOrCreateProfile", mock.Anything, uint(3)).Return(profile, nil)
			repo.On("UpdateProfile", mock.Anything, profile).Return(nil)

			updated, err := svc.TouchStreak(context.Background(), 3, fixedTime(10))

			assert.NoError(t, err)
			assert.Equal(t, tt.wantCurrent, updated.CurrentStreak)
			assert.Equal(t, tt.wantLongest, updated.LongestStreak)
			assert.NotNil(t, updated.LastActiveAt)
			assert.Equal(t, fixedTime(10), *updated.LastActiveAt)
		})
	}
}

func TestTouchStreak_MidnightBoundary(t *testing.T) {
	repo := new(MockGamificationRepository)
	svc := NewGamificationService(repo, nil)

	lastActive := time.Date(2026, time.March, 9, 23, 59, 0, 0, time.UTC)
	profile := &model.GamificationProfile{UserID: 3, CurrentStreak: 2, LongestStreak: 2, LastActiveAt: &lastActive}
	repo.On("FindOrCreateProfile", mock.Anything, uint(3)).Return(profile, nil)
	repo.On("UpdateProfile", mock.Anything, profile).Return(nil)

	updated, err := svc.TouchStreak(context.Background(), 3, time.Date(2026, time.March, 10, 0, 1, 0, 0, time.UTC))

	assert.NoError(t, err)
	assert.Equal(t, 3, updated.CurrentStreak)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
