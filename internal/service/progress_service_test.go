package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "timecraft/internal/errors"
	"timecraft/internal/model"
)

func TestValidateStepAnswer(t *testing.T) {
	tests := []struct {
		name    string
		step    model.LessonStep
		answer  string
		wantErr error
	}{
		{
			"content step accepts anything",
			model.LessonStep{Kind: model.StepContent},
			"",
			nil,
		},
		{
			"quiz correct answer",
			model.LessonStep{Kind: model.StepQuiz, ExpectedAnswer: "Defense in depth"},
			"defense in depth",
			nil,
		},
		{
			"quiz trims whitespace",
			model.LessonStep{Kind: model.StepQuiz, ExpectedAnswer: "443"},
			"  443  ",
			nil,
		},
		{
			"quiz wrong answer",
			model.LessonStep{Kind: model.StepQuiz, ExpectedAnswer: "443"},
			"80",
			apperrors.ErrWrongAnswer,
		},
		{
			"code challenge matching pattern",
			model.LessonStep{Kind: model.StepCodeChallenge, ExpectedPattern: `(?i)select\s+\*`},
			"SELECT * FROM users",
			nil,
		},
		{
			"code challenge non-matching pattern",
			model.LessonStep{Kind: model.StepCodeChallenge, ExpectedPattern: `(?i)select\s+\*`},
			"DROP TABLE users",
			apperrors.ErrWrongAnswer,
		},
		{
			"code challenge without pattern accepts anything",
			model.LessonStep{Kind: model.StepCodeChallenge},
			"anything",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateStepAnswer(&tt.step, tt.answer)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func newProgressFixture() (*MockProgressRepository, *MockContentRepository, *MockGamificationRepository, *MockAnalyticsRepository, ProgressService) {
	progRepo := new(MockProgressRepository)
	contentRepo := new(MockContentRepository)
	gamRepo := new(MockGamificationRepository)
	events := new(MockAnalyticsRepository)

	gamification := NewGamificationService(gamRepo, nil)
	badges := NewBadgeService(gamRepo, progRepo, contentRepo)
	svc := NewProgressService(progRepo, contentRepo, gamification, badges, events)
	return progRepo, contentRepo, gamRepo, events, svc
}

func TestCompleteStep_FinishesLessonAndGrantsXP(t *testing.T) {
	progRepo, contentRepo, gamRepo, events, svc := newProgressFixture()

	step := &model.LessonStep{ID: 12, LessonID: 4, Kind: model.StepContent, Position: 2, XPReward: 10}
	contentRepo.On("FindStep", mock.Anything, uint(12)).Return(step, nil)
	progRepo.On("HasStepCompletion", mock.Anything, uint(5), uint(12)).Return(false, nil)

	progress := &model.UserProgress{UserID: 5, LessonID: 4, CurrentStepID: 12}
	progRepo.On("FindProgress", mock.Anything, uint(5), uint(4)).Return(progress, nil)
	progRepo.On("CreateStepCompletion", mock.Anything, mock.Anything).Return(nil)
	contentRepo.On("StepsForLesson", mock.Anything, uint(4)).
		Return([]model.LessonStep{{ID: 11, Position: 1}, {ID: 12, Position: 2}}, nil)
	progRepo.On("UpdateProgress", mock.Anything, progress).Return(nil)
	contentRepo.On("FindLesson", mock.Anything, uint(4)).
		Return(&model.Lesson{ID: 4, XPReward: 25}, nil)

	profile := &model.GamificationProfile{UserID: 5, XP: 0, Level: 1}
	gamRepo.On("FindOrCreateProfile", mock.Anything, uint(5)).Return(profile, nil)
	gamRepo.On("UpdateProfile", mock.Anything, profile).Return(nil)
	gamRepo.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil)
	gamRepo.On("ListBadges", mock.Anything).Return([]model.Badge{}, nil)
	events.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.CompleteStep(context.Background(), 5, 12, "")

	assert.NoError(t, err)
	assert.True(t, result.LessonCompleted)
	assert.Equal(t, 35, result.XPAwarded) // step + lesson reward
	assert.Equal(t, uint(0), result.NextStepID)
	assert.True(t, progress.Completed)
}

func TestCompleteStep_IdempotentOnRepeat(t *testing.T) {
	progRepo, contentRepo, _, _, svc := newProgressFixture()

	step := &model.LessonStep{ID: 12, LessonID: 4, Kind: model.StepContent}
	contentRepo.On("FindStep", mock.Anything, uint(12)).Return(step, nil)
	progRepo.On("HasStepCompletion", mock.Anything, uint(5), uint(12)).Return(true, nil)

	result, err := svc.CompleteStep(context.Background(), 5, 12, "")

	assert.NoError(t, err)
	assert.True(t, result.AlreadyComplete)
	assert.Zero(t, result.XPAwarded)
	progRepo.AssertNotCalled(t, "CreateStepCompletion", mock.Anything, mock.Anything)
}

func TestCompleteStep_RejectsStepAheadOfProgress(t *testing.T) {
	progRepo, contentRepo, _, _, svc := newProgressFixture()

	step := &model.LessonStep{ID: 13, LessonID: 4, Kind: model.StepContent, Position: 3}
	contentRepo.On("FindStep", mock.Anything, uint(13)).Return(step, nil)
	progRepo.On("HasStepCompletion", mock.Anything, uint(5), uint(13)).Return(false, nil)
	progRepo.On("FindProgress", mock.Anything, uint(5), uint(4)).
		Return(&model.UserProgress{UserID: 5, LessonID: 4, CurrentStepID: 11}, nil)
	contentRepo.On("FindStep", mock.Anything, uint(11)).
		Return(&model.LessonStep{ID: 11, LessonID: 4, Position: 1}, nil)

	_, err := svc.CompleteStep(context.Background(), 5, 13, "")

	assert.ErrorIs(t, err, apperrors.ErrStepOutOfOrder)
}

func TestResume_AnnotatesLessonsWithTrack(t *testing.T) {
	progRepo, contentRepo, _, _, svc := newProgressFixture()

	progRepo.On("ListProgress", mock.Anything, uint(5)).Return([]model.UserProgress{
		{UserID: 5, LessonID: 4, CurrentStepID: 12},
		{UserID: 5, LessonID: 9, Completed: true},
	}, nil)
	contentRepo.On("TrackForLesson", mock.Anything, uint(4)).
		Return(&model.Track{ID: 1, Slug: "legal-billing-basics", Title: "Legal Billing Basics"}, nil)
	// Lesson detached from any track (e.g. unpublished restructuring) still
	// resumes, just without track info.
	contentRepo.On("TrackForLesson", mock.Anything, uint(9)).
		Return(nil, gorm.ErrRecordNotFound)

	points, err := svc.Resume(context.Background(), 5)

	assert.NoError(t, err)
	assert.Len(t, points, 2)
	assert.Equal(t, "legal-billing-basics", points[0].TrackSlug)
	assert.Equal(t, "Legal Billing Basics", points[0].TrackTitle)
	assert.Equal(t, uint(12), points[0].CurrentStepID)
	assert.Empty(t, points[1].TrackSlug)
	assert.True(t, points[1].Completed)
}

func TestNextStepID(t *testing.T) {
	steps := []model.LessonStep{{ID: 10}, {ID: 11}, {ID: 12}}

	assert.Equal(t, uint(11), nextStepID(steps, 10))
	assert.Equal(t, uint(12), nextStepID(steps, 11))
	assert.Equal(t, uint(0), nextStepID(steps, 12))
	assert.Equal(t, uint(0), nextStepID(steps, 99))
}
