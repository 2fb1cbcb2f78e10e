package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "timecraft/internal/errors"
	"timecraft/internal/model"
	"timecraft/internal/repository"
)

// StepResult reports everything a completed step triggered.
type StepResult struct {
	StepID          uint                       `json:"step_id"`
	AlreadyComplete bool                       `json:"already_complete"`
	XPAwarded       int                        `json:"xp_awarded"`
	LessonCompleted bool                       `json:"lesson_completed"`
	NextStepID      uint                       `json:"next_step_id,omitempty"`
	Profile         *model.GamificationProfile `json:"profile,omitempty"`
	NewBadges       []model.Badge              `json:"new_badges,omitempty"`
}

// ResumePoint tells the client where a user left off in a lesson.
type ResumePoint struct {
	LessonID      uint   `json:"lesson_id"`
	CurrentStepID uint   `json:"current_step_id"`
	Completed     bool   `json:"completed"`
	TrackSlug     string `json:"track_slug,omitempty"`
	TrackTitle    string `json:"track_title,omitempty"`
}

// ProgressService drives lesson progress and everything it triggers: step
// XP, lesson XP, streaks, and badge evaluation.
type ProgressService interface {
	StartLesson(ctx context.Context, userID, lessonID uint) (*model.UserProgress, error)
	CompleteStep(ctx context.Context, userID, stepID uint, answer string) (*StepResult, error)
	Resume(ctx context.Context, userID uint) ([]ResumePoint, error)
}

type progressService struct {
	progress     repository.ProgressRepository
	content      repository.ContentRepository
	gamification GamificationService
	badges       BadgeService
	events       repository.AnalyticsRepository
}

// NewProgressService creates a new progress service.
func NewProgressService(
	progress repository.ProgressRepository,
	content repository.ContentRepository,
	gamification GamificationService,
	badges BadgeService,
	events repository.AnalyticsRepository,
) ProgressService {
	return &progressService{
		progress:     progress,
		content:      content,
		gamification: gamification,
		badges:       badges,
		events:       events,
	}
}

// StartLesson opens a lesson for the user, returning existing progress when
// the lesson was started before.
func (s *progressService) StartLesson(ctx context.Context, userID, lessonID uint) (*model.UserProgress, error) {
	lesson, err := s.content.FindLesson(ctx, lessonID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrLessonNotFound
		}
		return nil, err
	}

	if existing, err := s.progress.FindProgress(ctx, userID, lessonID); err == nil {
		return existing, nil
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	progress := &model.UserProgress{
		UserID:    userID,
		LessonID:  lessonID,
		StartedAt: time.Now().UTC(),
	}
	if len(lesson.Steps) > 0 {
		progress.CurrentStepID = lesson.Steps[0].ID
	}
	if err := s.progress.CreateProgress(ctx, progress); err != nil {
		return nil, err
	}

	s.recordEvent(ctx, userID, "lesson_started", map[string]interface{}{"lesson_id": lessonID})
	return progress, nil
}

// CompleteStep validates the submission, marks the step complete, grants XP
// once per step, advances the lesson, and runs streak and badge updates.
func (s *progressService) CompleteStep(ctx context.Context, userID, stepID uint, answer string) (*StepResult, error) {
	step, err := s.content.FindStep(ctx, stepID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrStepNotFound
		}
		return nil, err
	}

	if err := validateStepAnswer(step, answer); err != nil {
		return nil, err
	}

	done, err := s.progress.HasStepCompletion(ctx, userID, stepID)
	if err != nil {
		return nil, err
	}
	if done {
		return &StepResult{StepID: stepID, AlreadyComplete: true}, nil
	}

	progress, err := s.progressForStep(ctx, userID, step)
	if err != nil {
		return nil, err
	}
	if progress.CurrentStepID != 0 && progress.CurrentStepID != stepID {
		if ahead, err := s.stepIsAhead(ctx, step, progress.CurrentStepID); err != nil {
			return nil, err
		} else if ahead {
			return nil, apperrors.ErrStepOutOfOrder
		}
	}

	completion := &model.StepCompletion{
		UserID:      userID,
		StepID:      stepID,
		CompletedAt: time.Now().UTC(),
	}
	if err := s.progress.CreateStepCompletion(ctx, completion); err != nil {
		return nil, err
	}

	result := &StepResult{StepID: stepID}

	// Advance the lesson pointer.
	steps, err := s.content.StepsForLesson(ctx, step.LessonID)
	if err != nil {
		return nil, err
	}
	next := nextStepID(steps, step.ID)
	progress.CurrentStepID = next
	if next == 0 {
		now := time.Now().UTC()
		progress.Completed = true
		progress.CompletedAt = &now
		result.LessonCompleted = true
	}
	if err := s.progress.UpdateProgress(ctx, progress); err != nil {
		return nil, err
	}
	result.NextStepID = next

	xp := step.XPReward
	reason := "step_completed"
	if result.LessonCompleted {
		lesson, err := s.content.FindLesson(ctx, step.LessonID)
		if err == nil {
			xp += lesson.XPReward
			reason = "lesson_completed"
		}
	}

	profile, err := s.gamification.GrantXP(ctx, userID, xp, reason, stepReference(step))
	if err != nil {
		return nil, err
	}
	result.XPAwarded = xp

	profile, err = s.gamification.TouchStreak(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}
	result.Profile = profile

	newBadges, err := s.badges.Evaluate(ctx, userID)
	if err != nil {
		return nil, err
	}
	result.NewBadges = newBadges

	event := "step_completed"
	if result.LessonCompleted {
		event = "lesson_completed"
	}
	s.recordEvent(ctx, userID, event, map[string]interface{}{
		"step_id":   stepID,
		"lesson_id": step.LessonID,
		"xp":        xp,
	})
	return result, nil
}

// Resume lists the user's open and completed lessons with their current
// step, most recently touched first.
func (s *progressService) Resume(ctx context.Context, userID uint) ([]ResumePoint, error) {
	rows, err := s.progress.ListProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	points := make([]ResumePoint, 0, len(rows))
	for _, row := range rows {
		point := ResumePoint{
			LessonID:      row.LessonID,
			CurrentStepID: row.CurrentStepID,
			Completed:     row.Completed,
		}
		track, err := s.content.TrackForLesson(ctx, row.LessonID)
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				return nil, err
			}
		} else {
			point.TrackSlug = track.Slug
			point.TrackTitle = track.Title
		}
		points = append(points, point)
	}
	return points, nil
}

func (s *progressService) progressForStep(ctx context.Context, userID uint, step *model.LessonStep) (*model.UserProgress, error) {
	progress, err := s.progress.FindProgress(ctx, userID, step.LessonID)
	if err == nil {
		return progress, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	return s.StartLesson(ctx, userID, step.LessonID)
}

func (s *progressService) stepIsAhead(ctx context.Context, step *model.LessonStep, currentStepID uint) (bool, error) {
	current, err := s.content.FindStep(ctx, currentStepID)
	if err != nil {
		return false, err
	}
	return step.Position > current.Position, nil
}

func (s *progressService) recordEvent(ctx context.Context, userID uint, eventType string, payload map[string]interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte("{}")
	}
	_ = s.events.Create(ctx, &model.AnalyticsEvent{
		UserID:    userID,
		EventType: eventType,
		Payload:   string(data),
	})
}

// validateStepAnswer checks quiz answers against the expected answer and
// code challenge submissions against the expected pattern. Content steps
// accept any submission.
func validateStepAnswer(step *model.LessonStep, answer string) error {
	switch step.Kind {
	case model.StepQuiz:
		if !strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(step.ExpectedAnswer)) {
			return apperrors.ErrWrongAnswer
		}
	case model.StepCodeChallenge:
		if step.ExpectedPattern == "" {
			return nil
		}
		re, err := regexp.Compile(step.ExpectedPattern)
		if err != nil {
			return err
		}
		if !re.MatchString(answer) {
			return apperrors.ErrWrongAnswer
		}
	}
	return nil
}

func nextStepID(steps []model.LessonStep, completedID uint) uint {
	for i, step := range steps {
		if step.ID == completedID && i+1 < len(steps) {
			return steps[i+1].ID
		}
	}
	return 0
}

func stepReference(step *model.LessonStep) string {
	return "step:" + uintString(step.ID)
}

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
