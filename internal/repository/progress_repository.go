package repository

import (
	"context"

	"gorm.io/gorm"

	"timecraft/internal/model"
)

// ProgressRepository defines persistence for lesson progress and step
// completions.
type ProgressRepository interface {
	FindProgress(ctx context.Context, userID, lessonID uint) (*model.UserProgress, error)
	CreateProgress(ctx context.Context, progress *model.UserProgress) error
	UpdateProgress(ctx context.Context, progress *model.UserProgress) error
	ListProgress(ctx context.Context, userID uint) ([]model.UserProgress, error)

	HasStepCompletion(ctx context.Context, userID, stepID uint) (bool, error)
	CreateStepCompletion(ctx context.Context, completion *model.StepCompletion) error

	CountCompletedLessons(ctx context.Context, userID uint) (int64, error)
	CountCompletedLessonsIn(ctx context.Context, userID uint, lessonIDs []uint) (int64, error)
}

type progressRepository struct {
	db *gorm.DB
}

// NewProgressRepository creates a new progress repository.
func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) FindProgress(ctx context.Context, userID, lessonID uint) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) CreateProgress(ctx context.Context, progress *model.UserProgress) error {
	return r.db.WithContext(ctx).Create(progress).Error
}

func (r *progressRepository) UpdateProgress(ctx context.Context, progress *model.UserProgress) error {
	return r.db.WithContext(ctx).Save(progress).Error
}

func (r *progressRepository) ListProgress(ctx context.Context, userID uint) ([]model.UserProgress, error) {
	var rows []model.UserProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *progressRepository) HasStepCompletion(ctx context.Context, userID, stepID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.StepCompletion{}).
		Where("user_id = ? AND step_id = ?", userID, stepID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *progressRepository) CreateStepCompletion(ctx context.Context, completion *model.StepCompletion) error {
	return r.db.WithContext(ctx).Create(completion).Error
}

func (r *progressRepository) CountCompletedLessons(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *progressRepository) CountCompletedLessonsIn(ctx context.Context, userID uint, lessonIDs []uint) (int64, error) {
	if len(lessonIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserProgress{}).
		Where("user_id = ? AND completed = ? AND lesson_id IN ?", userID, true, lessonIDs).
		Count(&count).Error
	return count, err
}
