package repository

import (
	"context"

	"gorm.io/gorm"

	"timecraft/internal/model"
)

// ContentRepository defines read access to the learning content hierarchy.
type ContentRepository interface {
	ListTracks(ctx context.Context) ([]model.Track, error)
	FindTrackBySlug(ctx context.Context, slug string) (*model.Track, error)
	FindLesson(ctx context.Context, id uint) (*model.Lesson, error)
	FindStep(ctx context.Context, id uint) (*model.LessonStep, error)
	StepsForLesson(ctx context.Context, lessonID uint) ([]model.LessonStep, error)
	LessonIDsForTrack(ctx context.Context, trackID uint) ([]uint, error)
	TrackForLesson(ctx context.Context, lessonID uint) (*model.Track, error)

	CreateTrack(ctx context.Context, track *model.Track) error
	CreateModule(ctx context.Context, module *model.CourseModule) error
	CreateLesson(ctx context.Context, lesson *model.Lesson) error
	CreateStep(ctx context.Context, step *model.LessonStep) error
	CountTracks(ctx context.Context) (int64, error)
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a new content repository.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

// ListTracks returns published tracks with modules, lessons, and steps nested
// in display order.
func (r *contentRepository) ListTracks(ctx context.Context) ([]model.Track, error) {
	var tracks []model.Track
	err := r.db.WithContext(ctx).
		Preload("Modules", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Modules.Lessons.Steps", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("published = ?", true).
		Order("position").
		Find(&tracks).Error
	if err != nil {
		return nil, err
	}
	return tracks, nil
}

func (r *contentRepository) FindTrackBySlug(ctx context.Context, slug string) (*model.Track, error) {
	var track model.Track
	err := r.db.WithContext(ctx).
		Preload("Modules", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("slug = ?", slug).
		First(&track).Error
	if err != nil {
		return nil, err
	}
	return &track, nil
}

func (r *contentRepository) FindLesson(ctx context.Context, id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&lesson, id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *contentRepository) FindStep(ctx context.Context, id uint) (*model.LessonStep, error) {
	var step model.LessonStep
	if err := r.db.WithContext(ctx).First(&step, id).Error; err != nil {
		return nil, err
	}
	return &step, nil
}

func (r *contentRepository) StepsForLesson(ctx context.Context, lessonID uint) ([]model.LessonStep, error) {
	var steps []model.LessonStep
	err := r.db.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Order("position").
		Find(&steps).Error
	if err != nil {
		return nil, err
	}
	return steps, nil
}

func (r *contentRepository) LessonIDsForTrack(ctx context.Context, trackID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&model.Lesson{}).
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("course_modules.track_id = ?", trackID).
		Pluck("lessons.id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *contentRepository) TrackForLesson(ctx context.Context, lessonID uint) (*model.Track, error) {
	var track model.Track
	err := r.db.WithContext(ctx).
		Joins("JOIN course_modules ON course_modules.track_id = tracks.id").
		Joins("JOIN lessons ON lessons.module_id = course_modules.id").
		Where("lessons.id = ?", lessonID).
		First(&track).Error
	if err != nil {
		return nil, err
	}
	return &track, nil
}

func (r *contentRepository) CreateTrack(ctx context.Context, track *model.Track) error {
	return r.db.WithContext(ctx).Create(track).Error
}

func (r *contentRepository) CreateModule(ctx context.Context, module *model.CourseModule) error {
	return r.db.WithContext(ctx).Create(module).Error
}

func (r *contentRepository) CreateLesson(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).Create(lesson).Error
}

func (r *contentRepository) CreateStep(ctx context.Context, step *model.LessonStep) error {
	return r.db.WithContext(ctx).Create(step).Error
}

func (r *contentRepository) CountTracks(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Track{}).Count(&count).Error
	return count, err
}
