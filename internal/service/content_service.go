package service

import (
	"context"

	"gorm.io/gorm"

	apperrors "timecraft/internal/errors"
	"timecraft/internal/model"
	"timecraft/internal/repository"
)

// ContentService exposes the published learning content hierarchy.
type ContentService interface {
	ListTracks(ctx context.Context) ([]model.Track, error)
	GetTrack(ctx context.Context, slug string) (*model.Track, error)
	GetLesson(ctx context.Context, id uint) (*model.Lesson, error)
}

type contentService struct {
	content repository.ContentRepository
}

// NewContentService creates a new content service.
func NewContentService(content repository.ContentRepository) ContentService {
	return &contentService{content: content}
}

func (s *contentService) ListTracks(ctx context.Context) ([]model.Track, error) {
	return s.content.ListTracks(ctx)
}

func (s *contentService) GetTrack(ctx context.Context, slug string) (*model.Track, error) {
	track, err := s.content.FindTrackBySlug(ctx, slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTrackNotFound
		}
		return nil, err
	}
	return track, nil
}

func (s *contentService) GetLesson(ctx context.Context, id uint) (*model.Lesson, error) {
	lesson, err := s.content.FindLesson(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrLessonNotFound
		}
		return nil, err
	}
	return lesson, nil
}
