package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "timecraft/internal/errors"
	"timecraft/internal/model"
	"timecraft/internal/repository"
)

// TemplateInput carries the writable fields of a template.
type TemplateInput struct {
	ClientID     string             `json:"client_id"`
	Name         string             `json:"name" validate:"required,max=255"`
	TemplateType model.TemplateType `json:"template_type" validate:"required,oneof=phrase full_rewrite"`
	OriginalText string             `json:"original_text"`
	RewriteText  string             `json:"rewrite_text" validate:"required"`
	Category     string             `json:"category" validate:"max=100"`
}

// TemplateUpdate carries optional template changes.
type TemplateUpdate struct {
	Name        *string `json:"name"`
	RewriteText *string `json:"rewrite_text"`
	Category    *string `json:"category"`
}

// TemplateService manages per-user rewrite templates.
type TemplateService interface {
	Create(ctx context.Context, user *model.User, input TemplateInput) (*model.Template, error)
	List(ctx context.Context, user *model.User, filter repository.TemplateFilter) ([]model.Template, error)
	Get(ctx context.Context, user *model.User, id string) (*model.Template, error)
	Update(ctx context.Context, user *model.User, id string, update TemplateUpdate) (*model.Template, error)
	Delete(ctx context.Context, user *model.User, id string) error
	Use(ctx context.Context, user *model.User, id string) (*model.Template, error)
}

type templateService struct {
	templates repository.TemplateRepository
	access    ClientService
}

// NewTemplateService creates a new template service.
func NewTemplateService(templates repository.TemplateRepository, access ClientService) TemplateService {
	return &templateService{templates: templates, access: access}
}

func (s *templateService) Create(ctx context.Context, user *model.User, input TemplateInput) (*model.Template, error) {
	if input.ClientID != "" {
		if err := s.access.EnsureAccess(ctx, user, input.ClientID); err != nil {
			return nil, err
		}
	}

	if err := sanitizeFields(&input.Name, &input.OriginalText, &input.RewriteText, &input.Category); err != nil {
		return nil, err
	}

	template := &model.Template{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		ClientID:     input.ClientID,
		Name:         input.Name,
		TemplateType: input.TemplateType,
		OriginalText: input.OriginalText,
		RewriteText:  input.RewriteText,
		Category:     input.Category,
	}
	if err := s.templates.Create(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

func (s *templateService) List(ctx context.Context, user *model.User, filter repository.TemplateFilter) ([]model.Template, error) {
	return s.templates.List(ctx, user.ID, filter)
}

func (s *templateService) Get(ctx context.Context, user *model.User, id string) (*model.Template, error) {
	template, err := s.templates.FindByID(ctx, user.ID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, err
	}
	return template, nil
}

func (s *templateService) Update(ctx context.Context, user *model.User, id string, update TemplateUpdate) (*model.Template, error) {
	template, err := s.Get(ctx, user, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if err := sanitizeFields(update.Name); err != nil {
			return nil, err
		}
		template.Name = *update.Name
	}
	if update.RewriteText != nil {
		if err := sanitizeFields(update.RewriteText); err != nil {
			return nil, err
		}
		template.RewriteText = *update.RewriteText
	}
	if update.Category != nil {
		if err := sanitizeFields(update.Category); err != nil {
			return nil, err
		}
		template.Category = *update.Category
	}
	template.UpdatedAt = time.Now().UTC()

	if err := s.templates.Update(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

func (s *templateService) Delete(ctx context.Context, user *model.User, id string) error {
	template, err := s.Get(ctx, user, id)
	if err != nil {
		return err
	}
	return s.templates.Delete(ctx, template)
}

// Use bumps the usage counter so frequently used templates can be surfaced
// first in the UI.
func (s *templateService) Use(ctx context.Context, user *model.User, id string) (*model.Template, error) {
	template, err := s.Get(ctx, user, id)
	if err != nil {
		return nil, err
	}
	template.UsageCount++
	template.UpdatedAt = time.Now().UTC()
	if err := s.templates.Update(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}
