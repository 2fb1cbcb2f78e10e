package repository

import (
	"context"

	"gorm.io/gorm"

	"timecraft/internal/model"
)

// TemplateFilter narrows template listings. Zero values mean "any".
type TemplateFilter struct {
	ClientID     string
	TemplateType model.TemplateType
	Category     string
}

// TemplateRepository defines template persistence operations. All lookups are
// scoped to the owning user.
type TemplateRepository interface {
	Create(ctx context.Context, template *model.Template) error
	Update(ctx context.Context, template *model.Template) error
	Delete(ctx context.Context, template *model.Template) error
	FindByID(ctx context.Context, userID uint, id string) (*model.Template, error)
	List(ctx context.Context, userID uint, filter TemplateFilter) ([]model.Template, error)
}

type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new template repository.
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(ctx context.Context, template *model.Template) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *templateRepository) Update(ctx context.Context, template *model.Template) error {
	return r.db.WithContext(ctx).Save(template).Error
}

func (r *templateRepository) Delete(ctx context.Context, template *model.Template) error {
	return r.db.WithContext(ctx).Delete(template).Error
}

func (r *templateRepository) FindByID(ctx context.Context, userID uint, id string) (*model.Template, error) {
	var template model.Template
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) List(ctx context.Context, userID uint, filter TemplateFilter) ([]model.Template, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.ClientID != "" {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.TemplateType != "" {
		q = q.Where("template_type = ?", filter.TemplateType)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	var templates []model.Template
	if err := q.Order("updated_at DESC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}
