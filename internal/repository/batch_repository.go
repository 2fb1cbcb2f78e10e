package repository

import (
	"context"

	"gorm.io/gorm"

	"timecraft/internal/model"
)

// BatchRepository defines bulk operation bookkeeping persistence.
type BatchRepository interface {
	Create(ctx context.Context, batch *model.BatchOperation) error
	Update(ctx context.Context, batch *model.BatchOperation) error
	FindForUser(ctx context.Context, userID uint, id string) (*model.BatchOperation, error)
	ListForUser(ctx context.Context, userID uint, limit int) ([]model.BatchOperation, error)
}

type batchRepository struct {
	db *gorm.DB
}

// NewBatchRepository creates a new batch repository.
func NewBatchRepository(db *gorm.DB) BatchRepository {
	return &batchRepository{db: db}
}

func (r *batchRepository) Create(ctx context.Context, batch *model.BatchOperation) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *batchRepository) Update(ctx context.Context, batch *model.BatchOperation) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

func (r *batchRepository) FindForUser(ctx context.Context, userID uint, id string) (*model.BatchOperation, error) {
	var batch model.BatchOperation
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&batch).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *batchRepository) ListForUser(ctx context.Context, userID uint, limit int) ([]model.BatchOperation, error) {
	if limit <= 0 {
		limit = 50
	}
	var batches []model.BatchOperation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&batches).Error
	if err != nil {
		return nil, err
	}
	return batches, nil
}
