package repository

import (
	"context"

	"gorm.io/gorm"

	"timecraft/internal/model"
)

// GamificationRepository defines persistence for profiles, XP transactions,
// and badges.
type GamificationRepository interface {
	FindOrCreateProfile(ctx context.Context, userID uint) (*model.GamificationProfile, error)
	UpdateProfile(ctx context.Context, profile *model.GamificationProfile) error
	CreateTransaction(ctx context.Context, tx *model.XPTransaction) error
	ListTransactions(ctx context.Context, userID uint, limit int) ([]model.XPTransaction, error)

	ListBadges(ctx context.Context) ([]model.Badge, error)
	CreateBadge(ctx context.Context, badge *model.Badge) error
	CountBadges(ctx context.Context) (int64, error)
	ListUserBadges(ctx context.Context, userID uint) ([]model.UserBadge, error)
	HasBadge(ctx context.Context, userID, badgeID uint) (bool, error)
	AwardBadge(ctx context.Context, award *model.UserBadge) error
}

type gamificationRepository struct {
	db *gorm.DB
}

// NewGamificationRepository creates a new gamification repository.
func NewGamificationRepository(db *gorm.DB) GamificationRepository {
	return &gamificationRepository{db: db}
}

// FindOrCreateProfile returns the user's profile, creating a fresh level-1
// profile on first touch.
func (r *gamificationRepository) FindOrCreateProfile(ctx context.Context, userID uint) (*model.GamificationProfile, error) {
	var profile model.GamificationProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	profile = model.GamificationProfile{UserID: userID, Level: 1}
	if err := r.db.WithContext(ctx).Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *gamificationRepository) UpdateProfile(ctx context.Context, profile *model.GamificationProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *gamificationRepository) CreateTransaction(ctx context.Context, tx *model.XPTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *gamificationRepository) ListTransactions(ctx context.Context, userID uint, limit int) ([]model.XPTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	var txs []model.XPTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *gamificationRepository) ListBadges(ctx context.Context) ([]model.Badge, error) {
	var badges []model.Badge
	if err := r.db.WithContext(ctx).Order("threshold").Find(&badges).Error; err != nil {
		return nil, err
	}
	return badges, nil
}

func (r *gamificationRepository) CreateBadge(ctx context.Context, badge *model.Badge) error {
	return r.db.WithContext(ctx).Create(badge).Error
}

func (r *gamificationRepository) CountBadges(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Badge{}).Count(&count).Error
	return count, err
}

func (r *gamificationRepository) ListUserBadges(ctx context.Context, userID uint) ([]model.UserBadge, error) {
	var awards []model.UserBadge
	err := r.db.WithContext(ctx).
		Preload("Badge").
		Where("user_id = ?", userID).
		Order("awarded_at DESC").
		Find(&awards).Error
	if err != nil {
		return nil, err
	}
	return awards, nil
}

func (r *gamificationRepository) HasBadge(ctx context.Context, userID, badgeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserBadge{}).
		Where("user_id = ? AND badge_id = ?", userID, badgeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gamificationRepository) AwardBadge(ctx context.Context, award *model.UserBadge) error {
	return r.db.WithContext(ctx).Create(award).Error
}
