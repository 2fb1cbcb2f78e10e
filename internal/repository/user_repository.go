package repository

import (
	"context"

	"gorm.io/gorm"

	"timecraft/internal/model"
)

// UserRepository defines user and permission persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)

	GrantPermission(ctx context.Context, userID uint, clientID string) error
	RevokePermission(ctx context.Context, userID uint, clientID string) error
	ReplacePermissions(ctx context.Context, userID uint, clientIDs []string) error
	PermittedClientIDs(ctx context.Context, userID uint) ([]string, error)
	HasPermission(ctx context.Context, userID uint, clientID string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Select("ClientPermissions").Delete(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GrantPermission links a user to a client, ignoring duplicates.
func (r *userRepository) GrantPermission(ctx context.Context, userID uint, clientID string) error {
	var existing model.UserClientPermission
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND client_id = ?", userID, clientID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	perm := model.UserClientPermission{UserID: userID, ClientID: clientID}
	return r.db.WithContext(ctx).Create(&perm).Error
}

func (r *userRepository) RevokePermission(ctx context.Context, userID uint, clientID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND client_id = ?", userID, clientID).
		Delete(&model.UserClientPermission{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplacePermissions swaps a user's permission set in a single transaction.
func (r *userRepository) ReplacePermissions(ctx context.Context, userID uint, clientIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.UserClientPermission{}).Error; err != nil {
			return err
		}
		for _, clientID := range clientIDs {
			perm := model.UserClientPermission{UserID: userID, ClientID: clientID}
			if err := tx.Create(&perm).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *userRepository) PermittedClientIDs(ctx context.Context, userID uint) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.UserClientPermission{}).
		Where("user_id = ?", userID).
		Pluck("client_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *userRepository) HasPermission(ctx context.Context, userID uint, clientID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserClientPermission{}).
		Where("user_id = ? AND client_id = ?", userID, clientID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
