package service

import (
	"context"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"timecraft/internal/auth"
	apperrors "timecraft/internal/errors"
	"timecraft/internal/model"
	"timecraft/internal/repository"
)

// builtinAdmin is the seeded administrator account. It can never be
// deleted, disabled or demoted.
const builtinAdmin = "admin"

// UserInput carries the fields for creating a user.
type UserInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

// UserUpdate carries optional account changes.
type UserUpdate struct {
	Role   *string `json:"role" validate:"omitempty,oneof=user admin"`
	Active *bool   `json:"active"`
}

// UserView is a user together with their permitted clients.
type UserView struct {
	model.User
	PermittedClients []string `json:"permitted_clients"`
}

// UserService manages accounts and client permissions. All operations are
// admin-only; the router enforces that.
type UserService interface {
	List(ctx context.Context) ([]UserView, error)
	Get(ctx context.Context, id uint) (*UserView, error)
	Create(ctx context.Context, input UserInput) (*model.User, error)
	Update(ctx context.Context, id uint, update UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id uint) error
	ResetPassword(ctx context.Context, id uint, password string) error
	GrantPermission(ctx context.Context, id uint, clientID string) error
	RevokePermission(ctx context.Context, id uint, clientID string) error
	SetPermissions(ctx context.Context, id uint, clientIDs []string) error
}

type userService struct {
	users   repository.UserRepository
	clients repository.ClientRepository
}

// NewUserService creates a new user management service.
func NewUserService(users repository.UserRepository, clients repository.ClientRepository) UserService {
	return &userService{users: users, clients: clients}
}

func (s *userService) List(ctx context.Context) ([]UserView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]UserView, 0, len(users))
	for i := range users {
		permitted, err := s.users.PermittedClientIDs(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
		views = append(views, UserView{User: users[i], PermittedClients: permitted})
	}
	return views, nil
}

func (s *userService) Get(ctx context.Context, id uint) (*UserView, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	permitted, err := s.users.PermittedClientIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &UserView{User: *user, PermittedClients: permitted}, nil
}

func (s *userService) Create(ctx context.Context, input UserInput) (*model.User, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	if !ValidUsername(username) {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest,
			"username must be 3-30 lowercase letters, digits, dashes or underscores", "INVALID_USERNAME")
	}
	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "username already taken", "USERNAME_TAKEN")
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = auth.RoleUser
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uint, update UserUpdate) (*model.User, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Username == builtinAdmin {
		demote := update.Role != nil && *update.Role != auth.RoleAdmin
		disable := update.Active != nil && !*update.Active
		if demote || disable {
			return nil, apperrors.ErrProtectedUser
		}
	}

	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.Active != nil {
		user.Active = *update.Active
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if user.Username == builtinAdmin {
		return apperrors.ErrProtectedUser
	}
	return s.users.Delete(ctx, user)
}

func (s *userService) ResetPassword(ctx context.Context, id uint, password string) error {
	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

func (s *userService) GrantPermission(ctx context.Context, id uint, clientID string) error {
	if err := s.checkTargets(ctx, id, clientID); err != nil {
		return err
	}
	return s.users.GrantPermission(ctx, id, clientID)
}

func (s *userService) RevokePermission(ctx context.Context, id uint, clientID string) error {
	if err := s.checkTargets(ctx, id, clientID); err != nil {
		return err
	}
	if err := s.users.RevokePermission(ctx, id, clientID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NewHTTPError(http.StatusNotFound, "permission not found", "PERMISSION_NOT_FOUND")
		}
		return err
	}
	return nil
}

func (s *userService) SetPermissions(ctx context.Context, id uint, clientIDs []string) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	for _, clientID := range clientIDs {
		if _, err := s.clients.FindByID(ctx, clientID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrClientNotFound
			}
			return err
		}
	}
	return s.users.ReplacePermissions(ctx, id, clientIDs)
}

func (s *userService) find(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) checkTargets(ctx context.Context, id uint, clientID string) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrClientNotFound
		}
		return err
	}
	return nil
}
