package model

import "time"

// User represents an authenticated user in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:30;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;not null;default:'user'"` // "user" or "admin"
	Active       bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	ClientPermissions []UserClientPermission `json:"-" gorm:"foreignKey:UserID"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// UserClientPermission links a user to a billing client it may work on.
// Admins bypass this check and have access to all clients.
type UserClientPermission struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	UserID   uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_user_client"`
	ClientID string `json:"client_id" gorm:"size:50;not null;uniqueIndex:idx_user_client"`

	// Relations
	User   User   `json:"-" gorm:"foreignKey:UserID"`
	Client Client `json:"-" gorm:"foreignKey:ClientID"`
}
