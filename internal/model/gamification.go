package model

import "time"

// GamificationProfile holds a user's XP, level, and streak state.
// One profile per user.
type GamificationProfile struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	UserID        uint       `json:"user_id" gorm:"not null;uniqueIndex"`
	XP            int64      `json:"xp" gorm:"not null;default:0"`
	Level         int        `json:"level" gorm:"not null;default:1"`
	CurrentStreak int        `json:"current_streak" gorm:"not null;default:0"`
	LongestStreak int        `json:"longest_streak" gorm:"not null;default:0"`
	LastActiveAt  *time.Time `json:"last_active_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// XPTransaction is an append-only record of XP granted to a user.
type XPTransaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Amount    int       `json:"amount" gorm:"not null"`
	Reason    string    `json:"reason" gorm:"size:100;not null"`
	Reference string    `json:"reference,omitempty" gorm:"size:100"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}
