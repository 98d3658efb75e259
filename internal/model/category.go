package model

import "time"

// Category is a per-user label with a display color. Tasks reference
// categories by name; a dangling name is a display concern only.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index:idx_user_category_name,unique"`
	Name      string `gorm:"index:idx_user_category_name,unique"`
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
