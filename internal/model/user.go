package model

import "time"

// User owns tasks, categories and notification subscriptions.
// Timezone is an IANA identifier; readers fall back to UTC when it is
// missing or unknown.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex"`
	Timezone  string `gorm:"default:UTC"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
