package model

import "time"

// Subscription channel kinds.
const (
	SubscriptionWebPush  = "webpush"
	SubscriptionTelegram = "telegram"
)

// Subscription is a notification endpoint bound to one user. Web push
// subscriptions carry an endpoint plus client keys; telegram ones a
// chat ID. A subscription is deleted when delivery reports the
// endpoint permanently gone, never revalidated proactively.
type Subscription struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	Kind      string `gorm:"default:webpush"`
	Endpoint  string
	P256dh    string
	Auth      string
	ChatID    int64
	UserAgent string
	CreatedAt time.Time
}
