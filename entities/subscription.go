package entities

import "time"

type Subscription struct {
	UserID           int64  `gorm:"primaryKey" json:"user_id"`
	IsSubscribed     bool   `json:"is_subscribed"`
	LastNotification string `json:"last_notification"` // YYYY-MM-DD, empty if never
	CreatedAt        time.Time
}
