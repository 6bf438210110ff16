package repository

import "riskbot/entities"

type SubscriptionRepository interface {
	// Upsert creates the row or overwrites the subscribed flag.
	Upsert(sub *entities.Subscription) error
	// EnsureDefault inserts a subscribed row on first contact, no-op otherwise.
	EnsureDefault(userID int64) error
	Find(userID int64) (*entities.Subscription, error)
	Subscribed() ([]entities.Subscription, error)
	MarkNotified(userID int64, date string) error
}
