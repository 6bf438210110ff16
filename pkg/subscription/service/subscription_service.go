package service

import "riskbot/entities"

type SubscriptionService interface {
	Ensure(userID int64) error
	IsSubscribed(userID int64) bool
	// Toggle flips the flag and reports the new state.
	Toggle(userID int64) (bool, error)
	// Subscribers returns a snapshot of everyone currently subscribed.
	Subscribers() ([]entities.Subscription, error)
	MarkNotified(userID int64, date string) error
}
