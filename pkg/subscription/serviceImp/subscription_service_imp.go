package serviceImp

import (
	"riskbot/entities"
	repo "riskbot/pkg/subscription/repository"
	"riskbot/pkg/subscription/service"
)

type subSvc struct{ r repo.SubscriptionRepository }

func New(r repo.SubscriptionRepository) service.SubscriptionService { return &subSvc{r} }

func (s *subSvc) Ensure(userID int64) error { return s.r.EnsureDefault(userID) }

func (s *subSvc) IsSubscribed(userID int64) bool {
	sub, err := s.r.Find(userID)
	return err == nil && sub.IsSubscribed
}

func (s *subSvc) Toggle(userID int64) (bool, error) {
	next := !s.IsSubscribed(userID)
	err := s.r.Upsert(&entities.Subscription{UserID: userID, IsSubscribed: next})
	return next, err
}

func (s *subSvc) Subscribers() ([]entities.Subscription, error) { return s.r.Subscribed() }

func (s *subSvc) MarkNotified(userID int64, date string) error {
	return s.r.MarkNotified(userID, date)
}
