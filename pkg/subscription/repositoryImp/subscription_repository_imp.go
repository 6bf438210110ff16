package repositoryImp

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"riskbot/entities"
	"riskbot/pkg/subscription/repository"
)

type subRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SubscriptionRepository { return &subRepo{db} }

func (r *subRepo) Upsert(sub *entities.Subscription) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_subscribed"}),
	}).Create(sub).Error
}

func (r *subRepo) EnsureDefault(userID int64) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entities.Subscription{UserID: userID, IsSubscribed: true}).Error
}

func (r *subRepo) Find(userID int64) (*entities.Subscription, error) {
	var out entities.Subscription
	if err := r.db.First(&out, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *subRepo) Subscribed() ([]entities.Subscription, error) {
	var out []entities.Subscription
	return out, r.db.Where("is_subscribed = ?", true).Order("user_id asc").Find(&out).Error
}

func (r *subRepo) MarkNotified(userID int64, date string) error {
	return r.db.Model(&entities.Subscription{}).
		Where("user_id = ?", userID).
		Update("last_notification", date).Error
}
