package repositoryImp

import (
	"gorm.io/gorm"

	"riskbot/entities"
	"riskbot/pkg/risk/repository"
)

type riskRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.RiskRepository { return &riskRepo{db} }

func (r *riskRepo) Create(risk *entities.Risk) error {
	// single atomic insert; the transaction keeps it all-or-nothing even if
	// gorm ever splits the write
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(risk).Error
	})
}

func (r *riskRepo) FindByID(id uint) (*entities.Risk, error) {
	var out entities.Risk
	err := r.db.
		Preload("Mitigations", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc")
		}).
		First(&out, id).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *riskRepo) AddMitigation(m *entities.AdditionalMitigation) error {
	return r.db.Create(m).Error
}

func (r *riskRepo) byPhase(phase string) *gorm.DB {
	q := r.db.Model(&entities.Risk{})
	if phase != "" && phase != "all" {
		q = q.Where("phase = ?", phase)
	}
	return q
}

func (r *riskRepo) ListByPhase(phase string, limit, offset int) ([]entities.Risk, int64, error) {
	var total int64
	if err := r.byPhase(phase).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []entities.Risk
	err := r.byPhase(phase).
		Order("risk_score desc, risk_id asc").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, total, err
}

func (r *riskRepo) CountByCategory(phase string) ([]repository.CategoryCount, error) {
	var out []repository.CategoryCount
	err := r.byPhase(phase).
		Select("category, COUNT(*) as count").
		Group("category").
		Order("count desc").
		Scan(&out).Error
	return out, err
}

func (r *riskRepo) TopByScore(phase string, n int) ([]entities.Risk, error) {
	var out []entities.Risk
	err := r.byPhase(phase).
		Order("risk_score desc, risk_id asc").
		Limit(n).
		Find(&out).Error
	return out, err
}

func (r *riskRepo) ListAllJoined() ([]entities.Risk, error) {
	var out []entities.Risk
	err := r.db.
		Preload("Mitigations", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		Order("risk_score desc, risk_id asc").
		Find(&out).Error
	return out, err
}
