package repository

import "riskbot/entities"

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type RiskRepository interface {
	Create(r *entities.Risk) error
	FindByID(id uint) (*entities.Risk, error)
	AddMitigation(m *entities.AdditionalMitigation) error
	// ListByPhase pages records ordered by risk_score desc, id asc.
	// phase "all" means no filter.
	ListByPhase(phase string, limit, offset int) ([]entities.Risk, int64, error)
	CountByCategory(phase string) ([]CategoryCount, error)
	TopByScore(phase string, n int) ([]entities.Risk, error)
	ListAllJoined() ([]entities.Risk, error)
}
