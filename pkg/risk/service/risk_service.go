package service

import (
	"errors"

	"riskbot/entities"
	"riskbot/pkg/risk/repository"
)

// ErrNotFound is returned when a referenced risk record does not exist.
var ErrNotFound = errors.New("risk not found")

type Report struct {
	Phase      string                     `json:"phase"`
	Total      int64                      `json:"total"`
	Categories []repository.CategoryCount `json:"categories"`
	Top        []entities.Risk            `json:"top"`
}

type RiskService interface {
	Commit(r *entities.Risk) (uint, error)
	AppendMitigation(riskID uint, userID int64, username, mitigation, expectedResult string) error
	GetByID(id uint) (*entities.Risk, error)
	ListByPhase(phase string, page, pageSize int) ([]entities.Risk, int64, error)
	ReportByPhase(phase string) (*Report, error)
	ListAllJoined() ([]entities.Risk, error)
}
