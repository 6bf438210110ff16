package serviceImp

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"riskbot/entities"
	repo "riskbot/pkg/risk/repository"
	"riskbot/pkg/risk/service"
)

const topRisks = 5

type riskSvc struct{ r repo.RiskRepository }

func New(r repo.RiskRepository) service.RiskService { return &riskSvc{r} }

func (s *riskSvc) Commit(risk *entities.Risk) (uint, error) {
	if err := s.r.Create(risk); err != nil {
		return 0, fmt.Errorf("commit risk: %w", err)
	}
	return risk.RiskID, nil
}

func (s *riskSvc) AppendMitigation(riskID uint, userID int64, username, mitigation, expectedResult string) error {
	if _, err := s.r.FindByID(riskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return service.ErrNotFound
		}
		return err
	}
	return s.r.AddMitigation(&entities.AdditionalMitigation{
		RiskID:         riskID,
		UserID:         userID,
		Username:       username,
		Mitigation:     mitigation,
		ExpectedResult: expectedResult,
	})
}

func (s *riskSvc) GetByID(id uint) (*entities.Risk, error) {
	out, err := s.r.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrNotFound
	}
	return out, err
}

func (s *riskSvc) ListByPhase(phase string, page, pageSize int) ([]entities.Risk, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 30
	}
	return s.r.ListByPhase(phase, pageSize, (page-1)*pageSize)
}

func (s *riskSvc) ReportByPhase(phase string) (*service.Report, error) {
	if phase == "" {
		phase = "all"
	}
	total, err := s.total(phase)
	if err != nil {
		return nil, err
	}
	cats, err := s.r.CountByCategory(phase)
	if err != nil {
		return nil, err
	}
	top, err := s.r.TopByScore(phase, topRisks)
	if err != nil {
		return nil, err
	}
	return &service.Report{Phase: phase, Total: total, Categories: cats, Top: top}, nil
}

func (s *riskSvc) total(phase string) (int64, error) {
	_, total, err := s.r.ListByPhase(phase, 1, 0)
	return total, err
}

func (s *riskSvc) ListAllJoined() ([]entities.Risk, error) { return s.r.ListAllJoined() }
