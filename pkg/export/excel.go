package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"riskbot/entities"
	risksvc "riskbot/pkg/risk/service"
)

const sheetName = "Риски"

var headers = []string{
	"Номер риска",
	"От кого риск",
	"Фаза/Опция",
	"Объект",
	"Функциональное направление риска",
	"Описание риска",
	"Влияние на сроки до мероприятий (мин)",
	"Влияние на сроки до мероприятий (ожидаемое)",
	"Влияние на сроки до мероприятий (макс)",
	"Влияние на стоимость до мероприятий (мин)",
	"Влияние на стоимость до мероприятий (ожидаемое)",
	"Влияние на стоимость до мероприятий (макс)",
	"Влияние на сроки после мероприятий (мин)",
	"Влияние на сроки после мероприятий (ожидаемое)",
	"Влияние на сроки после мероприятий (макс)",
	"Влияние на стоимость после мероприятий (мин)",
	"Влияние на стоимость после мероприятий (ожидаемое)",
	"Влияние на стоимость после мероприятий (макс)",
	"Вероятность до мероприятий",
	"Вероятность после мероприятий",
	"Рейтинг риска",
	"Срок реализации риска",
	"Мероприятие по митигации",
	"Ожидаемый результат",
	"Нужна переоценка",
	"Нужна оценка сроков",
	"Нужна оценка стоимости",
	"Нужна переоценка сроков",
	"Нужна переоценка стоимости",
	"Дата внесения",
	"Дополнительные мероприятия",
	"Ожидаемые результаты дополнительных мероприятий",
	"Добавлено пользователями",
	"Дата добавления мероприятий",
}

// Exporter dumps every risk with its supplementary mitigations into one
// xlsx sheet ordered by rating.
type Exporter struct {
	risks risksvc.RiskService
	dir   string
	now   func() time.Time
}

func New(risks risksvc.RiskService, dir string) *Exporter {
	return &Exporter{risks: risks, dir: dir, now: time.Now}
}

func (x *Exporter) Export() (string, error) {
	risks, err := x.risks.ListAllJoined()
	if err != nil {
		return "", fmt.Errorf("load risks: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", err
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return "", err
	}

	for i, r := range risks {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		if err := f.SetSheetRow(sheetName, cell, rowFor(&r)); err != nil {
			return "", err
		}
	}

	name := fmt.Sprintf("Риски_%s.xlsx", x.now().Format("02012006_1504"))
	if err := f.SaveAs(filepath.Join(x.dir, name)); err != nil {
		return "", fmt.Errorf("save xlsx: %w", err)
	}
	return name, nil
}

func rowFor(r *entities.Risk) *[]any {
	var actions, results, users, dates []string
	for _, m := range r.Mitigations {
		actions = append(actions, m.Mitigation)
		results = append(results, m.ExpectedResult)
		users = append(users, m.Username)
		dates = append(dates, m.CreatedAt.Format("2006-01-02 15:04"))
	}
	join := func(ss []string) string { return strings.Join(ss, "\n\n") }

	row := []any{
		r.RiskID,
		r.Username,
		r.Phase,
		r.Object,
		r.Category,
		r.Description,
		r.ImpactScheduleMin, r.ImpactScheduleMostLikely, r.ImpactScheduleMax,
		r.ImpactCostMin, r.ImpactCostMostLikely, r.ImpactCostMax,
		r.ImpactScheduleMinRe, r.ImpactScheduleMostLikelyRe, r.ImpactScheduleMaxRe,
		r.ImpactCostMinRe, r.ImpactCostMostLikelyRe, r.ImpactCostMaxRe,
		r.Probability,
		r.ProbabilityRe,
		r.RiskScore,
		r.Timeline,
		r.Mitigation,
		r.ExpectedResult,
		yesNo(r.ReevaluationNeeded),
		yesNo(r.NeedsScheduleEvaluation),
		yesNo(r.NeedsCostEvaluation),
		yesNo(r.NeedsScheduleEvaluationRe),
		yesNo(r.NeedsCostEvaluationRe),
		r.CreatedAt.Format("2006-01-02 15:04"),
		join(actions),
		join(results),
		join(users),
		join(dates),
	}
	return &row
}

func yesNo(v bool) string {
	if v {
		return "Да"
	}
	return "Нет"
}
