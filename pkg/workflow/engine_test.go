package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskbot/entities"
	risksvc "riskbot/pkg/risk/service"
	"riskbot/pkg/session"
)

type fakeRisks struct {
	committed []entities.Risk
	failNext  bool
	byID      map[uint]*entities.Risk
	appended  []string
}

func (f *fakeRisks) Commit(r *entities.Risk) (uint, error) {
	if f.failNext {
		f.failNext = false
		return 0, errors.New("disk full")
	}
	f.committed = append(f.committed, *r)
	return uint(len(f.committed)), nil
}

func (f *fakeRisks) AppendMitigation(riskID uint, userID int64, username, mitigation, expectedResult string) error {
	if _, ok := f.byID[riskID]; !ok {
		return risksvc.ErrNotFound
	}
	f.appended = append(f.appended, mitigation)
	return nil
}

func (f *fakeRisks) GetByID(id uint) (*entities.Risk, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, risksvc.ErrNotFound
	}
	return r, nil
}

func (f *fakeRisks) ListByPhase(phase string, page, pageSize int) ([]entities.Risk, int64, error) {
	var out []entities.Risk
	for _, r := range f.byID {
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRisks) ReportByPhase(phase string) (*risksvc.Report, error) {
	return &risksvc.Report{Phase: phase}, nil
}

func (f *fakeRisks) ListAllJoined() ([]entities.Risk, error) { return nil, nil }

type fakeSubsSvc struct{ subscribed bool }

func (f *fakeSubsSvc) Ensure(int64) error      { return nil }
func (f *fakeSubsSvc) IsSubscribed(int64) bool { return f.subscribed }
func (f *fakeSubsSvc) Toggle(int64) (bool, error) {
	f.subscribed = !f.subscribed
	return f.subscribed, nil
}
func (f *fakeSubsSvc) Subscribers() ([]entities.Subscription, error) { return nil, nil }
func (f *fakeSubsSvc) MarkNotified(int64, string) error              { return nil }

type fakeExporter struct{ name string }

func (f fakeExporter) Export() (string, error) { return f.name, nil }

func newTestEngine(risks *fakeRisks) (*Engine, *session.Store) {
	store := session.NewStore()
	e := New(store, risks, &fakeSubsSvc{}, fakeExporter{name: "risks.xlsx"})
	return e, store
}

const uid = int64(42)

func TestFullSubmissionWithoutReevaluation(t *testing.T) {
	risks := &fakeRisks{}
	e, _ := newTestEngine(risks)

	r := e.Start(uid, "ivan")
	assert.Contains(t, r.Text, "Ежедневник рисков")

	e.OnChoice(uid, "ivan", "submit_risk")
	e.OnChoice(uid, "ivan", "phase:3")
	e.OnChoice(uid, "ivan", "object:Скважины")
	e.OnChoice(uid, "ivan", "cat:Бурение")
	e.OnText(uid, "ivan", "Задержка поставки долот")
	e.OnChoice(uid, "ivan", "request_evaluation") // schedule deferred to expert
	e.OnChoice(uid, "ivan", "evaluate")           // cost entered by hand
	e.OnText(uid, "ivan", "100, 300, 900")
	e.OnChoice(uid, "ivan", "custom_probability")
	e.OnText(uid, "ivan", "80")
	e.OnText(uid, "ivan", "Q3 2026")
	e.OnChoice(uid, "ivan", "mitigate_without_evaluation")
	e.OnText(uid, "ivan", "Дублирование поставщика")
	r = e.OnText(uid, "ivan", "Снижение задержки")

	require.Len(t, risks.committed, 1)
	got := risks.committed[0]

	assert.Equal(t, uid, got.UserID)
	assert.Equal(t, "3", got.Phase)
	assert.Equal(t, "Скважины", got.Object)
	assert.Equal(t, "Бурение", got.Category)
	// cost 300 -> 3, schedule 0 -> 1, probability 80 -> 5
	assert.Equal(t, 9, got.RiskScore)
	assert.True(t, got.NeedsScheduleEvaluation)
	assert.False(t, got.NeedsCostEvaluation)
	assert.Zero(t, got.ImpactScheduleMostLikely)
	assert.Equal(t, 300, got.ImpactCostMostLikely)
	assert.Equal(t, 80, got.Probability)
	assert.False(t, got.ReevaluationNeeded)
	assert.Zero(t, got.ProbabilityRe)

	assert.Contains(t, r.Text, "Рейтинг риска: 9")
}

func TestSubmissionWithReevaluation(t *testing.T) {
	risks := &fakeRisks{}
	e, _ := newTestEngine(risks)

	e.Start(uid, "ivan")
	e.OnChoice(uid, "ivan", "submit_risk")
	e.OnChoice(uid, "ivan", "phase:2")
	e.OnChoice(uid, "ivan", "object:ЦПС")
	e.OnChoice(uid, "ivan", "cat:Логистика")
	e.OnText(uid, "ivan", "описание")
	e.OnChoice(uid, "ivan", "evaluate")
	e.OnText(uid, "ivan", "30 60 120") // schedule 60 -> 3
	e.OnChoice(uid, "ivan", "no_impact")
	e.OnChoice(uid, "ivan", "prob:4") // band 4 -> 47%
	e.OnText(uid, "ivan", "2026")
	e.OnChoice(uid, "ivan", "mitigate_with_evaluation")
	e.OnText(uid, "ivan", "мероприятие")
	e.OnText(uid, "ivan", "результат")
	// re-evaluation pass
	e.OnChoice(uid, "ivan", "evaluate")
	e.OnText(uid, "ivan", "5 10 20")
	e.OnChoice(uid, "ivan", "no_impact")
	r := e.OnChoice(uid, "ivan", "prob:1") // band 1 -> 10%

	require.Len(t, risks.committed, 1)
	got := risks.committed[0]

	// score still from pre-mitigation values: cost 0 -> 1, schedule 60 -> 3, prob 47 -> 3
	assert.Equal(t, 7, got.RiskScore)
	assert.Equal(t, 47, got.Probability)
	assert.True(t, got.ReevaluationNeeded)
	assert.Equal(t, 10, got.ImpactScheduleMostLikelyRe)
	assert.Equal(t, 10, got.ProbabilityRe)

	assert.Contains(t, r.Text, "После мероприятий")
}

func TestCommitFailurePreservesDraftForRetry(t *testing.T) {
	risks := &fakeRisks{failNext: true}
	e, store := newTestEngine(risks)

	e.Start(uid, "ivan")
	e.OnChoice(uid, "ivan", "submit_risk")
	e.OnChoice(uid, "ivan", "phase:1")
	e.OnChoice(uid, "ivan", "object:Кусты")
	e.OnChoice(uid, "ivan", "cat:Бурение")
	e.OnText(uid, "ivan", "описание")
	e.OnChoice(uid, "ivan", "no_impact")
	e.OnChoice(uid, "ivan", "no_impact")
	e.OnChoice(uid, "ivan", "prob:2")
	e.OnText(uid, "ivan", "2027")
	e.OnChoice(uid, "ivan", "mitigate_without_evaluation")
	e.OnText(uid, "ivan", "мероприятие")
	r := e.OnText(uid, "ivan", "результат")

	assert.Contains(t, r.Text, "ошибка при сохранении")
	require.Empty(t, risks.committed)

	d := store.Get(uid, "ivan")
	assert.Equal(t, session.StepCommitFailed, d.Step)
	assert.Equal(t, "1", d.Phase, "draft survives the failed commit")

	r = e.OnChoice(uid, "ivan", "retry_commit")
	require.Len(t, risks.committed, 1)
	assert.Contains(t, r.Text, "успешно сохранен")

	// success destroys the draft
	d = store.Get(uid, "ivan")
	assert.Equal(t, session.StepMenu, d.Step)
	assert.Empty(t, d.Phase)
}

func TestValidationKeepsStep(t *testing.T) {
	risks := &fakeRisks{}
	e, store := newTestEngine(risks)

	e.Start(uid, "ivan")
	e.OnChoice(uid, "ivan", "submit_risk")
	e.OnChoice(uid, "ivan", "phase:1")
	e.OnChoice(uid, "ivan", "object:Кусты")
	e.OnChoice(uid, "ivan", "cat:Бурение")
	e.OnText(uid, "ivan", "описание")
	e.OnChoice(uid, "ivan", "evaluate")

	r := e.OnText(uid, "ivan", "50 20 30")
	assert.Contains(t, r.Text, "в порядке возрастания")

	d := store.Get(uid, "ivan")
	assert.Equal(t, session.StepScheduleValues, d.Step)
	assert.Nil(t, d.Schedule)

	r = e.OnText(uid, "ivan", "")
	assert.Contains(t, r.Text, "не должно быть пустым")

	r = e.OnText(uid, "ivan", "10 20 30")
	assert.Equal(t, session.StepCostImpact, store.Get(uid, "ivan").Step)
	assert.Contains(t, r.Text, "стоимость")
}

func TestUnknownTokenRerendersCurrentStep(t *testing.T) {
	e, store := newTestEngine(&fakeRisks{})

	e.Start(uid, "ivan")
	e.OnChoice(uid, "ivan", "submit_risk")
	r := e.OnChoice(uid, "ivan", "bogus_token")

	assert.Equal(t, session.StepPhase, store.Get(uid, "ivan").Step)
	assert.Contains(t, r.Text, "Выберите фазу")
}

func TestToggleSubscriptionFromMenu(t *testing.T) {
	e, _ := newTestEngine(&fakeRisks{})

	e.Start(uid, "ivan")
	r := e.OnChoice(uid, "ivan", "toggle_subscription")
	assert.Contains(t, r.Text, "подписаны на ежедневные")

	r = e.OnChoice(uid, "ivan", "toggle_subscription")
	assert.Contains(t, r.Text, "отписаны")
}

func TestExportFromMenu(t *testing.T) {
	e, _ := newTestEngine(&fakeRisks{})

	e.Start(uid, "ivan")
	r := e.OnChoice(uid, "ivan", "export_excel")
	assert.Contains(t, r.Text, "risks.xlsx")
}
