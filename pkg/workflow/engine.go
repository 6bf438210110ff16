package workflow

import (
	"fmt"
	"log"
	"strings"

	"riskbot/entities"
	risksvc "riskbot/pkg/risk/service"
	"riskbot/pkg/scoring"
	"riskbot/pkg/session"
	subsvc "riskbot/pkg/subscription/service"
)

// Exporter is the spreadsheet collaborator: returns a filename, cares about
// nothing conversational.
type Exporter interface {
	Export() (string, error)
}

// Engine drives the guided-intake conversation. It is synchronous and
// non-blocking; the transport suspends between messages, not the engine.
type Engine struct {
	store  *session.Store
	risks  risksvc.RiskService
	subs   subsvc.SubscriptionService
	export Exporter
}

func New(store *session.Store, risks risksvc.RiskService, subs subsvc.SubscriptionService, export Exporter) *Engine {
	return &Engine{store: store, risks: risks, subs: subs, export: export}
}

// Start handles first contact (or an explicit restart): the user is put on
// the default subscription and any in-progress draft is abandoned.
func (e *Engine) Start(userID int64, username string) Render {
	if err := e.subs.Ensure(userID); err != nil {
		log.Printf("[workflow] ensure subscription %d: %v", userID, err)
	}
	d := e.store.Reset(userID, username)
	return e.renderStep(d)
}

// OnChoice interprets a button token against the user's current step.
// Unknown tokens re-render the current screen unchanged.
func (e *Engine) OnChoice(userID int64, username, token string) Render {
	d := e.store.Get(userID, username)
	verb, arg := splitToken(token)
	if verb == tokBack {
		if r, ok := e.resolveBack(d, arg); ok {
			return r
		}
		return e.renderStep(d)
	}
	if def, ok := steps[d.Step]; ok && def.onChoice != nil {
		if r, handled := def.onChoice(e, d, verb, arg); handled {
			return r
		}
	}
	return e.renderStep(d)
}

// OnText feeds a free-text message to the step awaiting it. A validation
// failure re-renders the same step with an explanatory first line and leaves
// the draft untouched.
func (e *Engine) OnText(userID int64, username, text string) Render {
	d := e.store.Get(userID, username)
	def, ok := steps[d.Step]
	if !ok || def.onText == nil {
		return Render{
			Text:    "Не понимаю ваше сообщение. Выберите действие из меню:",
			Options: []Option{opt("🏠 В главное меню", "back:menu")},
		}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return e.rerenderWith(d, "Сообщение не должно быть пустым.")
	}
	return def.onText(e, d, text)
}

func (e *Engine) renderStep(d *session.Draft) Render {
	def, ok := steps[d.Step]
	if !ok {
		d.Step = session.StepMenu
		def = steps[session.StepMenu]
	}
	return def.render(e, d)
}

// rerenderWith repeats the current screen under an explanatory message.
func (e *Engine) rerenderWith(d *session.Draft, msg string) Render {
	r := e.renderStep(d)
	r.Text = msg + "\n\n" + r.Text
	return r
}

func splitToken(token string) (verb, arg string) {
	if i := strings.IndexByte(token, ':'); i >= 0 {
		return token[:i], token[i+1:]
	}
	return token, ""
}

func tripleOrZero(t *session.Triple) session.Triple {
	if t == nil {
		return session.Triple{}
	}
	return *t
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// commit scores the draft, persists it and, on success, destroys it. The
// composite is always computed from the pre-mitigation most-likely values,
// re-evaluation or not.
func (e *Engine) commit(d *session.Draft) Render {
	sched := tripleOrZero(d.Schedule)
	cost := tripleOrZero(d.Cost)
	prob := intOrZero(d.Probability)

	score := scoring.Composite(
		scoring.Scale(scoring.KindCost, cost.MostLikely),
		scoring.Scale(scoring.KindSchedule, sched.MostLikely),
		scoring.Scale(scoring.KindProbability, prob),
	)

	schedRe := tripleOrZero(d.ScheduleRe)
	costRe := tripleOrZero(d.CostRe)
	reeval := d.Reevaluate != nil && *d.Reevaluate

	risk := &entities.Risk{
		UserID:      d.UserID,
		Username:    d.Username,
		Phase:       d.Phase,
		Object:      d.Object,
		Category:    d.Category,
		Description: d.Description,

		ImpactScheduleMin:        sched.Min,
		ImpactScheduleMostLikely: sched.MostLikely,
		ImpactScheduleMax:        sched.Max,
		ImpactCostMin:            cost.Min,
		ImpactCostMostLikely:     cost.MostLikely,
		ImpactCostMax:            cost.Max,
		Probability:              prob,

		ImpactScheduleMinRe:        schedRe.Min,
		ImpactScheduleMostLikelyRe: schedRe.MostLikely,
		ImpactScheduleMaxRe:        schedRe.Max,
		ImpactCostMinRe:            costRe.Min,
		ImpactCostMostLikelyRe:     costRe.MostLikely,
		ImpactCostMaxRe:            costRe.Max,
		ProbabilityRe:              intOrZero(d.ProbabilityRe),

		RiskScore:      score,
		Timeline:       d.Timeline,
		Mitigation:     d.Mitigation,
		ExpectedResult: d.ExpectedResult,

		ReevaluationNeeded:        reeval,
		NeedsScheduleEvaluation:   d.NeedsScheduleEval,
		NeedsCostEvaluation:       d.NeedsCostEval,
		NeedsScheduleEvaluationRe: d.NeedsScheduleEvalRe,
		NeedsCostEvaluationRe:     d.NeedsCostEvalRe,
	}

	if _, err := e.risks.Commit(risk); err != nil {
		log.Printf("[workflow] commit for user %d: %v", d.UserID, err)
		// draft preserved so retry does not re-prompt anything
		d.Step = session.StepCommitFailed
		return e.renderStep(d)
	}

	summary := e.summary(d, prob, score)
	e.store.Delete(d.UserID)
	return Render{
		Text:    summary,
		Options: []Option{opt("🏠 В главное меню", "back:menu")},
	}
}

func (e *Engine) summary(d *session.Draft, prob, score int) string {
	sched := tripleOrZero(d.Schedule)
	cost := tripleOrZero(d.Cost)

	var b strings.Builder
	b.WriteString("✅ Риск успешно сохранен!\n\n")
	fmt.Fprintf(&b, "📊 Рейтинг риска: %d\n\n", score)
	b.WriteString("📋 Детали:\n")
	fmt.Fprintf(&b, "• Фаза: %s\n", d.Phase)
	fmt.Fprintf(&b, "• Объект: %s\n", d.Object)
	fmt.Fprintf(&b, "• Категория: %s\n", d.Category)
	fmt.Fprintf(&b, "• Описание: %s\n", d.Description)
	fmt.Fprintf(&b, "• Влияние на сроки: %d / %d / %d дней\n", sched.Min, sched.MostLikely, sched.Max)
	fmt.Fprintf(&b, "• Влияние на стоимость: %d / %d / %d млн. руб.\n", cost.Min, cost.MostLikely, cost.Max)
	fmt.Fprintf(&b, "• Вероятность: %d%%\n", prob)
	fmt.Fprintf(&b, "• Срок реализации: %s\n", d.Timeline)
	fmt.Fprintf(&b, "• Мероприятие: %s\n", d.Mitigation)
	fmt.Fprintf(&b, "• Ожидаемый результат: %s\n", d.ExpectedResult)

	if d.Reevaluate != nil && *d.Reevaluate {
		schedRe := tripleOrZero(d.ScheduleRe)
		costRe := tripleOrZero(d.CostRe)
		b.WriteString("\n📈 После мероприятий:\n")
		fmt.Fprintf(&b, "• Влияние на сроки: %d / %d / %d дней\n", schedRe.Min, schedRe.MostLikely, schedRe.Max)
		fmt.Fprintf(&b, "• Влияние на стоимость: %d / %d / %d млн. руб.\n", costRe.Min, costRe.MostLikely, costRe.Max)
		fmt.Fprintf(&b, "• Вероятность: %d%%\n", intOrZero(d.ProbabilityRe))
	}
	return b.String()
}

func (e *Engine) doExport(d *session.Draft) Render {
	name, err := e.export.Export()
	if err != nil {
		log.Printf("[workflow] export: %v", err)
		return Render{
			Text:    "Произошла ошибка при создании файла.",
			Options: []Option{opt("🔙 Вернуться в меню", "back:menu")},
		}
	}
	return Render{
		Text:    "📊 Экспорт данных по рискам готов: " + name,
		Options: []Option{opt("🔙 Вернуться в меню", "back:menu")},
	}
}
