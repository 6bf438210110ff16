package workflow

import (
	"fmt"
	"strconv"

	"riskbot/pkg/scoring"
	"riskbot/pkg/session"
)

type stepDef struct {
	render   func(e *Engine, d *session.Draft) Render
	onChoice func(e *Engine, d *session.Draft, verb, arg string) (Render, bool)
	onText   func(e *Engine, d *session.Draft, text string) Render
}

// steps is the whole machine: one row per screen. Transitions set d.Step and
// re-render through the table; nothing dispatches on token prefixes outside
// of it.
var steps map[session.Step]stepDef

func init() {
	steps = map[session.Step]stepDef{
		session.StepMenu:           {render: renderMenu, onChoice: menuChoice},
		session.StepPhase:          {render: renderPhase, onChoice: phaseChoice},
		session.StepPhaseCustom:    {render: renderPhaseCustom, onText: phaseText},
		session.StepObject:         {render: renderObject, onChoice: objectChoice},
		session.StepObjectCustom:   {render: renderObjectCustom, onText: objectText},
		session.StepCategory:       {render: renderCategory, onChoice: categoryChoice},
		session.StepCategoryCustom: {render: renderCategoryCustom, onText: categoryText},
		session.StepDescription:    {render: renderDescription, onText: descriptionText},

		session.StepScheduleImpact:    {render: renderScheduleImpact, onChoice: scheduleImpactChoice},
		session.StepScheduleValues:    {render: renderScheduleValues, onText: scheduleValuesText},
		session.StepCostImpact:        {render: renderCostImpact, onChoice: costImpactChoice},
		session.StepCostValues:        {render: renderCostValues, onText: costValuesText},
		session.StepProbability:       {render: renderProbability, onChoice: probabilityChoice},
		session.StepProbabilityCustom: {render: renderProbabilityCustom, onText: probabilityText},

		session.StepTimeline:         {render: renderTimeline, onText: timelineText},
		session.StepMitigationChoice: {render: renderMitigationChoice, onChoice: mitigationChoiceChoice},
		session.StepMitigation:       {render: renderMitigation, onText: mitigationText},
		session.StepExpectedResult:   {render: renderExpectedResult, onText: expectedResultText},

		session.StepScheduleImpactRe:    {render: renderScheduleImpactRe, onChoice: scheduleImpactReChoice},
		session.StepScheduleValuesRe:    {render: renderScheduleValuesRe, onText: scheduleValuesReText},
		session.StepCostImpactRe:        {render: renderCostImpactRe, onChoice: costImpactReChoice},
		session.StepCostValuesRe:        {render: renderCostValuesRe, onText: costValuesReText},
		session.StepProbabilityRe:       {render: renderProbabilityRe, onChoice: probabilityReChoice},
		session.StepProbabilityCustomRe: {render: renderProbabilityCustomRe, onText: probabilityReText},

		session.StepCommitFailed: {render: renderCommitFailed, onChoice: commitFailedChoice},

		session.StepViewPhase:           {render: renderViewPhase, onChoice: viewPhaseChoice},
		session.StepViewList:            {render: renderViewList, onChoice: viewListChoice},
		session.StepRiskDetails:         {render: renderRiskDetails, onChoice: riskDetailsChoice},
		session.StepAmendMitigation:     {render: renderAmendMitigation, onText: amendMitigationText},
		session.StepAmendExpectedResult: {render: renderAmendExpectedResult, onText: amendExpectedResultText},

		session.StepReportPhase: {render: renderReportPhase, onChoice: reportPhaseChoice},
	}
}

// --- main menu ---

func renderMenu(e *Engine, d *session.Draft) Render {
	subLabel := "🔔 Подписаться"
	if e.subs.IsSubscribed(d.UserID) {
		subLabel = "🔕 Отписаться"
	}
	return Render{
		Text: "Добро пожаловать в Ежедневник рисков проекта!",
		Options: []Option{
			opt("📢 Сообщить риск", tokSubmitRisk),
			opt("🔍 Просмотреть риски/мероприятия", tokViewRisks),
			opt("📊 Отчёт по рискам", tokReport),
			opt("💾 Экспорт в Excel", tokExportExcel),
			opt(subLabel, tokToggleSub),
		},
	}
}

func menuChoice(e *Engine, d *session.Draft, verb, arg string) (Render, bool) {
	switch verb {
	case tokSubmitRisk:
		d.Step = session.StepPhase
		return e.renderStep(d), true
	case tokViewRisks:
		d.Step = session.StepViewPhase
		return e.renderStep(d), true
	case tokReport:
		d.Step = session.StepReportPhase
		return e.renderStep(d), true
	case tokExportExcel:
		return e.doExport(d), true
	case tokToggleSub:
		on, err := e.subs.Toggle(d.UserID)
		if err != nil {
			return e.rerenderWith(d, "Не удалось изменить подписку, попробуйте позже."), true
		}
		msg := "🔕 Вы отписаны от напоминаний."
		if on {
			msg = "🔔 Вы подписаны на ежедневные напоминания!"
		}
		return e.rerenderWith(d, msg), true
	}
	return Render{}, false
}

// --- phase / object / category / description ---

func renderPhase(e *Engine, d *session.Draft) Render {
	opts := make([]Option, 0, len(Phases)+2)
	for _, p := range Phases {
		opts = append(opts, opt(p, tokPhase+":"+p))
	}
	opts = append(opts,
		opt("📝 Ввести свою фазу", tokCustomPhase),
		opt("🔙 Вернуться в меню", "back:menu"),
	)
	return Render{Text: "Выберите фазу проекта или введите свою:", Options: opts}
}

func phaseChoice(e *Engine, d *session.Draft, verb, arg string) (Render, bool) {
	switch verb {
	case tokPhase:
		d.Phase = arg
		d.Step = session.StepObject
		return e.renderStep(d), true
	case tokCustomPhase:
		d.Step = session.StepPhaseCustom
		return e.renderStep(d), true
	}
	return Render{}, false
}

func renderPhaseCustom(e *Engine, d *session.Draft) Render {
	return Render{
		Text:    "Введите название фазы проекта:",
		Options: []Option{opt("🔙 Вернуться к фазе", "back:phase")},
	}
}

func phaseText(e *Engine, d *session.Draft, text string) Render {
	d.Phase = text
	d.Step = session.StepObject
	return e.renderStep(d)
}

func renderObject(e *Engine, d *session.Draft) Render {
	opts := make([]Option, 0, len(Objects)+2)
	for _, o := range Objects {
		opts = append(opts, opt(o, tokObject+":"+o))
	}
	opts = append(opts,
		opt("📝 Ввести свой объект", tokCustomObject),
		opt("🔙 Вернуться к фазе", "back:phase"),
	)
	return Render{
		Text:    fmt.Sprintf("Фаза: %s\nВыберите объект или введите свой:", d.Phase),
		Options: opts,
	}
}

func objectChoice(e *Engine, d *session.Draft, verb, arg string) (Render, bool) {
	switch verb {
	case tokObject:
		d.Object = arg
		d.Step = session.StepCategory
		return e.renderStep(d), true
	case tokCustomObject:
		d.Step = session.StepObjectCustom
		return e.renderStep(d), true
	}
	return Render{}, false
}

func renderObjectCustom(e *Engine, d *session.Draft) Render {
	return Render{
		Text:    "Введите название объекта:",
		Options: []Option{opt("🔙 Вернуться к объекту", "back:object")},
	}
}

func objectText(e *Engine, d *session.Draft, text string) Render {
	d.Object = text
	d.Step = session.StepCategory
	return e.renderStep(d)
}

func renderCategory(e *Engine, d *session.Draft) Render {
	opts := make([]Option, 0, len(Categories)+2)
	for _, c := range Categories {
		opts = append(opts, opt(c, tokCategory+":"+c))
	}
	opts = append(opts,
		opt("📝 Ввести свое функциональное направление риска", tokCustomCat),
		opt("🔙 Вернуться к объекту", "back:object"),
	)
	return Render{
		Text:    fmt.Sprintf("Объект: %s\nВыберите функциональное направление риска или введите свое:", d.Object),
		Options: opts,
	}
}

func categoryChoice(e *Engine, d *session.Draft, verb, arg string) (Render, bool) {
	switch verb {
	case tokCategory:
		d.Category = arg
		d.Step = session.StepDescription
		return e.renderStep(d), true
	case tokCustomCat:
		d.Step = session.StepCategoryCustom
		return e.renderStep(d), true
	}
	return Render{}, false
}

func renderCategoryCustom(e *Engine, d *session.Draft) Render {
	return Render{
		Text:    "Введите функциональное направление риска:",
		Options: []Option{opt("🔙 Вернуться к категории", "back:category")},
	}
}

func categoryText(e *Engine, d *session.Draft, text string) Render {
	d.Category = text
	d.Step = session.StepDescription
	return e.renderStep(d)
}

func renderDescription(e *Engine, d *session.Draft) Render {
	return Render{
		Text:    fmt.Sprintf("Категория: %s\nОпишите риск:", d.Category),
		Options: []Option{opt("🔙 Вернуться к категории", "back:category")},
	}
}

func descriptionText(e *Engine, d *session.Draft, text string) Render {
	d.Description = text
	d.Step = session.StepScheduleImpact
	return e.renderStep(d)
}

// --- pre-mitigation impact and probability ---

func impactOptions(noLabel, evalLabel, backPoint string) []Option {
	return []Option{
		opt(noLabel, tokNoImpact),
		opt(evalLabel, tokEvaluate),
		opt("Запросить оценку у эксперта", tokRequestEval),
		opt("🔙 Вернуться на предыдущий шаг", "back:"+backPoint),
	}
}

func renderScheduleImpact(e *Engine, d *session.Draft) Render {
	return Render{
		Text:    "Влияние на сроки (оценка без мероприятий, в днях):\nВыберите вариант:",
		Options: impactOptions("Не влияет на сроки", "Оценить влияние на сроки", "description"),
	}
}

func scheduleImpactChoice(e *Engine, d *session.Draft, verb, arg string) (Render, bool) {
	switch verb {
	case tokNoImpact:
		d.Schedule = &session.Triple{}
		d.NeedsScheduleEval = false
		d.Step = session.StepCostImpact
		return e.renderStep(d), true
	case tokRequestEval:
		// deferred to an expert: zero triple, flag set
		d.Schedule = &session.Triple{}
		d.NeedsScheduleEval = true
		d.Step = session.StepCostImpact
		return e.renderStep(d), true
	case tokEvaluate:
		d.NeedsScheduleEval = false
		d.Step = session.StepScheduleValues
		return e.renderStep(d), true
	}
	return Render{}, false
}

func renderScheduleValues(e *Engine, d *session.Draft) Render {
	return Render{
		Text: "Влияние на сроки (оценка без мероприятий):\n" +
			"Введите минимальное, наиболее вероятное и максимальное влияние на сроки (в днях), " +
			"разделенные пробелом, запятой или новой строкой:",
		Options: []Option{opt("🔙 Вернуться к срокам", "back:schedule_impact")},
	}
}

func scheduleValuesText(e *Engine, d *session.Draft, text string) Render {
	t, verr := parseTriple(text)
	if verr != nil {
		return e.rerenderWith(d, verr.Message)
	}
	d.Schedule = &t
	d.Step = session.StepCostImpact
	return e.renderStep(d)
}

func renderCostImpact(e *Engine, d *session.Draft) Render {
	return Render{
		Text:    "Влияние на стоимость (оценка без мероприятий, в млн.руб.):\nВыберите вариант:",
		Options: impactOptions("Не влияет на стоимость", "Оценить влияние на стоимость", "schedule_impact"),
	}
}

func costImpactChoice(e *Engine, d *session.Draft, verb, arg string) (Render, bool) {
	switch verb {
	case tokNoImpact:
		d.Cost = &session.Triple{}
		d.NeedsCostEval = false
		d.Step = session.StepProbability
		return e.renderStep(d), true
	case tokRequestEval:
		d.Cost = &session.Triple{}
		d.NeedsCostEval = true
		d.Step = session.StepProbability
		return e.renderStep(d), true
	case tokEvaluate:
		d.NeedsCostEval = false
		d.Step = session.StepCostValues
		return e.renderStep(d), true
	}
	return Render{}, false
}

func renderCostValues(e *Engine, d *session.Draft) Render {
	return Render{
		Text: "Влияние на стоимость (оценка без мероприятий):\n" +
			"Введите минимальное, наиболее вероятное и максимальное влияние на стоимость (в млн. руб.), " +
			"разделенные пробелом, запятой или новой строкой:",
		Options: []Option{opt("🔙 Вернуться к стоимости", "back:cost_impact")},
	}
}

func costValuesText(e *Engine, d *session.Draft, text string) Render {
	t, verr := parseTriple(text)
	if verr != nil {
		return e.rerenderWith(d, verr.Message)
	}
	d.Cost = &t
	d.Step = session.StepProbability
	return e.renderStep(d)
}

func probabilityOptions(backPoint string) []Option {
	opts := make([]Option, 0, 7)
	for i, label := range probabilityLabels {
		opts = append(opts, opt(label, fmt.Sprintf("%s:%d", tokProb, i+1)))
	}
	opts = append(opts,
		opt("📝 Ввести свою вероятность", tokCustomProb),
		opt("🔙 Вернуться к стоимости", "back:"+backPoint),
	)
	return opts
}

func renderProbability(e *Engine, d *session.Draft) Render {
	return Render{
		Text:    "Оцените вероятность возникновения риска или введите свою:",
		Options: probabilityOptions("cost_impact"),
	}
}

func probabilityChoice(e *Engine, d *session.Draft, verb, arg string) (Render, bool) {
	switch verb {
	case tokProb:
		level, err := strconv.Atoi(arg)
		if err != nil {
			return Render{}, false
		}
		p, ok := scoring.ProbabilityBand(level)
		if !ok {
			return Render{}, false
		}
		d.Probability = &p
		d.Step = session.StepTimeline
		return e.renderStep(d), true
	case tokCustomProb:
		d.Step = session.StepProbabilityCustom
		return e.renderStep(d), true
	}
	return Render{}, false
}

func renderProbabilityCustom(e *Engine, d *session.Draft) Render {
	return Render{
		Text:    "Введите оценку вероятности (в процентах, от 0 до 100):",
		Options: []Option{opt("🔙 Вернуться к вероятности", "back:probability")},
	}
}

func probabilityText(e *Engine, d *session.Draft, text string) Render {
	p, verr := parseProbability(text)
	if verr != nil {
		return e.rerenderWith(d, verr.Message)
	}
	d.Probability = &p
	d.Step = session.StepTimeline
	return e.renderStep(d)
}

// --- response plan ---

func renderTimeline(e *Engine, d *session.Draft) Render {
	return Render{
		Text:    "Укажите примерный период реализации риска:",
		Options: []Option{opt("🔙 Вернуться к вероятности", "back:probability")},
	}
}

func timelineText(e *Engine, d *session.Draft, text string) Render {
	d.Timeline = text
	d.Step = session.StepMitigationChoice
	return e.renderStep(d)
}

func renderMitigationChoice(e *Engine, d *session.Draft) Render {
	return Render{
		Text: "Выберите действие:",
		Options: []Option{
			opt("Добавить мероприятие по митигации и внести оценку", tokMitigateEval),
			opt("Заполнить мероприятие по митигации без переоценки", tokMitigateOnly),
			opt("🔙 Вернуться к сроку", "back:timeline"),
		},
	}
}

func mitigationChoiceChoice(e *Engine, d *session.Draft, verb, arg string) (Render, bool) {
	switch verb {
	case tokMitigateEval, tokMitigateOnly:
		reeval := verb == tokMitigateEval
		d.Reevaluate = &reeval
		d.Step = session.StepMitigation
		return e.renderStep(d), true
	}
	return Render{}, false
}

func renderMitigation(e *Engine, d *session.Draft) Render {
	return Render{
		Text:    "Введите мероприятие по митигации риска:",
		Options: []Option{opt("🔙 Вернуться к выбору", "back:mitigation_choice")},
	}
}

func mitigationText(e *Engine, d *session.Draft, text string) Render {
	d.Mitigation = text
	d.Step = session.StepExpectedResult
	return e.renderStep(d)
}

func renderExpectedResult(e *Engine, d *session.Draft) Render {
	return Render{
		Text:    "Ожидаемый результат от мероприятия (опишите текстом):",
		Options: []Option{opt("🔙 Вернуться к мероприятию", "back:mitigation")},
	}
}

func expectedResultText(e *Engine, d *session.Draft, text string) Render {
	d.ExpectedResult = text
	if d.Reevaluate != nil && *d.Reevaluate {
		d.Step = session.StepScheduleImpactRe
		return e.renderStep(d)
	}
	return e.commit(d)
}

// --- post-mitigation re-evaluation: same decision shapes, _re storage ---

func renderScheduleImpactRe(e *Engine, d *session.Draft) Render {
	return Render{
		Text:    "Влияние на сроки (оценка с мероприятиями, в днях):\nВыберите вариант:",
		Options: impactOptions("Не влияет на сроки", "Оценить влияние на сроки", "expected_result"),
	}
}

func scheduleImpactReChoice(e *Engine, d *session.Draft, verb, arg string) (Render, bool) {
	switch verb {
	case tokNoImpact:
		d.ScheduleRe = &session.Triple{}
		d.NeedsScheduleEvalRe = false
		d.Step = session.StepCostImpactRe
		return e.renderStep(d), true
	case tokRequestEval:
		d.ScheduleRe = &session.Triple{}
		d.NeedsScheduleEvalRe = true
		d.Step = session.StepCostImpactRe
		return e.renderStep(d), true
	case tokEvaluate:
		d.NeedsScheduleEvalRe = false
		d.Step = session.StepScheduleValuesRe
		return e.renderStep(d), true
	}
	return Render{}, false
}

func renderScheduleValuesRe(e *Engine, d *session.Draft) Render {
	return Render{
		Text: "Влияние на сроки (оценка с мероприятиями):\n" +
			"Введите минимальное, наиболее вероятное и максимальное влияние на сроки (в днях), " +
			"разделенные пробелом, запятой или новой строкой:",
		Options: []Option{opt("🔙 Вернуться к срокам", "back:schedule_impact_re")},
	}
}

func scheduleValuesReText(e *Engine, d *session.Draft, text string) Render {
	t, verr := parseTriple(text)
	if verr != nil {
		return e.rerenderWith(d, verr.Message)
	}
	d.ScheduleRe = &t
	d.Step = session.StepCostImpactRe
	return e.renderStep(d)
}

func renderCostImpactRe(e *Engine, d *session.Draft) Render {
	return Render{
		Text:    "Влияние на стоимость (оценка с мероприятиями, в млн.руб.):\nВыберите вариант:",
		Options: impactOptions("Не влияет на стоимость", "Оценить влияние на стоимость", "schedule_impact_re"),
	}
}

func costImpactReChoice(e *Engine, d *session.Draft, verb, arg string) (Render, bool) {
	switch verb {
	case tokNoImpact:
		d.CostRe = &session.Triple{}
		d.NeedsCostEvalRe = false
		d.Step = session.StepProbabilityRe
		return e.renderStep(d), true
	case tokRequestEval:
		d.CostRe = &session.Triple{}
		d.NeedsCostEvalRe = true
		d.Step = session.StepProbabilityRe
		return e.renderStep(d), true
	case tokEvaluate:
		d.NeedsCostEvalRe = false
		d.Step = session.StepCostValuesRe
		return e.renderStep(d), true
	}
	return Render{}, false
}

func renderCostValuesRe(e *Engine, d *session.Draft) Render {
	return Render{
		Text: "Влияние на стоимость (оценка с мероприятиями):\n" +
			"Введите минимальное, наиболее вероятное и максимальное влияние на стоимость (в млн. руб.), " +
			"разделенные пробелом, запятой или новой строкой:",
		Options: []Option{opt("🔙 Вернуться к стоимости", "back:cost_impact_re")},
	}
}

func costValuesReText(e *Engine, d *session.Draft, text string) Render {
	t, verr := parseTriple(text)
	if verr != nil {
		return e.rerenderWith(d, verr.Message)
	}
	d.CostRe = &t
	d.Step = session.StepProbabilityRe
	return e.renderStep(d)
}

func renderProbabilityRe(e *Engine, d *session.Draft) Render {
	return Render{
		Text:    "Оцените вероятность возникновения риска после мероприятий или введите свою:",
		Options: probabilityOptions("cost_impact_re"),
	}
}

func probabilityReChoice(e *Engine, d *session.Draft, verb, arg string) (Render, bool) {
	switch verb {
	case tokProb:
		level, err := strconv.Atoi(arg)
		if err != nil {
			return Render{}, false
		}
		p, ok := scoring.ProbabilityBand(level)
		if !ok {
			return Render{}, false
		}
		d.ProbabilityRe = &p
		return e.commit(d), true
	case tokCustomProb:
		d.Step = session.StepProbabilityCustomRe
		return e.renderStep(d), true
	}
	return Render{}, false
}

func renderProbabilityCustomRe(e *Engine, d *session.Draft) Render {
	return Render{
		Text:    "Введите оценку вероятности после мероприятий (в процентах, от 0 до 100):",
		Options: []Option{opt("🔙 Вернуться к вероятности", "back:probability_re")},
	}
}

func probabilityReText(e *Engine, d *session.Draft, text string) Render {
	p, verr := parseProbability(text)
	if verr != nil {
		return e.rerenderWith(d, verr.Message)
	}
	d.ProbabilityRe = &p
	return e.commit(d)
}

// --- commit retry ---

func renderCommitFailed(e *Engine, d *session.Draft) Render {
	return Render{
		Text: "Произошла ошибка при сохранении риска. Пожалуйста, попробуйте снова.",
		Options: []Option{
			opt("🔁 Повторить сохранение", tokRetryCommit),
			opt("🏠 В главное меню", "back:menu"),
		},
	}
}

func commitFailedChoice(e *Engine, d *session.Draft, verb, arg string) (Render, bool) {
	if verb == tokRetryCommit {
		return e.commit(d), true
	}
	return Render{}, false
}
