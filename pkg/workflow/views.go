package workflow

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"riskbot/entities"
	risksvc "riskbot/pkg/risk/service"
	"riskbot/pkg/session"
)

const viewPageSize = 30

// --- browse committed risks ---

func renderViewPhase(e *Engine, d *session.Draft) Render {
	opts := make([]Option, 0, len(Phases)+2)
	for _, p := range Phases {
		opts = append(opts, opt(p, tokViewPhase+":"+p))
	}
	opts = append(opts,
		opt("Все фазы", tokViewPhase+":all"),
		opt("🔙 Вернуться в меню", "back:menu"),
	)
	return Render{Text: "Выберите фазу для просмотра рисков:", Options: opts}
}

func viewPhaseChoice(e *Engine, d *session.Draft, verb, arg string) (Render, bool) {
	if verb != tokViewPhase || arg == "" {
		return Render{}, false
	}
	d.ViewPhase = arg
	d.ViewPage = 1
	d.Step = session.StepViewList
	return e.renderStep(d), true
}

func renderViewList(e *Engine, d *session.Draft) Render {
	if d.ViewPage < 1 {
		d.ViewPage = 1
	}
	risks, total, err := e.risks.ListByPhase(d.ViewPhase, d.ViewPage, viewPageSize)
	if err != nil {
		log.Printf("[workflow] list risks: %v", err)
		return Render{
			Text:    "❌ Произошла ошибка при получении списка рисков. Пожалуйста, попробуйте позже.",
			Options: []Option{opt("🔙 Вернуться в меню", "back:menu")},
		}
	}

	phaseText := "всех фазах"
	if d.ViewPhase != "all" {
		phaseText = fmt.Sprintf("фазе '%s'", d.ViewPhase)
	}

	if len(risks) == 0 {
		return Render{
			Text:    fmt.Sprintf("📭 Нет доступных рисков для %s.", phaseText),
			Options: []Option{opt("🔙 Вернуться к выбору фазы", "back:view_phase")},
		}
	}

	totalPages := (int(total) + viewPageSize - 1) / viewPageSize

	var b strings.Builder
	if totalPages > 1 {
		fmt.Fprintf(&b, "📋 Список рисков (%s, страница %d/%d):\n", phaseText, d.ViewPage, totalPages)
	} else {
		fmt.Fprintf(&b, "📋 Список рисков (%s):\n", phaseText)
	}
	fmt.Fprintf(&b, "📈 Всего рисков: %d\n\n", total)
	for _, r := range risks {
		desc := r.Description
		if len([]rune(desc)) > 150 {
			desc = string([]rune(desc)[:150]) + "..."
		}
		fmt.Fprintf(&b, "#%d (Рейтинг: %d)\n   Фаза: %s\n   Объект: %s\n   Описание: %s\n\n",
			r.RiskID, r.RiskScore, r.Phase, r.Object, desc)
	}

	opts := make([]Option, 0, len(risks)+4)
	for _, r := range risks {
		opts = append(opts, opt(fmt.Sprintf("#%d", r.RiskID), fmt.Sprintf("%s:%d", tokViewRisk, r.RiskID)))
	}
	if d.ViewPage > 1 {
		opts = append(opts, opt("⬅️ Назад", fmt.Sprintf("%s:%d", tokPage, d.ViewPage-1)))
	}
	if d.ViewPage < totalPages {
		opts = append(opts, opt("➡️ Далее", fmt.Sprintf("%s:%d", tokPage, d.ViewPage+1)))
	}
	opts = append(opts,
		opt("🔄 Другая фаза", "back:view_phase"),
		opt("🔙 Вернуться в меню", "back:menu"),
	)
	return Render{Text: b.String(), Options: opts}
}

func viewListChoice(e *Engine, d *session.Draft, verb, arg string) (Render, bool) {
	switch verb {
	case tokPage:
		page, err := strconv.Atoi(arg)
		if err != nil || page < 1 {
			return Render{}, false
		}
		d.ViewPage = page
		return e.renderStep(d), true
	case tokViewRisk:
		id, err := strconv.Atoi(arg)
		if err != nil {
			return Render{}, false
		}
		d.AmendRiskID = uint(id)
		d.Step = session.StepRiskDetails
		return e.renderStep(d), true
	}
	return Render{}, false
}

func renderRiskDetails(e *Engine, d *session.Draft) Render {
	r, err := e.risks.GetByID(d.AmendRiskID)
	if err != nil {
		if errors.Is(err, risksvc.ErrNotFound) {
			return Render{
				Text:    "Риск не найден.",
				Options: []Option{opt("🔙 Вернуться в меню", "back:menu")},
			}
		}
		log.Printf("[workflow] risk details %d: %v", d.AmendRiskID, err)
		return Render{
			Text:    "Произошла ошибка при получении деталей риска.",
			Options: []Option{opt("🔙 Вернуться в меню", "back:menu")},
		}
	}
	return Render{
		Text: riskDetailsText(r),
		Options: []Option{
			opt("Добавить мероприятие", tokAddMitig),
			opt("🔙 Вернуться к списку", "back:view_list"),
			opt("🏠 В главное меню", "back:menu"),
		},
	}
}

func riskDetailsText(r *entities.Risk) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 Детали риска #%d (рейтинг: %d)\n\n", r.RiskID, r.RiskScore)
	fmt.Fprintf(&b, "• Фаза: %s\n", r.Phase)
	fmt.Fprintf(&b, "• Объект: %s\n", r.Object)
	fmt.Fprintf(&b, "• Категория: %s\n", r.Category)
	fmt.Fprintf(&b, "• Описание: %s\n\n", r.Description)
	if r.Mitigation != "" {
		b.WriteString("📌 Основное мероприятие:\n")
		fmt.Fprintf(&b, "• %s\n", r.Mitigation)
		if r.ExpectedResult != "" {
			fmt.Fprintf(&b, "  Ожидаемый результат: %s\n", r.ExpectedResult)
		}
		b.WriteString("\n")
	}
	if len(r.Mitigations) > 0 {
		b.WriteString("📌 Дополнительные мероприятия:\n")
		for i, m := range r.Mitigations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, m.Mitigation)
			if m.ExpectedResult != "" {
				fmt.Fprintf(&b, "   Ожидаемый результат: %s\n", m.ExpectedResult)
			}
			fmt.Fprintf(&b, "   Добавлено: %s (%s)\n\n", m.Username, m.CreatedAt.Format("2006-01-02"))
		}
	}
	return b.String()
}

func riskDetailsChoice(e *Engine, d *session.Draft, verb, arg string) (Render, bool) {
	if verb == tokAddMitig {
		d.Step = session.StepAmendMitigation
		return e.renderStep(d), true
	}
	return Render{}, false
}

func renderAmendMitigation(e *Engine, d *session.Draft) Render {
	return Render{
		Text:    "Введите мероприятие по митигации риска:",
		Options: []Option{opt("🔙 Вернуться к риску", "back:risk_details")},
	}
}

func amendMitigationText(e *Engine, d *session.Draft, text string) Render {
	d.AmendMitigation = text
	d.Step = session.StepAmendExpectedResult
	return e.renderStep(d)
}

func renderAmendExpectedResult(e *Engine, d *session.Draft) Render {
	return Render{
		Text:    "Ожидаемый результат от мероприятия (опишите текстом):",
		Options: []Option{opt("🔙 Вернуться к риску", "back:risk_details")},
	}
}

func amendExpectedResultText(e *Engine, d *session.Draft, text string) Render {
	err := e.risks.AppendMitigation(d.AmendRiskID, d.UserID, d.Username, d.AmendMitigation, text)
	if err != nil {
		if errors.Is(err, risksvc.ErrNotFound) {
			d.ClearAmendment()
			d.Step = session.StepMenu
			return Render{
				Text:    "Риск не найден.",
				Options: []Option{opt("🏠 В главное меню", "back:menu")},
			}
		}
		log.Printf("[workflow] append mitigation %d: %v", d.AmendRiskID, err)
		return e.rerenderWith(d, "Произошла ошибка при добавлении мероприятия. Попробуйте снова:")
	}
	d.AmendMitigation = ""
	d.Step = session.StepRiskDetails
	r := e.renderStep(d)
	r.Text = "✅ Мероприятие успешно добавлено!\n\n" + r.Text
	return r
}

// --- report ---

func renderReportPhase(e *Engine, d *session.Draft) Render {
	opts := make([]Option, 0, len(Phases)+2)
	for _, p := range Phases {
		opts = append(opts, opt(p, tokReportPhase+":"+p))
	}
	opts = append(opts,
		opt("Все фазы", tokReportPhase+":all"),
		opt("🔙 Вернуться в меню", "back:menu"),
	)
	return Render{Text: "Выберите фазу для отчета:", Options: opts}
}

func reportPhaseChoice(e *Engine, d *session.Draft, verb, arg string) (Render, bool) {
	switch verb {
	case tokReportPhase:
		if arg == "" {
			return Render{}, false
		}
		return e.renderReport(d, arg), true
	case tokReport:
		// back to phase selection
		return e.renderStep(d), true
	case tokExportExcel:
		return e.doExport(d), true
	}
	return Render{}, false
}

func (e *Engine) renderReport(d *session.Draft, phase string) Render {
	rep, err := e.risks.ReportByPhase(phase)
	if err != nil {
		log.Printf("[workflow] report %q: %v", phase, err)
		return Render{
			Text:    "Произошла ошибка при формировании отчета. Пожалуйста, попробуйте позже.",
			Options: []Option{opt("🔙 Вернуться в меню", "back:menu")},
		}
	}

	var b strings.Builder
	if phase == "all" {
		b.WriteString("📊 Отчет по рискам (все фазы)\n")
	} else {
		fmt.Fprintf(&b, "📊 Отчет по рискам (фаза: %s)\n", phase)
	}
	fmt.Fprintf(&b, "📈 Всего рисков: %d\n", rep.Total)
	b.WriteString("🏷️ Распределение по категориям:\n")
	for _, c := range rep.Categories {
		fmt.Fprintf(&b, "• %s: %d\n", c.Category, c.Count)
	}
	b.WriteString("\n🔥 Топ-5 рисков по рейтингу:\n")
	for i, r := range rep.Top {
		desc := r.Description
		if len([]rune(desc)) > 200 {
			desc = string([]rune(desc)[:200]) + "..."
		}
		fmt.Fprintf(&b, "%d. %s - %d\n", i+1, desc, r.RiskScore)
	}

	return Render{
		Text: b.String(),
		Options: []Option{
			opt("🔄 Выбрать другую фазу", tokReport),
			opt("💾 Экспорт в Excel", tokExportExcel),
			opt("🔙 Вернуться в меню", "back:menu"),
		},
	}
}
