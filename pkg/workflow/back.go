package workflow

import "riskbot/pkg/session"

// ReturnPoint names a screen the user may jump back to. The jump is
// stateless: the target's fields are cleared and the screen is re-rendered
// as if arriving forward, with no memory of the abandoned path.
type ReturnPoint int

const (
	ReturnMenu ReturnPoint = iota
	ReturnPhase
	ReturnObject
	ReturnCategory
	ReturnDescription
	ReturnScheduleImpact
	ReturnCostImpact
	ReturnProbability
	ReturnTimeline
	ReturnMitigationChoice
	ReturnMitigation
	ReturnExpectedResult
	ReturnScheduleImpactRe
	ReturnCostImpactRe
	ReturnProbabilityRe
	ReturnViewPhase
	ReturnViewList
	ReturnRiskDetails
)

var returnTokens = map[string]ReturnPoint{
	"menu":               ReturnMenu,
	"phase":              ReturnPhase,
	"object":             ReturnObject,
	"category":           ReturnCategory,
	"description":        ReturnDescription,
	"schedule_impact":    ReturnScheduleImpact,
	"cost_impact":        ReturnCostImpact,
	"probability":        ReturnProbability,
	"timeline":           ReturnTimeline,
	"mitigation_choice":  ReturnMitigationChoice,
	"mitigation":         ReturnMitigation,
	"expected_result":    ReturnExpectedResult,
	"schedule_impact_re": ReturnScheduleImpactRe,
	"cost_impact_re":     ReturnCostImpactRe,
	"probability_re":     ReturnProbabilityRe,
	"view_phase":         ReturnViewPhase,
	"view_list":          ReturnViewList,
	"risk_details":       ReturnRiskDetails,
}

type returnDef struct {
	step session.Step
	// clear drops exactly the fields the target step sets on the forward
	// path; everything entered before it stays.
	clear func(*session.Draft)
}

var returnDefs = map[ReturnPoint]returnDef{
	ReturnPhase:            {session.StepPhase, (*session.Draft).ClearPhase},
	ReturnObject:           {session.StepObject, (*session.Draft).ClearObject},
	ReturnCategory:         {session.StepCategory, (*session.Draft).ClearCategory},
	ReturnDescription:      {session.StepDescription, (*session.Draft).ClearDescription},
	ReturnScheduleImpact:   {session.StepScheduleImpact, (*session.Draft).ClearSchedule},
	ReturnCostImpact:       {session.StepCostImpact, (*session.Draft).ClearCost},
	ReturnProbability:      {session.StepProbability, (*session.Draft).ClearProbability},
	ReturnTimeline:         {session.StepTimeline, (*session.Draft).ClearTimeline},
	ReturnMitigationChoice: {session.StepMitigationChoice, (*session.Draft).ClearMitigationChoice},
	ReturnMitigation:       {session.StepMitigation, (*session.Draft).ClearMitigation},
	ReturnExpectedResult:   {session.StepExpectedResult, (*session.Draft).ClearExpectedResult},
	ReturnScheduleImpactRe: {session.StepScheduleImpactRe, (*session.Draft).ClearScheduleRe},
	ReturnCostImpactRe:     {session.StepCostImpactRe, (*session.Draft).ClearCostRe},
	ReturnProbabilityRe:    {session.StepProbabilityRe, (*session.Draft).ClearProbabilityRe},
	ReturnViewPhase: {session.StepViewPhase, func(d *session.Draft) {
		d.ViewPhase = ""
		d.ViewPage = 0
	}},
	ReturnViewList:    {session.StepViewList, (*session.Draft).ClearAmendment},
	ReturnRiskDetails: {session.StepRiskDetails, func(d *session.Draft) { d.AmendMitigation = "" }},
}

// resolveBack jumps to a return point. Returning to the menu abandons the
// draft entirely so no stale field can leak into the next submission.
func (e *Engine) resolveBack(d *session.Draft, arg string) (Render, bool) {
	rp, ok := returnTokens[arg]
	if !ok {
		return Render{}, false
	}
	if rp == ReturnMenu {
		d = e.store.Reset(d.UserID, d.Username)
		return e.renderStep(d), true
	}
	def := returnDefs[rp]
	def.clear(d)
	d.Step = def.step
	return e.renderStep(d), true
}
