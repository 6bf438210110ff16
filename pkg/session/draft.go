package session

// Step identifies the screen a user's conversation is on. Exactly one step is
// awaited at a time; there are no separate awaiting_* flags.
type Step int

const (
	StepMenu Step = iota
	StepPhase
	StepPhaseCustom
	StepObject
	StepObjectCustom
	StepCategory
	StepCategoryCustom
	StepDescription
	StepScheduleImpact
	StepScheduleValues
	StepCostImpact
	StepCostValues
	StepProbability
	StepProbabilityCustom
	StepTimeline
	StepMitigationChoice
	StepMitigation
	StepExpectedResult
	StepScheduleImpactRe
	StepScheduleValuesRe
	StepCostImpactRe
	StepCostValuesRe
	StepProbabilityRe
	StepProbabilityCustomRe
	StepCommitFailed
	StepViewPhase
	StepViewList
	StepRiskDetails
	StepAmendMitigation
	StepAmendExpectedResult
	StepReportPhase
)

// Triple is a three-point impact estimate. All-zero means "no impact" or
// "deferred to an expert"; the paired needs-evaluation flag disambiguates.
type Triple struct {
	Min        int
	MostLikely int
	Max        int
}

func (t Triple) Valid() bool { return t.Min <= t.MostLikely && t.MostLikely <= t.Max }

func (t Triple) Zero() bool { return t.Min == 0 && t.MostLikely == 0 && t.Max == 0 }

// Draft is one user's in-progress submission. Pointer fields are nil until
// the corresponding step completed, so back navigation can tell "unset" from
// "zero".
type Draft struct {
	UserID   int64
	Username string
	Step     Step

	Phase       string
	Object      string
	Category    string
	Description string

	Schedule    *Triple
	Cost        *Triple
	Probability *int

	NeedsScheduleEval bool
	NeedsCostEval     bool

	Timeline       string
	Mitigation     string
	ExpectedResult string
	Reevaluate     *bool

	ScheduleRe    *Triple
	CostRe        *Triple
	ProbabilityRe *int

	NeedsScheduleEvalRe bool
	NeedsCostEvalRe     bool

	// view/report flow bookkeeping, not part of the submission
	ViewPhase       string
	ViewPage        int
	AmendRiskID     uint
	AmendMitigation string
}

// Clear-group methods, one per back-navigation return point. Each drops
// exactly the fields the forward path sets at that step.

func (d *Draft) ClearPhase()       { d.Phase = "" }
func (d *Draft) ClearObject()      { d.Object = "" }
func (d *Draft) ClearCategory()    { d.Category = "" }
func (d *Draft) ClearDescription() { d.Description = "" }

func (d *Draft) ClearSchedule() {
	d.Schedule = nil
	d.NeedsScheduleEval = false
}

func (d *Draft) ClearCost() {
	d.Cost = nil
	d.NeedsCostEval = false
}

func (d *Draft) ClearProbability() { d.Probability = nil }
func (d *Draft) ClearTimeline()    { d.Timeline = "" }

func (d *Draft) ClearMitigationChoice() { d.Reevaluate = nil }
func (d *Draft) ClearMitigation()       { d.Mitigation = "" }
func (d *Draft) ClearExpectedResult()   { d.ExpectedResult = "" }

func (d *Draft) ClearScheduleRe() {
	d.ScheduleRe = nil
	d.NeedsScheduleEvalRe = false
}

func (d *Draft) ClearCostRe() {
	d.CostRe = nil
	d.NeedsCostEvalRe = false
}

func (d *Draft) ClearProbabilityRe() { d.ProbabilityRe = nil }

func (d *Draft) ClearAmendment() {
	d.AmendRiskID = 0
	d.AmendMitigation = ""
}
