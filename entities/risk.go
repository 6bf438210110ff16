package entities

import "time"

// Risk is one committed submission. Immutable after creation except through
// attached AdditionalMitigation rows. The *_re columns hold the optional
// post-mitigation re-evaluation.
type Risk struct {
	RiskID      uint   `gorm:"primaryKey" json:"risk_id"`
	UserID      int64  `gorm:"index" json:"user_id"`
	Username    string `json:"username"`
	Phase       string `gorm:"index" json:"phase"`
	Object      string `json:"object"`
	Category    string `json:"category"`
	Description string `json:"description"`

	ImpactScheduleMin        int `json:"impact_schedule_min"`
	ImpactScheduleMostLikely int `json:"impact_schedule_most_likely"`
	ImpactScheduleMax        int `json:"impact_schedule_max"`
	ImpactCostMin            int `json:"impact_cost_min"`
	ImpactCostMostLikely     int `json:"impact_cost_most_likely"`
	ImpactCostMax            int `json:"impact_cost_max"`
	Probability              int `json:"probability"`

	ImpactScheduleMinRe        int `json:"impact_schedule_min_re"`
	ImpactScheduleMostLikelyRe int `json:"impact_schedule_most_likely_re"`
	ImpactScheduleMaxRe        int `json:"impact_schedule_max_re"`
	ImpactCostMinRe            int `json:"impact_cost_min_re"`
	ImpactCostMostLikelyRe     int `json:"impact_cost_most_likely_re"`
	ImpactCostMaxRe            int `json:"impact_cost_max_re"`
	ProbabilityRe              int `json:"probability_re"`

	RiskScore      int    `gorm:"index" json:"risk_score"`
	Timeline       string `json:"timeline"`
	Mitigation     string `json:"mitigation"`
	ExpectedResult string `json:"expected_result"`

	// An all-zero triple means either "no impact" or "deferred to an expert";
	// the paired needs_*_evaluation flag disambiguates.
	ReevaluationNeeded       bool `json:"reevaluation_needed"`
	NeedsScheduleEvaluation  bool `json:"needs_schedule_evaluation"`
	NeedsCostEvaluation      bool `json:"needs_cost_evaluation"`
	NeedsScheduleEvaluationRe bool `json:"needs_schedule_evaluation_re"`
	NeedsCostEvaluationRe     bool `json:"needs_cost_evaluation_re"`

	CreatedAt time.Time `json:"created_at"`

	Mitigations []AdditionalMitigation `gorm:"foreignKey:RiskID" json:"mitigations,omitempty"`
}
