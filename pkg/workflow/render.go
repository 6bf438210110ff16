package workflow

// Option is one selectable button: a human label and the opaque token the
// transport will echo back through OnChoice.
type Option struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

// Render is one screen: prompt text plus an ordered option list. Empty
// options mean the step awaits free text.
type Render struct {
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

func opt(label, token string) Option { return Option{Label: label, Token: token} }

// Choice tokens. The engine is their sole interpreter; most are meaningful
// only on the step that rendered them.
const (
	tokSubmitRisk   = "submit_risk"
	tokViewRisks    = "view_risks"
	tokReport       = "report"
	tokExportExcel  = "export_excel"
	tokToggleSub    = "toggle_subscription"
	tokCustomPhase  = "custom_phase"
	tokCustomObject = "custom_object"
	tokCustomCat    = "custom_category"
	tokNoImpact     = "no_impact"
	tokEvaluate     = "evaluate"
	tokRequestEval  = "request_evaluation"
	tokCustomProb   = "custom_probability"
	tokMitigateEval = "mitigate_with_evaluation"
	tokMitigateOnly = "mitigate_without_evaluation"
	tokRetryCommit  = "retry_commit"
	tokAddMitig     = "add_mitigation"

	// prefixed tokens carry an argument after ':'
	tokPhase       = "phase"        // phase:<name>
	tokObject      = "object"       // object:<name>
	tokCategory    = "cat"          // cat:<name>
	tokProb        = "prob"         // prob:<1..5>
	tokViewPhase   = "view_phase"   // view_phase:<name|all>
	tokViewRisk    = "view_risk"    // view_risk:<id>
	tokPage        = "page"         // page:<n>
	tokReportPhase = "report_phase" // report_phase:<name|all>
	tokBack        = "back"         // back:<return point>
)
