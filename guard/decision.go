// api/guard/decision.go
package guard

import "time"

// Mode classifies a decision's disposition.
type Mode string

const (
	ModeAdvisory Mode = "advisory"
	ModeManual   Mode = "manual"
	ModeReadOnly Mode = "read_only"
	ModeBlocked  Mode = "blocked"
)

// Names of the four checks, used as keys of Decision.Checks and in advisory
// messages shown to the user.
const (
	CheckHumanTrigger   = "human_trigger"
	CheckConfidence     = "confidence"
	CheckEvidence       = "evidence"
	CheckReadOnlySafety = "read_only_safety"
)

// checkOrder fixes the order in which failing check names are reported.
var checkOrder = []string{CheckHumanTrigger, CheckConfidence, CheckEvidence, CheckReadOnlySafety}

// CheckResult is the outcome of a single check.
type CheckResult struct {
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// Decision is the immutable verdict produced by evaluating an operation
// against all four checks. Allowed is true iff every check passed; Mode is
// advisory iff Allowed, blocked otherwise. Once created it is appended to the
// ledger and never edited in place.
type Decision struct {
	Timestamp       time.Time              `json:"timestamp"`
	OperationID     string                 `json:"operation_id"`
	Checks          map[string]CheckResult `json:"checks"`
	Allowed         bool                   `json:"allowed"`
	Mode            Mode                   `json:"mode"`
	AdvisoryMessage string                 `json:"advisory_message"`
}

// FailedChecks returns the names of failing checks in reporting order.
func (d Decision) FailedChecks() []string {
	var failed []string
	for _, name := range checkOrder {
		if result, ok := d.Checks[name]; ok && !result.Passed {
			failed = append(failed, name)
		}
	}
	return failed
}
