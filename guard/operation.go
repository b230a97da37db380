// api/guard/operation.go
package guard

// TriggerType identifies how a proposed operation was initiated.
type TriggerType string

const (
	TriggerUserClick        TriggerType = "user_click"
	TriggerButtonClick      TriggerType = "button_click"
	TriggerFormSubmit       TriggerType = "form_submit"
	TriggerKeyboardShortcut TriggerType = "keyboard_shortcut"
	TriggerHumanInitiated   TriggerType = "human_initiated"
)

// humanTriggers is the fixed allow-list of human-interaction markers. It is
// intentionally not configurable; every operation, including system-initiated
// ones, is held to it.
var humanTriggers = map[TriggerType]bool{
	TriggerUserClick:        true,
	TriggerButtonClick:      true,
	TriggerFormSubmit:       true,
	TriggerKeyboardShortcut: true,
	TriggerHumanInitiated:   true,
}

// Operation describes a proposed action submitted for evaluation. It is
// constructed by the caller immediately before a guarded action and never
// mutated afterwards.
type Operation struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Action      string      `json:"action"`
	Method      string      `json:"method"`
	TriggerType TriggerType `json:"trigger_type"`
	TriggeredBy string      `json:"triggered_by"`
}

// Evidence is the structured supporting material for an operation. All three
// fields must be present for the evidence check to pass.
type Evidence struct {
	Source    string      `json:"source"`
	Timestamp string      `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Context carries the confidence score and evidence accompanying an
// operation. A nil Confidence means "no opinion", which always fails the
// confidence check; it is never defaulted to a passing value.
type Context struct {
	Confidence *float64  `json:"confidence,omitempty"`
	Evidence   *Evidence `json:"evidence,omitempty"`
}
