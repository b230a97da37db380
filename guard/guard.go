// api/guard/guard.go
package guard

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ConfidenceThreshold is the fixed minimum confidence for the confidence
// check. It is a compile-time constant on purpose: exposing it through
// configuration would reopen the bypass risk the guard exists to prevent.
const ConfidenceThreshold = 0.85

// Guard deterministically decides whether an operation and its context may
// proceed. Decide is a pure function of its inputs; its only side effect is
// the ledger append. The guard never returns an error: every input variant,
// including nil operations, maps to a defined decision.
type Guard struct {
	ledger     *Ledger
	classifier SafetyClassifier
}

// NewGuard creates a guard writing to the given ledger, using the default
// keyword-based read-only classifier.
func NewGuard(ledger *Ledger) *Guard {
	return NewGuardWithClassifier(ledger, NewKeywordClassifier())
}

// NewGuardWithClassifier creates a guard with a caller-supplied read-only
// safety classifier.
func NewGuardWithClassifier(ledger *Ledger, classifier SafetyClassifier) *Guard {
	return &Guard{
		ledger:     ledger,
		classifier: classifier,
	}
}

// ConfidenceResult is the outcome of the confidence check.
type ConfidenceResult struct {
	Passed  bool    `json:"passed"`
	Deficit float64 `json:"deficit"`
	Message string  `json:"message"`
}

// EvidenceResult is the outcome of the evidence check.
type EvidenceResult struct {
	Valid   bool     `json:"valid"`
	Missing []string `json:"missing,omitempty"`
	Message string   `json:"message"`
}

// EvaluateHumanTrigger passes iff the operation's trigger type is on the
// fixed allow-list and TriggeredBy is a non-empty string. No operation is
// exempt from this check; there is no bypass path. A nil operation fails.
func (g *Guard) EvaluateHumanTrigger(op *Operation) bool {
	if op == nil {
		return false
	}
	return humanTriggers[op.TriggerType] && op.TriggeredBy != ""
}

// EvaluateConfidence passes iff confidence is present, at least the
// threshold, and at most 1. A nil confidence always fails; there is no
// implicit pass for "no opinion". Absent or invalid values are treated as 0
// for deficit arithmetic, so their deficit equals the full threshold.
func (g *Guard) EvaluateConfidence(confidence *float64) ConfidenceResult {
	if confidence == nil {
		return ConfidenceResult{
			Passed:  false,
			Deficit: ConfidenceThreshold,
			Message: "confidence is absent",
		}
	}

	c := *confidence
	if math.IsNaN(c) || c < 0 || c > 1 {
		return ConfidenceResult{
			Passed:  false,
			Deficit: ConfidenceThreshold,
			Message: fmt.Sprintf("confidence %v is outside [0,1]", c),
		}
	}

	deficit := math.Max(0, ConfidenceThreshold-c)
	if c >= ConfidenceThreshold {
		return ConfidenceResult{
			Passed:  true,
			Deficit: 0,
			Message: fmt.Sprintf("confidence %.2f meets threshold %.2f", c, ConfidenceThreshold),
		}
	}

	return ConfidenceResult{
		Passed:  false,
		Deficit: deficit,
		Message: fmt.Sprintf("confidence %.2f is below threshold %.2f (deficit %.2f)", c, ConfidenceThreshold, deficit),
	}
}

// EvaluateEvidence requires a non-nil evidence object carrying all three of
// source, timestamp, and data. Missing lists exactly the absent fields.
func (g *Guard) EvaluateEvidence(evidence *Evidence) EvidenceResult {
	if evidence == nil {
		return EvidenceResult{
			Valid:   false,
			Missing: []string{"source", "timestamp", "data"},
			Message: "evidence is absent",
		}
	}

	var missing []string
	if evidence.Source == "" {
		missing = append(missing, "source")
	}
	if evidence.Timestamp == "" {
		missing = append(missing, "timestamp")
	}
	if evidence.Data == nil {
		missing = append(missing, "data")
	}

	if len(missing) > 0 {
		return EvidenceResult{
			Valid:   false,
			Missing: missing,
			Message: fmt.Sprintf("evidence is missing fields: %s", strings.Join(missing, ", ")),
		}
	}

	return EvidenceResult{Valid: true, Message: "evidence is complete"}
}

// EvaluateReadOnlySafety classifies the operation through the configured
// safety classifier.
func (g *Guard) EvaluateReadOnlySafety(op *Operation) SafetyResult {
	return g.classifier.Classify(op)
}

// Decide runs all four checks, combines them into a decision, appends the
// decision to the ledger, and returns it. Allowed is the logical AND of the
// checks; the advisory message names every failing check so a blocked
// operation can be explained to the user rather than rendered as a generic
// "access denied". Each call evaluates from scratch; prior verdicts for the
// same operation ID are never reused.
func (g *Guard) Decide(op *Operation, opCtx *Context) Decision {
	var confidence *float64
	var evidence *Evidence
	if opCtx != nil {
		confidence = opCtx.Confidence
		evidence = opCtx.Evidence
	}

	triggerPassed := g.EvaluateHumanTrigger(op)
	triggerDetail := "trigger is human-initiated and attributed"
	if !triggerPassed {
		triggerDetail = "trigger type is not on the allow-list or the initiator is missing"
	}

	confidenceResult := g.EvaluateConfidence(confidence)
	evidenceResult := g.EvaluateEvidence(evidence)
	safetyResult := g.EvaluateReadOnlySafety(op)

	checks := map[string]CheckResult{
		CheckHumanTrigger:   {Passed: triggerPassed, Detail: triggerDetail},
		CheckConfidence:     {Passed: confidenceResult.Passed, Detail: confidenceResult.Message},
		CheckEvidence:       {Passed: evidenceResult.Valid, Detail: evidenceResult.Message},
		CheckReadOnlySafety: {Passed: safetyResult.Safe, Detail: safetyResult.Message},
	}

	allowed := triggerPassed && confidenceResult.Passed && evidenceResult.Valid && safetyResult.Safe

	decision := Decision{
		Timestamp:   time.Now().UTC(),
		OperationID: operationID(op),
		Checks:      checks,
		Allowed:     allowed,
	}

	if allowed {
		decision.Mode = ModeAdvisory
		decision.AdvisoryMessage = "all checks passed; operation may proceed in advisory mode"
	} else {
		decision.Mode = ModeBlocked
		decision.AdvisoryMessage = fmt.Sprintf("operation blocked; failed checks: %s",
			strings.Join(decision.FailedChecks(), ", "))
	}

	g.ledger.Append(decision)
	return decision
}

func operationID(op *Operation) string {
	if op == nil {
		return ""
	}
	return op.ID
}
