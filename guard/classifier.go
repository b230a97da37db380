// api/guard/classifier.go
package guard

import (
	"fmt"
	"strings"
)

// SafetyResult is the outcome of read-only classification.
type SafetyResult struct {
	Safe    bool   `json:"safe"`
	Message string `json:"message"`
}

// SafetyClassifier decides whether an operation is read-only safe. The
// default keyword classifier is deliberately heuristic; callers that need a
// stricter classifier can swap it without touching the rest of the guard.
type SafetyClassifier interface {
	Classify(op *Operation) SafetyResult
}

// writeVerbs is the fixed keyword list used for substring classification.
// Substring, not exact, matching: "delete_account" must classify as unsafe.
// The conservative bias toward blocking is intentional.
var writeVerbs = []string{
	"write", "update", "delete", "create", "modify", "insert",
	"remove", "execute", "deploy", "push", "post", "put", "patch",
}

// KeywordClassifier classifies an operation as unsafe when any of its Type,
// Action, or Method contains a write verb, case-insensitively.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

func (kc *KeywordClassifier) Classify(op *Operation) SafetyResult {
	if op == nil {
		return SafetyResult{Safe: true, Message: "no operation fields to classify"}
	}

	fields := map[string]string{
		"type":   op.Type,
		"action": op.Action,
		"method": op.Method,
	}
	for name, value := range fields {
		lowered := strings.ToLower(value)
		for _, verb := range writeVerbs {
			if strings.Contains(lowered, verb) {
				return SafetyResult{
					Safe:    false,
					Message: fmt.Sprintf("operation %s %q contains write keyword %q", name, value, verb),
				}
			}
		}
	}

	return SafetyResult{Safe: true, Message: "operation classified as read-only"}
}
