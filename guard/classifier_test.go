// api/guard/classifier_test.go
package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anish-goyal/finboard/api/guard"
)

func TestKeywordClassifier(t *testing.T) {
	classifier := guard.NewKeywordClassifier()

	t.Run("ReadOnlyOperationIsSafe", func(t *testing.T) {
		result := classifier.Classify(&guard.Operation{
			Type:   "dashboard_view",
			Action: "view_balance",
			Method: "GET",
		})
		assert.True(t, result.Safe)
	})

	t.Run("WriteVerbAsSubstringIsUnsafe", func(t *testing.T) {
		for _, action := range []string{
			"delete_account",
			"bulk_update",
			"create_transaction",
			"REMOVE_ENTRY",
		} {
			result := classifier.Classify(&guard.Operation{Action: action})
			assert.False(t, result.Safe, "action %q should classify unsafe", action)
		}
	})

	t.Run("WriteVerbInMethodIsUnsafe", func(t *testing.T) {
		for _, method := range []string{"POST", "PUT", "PATCH", "delete"} {
			result := classifier.Classify(&guard.Operation{Method: method})
			assert.False(t, result.Safe, "method %q should classify unsafe", method)
		}
	})

	t.Run("WriteVerbInTypeIsUnsafe", func(t *testing.T) {
		result := classifier.Classify(&guard.Operation{Type: "payroll_execution"})
		assert.False(t, result.Safe)
	})

	t.Run("MessageNamesTheKeyword", func(t *testing.T) {
		result := classifier.Classify(&guard.Operation{Action: "delete_account"})
		assert.Contains(t, result.Message, "delete")
	})

	t.Run("NilOperationIsSafe", func(t *testing.T) {
		result := classifier.Classify(nil)
		assert.True(t, result.Safe)
	})

	t.Run("EmptyFieldsAreSafe", func(t *testing.T) {
		result := classifier.Classify(&guard.Operation{})
		assert.True(t, result.Safe)
	})
}
