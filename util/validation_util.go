// api/util/validation_util.go

package util

import (
	"fmt"

	"github.com/anish-goyal/finboard/api/guard"
	"github.com/anish-goyal/finboard/api/model"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

// ValidateOperation checks the shape of an operation descriptor before it is
// handed to the guard. The guard itself never rejects malformed input, it
// reports failure through the decision, so this only catches caller bugs
// worth a 400 at the API boundary.
func (v *ValidationUtil) ValidateOperation(op guard.Operation) error {
	if op.ID == "" {
		return fmt.Errorf("operation ID cannot be empty")
	}
	if op.TriggerType == "" {
		return fmt.Errorf("operation trigger type cannot be empty")
	}
	// Add more validation rules as needed
	return nil
}

func (v *ValidationUtil) ValidateTransaction(transaction model.Transaction) error {
	if transaction.AccountID == "" {
		return fmt.Errorf("transaction account ID cannot be empty")
	}
	if transaction.Amount == 0 {
		return fmt.Errorf("transaction amount cannot be zero")
	}
	if transaction.Currency == "" {
		return fmt.Errorf("transaction currency cannot be empty")
	}
	// Add more validation rules as needed
	return nil
}

func (v *ValidationUtil) ValidatePayrollRun(run model.PayrollRun) error {
	if run.TenantID == "" {
		return fmt.Errorf("payroll run tenant ID cannot be empty")
	}
	if run.PeriodStart.IsZero() || run.PeriodEnd.IsZero() {
		return fmt.Errorf("payroll run period cannot be empty")
	}
	if run.PeriodEnd.Before(run.PeriodStart) {
		return fmt.Errorf("payroll run period end cannot precede its start")
	}
	// Add more validation rules as needed
	return nil
}

func (v *ValidationUtil) ValidateTenant(tenant model.Tenant) error {
	if tenant.Name == "" {
		return fmt.Errorf("tenant name cannot be empty")
	}
	// Add more validation rules as needed
	return nil
}

func (v *ValidationUtil) ValidateUser(user model.User) error {
	if user.Name == "" {
		return fmt.Errorf("user name cannot be empty")
	}
	if user.Email == "" {
		return fmt.Errorf("user email cannot be empty")
	}
	if user.Role == "" {
		return fmt.Errorf("user role cannot be empty")
	}
	// Add more validation rules as needed
	return nil
}
