// api/model/payroll.go
package model

import "time"

type PayrollEntry struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	EmployeeID string    `json:"employee_id"`
	Employee   string    `json:"employee"`
	GrossPay   float64   `json:"gross_pay"`
	NetPay     float64   `json:"net_pay"`
	Currency   string    `json:"currency"`
	PayDate    time.Time `json:"pay_date"`
	Status     string    `json:"status"` // e.g., "scheduled", "processing", "paid"
}

// PayrollRun is a request to execute a payroll cycle for a tenant.
type PayrollRun struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	RequestedBy string    `json:"requested_by"`
}
