// api/model/report.go
package model

import "time"

type Report struct {
	ID           string             `json:"id"`
	TenantID     string             `json:"tenant_id"`
	Kind         string             `json:"kind"` // e.g., "cash_flow", "spend_by_category"
	PeriodStart  time.Time          `json:"period_start"`
	PeriodEnd    time.Time          `json:"period_end"`
	Totals       map[string]float64 `json:"totals"`
	Accounts     []Account          `json:"accounts,omitempty"`
	Transactions []Transaction      `json:"transactions,omitempty"`
	Payroll      []PayrollEntry     `json:"payroll,omitempty"`
	GeneratedAt  time.Time          `json:"generated_at"`
}
