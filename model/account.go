// api/model/account.go
package model

import "time"

type Account struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"` // e.g., "checking", "savings", "credit"
	Currency  string    `json:"currency"`
	Balance   float64   `json:"balance"`
	Mask      string    `json:"mask,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
