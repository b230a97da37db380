// api/model/transaction.go
package model

import "time"

type Transaction struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	AccountID   string    `json:"account_id"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	Pending     bool      `json:"pending"`
	PostedAt    time.Time `json:"posted_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// TransactionSearchCriteria narrows transaction listings.
type TransactionSearchCriteria struct {
	AccountID string     `json:"account_id,omitempty"`
	Category  string     `json:"category,omitempty"`
	From      *time.Time `json:"from,omitempty"`
	To        *time.Time `json:"to,omitempty"`
}
