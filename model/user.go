// api/model/user.go
package model

import "time"

type User struct {
	ID        string    `json:"id"`
	TenantIDs []string  `json:"tenant_ids,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"` // e.g., "owner", "accountant", "viewer"
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
