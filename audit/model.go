// api/audit/model.go
package audit

import (
	"time"

	"github.com/anish-goyal/finboard/api/guard"
)

// DecisionRecord is the exported form of a guard decision. The in-process
// ledger is the source of truth for a process lifetime; records exist so
// review tooling can query decisions after the process is gone.
type DecisionRecord struct {
	guard.Decision
	TenantID   string    `json:"tenant_id,omitempty"`
	ExportedAt time.Time `json:"exported_at"`
}
