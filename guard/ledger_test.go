// api/guard/ledger_test.go
package guard_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anish-goyal/finboard/api/guard"
)

func TestLedgerAppendAndSnapshot(t *testing.T) {
	ledger := guard.NewLedger()
	assert.Equal(t, 0, ledger.Len())

	ledger.Append(guard.Decision{OperationID: "a", Allowed: true})
	ledger.Append(guard.Decision{OperationID: "b", Allowed: false})

	snapshot := ledger.Snapshot()
	assert.Len(t, snapshot, 2)
	assert.Equal(t, "a", snapshot[0].OperationID)
	assert.Equal(t, "b", snapshot[1].OperationID)
}

func TestLedgerSnapshotIsDefensiveCopy(t *testing.T) {
	ledger := guard.NewLedger()
	ledger.Append(guard.Decision{OperationID: "original"})

	snapshot := ledger.Snapshot()
	snapshot[0].OperationID = "tampered"

	again := ledger.Snapshot()
	assert.Equal(t, "original", again[0].OperationID)
}

func TestLedgerConcurrentAppends(t *testing.T) {
	ledger := guard.NewLedger()

	const writers = 10
	const perWriter = 100

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				ledger.Append(guard.Decision{OperationID: fmt.Sprintf("op-%d-%d", w, i)})
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, writers*perWriter, ledger.Len())
}

func TestLedgerClear(t *testing.T) {
	ledger := guard.NewLedger()
	ledger.Append(guard.Decision{OperationID: "a"})
	ledger.Clear()

	assert.Equal(t, 0, ledger.Len())
	assert.Empty(t, ledger.Snapshot())
}
