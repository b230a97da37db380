// api/backend/client_test.go
package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anish-goyal/finboard/api/backend"
	logger "github.com/anish-goyal/finboard/api/logging"
	"github.com/anish-goyal/finboard/api/model"
	"github.com/anish-goyal/finboard/api/provenance"
)

func TestMain(m *testing.M) {
	logDir, err := os.MkdirTemp("", "backend-test")
	if err != nil {
		panic(err)
	}
	logger.InitLogger(logDir)
	code := m.Run()
	logger.Sync()
	os.RemoveAll(logDir)
	os.Exit(code)
}

// writeJSON emits a body with the echoed correlation identifier plus the
// given payload fields.
func writeJSON(w http.ResponseWriter, r *http.Request, payload map[string]interface{}) {
	payload["correlationId"] = r.Header.Get(provenance.CorrelationHeader)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

func newClient(server *httptest.Server) *backend.Client {
	return backend.NewClient(provenance.NewClient(server.Client()), server.URL)
}

func TestListAccounts(t *testing.T) {
	var gotTenant, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTenant = r.Header.Get(backend.TenantHeader)
		gotPath = r.URL.Path
		writeJSON(w, r, map[string]interface{}{
			"accounts": []model.Account{
				{ID: "acc-1", Name: "Checking", Balance: 120.5},
				{ID: "acc-2", Name: "Savings", Balance: 900},
			},
		})
	}))
	defer server.Close()

	accounts, err := newClient(server).ListAccounts(context.Background(), "tenant-1")

	require.NoError(t, err)
	assert.Equal(t, "tenant-1", gotTenant)
	assert.Equal(t, "/v1/accounts", gotPath)
	require.Len(t, accounts, 2)
	assert.Equal(t, "acc-1", accounts[0].ID)
}

func TestGetAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts/acc-1", r.URL.Path)
		writeJSON(w, r, map[string]interface{}{
			"account": model.Account{ID: "acc-1", Name: "Checking"},
		})
	}))
	defer server.Close()

	account, err := newClient(server).GetAccount(context.Background(), "tenant-1", "acc-1")

	require.NoError(t, err)
	assert.Equal(t, "acc-1", account.ID)
}

func TestListTransactionsQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeJSON(w, r, map[string]interface{}{
			"transactions": []model.Transaction{{ID: "tx-1"}},
		})
	}))
	defer server.Close()

	criteria := model.TransactionSearchCriteria{AccountID: "acc-1", Category: "groceries"}
	transactions, err := newClient(server).ListTransactions(context.Background(), "tenant-1", criteria, 25, 50)

	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Contains(t, gotQuery, "limit=25")
	assert.Contains(t, gotQuery, "offset=50")
	assert.Contains(t, gotQuery, "account_id=acc-1")
	assert.Contains(t, gotQuery, "category=groceries")
}

func TestCreateTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var sent model.Transaction
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		sent.ID = "tx-99"
		writeJSON(w, r, map[string]interface{}{"transaction": sent})
	}))
	defer server.Close()

	created, err := newClient(server).CreateTransaction(context.Background(), "tenant-1",
		model.Transaction{AccountID: "acc-1", Amount: 12.5})

	require.NoError(t, err)
	assert.Equal(t, "tx-99", created.ID)
	assert.Equal(t, "acc-1", created.AccountID)
}

func TestRunPayroll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payroll/runs", r.URL.Path)

		var run model.PayrollRun
		require.NoError(t, json.NewDecoder(r.Body).Decode(&run))
		run.ID = "run-1"
		writeJSON(w, r, map[string]interface{}{"run": run})
	}))
	defer server.Close()

	executed, err := newClient(server).RunPayroll(context.Background(), "tenant-1",
		model.PayrollRun{TenantID: "tenant-1", RequestedBy: "user-42"})

	require.NoError(t, err)
	assert.Equal(t, "run-1", executed.ID)
}

func TestBackendWithoutCorrelationIDIsRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"accounts":[{"id":"acc-1"}]}`))
	}))
	defer server.Close()

	accounts, err := newClient(server).ListAccounts(context.Background(), "tenant-1")

	require.Error(t, err)
	assert.Nil(t, accounts)
	assert.True(t, provenance.IsProvenanceViolation(err))
}

func TestBackendErrorStatusSurfacesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"correlationId":"srv-1","message":"no such account"}`))
	}))
	defer server.Close()

	_, err := newClient(server).GetAccount(context.Background(), "tenant-1", "missing")

	require.Error(t, err)
	var httpErr *provenance.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}
