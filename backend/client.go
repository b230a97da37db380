// api/backend/client.go
package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/anish-goyal/finboard/api/model"
	"github.com/anish-goyal/finboard/api/provenance"
)

// TenantHeader scopes every backend call to a tenant.
const TenantHeader = "X-Tenant-ID"

// Client is a typed client for the remote data backend that owns accounts,
// transactions, payroll, and reports. Every call goes through the provenance
// wrapper; a response without a correlation identifier is rejected before it
// is ever interpreted as data.
type Client struct {
	pclient *provenance.Client
	baseURL string
}

func NewClient(pclient *provenance.Client, baseURL string) *Client {
	return &Client{
		pclient: pclient,
		baseURL: baseURL,
	}
}

type accountsEnvelope struct {
	Accounts []model.Account `json:"accounts"`
}

type accountEnvelope struct {
	Account model.Account `json:"account"`
}

type transactionsEnvelope struct {
	Transactions []model.Transaction `json:"transactions"`
}

type transactionEnvelope struct {
	Transaction model.Transaction `json:"transaction"`
}

type payrollEnvelope struct {
	Entries []model.PayrollEntry `json:"entries"`
}

type payrollRunEnvelope struct {
	Run model.PayrollRun `json:"run"`
}

type reportEnvelope struct {
	Report model.Report `json:"report"`
}

func (c *Client) ListAccounts(ctx context.Context, tenantID string) ([]model.Account, error) {
	var envelope accountsEnvelope
	_, err := c.pclient.Call(ctx, http.MethodGet, c.baseURL+"/v1/accounts", nil, &envelope,
		provenance.WithHeader(TenantHeader, tenantID))
	if err != nil {
		return nil, err
	}
	return envelope.Accounts, nil
}

func (c *Client) GetAccount(ctx context.Context, tenantID, accountID string) (*model.Account, error) {
	var envelope accountEnvelope
	_, err := c.pclient.Call(ctx, http.MethodGet,
		fmt.Sprintf("%s/v1/accounts/%s", c.baseURL, url.PathEscape(accountID)), nil, &envelope,
		provenance.WithHeader(TenantHeader, tenantID))
	if err != nil {
		return nil, err
	}
	return &envelope.Account, nil
}

func (c *Client) ListTransactions(ctx context.Context, tenantID string, criteria model.TransactionSearchCriteria, limit, offset int) ([]model.Transaction, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	if criteria.AccountID != "" {
		query.Set("account_id", criteria.AccountID)
	}
	if criteria.Category != "" {
		query.Set("category", criteria.Category)
	}
	if criteria.From != nil {
		query.Set("from", criteria.From.Format("2006-01-02"))
	}
	if criteria.To != nil {
		query.Set("to", criteria.To.Format("2006-01-02"))
	}

	var envelope transactionsEnvelope
	_, err := c.pclient.Call(ctx, http.MethodGet,
		c.baseURL+"/v1/transactions?"+query.Encode(), nil, &envelope,
		provenance.WithHeader(TenantHeader, tenantID))
	if err != nil {
		return nil, err
	}
	return envelope.Transactions, nil
}

func (c *Client) CreateTransaction(ctx context.Context, tenantID string, transaction model.Transaction) (*model.Transaction, error) {
	var envelope transactionEnvelope
	_, err := c.pclient.Call(ctx, http.MethodPost,
		c.baseURL+"/v1/transactions", transaction, &envelope,
		provenance.WithHeader(TenantHeader, tenantID))
	if err != nil {
		return nil, err
	}
	return &envelope.Transaction, nil
}

func (c *Client) ListPayroll(ctx context.Context, tenantID string) ([]model.PayrollEntry, error) {
	var envelope payrollEnvelope
	_, err := c.pclient.Call(ctx, http.MethodGet, c.baseURL+"/v1/payroll", nil, &envelope,
		provenance.WithHeader(TenantHeader, tenantID))
	if err != nil {
		return nil, err
	}
	return envelope.Entries, nil
}

func (c *Client) RunPayroll(ctx context.Context, tenantID string, run model.PayrollRun) (*model.PayrollRun, error) {
	var envelope payrollRunEnvelope
	_, err := c.pclient.Call(ctx, http.MethodPost, c.baseURL+"/v1/payroll/runs", run, &envelope,
		provenance.WithHeader(TenantHeader, tenantID))
	if err != nil {
		return nil, err
	}
	return &envelope.Run, nil
}

func (c *Client) GetReport(ctx context.Context, tenantID, reportID string) (*model.Report, error) {
	var envelope reportEnvelope
	_, err := c.pclient.Call(ctx, http.MethodGet,
		fmt.Sprintf("%s/v1/reports/%s", c.baseURL, url.PathEscape(reportID)), nil, &envelope,
		provenance.WithHeader(TenantHeader, tenantID))
	if err != nil {
		return nil, err
	}
	return &envelope.Report, nil
}
