// api/controller/transaction_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	fin_errors "github.com/anish-goyal/finboard/api/errors"
	"github.com/anish-goyal/finboard/api/guard"
	"github.com/anish-goyal/finboard/api/model"
	"github.com/anish-goyal/finboard/api/service"
	"github.com/anish-goyal/finboard/api/util"
	helper_util "github.com/anish-goyal/finboard/api/util/helper"
)

type TransactionController struct {
	transactionService service.ITransactionService
}

func NewTransactionController(transactionService service.ITransactionService) *TransactionController {
	return &TransactionController{
		transactionService: transactionService,
	}
}

// RegisterRoutes registers the API routes
func (tc *TransactionController) RegisterRoutes(r *gin.RouterGroup) {
	transactions := r.Group("/transactions")
	{
		transactions.GET("", tc.ListTransactions)
		transactions.POST("", tc.CreateTransaction)
	}
}

// CreateTransactionRequest pairs the transaction with the operation
// descriptor and context the guard evaluates.
type CreateTransactionRequest struct {
	Transaction model.Transaction `json:"transaction"`
	Operation   guard.Operation   `json:"operation"`
	Context     *guard.Context    `json:"context"`
}

// ListTransactions endpoint
func (tc *TransactionController) ListTransactions(c *gin.Context) {
	tenantID := util.GetTenantIDFromContext(c)

	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", fin_errors.ErrInvalidPagination)
		return
	}

	criteria := model.TransactionSearchCriteria{
		AccountID: c.Query("account_id"),
		Category:  c.Query("category"),
	}

	transactions, err := tc.transactionService.ListTransactions(c, tenantID, criteria, limit, offset)
	if err != nil {
		respondWithBackendError(c, err, fin_errors.ErrTransactionNotFound, "Transactions not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// CreateTransaction endpoint. A guard block is rendered with the failing
// check names and the full decision, not a generic denial.
func (tc *TransactionController) CreateTransaction(c *gin.Context) {
	var request CreateTransactionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid transaction data", err)
		return
	}

	tenantID := util.GetTenantIDFromContext(c)
	if request.Operation.TriggeredBy == "" {
		userID, _ := util.GetUserIDFromContext(c)
		request.Operation.TriggeredBy = userID
	}

	created, decision, err := tc.transactionService.CreateTransaction(c, tenantID, request.Transaction, &request.Operation, request.Context)
	if err != nil {
		if errors.Is(err, fin_errors.ErrOperationBlocked) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":         decision.AdvisoryMessage,
				"code":          "operation_blocked",
				"failed_checks": decision.FailedChecks(),
				"decision":      decision,
			})
			return
		}
		respondWithBackendError(c, err, fin_errors.ErrTransactionNotFound, "Transaction not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"transaction": created,
		"decision":    decision,
	})
}
