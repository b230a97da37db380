// api/controller/account_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	fin_errors "github.com/anish-goyal/finboard/api/errors"
	"github.com/anish-goyal/finboard/api/service"
	"github.com/anish-goyal/finboard/api/util"
)

type AccountController struct {
	accountService service.IAccountService
}

func NewAccountController(accountService service.IAccountService) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AccountController) RegisterRoutes(r *gin.RouterGroup) {
	accounts := r.Group("/accounts")
	{
		accounts.GET("", ac.ListAccounts)
		accounts.GET("/:id", ac.GetAccount)
	}
}

// ListAccounts endpoint
func (ac *AccountController) ListAccounts(c *gin.Context) {
	tenantID := util.GetTenantIDFromContext(c)

	accounts, err := ac.accountService.ListAccounts(c, tenantID)
	if err != nil {
		respondWithBackendError(c, err, fin_errors.ErrAccountNotFound, "Accounts not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

// GetAccount endpoint
func (ac *AccountController) GetAccount(c *gin.Context) {
	tenantID := util.GetTenantIDFromContext(c)
	accountID := c.Param("id")

	account, err := ac.accountService.GetAccount(c, tenantID, accountID)
	if err != nil {
		respondWithBackendError(c, err, fin_errors.ErrAccountNotFound, "Account not found")
		return
	}

	c.JSON(http.StatusOK, account)
}
