// api/controller/controllers.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	fin_errors "github.com/anish-goyal/finboard/api/errors"
	logger "github.com/anish-goyal/finboard/api/logging"
	"github.com/anish-goyal/finboard/api/provenance"
	"github.com/anish-goyal/finboard/api/service"
	"github.com/anish-goyal/finboard/api/util"
)

type Controllers struct {
	Guard       *GuardController
	Account     *AccountController
	Transaction *TransactionController
	Payroll     *PayrollController
	Report      *ReportController
	Tenant      *TenantController
}

func InitializeControllers(services *service.Services, validationUtil *util.ValidationUtil) *Controllers {
	return &Controllers{
		Guard:       NewGuardController(services.Guard, validationUtil),
		Account:     NewAccountController(services.Account),
		Transaction: NewTransactionController(services.Transaction),
		Payroll:     NewPayrollController(services.Payroll),
		Report:      NewReportController(services.Report),
		Tenant:      NewTenantController(services.Tenant),
	}
}

// respondWithBackendError translates the backend error taxonomy into HTTP
// responses. A provenance violation gets its own error code: it means the
// backend is misconfigured, and it must be visually distinguishable from an
// ordinary application error in any UI or log.
func respondWithBackendError(c *gin.Context, err error, notFound error, notFoundMessage string) {
	if provenance.IsProvenanceViolation(err) {
		logger.Error("Provenance violation surfaced to API",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Backend response failed provenance validation",
			"code":  "provenance_violation",
		})
		return
	}

	var httpErr *provenance.HTTPError
	if errors.As(err, &httpErr) {
		c.JSON(httpErr.Status, gin.H{
			"error": httpErr.Message,
			"code":  "backend_error",
		})
		return
	}

	switch {
	case errors.Is(err, notFound):
		util.RespondWithError(c, http.StatusNotFound, notFoundMessage, err)
	case errors.Is(err, fin_errors.ErrBackendUnavailable):
		util.RespondWithError(c, http.StatusBadGateway, "Remote backend unavailable", err)
	case errors.Is(err, fin_errors.ErrInvalidPagination):
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
	case errors.Is(err, fin_errors.ErrInvalidSearchCriteria):
		util.RespondWithError(c, http.StatusBadRequest, "Invalid search criteria", err)
	default:
		util.RespondWithError(c, http.StatusInternalServerError, "Internal server error", fin_errors.ErrInternalServer)
	}
}
