// api/controller/payroll_controller.go
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
)

type PayrollController struct {
	payrollService service.IPayrollService
}

func NewPayrollController(payrollService service.IPayrollService) *PayrollController {
	return &PayrollController{
		payrollService: payrollService,
	}
}

// RegisterRoutes registers the API routes
func (pc *PayrollController) RegisterRoutes(r *gin.RouterGroup) {
	payroll := r.Group("/payroll")
	{
		payroll.GET("", pc.ListPayroll)
		payroll.POST("/runs", pc.RunPayroll)
	}
}

type RunPayrollRequest struct {
	Run       model.PayrollRun `json:"run"`
	Operation guard.Operation  `json:"operation"`
	Context   *guard.Context   `json:"context"`
}

// ListPayroll endpoint
func (pc *PayrollController) ListPayroll(c *gin.Context) {
	tenantID := util.GetTenantIDFromContext(c)

	entries, err := pc.payrollService.ListPayroll(c, tenantID)
	if err != nil {
		respondWithBackendError(c, err, fin_errors.ErrReportNotFound, "Payroll not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payroll": entries})
}

// RunPayroll endpoint
func (pc *PayrollController) RunPayroll(c *gin.Context) {
	var request RunPayrollRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid payroll run data", err)
		return
	}

	tenantID := util.GetTenantIDFromContext(c)
	request.Run.TenantID = tenantID
	if request.Operation.TriggeredBy == "" {
		userID, _ := util.GetUserIDFromContext(c)
		request.Operation.TriggeredBy = userID
	}

	executed, decision, err := pc.payrollService.RunPayroll(c, request.Run, &request.Operation, request.Context)
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
		respondWithBackendError(c, err, fin_errors.ErrReportNotFound, "Payroll run failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"run":      executed,
		"decision": decision,
	})
}
