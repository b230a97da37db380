// api/controller/guard_controller.go
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	fin_errors "github.com/anish-goyal/finboard/api/errors"
	"github.com/anish-goyal/finboard/api/guard"
	"github.com/anish-goyal/finboard/api/service"
	"github.com/anish-goyal/finboard/api/util"
	helper_util "github.com/anish-goyal/finboard/api/util/helper"
)

type GuardController struct {
	guardService   service.IGuardService
	validationUtil *util.ValidationUtil
}

func NewGuardController(guardService service.IGuardService, validationUtil *util.ValidationUtil) *GuardController {
	return &GuardController{
		guardService:   guardService,
		validationUtil: validationUtil,
	}
}

// RegisterRoutes registers the API routes
func (gc *GuardController) RegisterRoutes(r *gin.RouterGroup) {
	decisions := r.Group("/guard/decisions")
	{
		decisions.POST("", gc.EvaluateOperation)
		decisions.GET("", gc.ListDecisions)
		decisions.POST("/export", gc.ExportDecisions)
		decisions.GET("/exported", gc.QueryExportedDecisions)
	}
}

// EvaluateRequest is the wire form of an operation plus its context.
type EvaluateRequest struct {
	Operation guard.Operation `json:"operation"`
	Context   *guard.Context  `json:"context"`
}

// EvaluateOperation endpoint. A blocked operation is not an error: the
// decision is returned with 200 and the failing check names, so the caller
// can render an explanation rather than a generic "access denied".
func (gc *GuardController) EvaluateOperation(c *gin.Context) {
	var request EvaluateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid operation data", fin_errors.ErrInvalidOperation)
		return
	}

	if err := gc.validationUtil.ValidateOperation(request.Operation); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid operation data", err)
		return
	}

	// The guard never sees role claims; the identity middleware only
	// resolved WHO the caller is, and the descriptor carries it.
	if request.Operation.TriggeredBy == "" {
		userID, _ := util.GetUserIDFromContext(c)
		request.Operation.TriggeredBy = userID
	}

	decision := gc.guardService.Evaluate(c, &request.Operation, request.Context)

	c.JSON(http.StatusOK, gin.H{
		"decision":      decision,
		"failed_checks": decision.FailedChecks(),
	})
}

// ListDecisions endpoint returns the in-process ledger snapshot
func (gc *GuardController) ListDecisions(c *gin.Context) {
	decisions := gc.guardService.Decisions()
	c.JSON(http.StatusOK, gin.H{
		"decisions": decisions,
		"count":     len(decisions),
	})
}

// ExportDecisions endpoint pushes the ledger snapshot to the audit store
func (gc *GuardController) ExportDecisions(c *gin.Context) {
	tenantID := util.GetTenantIDFromContext(c)

	exported, err := gc.guardService.ExportDecisions(c, tenantID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to export decisions", fin_errors.ErrAuditExportFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exported": exported})
}

// QueryExportedDecisions endpoint
func (gc *GuardController) QueryExportedDecisions(c *gin.Context) {
	from, err := helper_util.ParseTime(c.DefaultQuery("from", time.Now().AddDate(0, 0, -7).Format(time.RFC3339)))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' timestamp", err)
		return
	}
	to, err := helper_util.ParseTime(c.DefaultQuery("to", time.Now().Format(time.RFC3339)))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' timestamp", err)
		return
	}

	tenantID := util.GetTenantIDFromContext(c)
	operationID := c.Query("operation_id")

	records, err := gc.guardService.QueryExportedDecisions(c, from, to, tenantID, operationID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to query exported decisions", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"decisions": records})
}
