// api/controller/report_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	fin_errors "github.com/anish-goyal/finboard/api/errors"
	"github.com/anish-goyal/finboard/api/service"
	"github.com/anish-goyal/finboard/api/util"
)

type ReportController struct {
	reportService service.IReportService
}

func NewReportController(reportService service.IReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// RegisterRoutes registers the API routes
func (rc *ReportController) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("/overview", rc.GetOverview)
		reports.GET("/:id", rc.GetReport)
	}
}

// GetOverview endpoint
func (rc *ReportController) GetOverview(c *gin.Context) {
	tenantID := util.GetTenantIDFromContext(c)

	report, err := rc.reportService.BuildOverview(c, tenantID)
	if err != nil {
		respondWithBackendError(c, err, fin_errors.ErrReportNotFound, "Overview unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// GetReport endpoint
func (rc *ReportController) GetReport(c *gin.Context) {
	tenantID := util.GetTenantIDFromContext(c)
	reportID := c.Param("id")

	report, err := rc.reportService.GetReport(c, tenantID, reportID)
	if err != nil {
		respondWithBackendError(c, err, fin_errors.ErrReportNotFound, "Report not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}
