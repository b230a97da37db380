// api/router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anish-goyal/finboard/api/controller"
	"github.com/anish-goyal/finboard/api/middleware"
)

func SetupRouter(
	controllers *controller.Controllers,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Correlation())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))
	router.Use(middleware.Identity())

	api := router.Group("/api/v1")

	controllers.Guard.RegisterRoutes(api)
	controllers.Account.RegisterRoutes(api)
	controllers.Transaction.RegisterRoutes(api)
	controllers.Payroll.RegisterRoutes(api)
	controllers.Report.RegisterRoutes(api)
	controllers.Tenant.RegisterRoutes(api)

	return router
}
