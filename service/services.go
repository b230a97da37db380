// api/service/services.go
package service

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/anish-goyal/finboard/api/audit"
	"github.com/anish-goyal/finboard/api/backend"
	"github.com/anish-goyal/finboard/api/dao"
	"github.com/anish-goyal/finboard/api/guard"
	"github.com/anish-goyal/finboard/api/util"
)

type Services struct {
	Guard       IGuardService
	Account     IAccountService
	Transaction ITransactionService
	Payroll     IPayrollService
	Report      IReportService
	Tenant      ITenantService
}

func InitializeServices(
	driver neo4j.DriverWithContext,
	backendClient *backend.Client,
	canonicalGuard *guard.Guard,
	ledger *guard.Ledger,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) (*Services, error) {
	tenantDAO := dao.NewTenantDAO(driver)
	userDAO := dao.NewUserDAO(driver)

	guardService := NewGuardService(canonicalGuard, ledger, auditService, notificationSvc, eventBus)

	services := &Services{
		Guard:       guardService,
		Account:     NewAccountService(backendClient, cacheService),
		Transaction: NewTransactionService(backendClient, guardService, validationUtil, cacheService, notificationSvc, eventBus),
		Payroll:     NewPayrollService(backendClient, guardService, validationUtil, notificationSvc, eventBus),
		Report:      NewReportService(backendClient, cacheService),
		Tenant:      NewTenantService(tenantDAO, userDAO, validationUtil),
	}

	return services, nil
}
