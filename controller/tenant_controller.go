// api/controller/tenant_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	fin_errors "github.com/anish-goyal/finboard/api/errors"
	"github.com/anish-goyal/finboard/api/model"
	"github.com/anish-goyal/finboard/api/service"
	"github.com/anish-goyal/finboard/api/util"
)

type TenantController struct {
	tenantService service.ITenantService
}

func NewTenantController(tenantService service.ITenantService) *TenantController {
	return &TenantController{
		tenantService: tenantService,
	}
}

// RegisterRoutes registers the API routes
func (tc *TenantController) RegisterRoutes(r *gin.RouterGroup) {
	tenants := r.Group("/tenants")
	{
		tenants.POST("", tc.CreateTenant)
		tenants.GET("/:id", tc.GetTenant)
		tenants.POST("/:id/members", tc.AddMember)
		tenants.GET("/:id/members/:userId", tc.CheckMembership)
	}
	users := r.Group("/users")
	{
		users.POST("", tc.CreateUser)
		users.GET("/:id", tc.GetUser)
	}
}

// CreateTenant endpoint
func (tc *TenantController) CreateTenant(c *gin.Context) {
	var tenant model.Tenant
	if err := c.ShouldBindJSON(&tenant); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid tenant data", err)
		return
	}

	id, err := tc.tenantService.CreateTenant(c, tenant)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to create tenant", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetTenant endpoint
func (tc *TenantController) GetTenant(c *gin.Context) {
	tenantID := c.Param("id")

	tenant, err := tc.tenantService.GetTenant(c, tenantID)
	if err != nil {
		if errors.Is(err, fin_errors.ErrTenantNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Tenant not found", err)
			return
		}
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch tenant", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tenant": tenant})
}

type AddMemberRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// AddMember endpoint
func (tc *TenantController) AddMember(c *gin.Context) {
	tenantID := c.Param("id")

	var request AddMemberRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid member data", err)
		return
	}

	if err := tc.tenantService.AddUserToTenant(c, request.UserID, tenantID); err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to add member", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "member added"})
}

// CheckMembership endpoint
func (tc *TenantController) CheckMembership(c *gin.Context) {
	tenantID := c.Param("id")
	userID := c.Param("userId")

	member, err := tc.tenantService.IsMember(c, tenantID, userID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to check membership", err)
		return
	}
	if !member {
		util.RespondWithError(c, http.StatusNotFound, "User is not a member of tenant", fin_errors.ErrTenantMemberMissing)
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": true})
}

// CreateUser endpoint
func (tc *TenantController) CreateUser(c *gin.Context) {
	var user model.User
	if err := c.ShouldBindJSON(&user); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid user data", err)
		return
	}

	id, err := tc.tenantService.CreateUser(c, user)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to create user", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetUser endpoint
func (tc *TenantController) GetUser(c *gin.Context) {
	userID := c.Param("id")

	user, err := tc.tenantService.GetUser(c, userID)
	if err != nil {
		if errors.Is(err, fin_errors.ErrUserNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "User not found", err)
			return
		}
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
