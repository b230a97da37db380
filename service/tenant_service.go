// api/service/tenant_service.go
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/anish-goyal/finboard/api/dao"
	logger "github.com/anish-goyal/finboard/api/logging"
	"github.com/anish-goyal/finboard/api/model"
	"github.com/anish-goyal/finboard/api/util"
)

type ITenantService interface {
	CreateTenant(ctx context.Context, tenant model.Tenant) (string, error)
	GetTenant(ctx context.Context, tenantID string) (*model.Tenant, error)
	CreateUser(ctx context.Context, user model.User) (string, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
	AddUserToTenant(ctx context.Context, userID, tenantID string) error
	IsMember(ctx context.Context, tenantID, userID string) (bool, error)
}

// TenantService owns the tenant/user membership graph.
type TenantService struct {
	tenantDAO      *dao.TenantDAO
	userDAO        *dao.UserDAO
	validationUtil *util.ValidationUtil
}

func NewTenantService(tenantDAO *dao.TenantDAO, userDAO *dao.UserDAO, validationUtil *util.ValidationUtil) *TenantService {
	return &TenantService{
		tenantDAO:      tenantDAO,
		userDAO:        userDAO,
		validationUtil: validationUtil,
	}
}

func (s *TenantService) CreateTenant(ctx context.Context, tenant model.Tenant) (string, error) {
	if err := s.validationUtil.ValidateTenant(tenant); err != nil {
		return "", fmt.Errorf("invalid tenant: %w", err)
	}
	return s.tenantDAO.CreateTenant(ctx, tenant)
}

func (s *TenantService) GetTenant(ctx context.Context, tenantID string) (*model.Tenant, error) {
	return s.tenantDAO.GetTenant(ctx, tenantID)
}

func (s *TenantService) CreateUser(ctx context.Context, user model.User) (string, error) {
	if err := s.validationUtil.ValidateUser(user); err != nil {
		return "", fmt.Errorf("invalid user: %w", err)
	}
	return s.userDAO.CreateUser(ctx, user)
}

func (s *TenantService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.userDAO.GetUser(ctx, userID)
}

func (s *TenantService) AddUserToTenant(ctx context.Context, userID, tenantID string) error {
	if err := s.userDAO.AddToTenant(ctx, userID, tenantID); err != nil {
		return err
	}
	logger.Info("User linked to tenant",
		zap.String("userID", userID),
		zap.String("tenantID", tenantID))
	return nil
}

func (s *TenantService) IsMember(ctx context.Context, tenantID, userID string) (bool, error) {
	return s.tenantDAO.IsMember(ctx, tenantID, userID)
}
