// api/dao/tenant_dao.go
package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	fin_errors "github.com/anish-goyal/finboard/api/errors"
	logger "github.com/anish-goyal/finboard/api/logging"
	"github.com/anish-goyal/finboard/api/model"
)

const labelTenant = "Tenant"

type TenantDAO struct {
	Driver neo4j.DriverWithContext
}

func NewTenantDAO(driver neo4j.DriverWithContext) *TenantDAO {
	dao := &TenantDAO{Driver: driver}
	ctx := context.Background()
	if err := dao.EnsureUniqueConstraint(ctx); err != nil {
		logger.Fatal("Failed to ensure unique constraint for Tenant", zap.Error(err))
	}
	return dao
}

func (dao *TenantDAO) EnsureUniqueConstraint(ctx context.Context) error {
	logger.Info("Ensuring unique constraint on Tenant ID")
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `
        CREATE CONSTRAINT unique_tenant_id IF NOT EXISTS
        FOR (t:` + labelTenant + `) REQUIRE t.id IS UNIQUE
        `
		_, err := tx.Run(ctx, query, nil)
		return nil, err
	})

	if err != nil {
		logger.Error("Failed to ensure unique constraint on Tenant ID", zap.Error(err))
		return err
	}

	return nil
}

func (dao *TenantDAO) CreateTenant(ctx context.Context, tenant model.Tenant) (string, error) {
	start := time.Now()
	logger.Info("Creating new tenant", zap.String("tenantName", tenant.Name))
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	if tenant.ID == "" {
		tenant.ID = uuid.New().String()
	}

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `
        MERGE (t:` + labelTenant + ` {id: $id})
        ON CREATE SET t += $props
        RETURN t.id as id
        `

		params := map[string]interface{}{
			"id": tenant.ID,
			"props": map[string]interface{}{
				"name":      tenant.Name,
				"plan":      tenant.Plan,
				"status":    tenant.Status,
				"createdAt": time.Now().Format(time.RFC3339),
				"updatedAt": time.Now().Format(time.RFC3339),
			},
		}

		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, fin_errors.ErrDatabaseOperation
		}

		if res.Next(ctx) {
			return res.Record().Values[0], nil
		}

		return nil, fin_errors.ErrInternalServer
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create tenant",
			zap.Error(err),
			zap.String("tenantName", tenant.Name),
			zap.Duration("duration", duration))
		return "", err
	}

	tenantID := fmt.Sprintf("%v", result)
	logger.Info("Tenant created successfully",
		zap.String("tenantID", tenantID),
		zap.Duration("duration", duration))
	return tenantID, nil
}

func (dao *TenantDAO) GetTenant(ctx context.Context, tenantID string) (*model.Tenant, error) {
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `
        MATCH (t:` + labelTenant + ` {id: $id})
        RETURN t.id as id, t.name as name, t.plan as plan, t.status as status
        `
		res, err := tx.Run(ctx, query, map[string]interface{}{"id": tenantID})
		if err != nil {
			return nil, fin_errors.ErrDatabaseOperation
		}

		if res.Next(ctx) {
			record := res.Record()
			tenant := &model.Tenant{
				ID:     asString(record.Values[0]),
				Name:   asString(record.Values[1]),
				Plan:   asString(record.Values[2]),
				Status: asString(record.Values[3]),
			}
			return tenant, nil
		}

		return nil, fin_errors.ErrTenantNotFound
	})

	if err != nil {
		return nil, err
	}
	return result.(*model.Tenant), nil
}

// IsMember reports whether the user belongs to the tenant.
func (dao *TenantDAO) IsMember(ctx context.Context, tenantID, userID string) (bool, error) {
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `
        MATCH (u:User {id: $userID})-[:BELONGS_TO]->(t:` + labelTenant + ` {id: $tenantID})
        RETURN count(u) > 0 as member
        `
		res, err := tx.Run(ctx, query, map[string]interface{}{
			"userID":   userID,
			"tenantID": tenantID,
		})
		if err != nil {
			return false, fin_errors.ErrDatabaseOperation
		}

		if res.Next(ctx) {
			member, _ := res.Record().Values[0].(bool)
			return member, nil
		}

		return false, nil
	})

	if err != nil {
		return false, err
	}
	return result.(bool), nil
}

func asString(value interface{}) string {
	if value == nil {
		return ""
	}
	s, _ := value.(string)
	return s
}
