// api/dao/user_dao.go
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

const labelUser = "User"

type UserDAO struct {
	Driver neo4j.DriverWithContext
}

func NewUserDAO(driver neo4j.DriverWithContext) *UserDAO {
	dao := &UserDAO{Driver: driver}
	ctx := context.Background()
	if err := dao.EnsureUniqueConstraint(ctx); err != nil {
		logger.Fatal("Failed to ensure unique constraint for User", zap.Error(err))
	}
	return dao
}

func (dao *UserDAO) EnsureUniqueConstraint(ctx context.Context) error {
	logger.Info("Ensuring unique constraint on User ID")
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `
        CREATE CONSTRAINT unique_user_id IF NOT EXISTS
        FOR (u:` + labelUser + `) REQUIRE u.id IS UNIQUE
        `
		_, err := tx.Run(ctx, query, nil)
		return nil, err
	})

	if err != nil {
		logger.Error("Failed to ensure unique constraint on User ID", zap.Error(err))
		return err
	}

	return nil
}

func (dao *UserDAO) CreateUser(ctx context.Context, user model.User) (string, error) {
	start := time.Now()
	logger.Info("Creating new user", zap.String("email", user.Email))
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `
        MERGE (u:` + labelUser + ` {id: $id})
        ON CREATE SET u += $props
        RETURN u.id as id
        `

		params := map[string]interface{}{
			"id": user.ID,
			"props": map[string]interface{}{
				"name":      user.Name,
				"email":     user.Email,
				"role":      user.Role,
				"status":    user.Status,
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
		logger.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
			zap.Duration("duration", duration))
		return "", err
	}

	userID := fmt.Sprintf("%v", result)
	logger.Info("User created successfully",
		zap.String("userID", userID),
		zap.Duration("duration", duration))
	return userID, nil
}

// AddToTenant links a user to a tenant with a BELONGS_TO relationship.
func (dao *UserDAO) AddToTenant(ctx context.Context, userID, tenantID string) error {
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `
        MATCH (u:` + labelUser + ` {id: $userID})
        MATCH (t:` + labelTenant + ` {id: $tenantID})
        MERGE (u)-[r:BELONGS_TO]->(t)
        ON CREATE SET r.since = $since
        RETURN r
        `
		res, err := tx.Run(ctx, query, map[string]interface{}{
			"userID":   userID,
			"tenantID": tenantID,
			"since":    time.Now().Format(time.RFC3339),
		})
		if err != nil {
			return nil, fin_errors.ErrDatabaseOperation
		}

		if !res.Next(ctx) {
			return nil, fin_errors.ErrUserNotFound
		}
		return nil, nil
	})

	if err != nil {
		logger.Error("Failed to add user to tenant",
			zap.Error(err),
			zap.String("userID", userID),
			zap.String("tenantID", tenantID))
		return err
	}

	logger.Info("User added to tenant",
		zap.String("userID", userID),
		zap.String("tenantID", tenantID))
	return nil
}

func (dao *UserDAO) GetUser(ctx context.Context, userID string) (*model.User, error) {
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `
        MATCH (u:` + labelUser + ` {id: $id})
        OPTIONAL MATCH (u)-[:BELONGS_TO]->(t:` + labelTenant + `)
        RETURN u.id as id, u.name as name, u.email as email, u.role as role,
               u.status as status, collect(t.id) as tenantIDs
        `
		res, err := tx.Run(ctx, query, map[string]interface{}{"id": userID})
		if err != nil {
			return nil, fin_errors.ErrDatabaseOperation
		}

		if res.Next(ctx) {
			record := res.Record()
			user := &model.User{
				ID:     asString(record.Values[0]),
				Name:   asString(record.Values[1]),
				Email:  asString(record.Values[2]),
				Role:   asString(record.Values[3]),
				Status: asString(record.Values[4]),
			}
			if raw, ok := record.Values[5].([]interface{}); ok {
				for _, value := range raw {
					if id := asString(value); id != "" {
						user.TenantIDs = append(user.TenantIDs, id)
					}
				}
			}
			return user, nil
		}

		return nil, fin_errors.ErrUserNotFound
	})

	if err != nil {
		return nil, err
	}
	return result.(*model.User), nil
}
