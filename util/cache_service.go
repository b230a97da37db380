// api/util/cache_service.go

package util

import (
	"context"

	"github.com/anish-goyal/finboard/api/db"
	"github.com/anish-goyal/finboard/api/model"
)

// CacheService fronts the Redis cache. When Redis was never initialized the
// cache is simply disabled: reads miss and writes are dropped.
type CacheService struct{}

func NewCacheService() *CacheService {
	return &CacheService{}
}

func (c *CacheService) enabled() bool {
	return db.RedisClient != nil
}

func (c *CacheService) GetAccount(ctx context.Context, tenantID, accountID string) (*model.Account, error) {
	if !c.enabled() {
		return nil, nil
	}
	return db.GetCachedAccount(ctx, tenantID, accountID)
}

func (c *CacheService) SetAccount(ctx context.Context, account model.Account) error {
	if !c.enabled() {
		return nil
	}
	return db.CacheAccount(ctx, &account)
}

func (c *CacheService) DeleteAccount(ctx context.Context, tenantID, accountID string) error {
	if !c.enabled() {
		return nil
	}
	return db.DeleteCachedAccount(ctx, tenantID, accountID)
}

func (c *CacheService) GetReport(ctx context.Context, tenantID, reportID string) (*model.Report, error) {
	if !c.enabled() {
		return nil, nil
	}
	return db.GetCachedReport(ctx, tenantID, reportID)
}

func (c *CacheService) SetReport(ctx context.Context, report model.Report) error {
	if !c.enabled() {
		return nil
	}
	return db.CacheReport(ctx, &report)
}

func (c *CacheService) DeleteReport(ctx context.Context, tenantID, reportID string) error {
	if !c.enabled() {
		return nil
	}
	return db.DeleteCachedReport(ctx, tenantID, reportID)
}
