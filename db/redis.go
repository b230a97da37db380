// api/db/redis.go
package db

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/anish-goyal/finboard/api/logging"
	"github.com/anish-goyal/finboard/api/model"
)

var (
	RedisClient   *redis.Client
	encryptionKey []byte
)

func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
		PoolTimeout:  viper.GetDuration("redis.poolTimeout"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	encryptionKey = []byte(viper.GetString("redis.encryptionKey"))
	if len(encryptionKey) != 32 {
		return fmt.Errorf("invalid encryption key length: must be 32 bytes")
	}

	logger.Info("Successfully connected to Redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

func encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

// Account payloads carry balances, so they are encrypted at rest in Redis.
func CacheAccount(ctx context.Context, account *model.Account) error {
	accountJSON, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}

	encryptedAccount, err := encrypt(accountJSON)
	if err != nil {
		return fmt.Errorf("failed to encrypt account: %w", err)
	}

	key := fmt.Sprintf("account:%s:%s", account.TenantID, account.ID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, key, base64.StdEncoding.EncodeToString(encryptedAccount), defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache account: %w", err)
	}

	logger.Debug("Account cached successfully", zap.String("accountID", account.ID))
	return nil
}

func GetCachedAccount(ctx context.Context, tenantID, accountID string) (*model.Account, error) {
	key := fmt.Sprintf("account:%s:%s", tenantID, accountID)
	encryptedAccountStr, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Account not found in cache", zap.String("accountID", accountID))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get account from cache: %w", err)
	}

	encryptedAccount, err := base64.StdEncoding.DecodeString(encryptedAccountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode account: %w", err)
	}

	accountJSON, err := decrypt(encryptedAccount)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt account: %w", err)
	}

	var account model.Account
	err = json.Unmarshal(accountJSON, &account)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	logger.Debug("Account retrieved from cache", zap.String("accountID", accountID))
	return &account, nil
}

func DeleteCachedAccount(ctx context.Context, tenantID, accountID string) error {
	key := fmt.Sprintf("account:%s:%s", tenantID, accountID)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete account from cache: %w", err)
	}
	logger.Debug("Account deleted from cache", zap.String("accountID", accountID))
	return nil
}

func CacheReport(ctx context.Context, report *model.Report) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	key := fmt.Sprintf("report:%s:%s", report.TenantID, report.ID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, key, reportJSON, defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}

	logger.Debug("Report cached successfully", zap.String("reportID", report.ID))
	return nil
}

func GetCachedReport(ctx context.Context, tenantID, reportID string) (*model.Report, error) {
	key := fmt.Sprintf("report:%s:%s", tenantID, reportID)
	reportJSON, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Report not found in cache", zap.String("reportID", reportID))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get report from cache: %w", err)
	}

	var report model.Report
	err = json.Unmarshal([]byte(reportJSON), &report)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	logger.Debug("Report retrieved from cache", zap.String("reportID", reportID))
	return &report, nil
}

func DeleteCachedReport(ctx context.Context, tenantID, reportID string) error {
	key := fmt.Sprintf("report:%s:%s", tenantID, reportID)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete report from cache: %w", err)
	}
	logger.Debug("Report deleted from cache", zap.String("reportID", reportID))
	return nil
}

func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	pipe := RedisClient.Pipeline()
	now := time.Now().UnixNano()
	key = fmt.Sprintf("ratelimit:%s", key)

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now-(per.Nanoseconds())))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, per)

	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to execute rate limit commands: %w", err)
	}

	count := cmds[2].(*redis.IntCmd).Val()
	allowed := count <= int64(limit)
	logger.Debug("Rate limit check",
		zap.String("key", key),
		zap.Int64("count", count),
		zap.Int("limit", limit),
		zap.Bool("allowed", allowed))
	return allowed, nil
}

// LockResource guards mutually exclusive work such as a payroll run, which
// must not execute twice for the same tenant concurrently.
func LockResource(ctx context.Context, resourceName string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:%s", resourceName)
	locked, err := RedisClient.SetNX(ctx, key, "locked", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	logger.Debug("Lock acquisition attempt",
		zap.String("resource", resourceName),
		zap.Bool("locked", locked))
	return locked, nil
}

func UnlockResource(ctx context.Context, resourceName string) error {
	key := fmt.Sprintf("lock:%s", resourceName)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	logger.Debug("Lock released", zap.String("resource", resourceName))
	return nil
}
