package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"stocktrack/internal/models"
)

type CacheService interface {
	// Product caching
	GetProduct(ctx context.Context, tenantID, productID uuid.UUID) (*models.Product, error)
	SetProduct(ctx context.Context, tenantID uuid.UUID, product *models.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, tenantID, productID uuid.UUID) error

	// Low-stock report caching
	GetLowStockReport(ctx context.Context, tenantID uuid.UUID) ([]*models.LowStockProduct, error)
	SetLowStockReport(ctx context.Context, tenantID uuid.UUID, report []*models.LowStockProduct, ttl time.Duration) error
	DeleteLowStockReport(ctx context.Context, tenantID uuid.UUID) error

	// Generic string operations for token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisCacheService(addr, password string, db int, logger *zap.Logger) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis ping failed on initialization", zap.String("addr", addr), zap.Error(err))
	}

	return &redisCacheService{client: client, logger: logger}
}

func (r *redisCacheService) GetProduct(ctx context.Context, tenantID, productID uuid.UUID) (*models.Product, error) {
	key := fmt.Sprintf("stocktrack:product:%s:%s", tenantID, productID)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *redisCacheService) SetProduct(ctx context.Context, tenantID uuid.UUID, product *models.Product, ttl time.Duration) error {
	key := fmt.Sprintf("stocktrack:product:%s:%s", tenantID, product.ID)
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteProduct(ctx context.Context, tenantID, productID uuid.UUID) error {
	key := fmt.Sprintf("stocktrack:product:%s:%s", tenantID, productID)
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetLowStockReport(ctx context.Context, tenantID uuid.UUID) ([]*models.LowStockProduct, error) {
	key := fmt.Sprintf("stocktrack:lowstock:%s", tenantID)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var report []*models.LowStockProduct
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return report, nil
}

func (r *redisCacheService) SetLowStockReport(ctx context.Context, tenantID uuid.UUID, report []*models.LowStockProduct, ttl time.Duration) error {
	key := fmt.Sprintf("stocktrack:lowstock:%s", tenantID)
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteLowStockReport(ctx context.Context, tenantID uuid.UUID) error {
	key := fmt.Sprintf("stocktrack:lowstock:%s", tenantID)
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
