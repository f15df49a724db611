package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
	"github.com/ledgerkeep/inventory/pkg/logger"
)

// productCacheTTL bounds staleness of cached product reads. Writes
// invalidate eagerly; the TTL covers direct database changes.
const productCacheTTL = 5 * time.Minute

// CachedProductRepository is a read-through Redis cache over a product
// repository. A nil client disables caching and delegates everything.
type CachedProductRepository struct {
	domain.ProductRepository
	client *redis.Client
}

func NewCachedProductRepository(inner domain.ProductRepository, client *redis.Client) *CachedProductRepository {
	return &CachedProductRepository{ProductRepository: inner, client: client}
}

func productCacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

func (r *CachedProductRepository) FindByID(id uint) (*domain.Product, error) {
	if r.client == nil {
		return r.ProductRepository.FindByID(id)
	}

	ctx := context.Background()
	key := productCacheKey(id)

	if cached, err := r.client.Get(ctx, key).Bytes(); err == nil && len(cached) > 0 {
		var product domain.Product
		if err := json.Unmarshal(cached, &product); err == nil {
			logger.Logger.Debug().Str("cache_key", key).Msg("Product cache hit")
			return &product, nil
		}
	}

	product, err := r.ProductRepository.FindByID(id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(product); err == nil {
		if err := r.client.Set(ctx, key, data, productCacheTTL).Err(); err != nil {
			logger.Logger.Warn().Err(err).Str("cache_key", key).Msg("Failed to cache product")
		}
	}

	return product, nil
}

func (r *CachedProductRepository) Update(product *domain.Product) error {
	if err := r.ProductRepository.Update(product); err != nil {
		return err
	}
	r.invalidate(product.ID)
	return nil
}

func (r *CachedProductRepository) Delete(id uint) error {
	if err := r.ProductRepository.Delete(id); err != nil {
		return err
	}
	r.invalidate(id)
	return nil
}

// Invalidate drops the cached entry for a product. The reconciler calls
// this after a committed reconciliation changed the cached quantity.
func (r *CachedProductRepository) Invalidate(id uint) {
	r.invalidate(id)
}

func (r *CachedProductRepository) invalidate(id uint) {
	if r.client == nil {
		return
	}
	key := productCacheKey(id)
	if err := r.client.Del(context.Background(), key).Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("cache_key", key).Msg("Failed to invalidate product cache")
	}
}
