//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ledgerkeep/inventory/internal/inventory/delivery/http"
	"github.com/ledgerkeep/inventory/internal/inventory/domain"
	"github.com/ledgerkeep/inventory/internal/inventory/repository"
	"github.com/ledgerkeep/inventory/internal/inventory/usecase/command"
	"github.com/ledgerkeep/inventory/internal/inventory/usecase/query"
	"github.com/ledgerkeep/inventory/kafka"
)

// Repository providers

func ProvideCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return repository.NewGormCategoryRepository(db)
}

func ProvideCachedProductRepository(db *gorm.DB, redisClient *redis.Client) *repository.CachedProductRepository {
	return repository.NewCachedProductRepository(repository.NewGormProductRepository(db), redisClient)
}

func ProvideProductRepository(cached *repository.CachedProductRepository) domain.ProductRepository {
	return cached
}

func ProvideCacheInvalidator(cached *repository.CachedProductRepository) http.ProductCacheInvalidator {
	return cached
}

func ProvideMovementRepository(db *gorm.DB) domain.MovementRepository {
	return repository.NewGormMovementRepository(db)
}

func ProvideLedger(db *gorm.DB) domain.Ledger {
	return repository.NewTracedLedger(repository.NewGormLedger(db))
}

// Handlers bundles the HTTP handlers for the inventory area
type Handlers struct {
	Category *http.CategoryHandler
	Product  *http.ProductHandler
	Movement *http.MovementHandler
}

func ProvideHandlers(
	category *http.CategoryHandler,
	product *http.ProductHandler,
	movement *http.MovementHandler,
) *Handlers {
	return &Handlers{Category: category, Product: product, Movement: movement}
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideCategoryRepository,
	ProvideCachedProductRepository,
	ProvideProductRepository,
	ProvideCacheInvalidator,
	ProvideMovementRepository,
	ProvideLedger,
)

var CommandHandlerSet = wire.NewSet(
	command.NewCreateCategoryHandler,
	command.NewUpdateCategoryHandler,
	command.NewDeleteCategoryHandler,
	command.NewCreateProductHandler,
	command.NewUpdateProductHandler,
	command.NewDeleteProductHandler,
	command.NewCreateMovementHandler,
	command.NewUpdateMovementHandler,
	command.NewDeleteMovementHandler,
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetCategoryHandler,
	query.NewListCategoriesHandler,
	query.NewGetProductHandler,
	query.NewListProductsHandler,
	query.NewGetMovementHandler,
	query.NewListMovementsHandler,
	query.NewGetStatsHandler,
)

// InitializeHandlers initializes all HTTP handlers with their dependencies.
// redisClient and publisher may be nil.
func InitializeHandlers(db *gorm.DB, redisClient *redis.Client, publisher *kafka.Publisher) (*Handlers, error) {
	wire.Build(
		RepositorySet,
		CommandHandlerSet,
		QueryHandlerSet,
		http.NewCategoryHandler,
		http.NewProductHandler,
		http.NewMovementHandler,
		ProvideHandlers,
	)
	return nil, nil
}
