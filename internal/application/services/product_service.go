package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shopfront/core/internal/domain/entities"
	"github.com/shopfront/core/internal/infrastructure/logger"
	"github.com/shopfront/core/internal/ports"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo ports.ProductRepository
	logger      *logger.Logger
	now         func() time.Time
}

// NewProductService creates a new product service
func NewProductService(productRepo ports.ProductRepository, appLogger *logger.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      appLogger,
		now:         time.Now,
	}
}

// ListProducts returns all live products
func (s *ProductService) ListProducts(ctx context.Context) ([]*entities.Product, error) {
	return s.productRepo.List(ctx)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*entities.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// UpsertProduct inserts or fully replaces a product. The payload wins on
// every display field; the server only preserves its own metadata: createdAt
// survives from the existing record, and id/lastUpdated are assigned here.
func (s *ProductService) UpsertProduct(ctx context.Context, product *entities.Product) (*entities.Product, error) {
	now := s.now().UnixMilli()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	product.LastUpdated = now
	product.DeletedAt = 0

	existing, err := s.productRepo.GetByID(ctx, product.ID)
	if err == nil && existing.CreatedAt > 0 {
		product.CreatedAt = existing.CreatedAt
	} else if product.CreatedAt == 0 {
		product.CreatedAt = now
	}

	if err := s.productRepo.Upsert(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to upsert product: %w", err)
	}

	s.logger.Info("Product upserted", "product_id", product.ID, "name", product.Name)

	return product, nil
}

// DeleteProduct removes a product by ID
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Product deleted", "product_id", id)
	return nil
}

// SearchProducts returns products matching the query
func (s *ProductService) SearchProducts(ctx context.Context, query string) ([]*entities.Product, error) {
	return s.productRepo.Search(ctx, query)
}

// ListByCategory returns products in the given category
func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]*entities.Product, error) {
	return s.productRepo.ListByCategory(ctx, category)
}

// SyncCatalog merges a client collection into the server catalog by
// last-write-wins and returns the resulting live record count.
func (s *ProductService) SyncCatalog(ctx context.Context, products []*entities.Product) (int, error) {
	if len(products) == 0 {
		return 0, entities.ErrEmptyCatalog
	}

	count, err := s.productRepo.Merge(ctx, products)
	if err != nil {
		return 0, fmt.Errorf("failed to merge catalog: %w", err)
	}

	s.logger.Info("Catalog synchronized", "incoming", len(products), "live_records", count)

	return count, nil
}

// IncrementViews bumps a product's page view counter
func (s *ProductService) IncrementViews(ctx context.Context, id string) (int64, error) {
	views, err := s.productRepo.IncrementViews(ctx, id)
	if err != nil {
		return 0, err
	}
	return views, nil
}

// Count returns the number of live products
func (s *ProductService) Count(ctx context.Context) int {
	return s.productRepo.Count(ctx)
}
