package ports

import (
	"context"

	"github.com/shopfront/core/internal/domain/entities"
)

// ProductRepository defines the interface for catalog data operations
type ProductRepository interface {
	List(ctx context.Context) ([]*entities.Product, error)
	GetByID(ctx context.Context, id string) (*entities.Product, error)
	Upsert(ctx context.Context, product *entities.Product) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]*entities.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*entities.Product, error)
	Merge(ctx context.Context, incoming []*entities.Product) (int, error)
	IncrementViews(ctx context.Context, id string) (int64, error)
	Count(ctx context.Context) int
}
