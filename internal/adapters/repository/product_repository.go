package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopfront/core/internal/domain/entities"
	"github.com/shopfront/core/internal/infrastructure/config"
	"github.com/shopfront/core/internal/infrastructure/logger"
	"github.com/shopfront/core/internal/infrastructure/storage"
)

// ProductRepository implements catalog persistence over a single JSON file.
// The collection is held in memory as the authoritative copy, guarded by a
// mutex, and written back wholesale on every mutation. Deleted records stay
// in the collection as tombstones so bulk reconciliation cannot resurrect
// them; tombstones past the retention window are compacted on save.
type ProductRepository struct {
	store     *storage.Store
	logger    *logger.Logger
	retention time.Duration

	mu       sync.RWMutex
	products []*entities.Product
	index    map[string]int

	now func() time.Time
}

// NewProductRepository loads the collection from disk and builds the id index.
// A corrupted file is a hard error, not an empty catalog.
func NewProductRepository(store *storage.Store, cfg config.StoreConfig, appLogger *logger.Logger) (*ProductRepository, error) {
	var products []*entities.Product
	if err := store.Read(&products); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	r := &ProductRepository{
		store:     store,
		logger:    appLogger.WithComponent("product_repository"),
		retention: cfg.TombstoneRetention,
		products:  products,
		now:       time.Now,
	}
	r.rebuildIndex()

	r.logger.Info("Catalog loaded", "path", store.Path(), "records", len(products))

	return r, nil
}

// List returns all live products.
func (r *ProductRepository) List(ctx context.Context) ([]*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.Product, 0, len(r.products))
	for _, p := range r.products {
		if !p.IsDeleted() {
			result = append(result, p.Clone())
		}
	}
	return result, nil
}

// GetByID returns a live product by id.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.index[id]
	if !ok || r.products[idx].IsDeleted() {
		return nil, entities.ErrProductNotFound
	}
	return r.products[idx].Clone(), nil
}

// Upsert inserts or fully replaces the record with the same id.
func (r *ProductRepository) Upsert(ctx context.Context, product *entities.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := product.Clone()
	if idx, ok := r.index[product.ID]; ok {
		r.products[idx] = stored
	} else {
		r.products = append(r.products, stored)
		r.index[product.ID] = len(r.products) - 1
	}

	return r.persistLocked()
}

// Delete tombstones a live product. The tombstone keeps the id and carries
// the deletion time as its last-write-wins timestamp.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.index[id]
	if !ok || r.products[idx].IsDeleted() {
		return entities.ErrProductNotFound
	}

	now := r.now().UnixMilli()
	r.products[idx].DeletedAt = now
	r.products[idx].LastUpdated = now

	return r.persistLocked()
}

// Search returns live products whose name, description, category or features
// contain the query, case-insensitively.
func (r *ProductRepository) Search(ctx context.Context, query string) ([]*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	result := make([]*entities.Product, 0)
	for _, p := range r.products {
		if p.IsDeleted() {
			continue
		}
		if matchesQuery(p, q) {
			result = append(result, p.Clone())
		}
	}
	return result, nil
}

// ListByCategory returns live products with an exact category match.
func (r *ProductRepository) ListByCategory(ctx context.Context, category string) ([]*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.Product, 0)
	for _, p := range r.products {
		if !p.IsDeleted() && p.Category == category {
			result = append(result, p.Clone())
		}
	}
	return result, nil
}

// Merge reconciles a client collection with the server's by last-write-wins
// on lastUpdated. Records present on only one side are kept; tombstones take
// part like any other record, so a delete that is newer than a stale update
// wins. Returns the number of live records after reconciliation.
func (r *ProductRepository) Merge(ctx context.Context, incoming []*entities.Product) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, in := range incoming {
		if in.ID == "" {
			continue
		}
		idx, ok := r.index[in.ID]
		if !ok {
			r.products = append(r.products, in.Clone())
			r.index[in.ID] = len(r.products) - 1
			continue
		}
		if in.NewerThan(r.products[idx]) {
			r.products[idx] = in.Clone()
		}
	}

	if err := r.persistLocked(); err != nil {
		return 0, err
	}
	return r.countLocked(), nil
}

// IncrementViews bumps the page view counter of a live product and persists.
func (r *ProductRepository) IncrementViews(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.index[id]
	if !ok || r.products[idx].IsDeleted() {
		return 0, entities.ErrProductNotFound
	}

	r.products[idx].PageViews++
	if err := r.persistLocked(); err != nil {
		return 0, err
	}
	return r.products[idx].PageViews, nil
}

// Count returns the number of live products.
func (r *ProductRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.countLocked()
}

func (r *ProductRepository) countLocked() int {
	count := 0
	for _, p := range r.products {
		if !p.IsDeleted() {
			count++
		}
	}
	return count
}

// persistLocked compacts expired tombstones and rewrites the backing file.
// Callers must hold the write lock.
func (r *ProductRepository) persistLocked() error {
	cutoff := r.now().Add(-r.retention).UnixMilli()
	compacted := r.products[:0]
	dropped := 0
	for _, p := range r.products {
		if p.IsDeleted() && r.retention > 0 && p.DeletedAt < cutoff {
			dropped++
			continue
		}
		compacted = append(compacted, p)
	}
	if dropped > 0 {
		r.products = compacted
		r.rebuildIndex()
		r.logger.Debug("Compacted expired tombstones", "dropped", dropped)
	}

	if err := r.store.Write(r.products); err != nil {
		r.logger.Error("Failed to persist catalog", "error", err)
		return fmt.Errorf("failed to persist catalog: %w", err)
	}
	return nil
}

func (r *ProductRepository) rebuildIndex() {
	r.index = make(map[string]int, len(r.products))
	for i, p := range r.products {
		r.index[p.ID] = i
	}
}

func matchesQuery(p *entities.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Category), q) {
		return true
	}
	for _, f := range p.Features {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
