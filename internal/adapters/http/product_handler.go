package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopfront/core/internal/application/services"
	"github.com/shopfront/core/internal/domain/entities"
	"github.com/shopfront/core/internal/infrastructure/logger"
	"github.com/shopfront/core/internal/ports"
)

// ProductHandler handles catalog-related requests
type ProductHandler struct {
	productService *services.ProductService
	logger         *logger.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *services.ProductService, logger *logger.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// ListProducts handles listing the whole catalog
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.productService.ListProducts(c.Request().Context())
	if err != nil {
		h.logger.Error("List products failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve products")
	}

	return c.JSON(http.StatusOK, products)
}

// GetProduct handles getting a product by ID
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id := c.Param("id")

	product, err := h.productService.GetProduct(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, entities.ErrProductNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		h.logger.Error("Get product failed", "error", err, "product_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve product")
	}

	return c.JSON(http.StatusOK, product)
}

// UpsertProduct handles inserting or replacing a product
func (h *ProductHandler) UpsertProduct(c echo.Context) error {
	var product entities.Product
	if err := c.Bind(&product); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	stored, err := h.productService.UpsertProduct(c.Request().Context(), &product)
	if err != nil {
		h.logger.Error("Upsert product failed", "error", err, "product_id", product.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save product")
	}

	return c.JSON(http.StatusOK, ProductResponse{Success: true, Product: stored})
}

// DeleteProduct handles deleting a product by ID
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id := c.Param("id")

	if err := h.productService.DeleteProduct(c.Request().Context(), id); err != nil {
		if errors.Is(err, entities.ErrProductNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		h.logger.Error("Delete product failed", "error", err, "product_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete product")
	}

	return c.JSON(http.StatusOK, DeleteResponse{Success: true})
}

// SearchProducts handles substring search across the catalog
func (h *ProductHandler) SearchProducts(c echo.Context) error {
	query := c.Param("query")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query is required")
	}

	products, err := h.productService.SearchProducts(c.Request().Context(), query)
	if err != nil {
		h.logger.Error("Search products failed", "error", err, "query", query)
		return echo.NewHTTPError(http.StatusInternalServerError, "Search failed")
	}

	return c.JSON(http.StatusOK, products)
}

// ListByCategory handles listing products of one category
func (h *ProductHandler) ListByCategory(c echo.Context) error {
	category := c.Param("category")

	products, err := h.productService.ListByCategory(c.Request().Context(), category)
	if err != nil {
		h.logger.Error("List by category failed", "error", err, "category", category)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve products")
	}

	return c.JSON(http.StatusOK, products)
}

// SyncCatalog handles bulk reconciliation of a client catalog
func (h *ProductHandler) SyncCatalog(c echo.Context) error {
	var req ports.SyncCatalogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	count, err := h.productService.SyncCatalog(c.Request().Context(), req.Products)
	if err != nil {
		if errors.Is(err, entities.ErrEmptyCatalog) {
			return echo.NewHTTPError(http.StatusBadRequest, "Products payload is required")
		}
		h.logger.Error("Catalog sync failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Catalog sync failed")
	}

	return c.JSON(http.StatusOK, SyncCatalogResponse{
		Success: true,
		Count:   count,
		Message: "Catalog synchronized",
	})
}

// IncrementViews handles bumping a product's page view counter
func (h *ProductHandler) IncrementViews(c echo.Context) error {
	id := c.Param("id")

	views, err := h.productService.IncrementViews(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, entities.ErrProductNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		h.logger.Error("Increment views failed", "error", err, "product_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update view count")
	}

	return c.JSON(http.StatusOK, ViewsResponse{Success: true, PageViews: views})
}
