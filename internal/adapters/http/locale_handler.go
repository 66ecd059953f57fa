package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopfront/core/internal/i18n"
	"github.com/shopfront/core/internal/infrastructure/logger"
)

// LocaleHandler serves resolved storefront text and localized prices
type LocaleHandler struct {
	resolver *i18n.Resolver
	logger   *logger.Logger
}

// NewLocaleHandler creates a new locale handler
func NewLocaleHandler(resolver *i18n.Resolver, logger *logger.Logger) *LocaleHandler {
	return &LocaleHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// FormatPrice handles converting a base price for a locale or an explicit
// currency. The amount is the GBP display price, e.g. "£9.99".
func (h *LocaleHandler) FormatPrice(c echo.Context) error {
	amount := c.QueryParam("amount")
	if amount == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "amount is required")
	}

	currency := c.QueryParam("currency")
	if currency == "" {
		currency = h.resolver.CurrencyFor(c.QueryParam("locale"))
	}

	return c.JSON(http.StatusOK, PriceResponse{
		Success:   true,
		Currency:  currency,
		Formatted: h.resolver.FormatPrice(amount, currency),
	})
}

// GetMessages handles fetching the full resolved message table for a locale
func (h *LocaleHandler) GetMessages(c echo.Context) error {
	locale := c.Param("locale")

	return c.JSON(http.StatusOK, MessagesResponse{
		Success:  true,
		Locale:   locale,
		Language: h.resolver.Language(locale),
		Messages: h.resolver.Messages(locale),
	})
}
