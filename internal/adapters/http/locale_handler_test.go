package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMessages(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/i18n/dk", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp MessagesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "dk", resp.Locale)
	assert.Equal(t, "da", resp.Language)
	assert.Equal(t, "Læg i kurven", resp.Messages["product.addToCart"])
	// Keys without a Danish translation fall back to English
	assert.Equal(t, "Deal of the Day", resp.Messages["banner.dealOfTheDay"])
}

func TestGetMessages_UnknownLocaleFallsBack(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/i18n/zz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp MessagesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "en", resp.Language)
	assert.Equal(t, "Add to Basket", resp.Messages["product.addToCart"])
}

func TestFormatPrice(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/i18n/price?amount="+url.QueryEscape("£9.99")+"&currency=NOK", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PriceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "NOK", resp.Currency)
	assert.Equal(t, "130 kr", resp.Formatted)
}

func TestFormatPrice_CurrencyFromLocale(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/i18n/price?amount="+url.QueryEscape("£10.00")+"&locale=de", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PriceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "EUR", resp.Currency)
	assert.Equal(t, "€11.50", resp.Formatted)
}

func TestFormatPrice_RequiresAmount(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(e, http.MethodGet, "/api/i18n/price?currency=NOK", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
