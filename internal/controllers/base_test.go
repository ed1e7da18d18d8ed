package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/drstein77/storefront/internal/cart"
	"github.com/drstein77/storefront/internal/catalog"
	"github.com/drstein77/storefront/internal/models"
	"github.com/drstein77/storefront/internal/storage"
	"github.com/drstein77/storefront/internal/views"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newServer(t *testing.T) (*httptest.Server, *storage.MemoryStorage) {
	t.Helper()

	c := catalog.New()
	c.Publish([]models.Product{
		{ID: "a", Name: "Panna Cotta", Category: "Panna Cotta", Price: decimal.RequireFromString("5.00")},
		{ID: "b", Name: "Red Velvet Cake", Category: "Cake", Price: decimal.RequireFromString("4.50")},
	})
	s := storage.NewMemoryStorage(c, cart.NewStore(), nil, zap.NewNop())

	renderer, err := views.NewRenderer()
	require.NoError(t, err)

	assets := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(assets, "logo.svg"), []byte("<svg/>"), 0o600))

	srv := httptest.NewServer(NewBaseController(s, renderer, assets, zap.NewNop()).Route())
	t.Cleanup(srv.Close)
	return srv, s
}

func noRedirect(srv *httptest.Server) *http.Client {
	client := srv.Client()
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return client
}

func post(t *testing.T, client *http.Client, url string) *http.Response {
	t.Helper()
	resp, err := client.Post(url, "application/x-www-form-urlencoded", nil)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeCart(t *testing.T, resp *http.Response) models.CartResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var out models.CartResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestFormIntents_RedirectAndMutate(t *testing.T) {
	srv, s := newServer(t)
	client := noRedirect(srv)

	resp := post(t, client, srv.URL+"/cart/a/add")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	post(t, client, srv.URL+"/cart/a/increment")
	post(t, client, srv.URL+"/cart/b/add")
	post(t, client, srv.URL+"/cart/a/decrement")

	sum := s.Cart()
	require.Len(t, sum.Lines, 2)
	assert.Equal(t, 1, sum.Lines[0].Quantity)
	assert.Equal(t, "9.50", sum.Total.StringFixed(2))

	post(t, client, srv.URL+"/cart/a/remove")
	assert.Len(t, s.Cart().Lines, 1)
}

func TestFormIntents_NotFound(t *testing.T) {
	srv, _ := newServer(t)
	client := noRedirect(srv)

	assert.Equal(t, http.StatusNotFound, post(t, client, srv.URL+"/cart/zzz/add").StatusCode)
	assert.Equal(t, http.StatusNotFound, post(t, client, srv.URL+"/cart/a/explode").StatusCode)
}

func TestOrderFlow(t *testing.T) {
	srv, s := newServer(t)
	client := noRedirect(srv)

	post(t, client, srv.URL+"/cart/a/add")
	resp := post(t, client, srv.URL+"/order/confirm")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.True(t, s.OrderOpen())

	page, err := srv.Client().Get(srv.URL + "/")
	require.NoError(t, err)
	defer page.Body.Close()
	assert.Equal(t, "text/html; charset=utf-8", page.Header.Get("Content-Type"))

	post(t, client, srv.URL+"/order/new")
	assert.False(t, s.OrderOpen())
	assert.Empty(t, s.Cart().Lines)
}

func TestAPI_Cart(t *testing.T) {
	srv, _ := newServer(t)
	client := srv.Client()

	out := decodeCart(t, post(t, client, srv.URL+"/api/v0/cart/a/add"))
	out = decodeCart(t, post(t, client, srv.URL+"/api/v0/cart/a/add"))
	require.Len(t, out.Cart.Lines, 1)
	assert.Equal(t, 2, out.Cart.Lines[0].Quantity)
	assert.True(t, decimal.RequireFromString("10").Equal(out.Cart.Total))

	out = decodeCart(t, post(t, client, srv.URL+"/api/v0/order/confirm"))
	assert.True(t, out.OrderOpen)
	assert.Equal(t, 1, out.Cart.Count)

	resp, err := client.Get(srv.URL + "/api/v0/cart")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.True(t, decodeCart(t, resp).OrderOpen)

	out = decodeCart(t, post(t, client, srv.URL+"/api/v0/order/new"))
	assert.False(t, out.OrderOpen)
	assert.Empty(t, out.Cart.Lines)
	assert.True(t, out.Cart.Total.IsZero())
}

func TestAPI_Products(t *testing.T) {
	srv, _ := newServer(t)

	resp, err := srv.Client().Get(srv.URL + "/api/v0/products")
	require.NoError(t, err)
	defer resp.Body.Close()

	var products []models.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	require.Len(t, products, 2)
	assert.Equal(t, "Panna Cotta", products[0].Name)
}

func TestPingAndAssets(t *testing.T) {
	srv, _ := newServer(t)

	resp, err := srv.Client().Get(srv.URL + "/ping")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = srv.Client().Get(srv.URL + "/assets/logo.svg")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOrderModalHiddenOnceCartEmptied(t *testing.T) {
	srv, s := newServer(t)
	client := noRedirect(srv)

	post(t, client, srv.URL+"/cart/a/add")
	post(t, client, srv.URL+"/order/confirm")
	require.True(t, s.OrderOpen())

	post(t, client, srv.URL+"/cart/a/remove")

	resp, err := srv.Client().Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.False(t, s.OrderOpen())
	assert.Contains(t, string(body), "Your added items will appear here")
	assert.NotContains(t, string(body), "Order Confirmed")
}

func TestStylesheet(t *testing.T) {
	srv, _ := newServer(t)

	resp, err := srv.Client().Get(srv.URL + "/static/storefront.css")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/css")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), ".product.in-cart")
	assert.Contains(t, string(body), ".modal")
}
