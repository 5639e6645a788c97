package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cuattro/internal/auth"
	"cuattro/internal/cart"
	"cuattro/internal/catalog"
	"cuattro/internal/category"
	"cuattro/internal/middleware"
	"cuattro/internal/order"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokens = auth.TokenConfig{Secret: []byte("router-test-secret")}

func newTestRouter(t *testing.T, checks map[string]Pinger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bebidas := category.Category{ID: 1, Name: "Bebidas", Active: true}
	categories := category.NewService(category.NewInMemoryRepository(bebidas), nil)
	catalogSvc := catalog.NewService(
		catalog.NewInMemoryRepository(
			catalog.Item{ID: 1, Name: "Suco", Price: decimal.RequireFromString("5.00"), CategoryID: &bebidas.ID, Available: true},
		),
		categories, nil, nil,
	)
	carts := cart.NewService(cart.NewMemoryStore(), catalogSvc, nil)
	orders := order.NewService(order.NewInMemoryRepository(), catalogSvc, carts, nil)
	users := auth.NewService(auth.NewInMemoryUserRepository(), nil)

	return NewRouter(Deps{
		Tokens:     tokens,
		AILimiter:  middleware.NewRateLimiter(1, time.Minute),
		Checks:     checks,
		Users:      auth.NewHandler(users, nil),
		Categories: category.NewHandler(categories, nil),
		Catalog:    catalog.NewHandler(catalogSvc, nil),
		Cart:       cart.NewHandler(carts, nil),
		Orders:     order.NewHandler(orders, nil),
	})
}

func bearer(t *testing.T, role auth.Role) string {
	t.Helper()
	tok, err := auth.GenerateToken(tokens, auth.Principal{Subject: "u-" + role.String(), Name: "Ana", Role: role}, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func do(r http.Handler, method, path, authz, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthCheck_Degraded(t *testing.T) {
	r := newTestRouter(t, map[string]Pinger{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("down") },
	})

	w := do(r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"degraded","checks":{"postgres":"up","redis":"down"}}`, w.Body.String())
}

func TestPublicCatalog(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodGet, "/Item/agrupado", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var groups []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, "Bebidas", groups[0]["categoria"].(map[string]any)["nome"])
}

func TestRoleGating(t *testing.T) {
	r := newTestRouter(t, nil)
	body := `{"nome":"Pão","preco":3,"quantidade":1,"unidadeMedida":"unidade"}`

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/Item", "", body).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/Item", bearer(t, auth.RoleCliente), body).Code)
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/Item", bearer(t, auth.RoleFuncionario), body).Code)

	ensure := `{"nome":"Doces"}`
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/Categoria/obter-ou-criar", bearer(t, auth.RoleFuncionario), ensure).Code)
	assert.Less(t, do(r, http.MethodPost, "/Categoria/obter-ou-criar", bearer(t, auth.RoleAdmin), ensure).Code, 300)
}

func TestCartToCheckout(t *testing.T) {
	r := newTestRouter(t, nil)
	client := bearer(t, auth.RoleCliente)

	w := do(r, http.MethodPost, "/Carrinho/itens", client, `{"itemId":1,"quantidade":3}`)
	require.Less(t, w.Code, 300, w.Body.String())

	w = do(r, http.MethodPost, "/Carrinho/itens/1/decrementar", client, "")
	require.Less(t, w.Code, 300, w.Body.String())

	w = do(r, http.MethodGet, "/Carrinho", client, "")
	require.Equal(t, http.StatusOK, w.Code)
	var state cart.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	require.Len(t, state.Lines, 1)
	assert.Equal(t, 2, state.Lines[0].Quantity)
	assert.True(t, state.Total.Equal(decimal.NewFromInt(10)))

	w = do(r, http.MethodPost, "/Pedido/checkout", client, `{"enderecoEntrega":"Rua A","formaPagamento":"Pix"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(r, http.MethodGet, "/Pedido", client, "")
	require.Equal(t, http.StatusOK, w.Code)
	var orders []order.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)

	w = do(r, http.MethodGet, "/Carrinho", client, "")
	assert.JSONEq(t, `{"itens":[],"total":0}`, w.Body.String())
}

func TestUsuario_ProvisionedFromToken(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodGet, "/Usuario", bearer(t, auth.RoleCliente), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var u map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	assert.Equal(t, "Ana", u["nome"])

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/Usuario/todos", bearer(t, auth.RoleCliente), "").Code)
}
