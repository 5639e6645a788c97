package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"cuattro/internal/apperr"
	"cuattro/internal/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abort(w http.ResponseWriter) {
	conn, _, err := w.(http.Hijacker).Hijack()
	if err == nil {
		conn.Close()
	}
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func newClient(t *testing.T, h http.Handler, tokens TokenSource) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, tokens, WithRetryInterval(time.Millisecond))
}

func TestItems_RetriesAbortedConnection(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			abort(w)
			return
		}
		jsonHandler(http.StatusOK, `[{"id":1,"nome":"Suco","preco":5,"categoria":"Bebidas"}]`)(w, r)
	}), nil)

	items, err := c.Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Suco", items[0].Name)
	assert.Equal(t, int32(3), calls.Load())
}

func TestItems_GivesUpAfterThreeAttempts(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		abort(w)
	}), nil)

	_, err := c.Items(context.Background())
	assert.ErrorIs(t, err, apperr.ErrNetwork)
	assert.Equal(t, int32(3), calls.Load())
}

func TestItems_NoRetryOnHTTPError(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		jsonHandler(http.StatusInternalServerError, `{"error":"InternalError"}`)(w, r)
	}), nil)

	_, err := c.Items(context.Background())
	assert.Error(t, err)
	assert.Equal(t, apperr.Internal, apperr.KindOf(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestCatalogTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, nil, WithCatalogTimeout(50*time.Millisecond))
	_, err := c.Categories(context.Background(), true)
	assert.ErrorIs(t, err, apperr.ErrNetwork)
}

type countingTokens struct {
	refreshes atomic.Int32
}

func (c *countingTokens) Token(context.Context) (string, error) { return "stale", nil }

func (c *countingTokens) Refresh(context.Context) (string, error) {
	c.refreshes.Add(1)
	return "fresh", nil
}

func TestUnauthorized_RefreshesOnce(t *testing.T) {
	tokens := &countingTokens{}
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		jsonHandler(http.StatusOK, `{"itens":[],"total":0}`)(w, r)
	}), tokens)

	state, err := c.Cart(context.Background())
	require.NoError(t, err)
	assert.Empty(t, state.Lines)
	assert.Equal(t, int32(1), tokens.refreshes.Load())
}

func TestUnauthorized_AfterRefreshIsAuthorizationError(t *testing.T) {
	tokens := &countingTokens{}
	var calls atomic.Int32
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}), tokens)

	_, err := c.Cart(context.Background())
	assert.ErrorIs(t, err, apperr.ErrAuthorization)
	assert.Equal(t, int32(1), tokens.refreshes.Load())
	assert.Equal(t, int32(2), calls.Load())
}

func TestStaticToken_401(t *testing.T) {
	c := newClient(t, jsonHandler(http.StatusUnauthorized, `{}`), StaticToken("t"))
	_, err := c.Cart(context.Background())
	assert.ErrorIs(t, err, apperr.ErrAuthorization)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   error
	}{
		{http.StatusForbidden, `{}`, apperr.ErrAuthorization},
		{http.StatusNotFound, `{"message":"Pedido 9 não encontrado."}`, apperr.ErrNotFound},
		{http.StatusConflict, `{}`, apperr.ErrConflict},
	}
	for _, tc := range cases {
		c := newClient(t, jsonHandler(tc.status, tc.body), nil)
		_, err := c.Order(context.Background(), 9)
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
	}
}

func TestValidationFields(t *testing.T) {
	c := newClient(t, jsonHandler(http.StatusBadRequest,
		`{"error":"ValidationError","message":"Dados do pedido inválidos.","errors":{"enderecoEntrega":"obrigatório"}}`), nil)

	_, err := c.Checkout(context.Background(), orderRequest())
	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, apperr.Validation, e.Kind)
	assert.Equal(t, "Dados do pedido inválidos.", e.Message)
	assert.Equal(t, "obrigatório", e.Fields["enderecoEntrega"])
}

func TestSuggest(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "almoço para 20", body["pedido"])
		jsonHandler(http.StatusOK, `{"items":[{"itemId":2,"quantity":20,"reasoning":"1 por pessoa"}],"totalEstimate":80,"dietaryNotes":[]}`)(w, r)
	}), nil)

	s, err := c.Suggest(context.Background(), "almoço para 20")
	require.NoError(t, err)
	require.Len(t, s.Items, 1)
	assert.Equal(t, float64(80), s.TotalEstimate)
}

func TestSuggest_ErrorKinds(t *testing.T) {
	c := newClient(t, jsonHandler(http.StatusBadGateway, `{"error":"ExternalServiceError"}`), nil)
	_, err := c.Suggest(context.Background(), "x")
	assert.ErrorIs(t, err, apperr.ErrExternalService)

	c = newClient(t, jsonHandler(http.StatusBadGateway, `{"error":"InvalidResponseFormat"}`), nil)
	_, err = c.Suggest(context.Background(), "x")
	assert.ErrorIs(t, err, apperr.ErrInvalidResponseFormat)

	c = newClient(t, jsonHandler(http.StatusBadRequest, `{}`), nil)
	_, err = c.Suggest(context.Background(), "x")
	assert.ErrorIs(t, err, apperr.ErrExternalService)
}

func TestRefreshingToken(t *testing.T) {
	n := 0
	tok := NewRefreshingToken(func(context.Context) (string, error) {
		n++
		return "t" + string(rune('0'+n)), nil
	})

	first, err := tok.Token(context.Background())
	require.NoError(t, err)
	again, _ := tok.Token(context.Background())
	assert.Equal(t, first, again)

	refreshed, err := tok.Refresh(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first, refreshed)
	assert.Equal(t, 2, n)
}

func orderRequest() order.CheckoutRequest {
	return order.CheckoutRequest{DeliveryAddress: "", PaymentMethod: "Pix"}
}
