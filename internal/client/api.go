package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"cuattro/internal/cart"
	"cuattro/internal/catalog"
	"cuattro/internal/category"
	"cuattro/internal/llm"
	"cuattro/internal/order"
)

// Items lists the available catalog items.
func (c *Client) Items(ctx context.Context) ([]catalog.Item, error) {
	var items []catalog.Item
	if err := c.fetchCatalog(ctx, "/Item", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Menu returns the available items grouped by category.
func (c *Client) Menu(ctx context.Context) ([]catalog.Group, error) {
	var groups []catalog.Group
	if err := c.fetchCatalog(ctx, "/Item/agrupado", &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (c *Client) Categories(ctx context.Context, activeOnly bool) ([]category.Category, error) {
	path := "/Categoria"
	if activeOnly {
		path += "?" + url.Values{"ativa": {"true"}}.Encode()
	}
	var categories []category.Category
	if err := c.fetchCatalog(ctx, path, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetOrCreateCategory reuses an active category with the same name
// (case-insensitive) or creates it.
func (c *Client) GetOrCreateCategory(ctx context.Context, name string) (*category.Category, error) {
	var out category.Category
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/Categoria/obter-ou-criar",
		body:   map[string]string{"nome": name},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateItem(ctx context.Context, in catalog.ItemInput) (*catalog.Item, error) {
	var out catalog.Item
	if err := c.do(ctx, call{method: http.MethodPost, path: "/Item", body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Suggest asks the menu assistant. No timeout is applied beyond ctx.
func (c *Client) Suggest(ctx context.Context, request string) (*llm.Suggestion, error) {
	var out llm.Suggestion
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/ai/sugestoes",
		body:     map[string]string{"pedido": request},
		external: true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Cart(ctx context.Context) (*cart.State, error) {
	var out cart.State
	if err := c.do(ctx, call{method: http.MethodGet, path: "/Carrinho"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddToCart(ctx context.Context, itemID, quantity int) (*cart.State, error) {
	var out cart.State
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/Carrinho/itens",
		body:   map[string]int{"itemId": itemID, "quantidade": quantity},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Checkout(ctx context.Context, req order.CheckoutRequest) (*order.Order, error) {
	var out order.Order
	if err := c.do(ctx, call{method: http.MethodPost, path: "/Pedido/checkout", body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Order(ctx context.Context, id int) (*order.Order, error) {
	var out order.Order
	if err := c.do(ctx, call{method: http.MethodGet, path: fmt.Sprintf("/Pedido/%d", id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
