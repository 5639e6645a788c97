package catalog

import (
	"encoding/json"

	"cuattro/internal/category"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, the shape existing clients send.
	decimal.MarshalJSONWithoutQuotes = true
}

// Item is a buffet product as served by the catalog.
//
// Category carries whatever the client sent in "categoria" (id, object or
// name). CategoryID is the explicit "categoriaId" field. CategoryName is filled
// on reads with the resolved category name.
type Item struct {
	ID           int             `json:"id"`
	Name         string          `json:"nome"`
	Description  string          `json:"descricao"`
	Price        decimal.Decimal `json:"preco"`
	Unit         string          `json:"unidadeMedida"`
	BaseQuantity int             `json:"quantidade"`
	CategoryID   *int            `json:"categoriaId,omitempty"`
	Category     category.Ref    `json:"categoria"`
	CategoryName string          `json:"categoriaNome,omitempty"`
	ImageURL     *string         `json:"imagemUrl"`
	Available    bool            `json:"disponivel"`
	Featured     bool            `json:"destaque"`
	DisplayOrder int             `json:"ordem"`
	Tags         []string        `json:"tags"`
	Deleted      bool            `json:"-"`
}

// ResolveCategory returns the category the item belongs to among all.
func (i Item) ResolveCategory(all []category.Category) category.Category {
	return category.Resolve(i.CategoryID, i.Category, all)
}

// ItemInput is the create/update payload. Pointer fields distinguish
// "not sent" from zero values.
type ItemInput struct {
	Name         string          `json:"nome"`
	Description  string          `json:"descricao"`
	Price        decimal.Decimal `json:"preco"`
	Unit         string          `json:"unidadeMedida"`
	BaseQuantity int             `json:"quantidade"`
	CategoryID   *int            `json:"categoriaId"`
	Category     category.Ref    `json:"categoria"`
	ImageURL     *string         `json:"imagemUrl"`
	Available    *bool           `json:"disponivel"`
	Featured     bool            `json:"destaque"`
	DisplayOrder int             `json:"ordem"`
	Tags         []string        `json:"tags"`
}

// UnmarshalJSON accepts "categoriaId" as a number or a numeric string.
func (i *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	aux := struct {
		*plain
		CategoryID json.RawMessage `json:"categoriaId"`
	}{plain: (*plain)(i)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	i.CategoryID = categoryID(aux.CategoryID)
	return nil
}

func (in *ItemInput) UnmarshalJSON(data []byte) error {
	type plain ItemInput
	aux := struct {
		*plain
		CategoryID json.RawMessage `json:"categoriaId"`
	}{plain: (*plain)(in)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	in.CategoryID = categoryID(aux.CategoryID)
	return nil
}

// categoryID is nil when the field is absent, null or not an integer.
func categoryID(raw json.RawMessage) *int {
	id, ok := category.ParseID(raw)
	if !ok {
		return nil
	}
	return &id
}
