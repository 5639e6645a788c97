package catalog

import (
	"testing"

	"cuattro/internal/category"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupItems(t *testing.T) {
	cats := []category.Category{
		{ID: 1, Name: "Sobremesas", Active: true},
		{ID: 2, Name: "bebidas", Active: true},
	}
	one := 1
	items := []Item{
		{ID: 1, Name: "pudim", CategoryID: &one},
		{ID: 2, Name: "Açaí", Category: category.ByName("SOBREMESAS")},
		{ID: 3, Name: "Suco", Category: category.ByID(2)},
		{ID: 4, Name: "Pão", Category: category.ByName("Padaria")},
		{ID: 5, Name: "Água", Category: category.Embedded(category.Category{ID: 2, Name: "Drinks"})},
		{ID: 6, Name: "Bolo"},
	}

	groups := GroupItems(items, cats)
	require.Len(t, groups, 3)

	assert.Equal(t, "bebidas", groups[0].Category.Name)
	assert.Equal(t, []string{"Água", "Suco"}, names(groups[0].Items))

	assert.Equal(t, "Sobremesas", groups[1].Category.Name)
	assert.Equal(t, []string{"Açaí", "pudim"}, names(groups[1].Items))

	assert.True(t, groups[2].Category.IsUncategorized())
	assert.Equal(t, []string{"Bolo", "Pão"}, names(groups[2].Items))
	assert.Equal(t, category.UncategorizedName, groups[2].Items[0].CategoryName)
}

func TestGroupItems_UncategorizedLastEvenWhenAlphabeticallyFirst(t *testing.T) {
	cats := []category.Category{{ID: 1, Name: "Zebra", Active: true}}
	items := []Item{
		{ID: 1, Name: "a"},
		{ID: 2, Name: "b", Category: category.ByID(1)},
	}
	groups := GroupItems(items, cats)
	require.Len(t, groups, 2)
	assert.Equal(t, "Zebra", groups[0].Category.Name)
	assert.True(t, groups[1].Category.IsUncategorized())
}

func TestGroupItems_Empty(t *testing.T) {
	assert.Empty(t, GroupItems(nil, nil))
}

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}
