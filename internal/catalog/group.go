package catalog

import (
	"sort"

	"cuattro/internal/category"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Group is one menu section.
type Group struct {
	Category category.Category `json:"categoria"`
	Items    []Item            `json:"itens"`
}

// GroupItems buckets items by their resolved category. Items inside a group
// and the groups themselves are ordered by name using Portuguese collation,
// ignoring case; the Uncategorized group always comes last.
func GroupItems(items []Item, categories []category.Category) []Group {
	byID := make(map[int]*Group)
	var order []int

	for _, item := range items {
		c := item.ResolveCategory(categories)
		item.CategoryName = c.Name
		g, ok := byID[c.ID]
		if !ok {
			g = &Group{Category: c}
			byID[c.ID] = g
			order = append(order, c.ID)
		}
		g.Items = append(g.Items, item)
	}

	col := newCollator()
	groups := make([]Group, 0, len(order))
	for _, id := range order {
		g := byID[id]
		sort.SliceStable(g.Items, func(i, j int) bool {
			return col.CompareString(g.Items[i].Name, g.Items[j].Name) < 0
		})
		groups = append(groups, *g)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Category, groups[j].Category
		if a.IsUncategorized() != b.IsUncategorized() {
			return b.IsUncategorized()
		}
		return col.CompareString(a.Name, b.Name) < 0
	})
	return groups
}

func newCollator() *collate.Collator {
	return collate.New(language.BrazilianPortuguese, collate.IgnoreCase, collate.Loose)
}
