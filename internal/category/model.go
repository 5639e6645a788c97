package category

// Category is a named grouping for catalog items.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"nome"`
	Description string `json:"descricao"`
	Order       int    `json:"ordem"`
	Active      bool   `json:"ativa"`
}

const UncategorizedName = "Uncategorized"

// Uncategorized is returned whenever no resolution strategy matches.
var Uncategorized = Category{
	ID:          0,
	Name:        UncategorizedName,
	Description: UncategorizedName,
	Order:       0,
	Active:      true,
}

func (c Category) IsUncategorized() bool {
	return c.ID == 0 && c.Name == UncategorizedName
}
