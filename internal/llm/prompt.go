package llm

import (
	"fmt"
	"strings"

	"cuattro/internal/catalog"
	"cuattro/internal/category"
)

const systemPreamble = `You are a menu assistant for a buffet service. Your task is to suggest menu items for customers based on their needs and the available quantities. Each item listing includes its measurement unit (L, ml, g, unidade, M) which you should consider when suggesting quantities.

When responding, only provide a JSON object with the following structure:
{
  "items": [
    {"itemId": number, "quantity": number (in the item's unit of measurement), "reasoning": "string explaining why this quantity"}
  ],
  "totalEstimate": number (total cost),
  "dietaryNotes": ["relevant dietary notes"]
}

Make sure to respect each item's unit of measurement when suggesting quantities.
Available menu items: `

// BuildSystemPrompt embeds the catalog into the fixed assistant instruction.
func BuildSystemPrompt(items []catalog.Item) string {
	return systemPreamble + formatItems(items)
}

func formatItems(items []catalog.Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		name := it.CategoryName
		if name == "" {
			name = category.Label(it.Category)
		}
		parts = append(parts, fmt.Sprintf("%s (ID: %d) - %d %s - %s",
			it.Name, it.ID, it.BaseQuantity, it.Unit, name))
	}
	return strings.Join(parts, ". ")
}
