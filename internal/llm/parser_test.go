package llm

import (
	"testing"

	"cuattro/internal/apperr"
	"cuattro/internal/catalog"
	"cuattro/internal/category"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuggestion_Complete(t *testing.T) {
	s, err := ParseSuggestion(`{
		"items": [{"itemId": 4, "quantity": 1.5, "reasoning": "serve 10 pessoas"}],
		"totalEstimate": 120.5,
		"dietaryNotes": ["contém glúten"]
	}`)
	require.NoError(t, err)
	require.Len(t, s.Items, 1)
	assert.Equal(t, SuggestedItem{ItemID: 4, Quantity: 1.5, Reasoning: "serve 10 pessoas"}, s.Items[0])
	assert.Equal(t, 120.5, s.TotalEstimate)
	assert.Equal(t, []string{"contém glúten"}, s.DietaryNotes)
}

func TestParseSuggestion_Defaults(t *testing.T) {
	cases := map[string]string{
		"empty object":  `{}`,
		"wrong types":   `{"items": "x", "totalEstimate": "100", "dietaryNotes": {"a": 1}}`,
		"explicit null": `{"items": null, "totalEstimate": null, "dietaryNotes": null}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := ParseSuggestion(content)
			require.NoError(t, err)
			assert.NotNil(t, s.Items)
			assert.Empty(t, s.Items)
			assert.Zero(t, s.TotalEstimate)
			assert.NotNil(t, s.DietaryNotes)
			assert.Empty(t, s.DietaryNotes)
		})
	}
}

func TestParseSuggestion_NotJSON(t *testing.T) {
	for _, content := range []string{"claro! aqui está", `["a"]`, ""} {
		_, err := ParseSuggestion(content)
		assert.ErrorIs(t, err, apperr.ErrInvalidResponseFormat, content)
	}
}

func TestBuildSystemPrompt_FormatsItems(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, Name: "Suco de laranja", BaseQuantity: 1, Unit: "L", CategoryName: "Bebidas"},
		{ID: 2, Name: "Coxinha", BaseQuantity: 100, Unit: "unidade", Category: category.ByName("Salgados")},
		{ID: 3, Name: "Pão", BaseQuantity: 500, Unit: "g", Price: decimal.NewFromInt(3)},
	}

	prompt := BuildSystemPrompt(items)
	assert.Contains(t, prompt, "You are a menu assistant for a buffet service.")
	assert.Contains(t, prompt,
		"Available menu items: Suco de laranja (ID: 1) - 1 L - Bebidas. "+
			"Coxinha (ID: 2) - 100 unidade - Salgados. "+
			"Pão (ID: 3) - 500 g - Uncategorized")
}
