package llm

import (
	"encoding/json"

	"cuattro/internal/apperr"
)

// ParseSuggestion decodes the assistant's message content. The content must
// be a JSON object; individual fields that are missing or of the wrong type
// fall back to empty values instead of failing the whole answer.
func ParseSuggestion(content string) (*Suggestion, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return nil, apperr.Wrap(apperr.InvalidResponseFormat, "Resposta inválida do assistente. Tente reformular o pedido.", err)
	}

	s := &Suggestion{
		Items:        []SuggestedItem{},
		DietaryNotes: []string{},
	}

	if raw, ok := fields["items"]; ok {
		var items []SuggestedItem
		if json.Unmarshal(raw, &items) == nil && items != nil {
			s.Items = items
		}
	}
	if raw, ok := fields["totalEstimate"]; ok {
		var total float64
		if json.Unmarshal(raw, &total) == nil {
			s.TotalEstimate = total
		}
	}
	if raw, ok := fields["dietaryNotes"]; ok {
		var notes []string
		if json.Unmarshal(raw, &notes) == nil && notes != nil {
			s.DietaryNotes = notes
		}
	}
	return s, nil
}
