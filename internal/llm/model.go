package llm

// SuggestedItem is one catalog item the assistant recommends, with a
// quantity expressed in the item's own unit.
type SuggestedItem struct {
	ItemID    int     `json:"itemId"`
	Quantity  float64 `json:"quantity"`
	Reasoning string  `json:"reasoning"`
}

// Suggestion is the assistant's answer after normalization. Items and
// DietaryNotes are never nil.
type Suggestion struct {
	Items         []SuggestedItem `json:"items"`
	TotalEstimate float64         `json:"totalEstimate"`
	DietaryNotes  []string        `json:"dietaryNotes"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
