package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cuattro/internal/apperr"
	"cuattro/internal/catalog"
	"cuattro/internal/telemetry"

	"go.uber.org/zap"
)

const (
	defaultModel = "gpt-4-turbo-preview"
	temperature  = 0.7
	maxTokens    = 800
)

// Client asks a language model for a menu suggestion.
type Client interface {
	Suggest(ctx context.Context, request string, items []catalog.Item) (*Suggestion, error)
}

type OpenAIClient struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
	logger  *zap.Logger
}

// NewOpenAIClient talks to an OpenAI compatible chat completions endpoint.
// The HTTP client has no timeout; the caller's context bounds each call.
func NewOpenAIClient(apiKey, baseURL, model string, logger *zap.Logger) *OpenAIClient {
	if model == "" {
		model = defaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    &http.Client{Transport: telemetry.Transport(nil)},
		logger:  logger,
	}
}

func (c *OpenAIClient) Suggest(ctx context.Context, request string, items []catalog.Item) (*Suggestion, error) {
	if c.apiKey == "" {
		return nil, apperr.New(apperr.ExternalService, "O assistente não está configurado.")
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: BuildSystemPrompt(items)},
			{Role: "user", Content: request},
		},
		Temperature:    temperature,
		MaxTokens:      maxTokens,
		ResponseFormat: responseFormat{Type: "json_object"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.ExternalService, "Falha ao consultar o assistente.", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.ExternalService, "Falha ao consultar o assistente.", err)
	}

	c.logger.Debug("chat completion response",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(raw)),
		zap.Int("catalog_items", len(items)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperr.Wrap(apperr.ExternalService, "Falha ao consultar o assistente.",
			fmt.Errorf("chat completions: %s", resp.Status))
	}

	var envelope chatResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, apperr.Wrap(apperr.InvalidResponseFormat, "Resposta inválida do assistente.", err)
	}
	if len(envelope.Choices) == 0 || envelope.Choices[0].Message.Content == nil || *envelope.Choices[0].Message.Content == "" {
		return nil, apperr.New(apperr.InvalidResponseFormat, "Resposta inválida do assistente.")
	}

	return ParseSuggestion(*envelope.Choices[0].Message.Content)
}
