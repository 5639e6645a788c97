package llm

import (
	"context"
	"strings"

	"cuattro/internal/apperr"
	"cuattro/internal/catalog"

	"go.uber.org/zap"
)

// Catalog lists the items the assistant may recommend.
type Catalog interface {
	Available(ctx context.Context) ([]catalog.Item, error)
}

type Service struct {
	catalog Catalog
	client  Client
	logger  *zap.Logger
}

func NewService(items Catalog, client Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: items, client: client, logger: logger}
}

// Suggest answers a free-text request against the currently available items.
func (s *Service) Suggest(ctx context.Context, text string) (*Suggestion, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.NewValidation("Descreva o que você precisa.", map[string]string{"pedido": "obrigatório"})
	}

	items, err := s.catalog.Available(ctx)
	if err != nil {
		return nil, err
	}

	suggestion, err := s.client.Suggest(ctx, text, items)
	if err != nil {
		s.logger.Warn("menu suggestion failed",
			zap.String("kind", apperr.KindOf(err).String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("menu suggestion",
		zap.Int("catalog_items", len(items)),
		zap.Int("suggested_items", len(suggestion.Items)),
	)
	return suggestion, nil
}
