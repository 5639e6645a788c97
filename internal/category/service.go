package category

import (
	"context"
	"fmt"
	"strings"

	"cuattro/internal/apperr"

	"go.uber.org/zap"
)

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListActive(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx, true)
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx, false)
}

func (s *Service) Get(ctx context.Context, id int) (*Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, c Category) (*Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, apperr.NewValidation("Dados da categoria inválidos.", map[string]string{"nome": "obrigatório"})
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, err
	}
	s.logger.Info("category created", zap.Int("category_id", c.ID), zap.String("name", c.Name))
	return &c, nil
}

func (s *Service) Update(ctx context.Context, c Category) (*Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, apperr.NewValidation("Dados da categoria inválidos.", map[string]string{"nome": "obrigatório"})
	}
	if err := s.repo.Update(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetOrCreate reuses an active category whose name matches case-insensitively
// or creates a new one. There is no locking: two identical concurrent calls
// may both miss the lookup and create duplicates.
func (s *Service) GetOrCreate(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.NewValidation("Dados da categoria inválidos.", map[string]string{"nome": "obrigatório"})
	}

	existing, err := s.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if c, ok := FindByName(existing, name); ok {
		s.logger.Debug("category reused", zap.Int("category_id", c.ID), zap.String("name", c.Name))
		return &c, nil
	}

	return s.Create(ctx, Category{
		Name:        name,
		Description: fmt.Sprintf("Categoria %s", name),
		Order:       0,
		Active:      true,
	})
}
