package auth

import (
	"context"
	"strings"

	"cuattro/internal/apperr"

	"go.uber.org/zap"
)

type Service struct {
	repo   UserRepository
	logger *zap.Logger
}

func NewService(repo UserRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Current returns the caller's user record, creating it from the token
// claims on first sight.
func (s *Service) Current(ctx context.Context, p Principal) (*User, error) {
	if p.Subject == "" {
		return nil, apperr.New(apperr.Authorization, "Sessão inválida.")
	}

	user := &User{
		ID:    p.Subject,
		Name:  p.Name,
		Email: p.Email,
		Role:  p.Role,
	}
	if err := s.repo.Provision(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateName(ctx context.Context, id, name string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.NewValidation("Dados do usuário inválidos.", map[string]string{"nome": "obrigatório"})
	}
	if err := s.repo.UpdateName(ctx, id, name); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) UpdateRole(ctx context.Context, id string, role Role) (*User, error) {
	if !role.Valid() {
		return nil, apperr.NewValidation("Perfil inválido.", map[string]string{"role": "deve ser 0, 1 ou 2"})
	}
	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	s.logger.Info("user role changed", zap.String("user_id", id), zap.Stringer("role", role))
	return s.repo.FindByID(ctx, id)
}
