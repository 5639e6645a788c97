package cart

import (
	"context"

	"cuattro/internal/apperr"
	"cuattro/internal/core"

	"go.uber.org/zap"
)

type Service struct {
	store  Store
	items  core.ItemReader
	logger *zap.Logger
}

func NewService(store Store, items core.ItemReader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, items: items, logger: logger}
}

func (s *Service) Get(ctx context.Context, userID string) (State, error) {
	return s.store.Load(ctx, userID)
}

// AddItem snapshots the current catalog item into the cart.
func (s *Service) AddItem(ctx context.Context, userID string, itemID, qty int) (State, error) {
	if qty <= 0 {
		return State{}, apperr.NewValidation("Quantidade inválida.", map[string]string{"quantidade": "deve ser maior que zero"})
	}

	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return State{}, err
	}
	if !item.Available {
		return State{}, apperr.NewValidation("Item indisponível.", map[string]string{"itemId": "item indisponível"})
	}

	state, err := s.store.Update(ctx, userID, func(st State) State {
		return Add(st, *item, qty)
	})
	if err != nil {
		return State{}, err
	}

	s.logger.Debug("cart item added",
		zap.String("user_id", userID),
		zap.Int("item_id", itemID),
		zap.Int("quantity", qty),
		zap.String("total", state.Total.StringFixed(2)),
	)
	return state, nil
}

func (s *Service) DecrementItem(ctx context.Context, userID string, itemID int) (State, error) {
	return s.store.Update(ctx, userID, func(st State) State {
		return Decrement(st, itemID)
	})
}

func (s *Service) RemoveItem(ctx context.Context, userID string, itemID int) (State, error) {
	return s.store.Update(ctx, userID, func(st State) State {
		return Remove(st, itemID)
	})
}

func (s *Service) Clear(ctx context.Context, userID string) (State, error) {
	return s.store.Update(ctx, userID, Clear)
}
