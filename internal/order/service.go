package order

import (
	"context"
	"fmt"
	"strings"

	"cuattro/internal/apperr"
	"cuattro/internal/auth"
	"cuattro/internal/cart"
	"cuattro/internal/core"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Carts is the part of the cart service checkout needs.
type Carts interface {
	Get(ctx context.Context, userID string) (cart.State, error)
	Clear(ctx context.Context, userID string) (cart.State, error)
}

type Service struct {
	repo   Repository
	items  core.ItemReader
	carts  Carts
	logger *zap.Logger
}

func NewService(repo Repository, items core.ItemReader, carts Carts, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, items: items, carts: carts, logger: logger}
}

// Create places an order from a client-built payload. Unit prices come from
// the catalog; the client's line totals and grand total must agree with them.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Order, error) {
	fields := map[string]string{}
	if strings.TrimSpace(req.DeliveryAddress) == "" {
		fields["enderecoEntrega"] = "obrigatório"
	}
	if !req.PaymentMethod.Valid() {
		fields["formaPagamento"] = "inválida"
	}
	if req.Status != StatusPendente {
		fields["status"] = "novos pedidos devem estar pendentes"
	}
	if len(req.Items) == 0 {
		fields["itens"] = "o pedido deve ter ao menos um item"
	}
	if len(fields) > 0 {
		return nil, apperr.NewValidation("Dados do pedido inválidos.", fields)
	}

	lines := make([]OrderItem, 0, len(req.Items))
	total := decimal.Zero
	for i, in := range req.Items {
		line, err := s.priceLine(ctx, in.ItemID, in.Quantity)
		if err != nil {
			return nil, err
		}
		key := fmt.Sprintf("itens[%d]", i)
		if !in.UnitPrice.Equal(line.UnitPrice) {
			fields[key+".valorUnitario"] = fmt.Sprintf("esperado %s", line.UnitPrice.StringFixed(2))
		}
		if !in.Total.Equal(line.Total) {
			fields[key+".valorTotal"] = fmt.Sprintf("esperado %s", line.Total.StringFixed(2))
		}
		lines = append(lines, line)
		total = total.Add(line.Total)
	}
	if !req.Total.Equal(total) {
		fields["valorTotal"] = fmt.Sprintf("esperado %s", total.StringFixed(2))
	}
	if len(fields) > 0 {
		return nil, apperr.NewValidation("Os valores do pedido não conferem com o cardápio.", fields)
	}

	return s.place(ctx, &Order{
		UserID:          userID,
		DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
		PaymentMethod:   req.PaymentMethod,
		Status:          StatusPendente,
		Items:           lines,
		Total:           total,
	})
}

// Checkout turns the caller's cart into an order at current catalog prices
// and empties the cart.
func (s *Service) Checkout(ctx context.Context, userID string, req CheckoutRequest) (*Order, error) {
	fields := map[string]string{}
	if strings.TrimSpace(req.DeliveryAddress) == "" {
		fields["enderecoEntrega"] = "obrigatório"
	}
	payment, err := ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		fields["formaPagamento"] = "inválida"
	}
	if len(fields) > 0 {
		return nil, apperr.NewValidation("Dados do pedido inválidos.", fields)
	}

	state, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(state.Lines) == 0 {
		return nil, apperr.NewValidation("Carrinho vazio.", map[string]string{"itens": "o carrinho está vazio"})
	}

	lines := make([]OrderItem, 0, len(state.Lines))
	total := decimal.Zero
	for _, l := range state.Lines {
		line, err := s.priceLine(ctx, l.Item.ID, l.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
		total = total.Add(line.Total)
	}

	o, err := s.place(ctx, &Order{
		UserID:          userID,
		DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
		PaymentMethod:   payment,
		Status:          StatusPendente,
		Items:           lines,
		Total:           total,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.carts.Clear(ctx, userID); err != nil {
		s.logger.Warn("cart not cleared after checkout",
			zap.String("user_id", userID),
			zap.Int("order_id", o.ID),
			zap.Error(err),
		)
	}
	return o, nil
}

// List returns the caller's orders, or every order for staff.
func (s *Service) List(ctx context.Context, p auth.Principal) ([]Order, error) {
	if p.Role.IsStaff() {
		return s.repo.List(ctx, "")
	}
	return s.repo.List(ctx, p.Subject)
}

func (s *Service) Get(ctx context.Context, p auth.Principal, id int) (*Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Role.IsStaff() && o.UserID != p.Subject {
		return nil, orderNotFound(id)
	}
	return o, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int, to Status) (*Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransition(to) {
		return nil, apperr.NewValidation("Mudança de status inválida.", map[string]string{
			"status": fmt.Sprintf("não é possível ir de %s para %s", o.Status, to),
		})
	}
	if err := s.repo.UpdateStatus(ctx, id, o.Status, to); err != nil {
		return nil, err
	}

	s.logger.Info("order status changed",
		zap.Int("order_id", id),
		zap.Stringer("from", o.Status),
		zap.Stringer("to", to),
	)
	return s.repo.FindByID(ctx, id)
}

func (s *Service) priceLine(ctx context.Context, itemID, qty int) (OrderItem, error) {
	if qty <= 0 {
		return OrderItem{}, apperr.NewValidation("Quantidade inválida.", map[string]string{"quantidade": "deve ser maior que zero"})
	}
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return OrderItem{}, apperr.NewValidation("Item inexistente.", map[string]string{
				"itemId": fmt.Sprintf("item %d não existe", itemID),
			})
		}
		return OrderItem{}, err
	}
	if !item.Available {
		return OrderItem{}, apperr.NewValidation("Item indisponível.", map[string]string{
			"itemId": fmt.Sprintf("%s está indisponível", item.Name),
		})
	}
	return OrderItem{
		ItemID:    item.ID,
		Quantity:  qty,
		UnitPrice: item.Price,
		Total:     item.Price.Mul(decimal.NewFromInt(int64(qty))),
	}, nil
}

func (s *Service) place(ctx context.Context, o *Order) (*Order, error) {
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	s.logger.Info("order placed",
		zap.Int("order_id", o.ID),
		zap.String("user_id", o.UserID),
		zap.Int("lines", len(o.Items)),
		zap.String("total", o.Total.StringFixed(2)),
	)
	return o, nil
}
