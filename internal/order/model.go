package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod int

const (
	PaymentDinheiro PaymentMethod = iota
	PaymentCartao
	PaymentPix
)

var paymentNames = map[PaymentMethod]string{
	PaymentDinheiro: "Dinheiro",
	PaymentCartao:   "Cartao",
	PaymentPix:      "Pix",
}

func (p PaymentMethod) String() string {
	if name, ok := paymentNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PaymentMethod(%d)", int(p))
}

func (p PaymentMethod) Valid() bool {
	_, ok := paymentNames[p]
	return ok
}

// ParsePaymentMethod maps a display name ("Dinheiro", "Cartao", "Pix") to its value.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	s = strings.TrimSpace(s)
	for p, name := range paymentNames {
		if strings.EqualFold(name, s) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("forma de pagamento inválida: %q", s)
}

type Status int

const (
	StatusPendente Status = iota
	StatusEmPreparo
	StatusPronto
	StatusEntregue
	StatusCancelado
)

func (s Status) String() string {
	switch s {
	case StatusPendente:
		return "Pendente"
	case StatusEmPreparo:
		return "EmPreparo"
	case StatusPronto:
		return "Pronto"
	case StatusEntregue:
		return "Entregue"
	case StatusCancelado:
		return "Cancelado"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

func (s Status) Valid() bool {
	return s >= StatusPendente && s <= StatusCancelado
}

func (s Status) Final() bool {
	return s == StatusEntregue || s == StatusCancelado
}

// CanTransition allows one step forward along
// Pendente -> EmPreparo -> Pronto -> Entregue, or cancellation from any
// non-final state.
func (s Status) CanTransition(to Status) bool {
	if s.Final() || !to.Valid() {
		return false
	}
	if to == StatusCancelado {
		return true
	}
	return to == s+1
}

type OrderItem struct {
	ItemID    int             `json:"itemId"`
	Quantity  int             `json:"quantidade"`
	UnitPrice decimal.Decimal `json:"valorUnitario"`
	Total     decimal.Decimal `json:"valorTotal"`
}

type Order struct {
	ID              int             `json:"id"`
	UserID          string          `json:"usuarioId"`
	DeliveryAddress string          `json:"enderecoEntrega"`
	PaymentMethod   PaymentMethod   `json:"formaPagamento"`
	Status          Status          `json:"status"`
	Items           []OrderItem     `json:"itens"`
	Total           decimal.Decimal `json:"valorTotal"`
	CreatedAt       time.Time       `json:"dataCriacao"`
	UpdatedAt       time.Time       `json:"dataAtualizacao"`
}

// CreateRequest is the POST /Pedido body.
type CreateRequest struct {
	DeliveryAddress string          `json:"enderecoEntrega"`
	PaymentMethod   PaymentMethod   `json:"formaPagamento"`
	Status          Status          `json:"status"`
	Items           []OrderItem     `json:"itens"`
	Total           decimal.Decimal `json:"valorTotal"`
}

// CheckoutRequest is the POST /Pedido/checkout body. PaymentMethod is the
// display name.
type CheckoutRequest struct {
	DeliveryAddress string `json:"enderecoEntrega"`
	PaymentMethod   string `json:"formaPagamento"`
}
