package order

import (
	"context"
	"sort"
	"sync"
	"time"

	"cuattro/internal/apperr"
)

type InMemoryRepository struct {
	mu     sync.Mutex
	orders map[int]Order
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{orders: make(map[int]Order), nextID: 1}
}

func (r *InMemoryRepository) Create(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	o.ID = r.nextID
	o.CreatedAt = now
	o.UpdatedAt = now
	r.nextID++
	r.orders[o.ID] = cloneOrder(*o)
	return nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id int) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, orderNotFound(id)
	}
	o = cloneOrder(o)
	return &o, nil
}

func (r *InMemoryRepository) List(ctx context.Context, userID string) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, 0, len(r.orders))
	for _, o := range r.orders {
		if userID != "" && o.UserID != userID {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id int, from, to Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return orderNotFound(id)
	}
	if o.Status != from {
		return statusConflict(id)
	}
	o.Status = to
	o.UpdatedAt = time.Now().UTC()
	r.orders[id] = o
	return nil
}

func cloneOrder(o Order) Order {
	o.Items = append([]OrderItem(nil), o.Items...)
	return o
}

func orderNotFound(id int) error {
	return apperr.NotFoundf("Pedido %d não encontrado.", id)
}

func statusConflict(id int) error {
	return apperr.New(apperr.Conflict, "O pedido foi alterado por outra pessoa. Atualize e tente novamente.")
}
