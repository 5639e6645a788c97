package category

import (
	"context"
	"sort"
	"sync"

	"cuattro/internal/apperr"
)

type InMemoryRepository struct {
	mu         sync.Mutex
	categories map[int]Category
	nextID     int
}

func NewInMemoryRepository(seed ...Category) *InMemoryRepository {
	r := &InMemoryRepository{
		categories: make(map[int]Category),
		nextID:     1,
	}
	for _, c := range seed {
		r.categories[c.ID] = c
		if c.ID >= r.nextID {
			r.nextID = c.ID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) List(ctx context.Context, activeOnly bool) ([]Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Category, 0, len(r.categories))
	for _, c := range r.categories {
		if activeOnly && !c.Active {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id int) (*Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, apperr.NotFoundf("Categoria %d não encontrada.", id)
	}
	return &c, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, c *Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = r.nextID
	r.nextID++
	r.categories[c.ID] = *c
	return nil
}

func (r *InMemoryRepository) Update(ctx context.Context, c *Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[c.ID]; !ok {
		return apperr.NotFoundf("Categoria %d não encontrada.", c.ID)
	}
	r.categories[c.ID] = *c
	return nil
}
