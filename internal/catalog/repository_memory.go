package catalog

import (
	"context"
	"sort"
	"sync"

	"cuattro/internal/apperr"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	items  map[int]Item
	nextID int
}

func NewInMemoryRepository(seed ...Item) *InMemoryRepository {
	r := &InMemoryRepository{
		items:  make(map[int]Item),
		nextID: 1,
	}
	for _, item := range seed {
		r.items[item.ID] = cloneItem(item)
		if item.ID >= r.nextID {
			r.nextID = item.ID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) List(ctx context.Context, availableOnly bool) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Item, 0, len(r.items))
	for _, item := range r.items {
		if item.Deleted || (availableOnly && !item.Available) {
			continue
		}
		out = append(out, cloneItem(item))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id int) (*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok || item.Deleted {
		return nil, itemNotFound(id)
	}
	item = cloneItem(item)
	return &item, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, item *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = cloneItem(*item)
	return nil
}

func (r *InMemoryRepository) Update(ctx context.Context, item *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if !ok || existing.Deleted {
		return itemNotFound(item.ID)
	}
	r.items[item.ID] = cloneItem(*item)
	return nil
}

func (r *InMemoryRepository) SoftDelete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || item.Deleted {
		return itemNotFound(id)
	}
	item.Deleted = true
	item.Available = false
	r.items[id] = item
	return nil
}

func (r *InMemoryRepository) SetImageURL(ctx context.Context, id int, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || item.Deleted {
		return itemNotFound(id)
	}
	item.ImageURL = &url
	r.items[id] = item
	return nil
}

func cloneItem(item Item) Item {
	if item.Tags != nil {
		item.Tags = append([]string(nil), item.Tags...)
	}
	if item.ImageURL != nil {
		url := *item.ImageURL
		item.ImageURL = &url
	}
	if item.CategoryID != nil {
		id := *item.CategoryID
		item.CategoryID = &id
	}
	return item
}

func itemNotFound(id int) error {
	return apperr.NotFoundf("Item %d não encontrado.", id)
}
