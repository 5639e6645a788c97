package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cuattro/internal/apperr"
	"cuattro/internal/category"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// Categories is the part of the category service the catalog depends on.
type Categories interface {
	List(ctx context.Context) ([]category.Category, error)
	GetOrCreate(ctx context.Context, name string) (*category.Category, error)
}

type Service struct {
	repo       Repository
	categories Categories
	storage    Storage
	logger     *zap.Logger
}

func NewService(repo Repository, categories Categories, storage Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:       repo,
		categories: categories,
		storage:    storage,
		logger:     logger,
	}
}

// List returns non-deleted items with CategoryName resolved.
func (s *Service) List(ctx context.Context, availableOnly bool) ([]Item, error) {
	items, err := s.repo.List(ctx, availableOnly)
	if err != nil {
		return nil, err
	}
	all, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].CategoryName = items[i].ResolveCategory(all).Name
	}
	return items, nil
}

// Available is the set of items a customer can order.
func (s *Service) Available(ctx context.Context) ([]Item, error) {
	return s.List(ctx, true)
}

func (s *Service) Get(ctx context.Context, id int) (*Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	all, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	item.CategoryName = item.ResolveCategory(all).Name
	return item, nil
}

// GetItem satisfies core.ItemReader.
func (s *Service) GetItem(ctx context.Context, id int) (*Item, error) {
	return s.Get(ctx, id)
}

// Grouped returns the available menu split into category sections.
func (s *Service) Grouped(ctx context.Context) ([]Group, error) {
	items, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	all, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	return GroupItems(items, all), nil
}

func (s *Service) Create(ctx context.Context, in ItemInput) (*Item, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	categoryID, err := s.bindCategory(ctx, in)
	if err != nil {
		return nil, err
	}

	item := fromInput(in, categoryID)
	if in.Available == nil {
		item.Available = true
	}
	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, err
	}

	s.logger.Info("item created", zap.Int("item_id", item.ID), zap.String("name", item.Name))
	return s.Get(ctx, item.ID)
}

func (s *Service) Update(ctx context.Context, id int, in ItemInput) (*Item, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	categoryID, err := s.bindCategory(ctx, in)
	if err != nil {
		return nil, err
	}

	item := fromInput(in, categoryID)
	item.ID = id
	item.Available = existing.Available
	if in.Available != nil {
		item.Available = *in.Available
	}
	if in.ImageURL == nil {
		item.ImageURL = existing.ImageURL
	}
	if err := s.repo.Update(ctx, &item); err != nil {
		return nil, err
	}

	s.logger.Info("item updated", zap.Int("item_id", id))
	return s.Get(ctx, id)
}

// Delete hides the item from every listing. Past orders keep referencing it.
func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("item deleted", zap.Int("item_id", id))
	return nil
}

// UploadImage stores the picture under items/<id>/<uuid><ext> and records its URL.
func (s *Service) UploadImage(ctx context.Context, id int, filename string, body io.Reader) (string, error) {
	ext, contentType, err := ValidateImageExtension(filename)
	if err != nil {
		return "", err
	}
	if s.storage == nil {
		return "", errors.New("object storage not configured")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return "", err
	}

	key := fmt.Sprintf("items/%d/%s%s", id, uuid.New().String(), ext)
	url, err := s.storage.Upload(ctx, key, body, contentType)
	if err != nil {
		return "", fmt.Errorf("upload item image: %w", err)
	}
	if err := s.repo.SetImageURL(ctx, id, url); err != nil {
		return "", err
	}

	s.logger.Info("item image uploaded", zap.Int("item_id", id), zap.String("key", key))
	return url, nil
}

// bindCategory turns whatever category the client sent into a stored id.
// Names are looked up or created through the category service.
func (s *Service) bindCategory(ctx context.Context, in ItemInput) (*int, error) {
	id, hasID := in.Category.ID()
	if in.CategoryID != nil {
		id, hasID = *in.CategoryID, true
	}

	if hasID {
		all, err := s.categories.List(ctx)
		if err != nil {
			return nil, err
		}
		if category.Resolve(&id, category.None, all).IsUncategorized() {
			return nil, apperr.NewValidation("Dados do item inválidos.", map[string]string{
				"categoria": fmt.Sprintf("categoria %d não existe", id),
			})
		}
		return &id, nil
	}

	name := ""
	if n, ok := in.Category.Name(); ok {
		name = n
	} else if c, ok := in.Category.Category(); ok {
		name = strings.TrimSpace(c.Name)
	}
	if name == "" {
		return nil, nil
	}

	c, err := s.categories.GetOrCreate(ctx, name)
	if err != nil {
		return nil, err
	}
	return &c.ID, nil
}

func fromInput(in ItemInput, categoryID *int) Item {
	item := Item{
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Price:        in.Price,
		Unit:         in.Unit,
		BaseQuantity: in.BaseQuantity,
		CategoryID:   categoryID,
		ImageURL:     in.ImageURL,
		Featured:     in.Featured,
		DisplayOrder: in.DisplayOrder,
		Tags:         in.Tags,
	}
	if categoryID != nil {
		item.Category = category.ByID(*categoryID)
	}
	return item
}
