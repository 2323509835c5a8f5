package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/kanhaiyya/billing-api/internal/domain/entity"
	"github.com/kanhaiyya/billing-api/internal/domain/repository"
	"github.com/kanhaiyya/billing-api/internal/infrastructure/spreadsheet"
	"github.com/kanhaiyya/billing-api/pkg/apperror"
	"github.com/kanhaiyya/billing-api/pkg/money"
)

// ItemService manages the price catalog
type ItemService struct {
	itemRepo repository.ItemRepository
}

// NewItemService creates a new item service
func NewItemService(itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// CreateItemInput represents the create item input
type CreateItemInput struct {
	Name  string
	Price decimal.Decimal
}

// CreateItem adds a new item to the catalog
func (s *ItemService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.Item, error) {
	if input.Price.IsNegative() {
		return nil, apperror.NewBadRequestError("Price cannot be negative")
	}

	existing, err := s.itemRepo.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Item with this name already exists")
	}

	item := &entity.Item{
		Name:       input.Name,
		PricePaise: money.ToPaise(input.Price),
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem retrieves an item by ID
func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// ListItems returns the whole catalog
func (s *ItemService) ListItems(ctx context.Context) ([]entity.Item, error) {
	return s.itemRepo.List(ctx)
}

// UpdateItemInput represents the update item input
type UpdateItemInput struct {
	ID    uuid.UUID
	Name  *string
	Price *decimal.Decimal
}

// UpdateItem changes an item's name and/or price. Price changes never touch
// finalized bills; their lines snapshot the price at billing time.
func (s *ItemService) UpdateItem(ctx context.Context, input *UpdateItemInput) (*entity.Item, error) {
	item, err := s.GetItem(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != item.Name {
		existing, err := s.itemRepo.GetByName(ctx, *input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Item with this name already exists")
		}
		item.Name = *input.Name
	}

	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, apperror.NewBadRequestError("Price cannot be negative")
		}
		item.PricePaise = money.ToPaise(*input.Price)
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an item from the catalog. Bills that already billed
// the item keep their snapshotted lines.
func (s *ItemService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetItem(ctx, id); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, id)
}

// ImportItems loads a price-list workbook, inserting new items and updating
// prices of existing ones by name. Returns the number of imported rows.
func (s *ItemService) ImportItems(ctx context.Context, r io.Reader) (int, error) {
	items, err := spreadsheet.ReadItems(r)
	if err != nil {
		return 0, apperror.NewBadRequestError(err.Error())
	}
	if len(items) == 0 {
		return 0, apperror.NewBadRequestError("Workbook contains no items")
	}

	if err := s.itemRepo.UpsertBatch(ctx, items); err != nil {
		return 0, err
	}
	return len(items), nil
}

// ExportItems builds a price-list workbook of the whole catalog
func (s *ItemService) ExportItems(ctx context.Context) (*excelize.File, error) {
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return spreadsheet.ItemsWorkbook(items)
}
