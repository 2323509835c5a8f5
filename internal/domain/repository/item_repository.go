package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kanhaiyya/billing-api/internal/domain/entity"
)

// ItemRepository defines the interface for the price catalog store
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	GetByName(ctx context.Context, name string) (*entity.Item, error)
	List(ctx context.Context) ([]entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	// UpsertBatch inserts new items and updates prices of existing ones by
	// name. Used by the spreadsheet import.
	UpsertBatch(ctx context.Context, items []entity.Item) error
}
