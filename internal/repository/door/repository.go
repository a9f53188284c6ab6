package door

import (
	"context"

	"github.com/DanillS/doors-web/internal/domain"
)

// PriceRow is the minimal projection the bulk price adjuster works on.
type PriceRow struct {
	ID        int64
	Price     int64
	BasePrice *int64
}

type Repository interface {
	List(ctx context.Context, includeInactive bool) ([]domain.Door, error)
	GetByID(ctx context.Context, id int64) (*domain.Door, error)
	Create(ctx context.Context, door domain.Door) (*domain.Door, error)
	Update(ctx context.Context, id int64, door domain.Door) (*domain.Door, error)
	Delete(ctx context.Context, id int64) error
	ListPricing(ctx context.Context) ([]PriceRow, error)
	UpdatePrice(ctx context.Context, id, price int64) error
	Ping(ctx context.Context) error
}
