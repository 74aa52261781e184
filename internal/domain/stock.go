package domain

import (
	"context"
	"io"

	"github.com/jmar008/dealaai/internal/domain/entity"
)

// StockFilter narrows stock listings. Zero values mean "no constraint".
type StockFilter struct {
	// Query matches make, model, VIN, plate or color, case-insensitively.
	Query string

	Make      string
	Model     string
	Reserved  *bool
	Published *bool
	MinPrice  *float64
	MaxPrice  *float64

	Offset int
	Limit  int
}

// StockRepository is the vehicle persistence boundary.
type StockRepository interface {
	List(ctx context.Context, filter StockFilter) ([]*entity.Vehicle, int, error)

	GetByVIN(ctx context.Context, vin string) (*entity.Vehicle, error)

	Stats(ctx context.Context) (*entity.StockStats, error)
}

// StockUsecase is the stock business logic.
type StockUsecase interface {
	// List pages through vehicles matching filter.
	List(ctx context.Context, filter StockFilter) ([]*entity.Vehicle, int, error)

	// Get returns a vehicle by VIN.
	Get(ctx context.Context, vin string) (*entity.Vehicle, error)

	// Search is the advanced search: free text plus price bounds and make.
	Search(ctx context.Context, filter StockFilter) ([]*entity.Vehicle, int, error)

	// Stats aggregates the current stock.
	Stats(ctx context.Context) (*entity.StockStats, error)

	// ExportCSV streams matching vehicles as CSV to w.
	ExportCSV(ctx context.Context, filter StockFilter, w io.Writer) error
}
