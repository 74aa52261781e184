package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/jmar008/dealaai/internal/domain"
	"github.com/jmar008/dealaai/internal/domain/entity"
)

// exportBatchSize bounds each page fetched while streaming an export.
const exportBatchSize = 500

// exportLimit caps a single export, matching the backend's timeout guard.
const exportLimit = 5000

type stockUsecase struct {
	stockRepo domain.StockRepository
	logger    *slog.Logger
}

// NewStockUsecase creates the stock usecase.
func NewStockUsecase(stockRepo domain.StockRepository, logger *slog.Logger) domain.StockUsecase {
	return &stockUsecase{
		stockRepo: stockRepo,
		logger:    logger,
	}
}

func (u *stockUsecase) List(ctx context.Context, filter domain.StockFilter) ([]*entity.Vehicle, int, error) {
	normalizeFilter(&filter)
	return u.stockRepo.List(ctx, filter)
}

func (u *stockUsecase) Get(ctx context.Context, vin string) (*entity.Vehicle, error) {
	if vin == "" {
		return nil, domain.NewInvalidInputError("vin is required")
	}
	return u.stockRepo.GetByVIN(ctx, vin)
}

// Search validates the advanced-search input before delegating to List.
func (u *stockUsecase) Search(ctx context.Context, filter domain.StockFilter) ([]*entity.Vehicle, int, error) {
	if filter.MinPrice != nil && *filter.MinPrice < 0 {
		return nil, 0, domain.NewInvalidInputError("min_price must not be negative")
	}
	if filter.MaxPrice != nil && *filter.MaxPrice < 0 {
		return nil, 0, domain.NewInvalidInputError("max_price must not be negative")
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, 0, domain.NewInvalidInputError("min_price must not exceed max_price")
	}

	normalizeFilter(&filter)
	return u.stockRepo.List(ctx, filter)
}

func (u *stockUsecase) Stats(ctx context.Context) (*entity.StockStats, error) {
	return u.stockRepo.Stats(ctx)
}

// ExportCSV streams matching vehicles to w in batches, capped at exportLimit
// rows.
func (u *stockUsecase) ExportCSV(ctx context.Context, filter domain.StockFilter, w io.Writer) error {
	writer := csv.NewWriter(w)

	header := []string{
		"VIN", "Make", "Model", "Year", "Price", "Kilometers",
		"Color", "Fuel", "Transmission", "Status",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	exported := 0
	filter.Limit = exportBatchSize
	for exported < exportLimit {
		filter.Offset = exported

		vehicles, _, err := u.stockRepo.List(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to fetch export batch: %w", err)
		}
		if len(vehicles) == 0 {
			break
		}

		for _, v := range vehicles {
			record := []string{
				v.VIN,
				v.Make,
				v.Model,
				strconv.Itoa(v.Year),
				strconv.FormatFloat(v.Price, 'f', 2, 64),
				strconv.Itoa(v.Kilometers),
				v.Color,
				v.FuelType,
				v.Transmission,
				v.Status,
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write csv record: %w", err)
			}
		}
		exported += len(vehicles)

		if len(vehicles) < exportBatchSize {
			break
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	u.logger.Info("stock exported", "rows", exported)
	return nil
}

func normalizeFilter(f *domain.StockFilter) {
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
