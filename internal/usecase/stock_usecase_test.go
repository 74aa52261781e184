package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/jmar008/dealaai/internal/domain"
	"github.com/jmar008/dealaai/internal/domain/entity"
)

type fakeStockRepository struct {
	vehicles []*entity.Vehicle
}

func (r *fakeStockRepository) List(ctx context.Context, f domain.StockFilter) ([]*entity.Vehicle, int, error) {
	var matched []*entity.Vehicle
	for _, v := range r.vehicles {
		if f.Query != "" {
			q := strings.ToLower(f.Query)
			if !strings.Contains(strings.ToLower(v.Make), q) &&
				!strings.Contains(strings.ToLower(v.Model), q) &&
				!strings.Contains(strings.ToLower(v.VIN), q) {
				continue
			}
		}
		if f.Make != "" && v.Make != f.Make {
			continue
		}
		if f.MinPrice != nil && v.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && v.Price > *f.MaxPrice {
			continue
		}
		matched = append(matched, v)
	}

	total := len(matched)
	if f.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

func (r *fakeStockRepository) GetByVIN(ctx context.Context, vin string) (*entity.Vehicle, error) {
	for _, v := range r.vehicles {
		if v.VIN == vin {
			return v, nil
		}
	}
	return nil, domain.NewNotFoundError("Vehicle", vin)
}

func (r *fakeStockRepository) Stats(ctx context.Context) (*entity.StockStats, error) {
	stats := &entity.StockStats{
		ByMake: make(map[string]int),
		ByFuel: make(map[string]int),
		ByType: make(map[string]int),
	}
	for _, v := range r.vehicles {
		stats.Total++
		if v.Reserved {
			stats.Reserved++
		} else {
			stats.Available++
		}
		stats.ByMake[v.Make]++
	}
	return stats, nil
}

func testVehicles() []*entity.Vehicle {
	return []*entity.Vehicle{
		{VIN: "VIN001", Make: "BMW", Model: "320d", Year: 2020, Price: 25000, Kilometers: 40000},
		{VIN: "VIN002", Make: "BMW", Model: "X3", Year: 2021, Price: 38000, Kilometers: 20000, Reserved: true},
		{VIN: "VIN003", Make: "Audi", Model: "A4", Year: 2019, Price: 22000, Kilometers: 60000},
	}
}

func TestStockSearch(t *testing.T) {
	price := func(p float64) *float64 { return &p }

	tests := []struct {
		name     string
		filter   domain.StockFilter
		wantVINs []string
		wantErr  bool
	}{
		{
			name:     "free text query",
			filter:   domain.StockFilter{Query: "bmw"},
			wantVINs: []string{"VIN001", "VIN002"},
		},
		{
			name:     "price band",
			filter:   domain.StockFilter{MinPrice: price(23000), MaxPrice: price(30000)},
			wantVINs: []string{"VIN001"},
		},
		{
			name:    "inverted price band rejected",
			filter:  domain.StockFilter{MinPrice: price(30000), MaxPrice: price(10000)},
			wantErr: true,
		},
		{
			name:    "negative price rejected",
			filter:  domain.StockFilter{MinPrice: price(-1)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewStockUsecase(&fakeStockRepository{vehicles: testVehicles()}, discardLogger())

			vehicles, total, err := uc.Search(context.Background(), tt.filter)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !domain.IsInvalidInput(err) {
					t.Errorf("expected invalid input error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if total != len(tt.wantVINs) {
				t.Errorf("got total %d, want %d", total, len(tt.wantVINs))
			}
			for i, want := range tt.wantVINs {
				if i >= len(vehicles) || vehicles[i].VIN != want {
					t.Fatalf("got vehicles %v, want VINs %v", vins(vehicles), tt.wantVINs)
				}
			}
		})
	}
}

func TestStockGetRequiresVIN(t *testing.T) {
	uc := NewStockUsecase(&fakeStockRepository{}, discardLogger())

	if _, err := uc.Get(context.Background(), ""); !domain.IsInvalidInput(err) {
		t.Errorf("expected invalid input error, got %v", err)
	}
}

func TestExportCSV(t *testing.T) {
	uc := NewStockUsecase(&fakeStockRepository{vehicles: testVehicles()}, discardLogger())

	var buf strings.Builder
	if err := uc.ExportCSV(context.Background(), domain.StockFilter{}, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 { // header + 3 vehicles
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "VIN,Make,Model") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "VIN001,BMW,320d,2020,25000.00") {
		t.Errorf("unexpected first record: %s", lines[1])
	}
}

func vins(vehicles []*entity.Vehicle) []string {
	out := make([]string, len(vehicles))
	for i, v := range vehicles {
		out[i] = v.VIN
	}
	return out
}
