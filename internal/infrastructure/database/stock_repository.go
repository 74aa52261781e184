package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmar008/dealaai/internal/domain"
	"github.com/jmar008/dealaai/internal/domain/entity"
)

const vehicleColumns = `
	vin, plate, make, model, year, color, fuel_type, transmission,
	vehicle_type, price, previous_price, purchase_cost, kilometers,
	days_in_stock, reserved, published, status, stock_type,
	dealership_name, province, location, registered_at, received_at,
	created_at, updated_at`

type stockRepository struct {
	db *sql.DB
}

// NewStockRepository creates the MySQL-backed StockRepository.
func NewStockRepository(db *sql.DB) domain.StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) List(ctx context.Context, f domain.StockFilter) ([]*entity.Vehicle, int, error) {
	where, args := buildStockWhere(f)

	var total int
	countQuery := "SELECT COUNT(*) FROM vehicles" + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	query := "SELECT" + vehicleColumns + " FROM vehicles" + where +
		" ORDER BY make, model, vin LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*entity.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, total, rows.Err()
}

func (r *stockRepository) GetByVIN(ctx context.Context, vin string) (*entity.Vehicle, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT"+vehicleColumns+" FROM vehicles WHERE vin = ?", vin)

	v, err := scanVehicle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("Vehicle", vin)
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return v, nil
}

func (r *stockRepository) Stats(ctx context.Context) (*entity.StockStats, error) {
	stats := &entity.StockStats{
		ByMake: make(map[string]int),
		ByFuel: make(map[string]int),
		ByType: make(map[string]int),
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(reserved = 0), 0),
			COALESCE(SUM(reserved = 1), 0),
			COALESCE(AVG(price), 0),
			COALESCE(MIN(price), 0),
			COALESCE(MAX(price), 0),
			COALESCE(AVG(kilometers), 0)
		FROM vehicles`)
	if err := row.Scan(&stats.Total, &stats.Available, &stats.Reserved,
		&stats.AvgPrice, &stats.MinPrice, &stats.MaxPrice, &stats.AvgKm); err != nil {
		return nil, fmt.Errorf("failed to aggregate stock: %w", err)
	}

	for _, group := range []struct {
		column string
		dest   map[string]int
		limit  int
	}{
		{"make", stats.ByMake, 10},
		{"fuel_type", stats.ByFuel, 0},
		{"vehicle_type", stats.ByType, 0},
	} {
		if err := r.countBy(ctx, group.column, group.limit, group.dest); err != nil {
			return nil, err
		}
	}

	return stats, nil
}

func (r *stockRepository) countBy(ctx context.Context, column string, limit int, dest map[string]int) error {
	query := fmt.Sprintf(
		"SELECT %s, COUNT(*) FROM vehicles WHERE %s <> '' GROUP BY %s ORDER BY COUNT(*) DESC",
		column, column, column)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to group vehicles by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return fmt.Errorf("failed to scan %s group: %w", column, err)
		}
		dest[key] = count
	}
	return rows.Err()
}

func buildStockWhere(f domain.StockFilter) (string, []any) {
	var conds []string
	var args []any

	if f.Query != "" {
		like := "%" + f.Query + "%"
		conds = append(conds,
			"(make LIKE ? OR model LIKE ? OR vin LIKE ? OR plate LIKE ? OR color LIKE ?)")
		args = append(args, like, like, like, like, like)
	}
	if f.Make != "" {
		conds = append(conds, "make = ?")
		args = append(args, f.Make)
	}
	if f.Model != "" {
		conds = append(conds, "model LIKE ?")
		args = append(args, "%"+f.Model+"%")
	}
	if f.Reserved != nil {
		conds = append(conds, "reserved = ?")
		args = append(args, *f.Reserved)
	}
	if f.Published != nil {
		conds = append(conds, "published = ?")
		args = append(args, *f.Published)
	}
	if f.MinPrice != nil {
		conds = append(conds, "price >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conds = append(conds, "price <= ?")
		args = append(args, *f.MaxPrice)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanVehicle(s scanner) (*entity.Vehicle, error) {
	var (
		v            entity.Vehicle
		registeredAt sql.NullTime
		receivedAt   sql.NullTime
	)

	err := s.Scan(
		&v.VIN, &v.Plate, &v.Make, &v.Model, &v.Year, &v.Color, &v.FuelType,
		&v.Transmission, &v.VehicleType, &v.Price, &v.PreviousPrice,
		&v.PurchaseCost, &v.Kilometers, &v.DaysInStock, &v.Reserved,
		&v.Published, &v.Status, &v.StockType, &v.DealershipName,
		&v.Province, &v.Location, &registeredAt, &receivedAt,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if registeredAt.Valid {
		t := registeredAt.Time
		v.RegisteredAt = &t
	}
	if receivedAt.Valid {
		t := receivedAt.Time
		v.ReceivedAt = &t
	}
	return &v, nil
}
