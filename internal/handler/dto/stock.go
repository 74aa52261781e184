package dto

import (
	"time"

	"github.com/jmar008/dealaai/internal/domain"
	"github.com/jmar008/dealaai/internal/domain/entity"
)

// StockListRequest carries the stock listing filters from the query string.
type StockListRequest struct {
	Query     string   `query:"q"`
	Make      string   `query:"make"`
	Model     string   `query:"model"`
	Reserved  *bool    `query:"reserved"`
	Published *bool    `query:"published"`
	MinPrice  *float64 `query:"min_price"`
	MaxPrice  *float64 `query:"max_price"`
	Page      int      `query:"page"`
	PageSize  int      `query:"page_size"`
}

// ToFilter converts the request into a domain filter.
func (r *StockListRequest) ToFilter() domain.StockFilter {
	page := r.Page
	if page < 1 {
		page = 1
	}
	// Same bounds the usecase enforces, so the page metadata in the
	// response matches the rows actually served.
	pageSize := r.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	return domain.StockFilter{
		Query:     r.Query,
		Make:      r.Make,
		Model:     r.Model,
		Reserved:  r.Reserved,
		Published: r.Published,
		MinPrice:  r.MinPrice,
		MaxPrice:  r.MaxPrice,
		Offset:    (page - 1) * pageSize,
		Limit:     pageSize,
	}
}

// VehicleResponse is the vehicle wire form.
type VehicleResponse struct {
	VIN            string  `json:"vin"`
	Plate          string  `json:"plate,omitempty"`
	Make           string  `json:"make"`
	Model          string  `json:"model"`
	Year           int     `json:"year,omitempty"`
	Color          string  `json:"color,omitempty"`
	FuelType       string  `json:"fuel_type,omitempty"`
	Transmission   string  `json:"transmission,omitempty"`
	VehicleType    string  `json:"vehicle_type,omitempty"`
	Price          float64 `json:"price"`
	PreviousPrice  float64 `json:"previous_price,omitempty"`
	Kilometers     int     `json:"kilometers"`
	DaysInStock    int     `json:"days_in_stock"`
	Reserved       bool    `json:"reserved"`
	Published      bool    `json:"published"`
	Status         string  `json:"status,omitempty"`
	StockType      string  `json:"stock_type,omitempty"`
	DealershipName string  `json:"dealership_name,omitempty"`
	Province       string  `json:"province,omitempty"`
	Location       string  `json:"location,omitempty"`
	ReceivedAt     string  `json:"received_at,omitempty"`
}

// VehicleListResponse pages vehicles.
type VehicleListResponse struct {
	Vehicles   []*VehicleResponse `json:"vehicles"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// StockStatsResponse is the stock aggregate wire form.
type StockStatsResponse struct {
	Total     int            `json:"total"`
	Available int            `json:"available"`
	Reserved  int            `json:"reserved"`
	AvgPrice  float64        `json:"avg_price"`
	MinPrice  float64        `json:"min_price"`
	MaxPrice  float64        `json:"max_price"`
	AvgKm     float64        `json:"avg_km"`
	ByMake    map[string]int `json:"by_make"`
	ByFuel    map[string]int `json:"by_fuel"`
	ByType    map[string]int `json:"by_type"`
}

// ToVehicleResponse converts entity.Vehicle to its wire form.
func ToVehicleResponse(vehicle *entity.Vehicle) *VehicleResponse {
	resp := &VehicleResponse{
		VIN:            vehicle.VIN,
		Plate:          vehicle.Plate,
		Make:           vehicle.Make,
		Model:          vehicle.Model,
		Year:           vehicle.Year,
		Color:          vehicle.Color,
		FuelType:       vehicle.FuelType,
		Transmission:   vehicle.Transmission,
		VehicleType:    vehicle.VehicleType,
		Price:          vehicle.Price,
		PreviousPrice:  vehicle.PreviousPrice,
		Kilometers:     vehicle.Kilometers,
		DaysInStock:    vehicle.DaysInStock,
		Reserved:       vehicle.Reserved,
		Published:      vehicle.Published,
		Status:         vehicle.Status,
		StockType:      vehicle.StockType,
		DealershipName: vehicle.DealershipName,
		Province:       vehicle.Province,
		Location:       vehicle.Location,
	}

	if vehicle.ReceivedAt != nil {
		resp.ReceivedAt = vehicle.ReceivedAt.Format(time.RFC3339)
	}

	return resp
}

// ToVehicleListResponse converts a page of vehicles to its wire form.
func ToVehicleListResponse(vehicles []*entity.Vehicle, total, page, pageSize int) *VehicleListResponse {
	vehicleResponses := make([]*VehicleResponse, len(vehicles))
	for i, vehicle := range vehicles {
		vehicleResponses[i] = ToVehicleResponse(vehicle)
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	return &VehicleListResponse{
		Vehicles:   vehicleResponses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// ToStockStatsResponse converts entity.StockStats to its wire form.
func ToStockStatsResponse(stats *entity.StockStats) *StockStatsResponse {
	return &StockStatsResponse{
		Total:     stats.Total,
		Available: stats.Available,
		Reserved:  stats.Reserved,
		AvgPrice:  stats.AvgPrice,
		MinPrice:  stats.MinPrice,
		MaxPrice:  stats.MaxPrice,
		AvgKm:     stats.AvgKm,
		ByMake:    stats.ByMake,
		ByFuel:    stats.ByFuel,
		ByType:    stats.ByType,
	}
}
