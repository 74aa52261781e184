package types

import (
	"fmt"
	"net/url"
	"strconv"
)

// Vehicle is the stock vehicle snapshot returned by the server.
type Vehicle struct {
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
}

// VehicleList is a page of vehicles.
type VehicleList struct {
	Vehicles   []Vehicle `json:"vehicles"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

// StockStats holds aggregate stock figures.
type StockStats struct {
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

// StockQuery carries the stock listing filters.
type StockQuery struct {
	Query    string
	Make     string
	Model    string
	MinPrice float64
	MaxPrice float64
	Page     int
	PageSize int
}

// Encode renders the query as a URL query string, empty fields omitted.
func (q StockQuery) Encode() string {
	values := url.Values{}
	if q.Query != "" {
		values.Set("q", q.Query)
	}
	if q.Make != "" {
		values.Set("make", q.Make)
	}
	if q.Model != "" {
		values.Set("model", q.Model)
	}
	if q.MinPrice > 0 {
		values.Set("min_price", fmt.Sprintf("%.2f", q.MinPrice))
	}
	if q.MaxPrice > 0 {
		values.Set("max_price", fmt.Sprintf("%.2f", q.MaxPrice))
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(q.PageSize))
	}
	return values.Encode()
}
