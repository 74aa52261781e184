package entity

import "time"

// Vehicle is a single unit of dealership stock, keyed by VIN.
type Vehicle struct {
	VIN   string
	Plate string

	Make         string
	Model        string
	Year         int
	Color        string
	FuelType     string
	Transmission string
	VehicleType  string

	Price         float64
	PreviousPrice float64
	PurchaseCost  float64

	Kilometers  int
	DaysInStock int

	Reserved  bool
	Published bool
	Status    string
	StockType string

	DealershipName string
	Province       string
	Location       string

	RegisteredAt *time.Time
	ReceivedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Available reports whether the vehicle can still be sold.
func (v *Vehicle) Available() bool {
	return !v.Reserved
}

// StockStats aggregates the stock for the dashboard and the chat assistant.
type StockStats struct {
	Total     int
	Available int
	Reserved  int

	AvgPrice float64
	MinPrice float64
	MaxPrice float64
	AvgKm    float64

	ByMake map[string]int
	ByFuel map[string]int
	ByType map[string]int
}
