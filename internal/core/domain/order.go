package domain

import "time"

// Order records a completed purchase of a single plant.
type Order struct {
	ID            string
	Email         string
	PlantID       string
	Quantity      int
	TransactionID string
	// Metadata holds any extra fields the storefront sent with the order
	// (plant name, price, seller, address...). It is stored as-is.
	Metadata  map[string]any
	CreatedAt time.Time
}
