package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Seller identifies who listed a plant. All fields are optional.
type Seller struct {
	Name  string
	Email string
	Image string
}

// Plant is a catalogue listing. Quantity is the live stock counter and is only
// ever decremented through a conditional update, so it never goes negative.
type Plant struct {
	ID          string
	Name        string
	Image       string
	Category    string
	Description string
	Price       decimal.Decimal
	Quantity    int
	Seller      *Seller
	CreatedAt   time.Time
}

// InStock reports whether qty units can be taken from the last known stock.
func (p *Plant) InStock(qty int) bool {
	return qty > 0 && qty <= p.Quantity
}

// Total returns the price of qty units.
func (p *Plant) Total(qty int) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(qty)))
}
