package domain

import "time"

// Item represents a catalog item available for purchase.
type Item struct {
	ID        string
	Name      string
	Price     int64
	Stock     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InStock checks if at least one unit can be sold.
func (i *Item) InStock() bool {
	return i.Stock > 0
}
