package domain

import "time"

// Channel represents a purchasable catalog item with a fixed price.
// Channels are immutable once created.
type Channel struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}
