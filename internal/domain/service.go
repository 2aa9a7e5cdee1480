package domain

import "time"

// Service is a catalog entry, independent of leads and customers.
type Service struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Category  string    `json:"category,omitempty"`
	BasePrice float64   `json:"base_price"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Service) TableName() string { return "services" }
