package catalog

type CreateServiceRequest struct {
	Name      string  `json:"name" validate:"required"`
	Category  string  `json:"category"`
	BasePrice float64 `json:"base_price" validate:"gte=0"`
}

type UpdateServiceRequest struct {
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	BasePrice *float64 `json:"base_price" validate:"omitempty,gte=0"`
	Active    *bool    `json:"active"`
}
