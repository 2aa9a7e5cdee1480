package customer

import (
	"time"

	"opsdesk/internal/domain"
)

type CreateCustomerRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	AltPhone    string `json:"alt_phone"`
	Company     string `json:"company"`
	Address     string `json:"address"`
	City        string `json:"city"`
	TaxID       string `json:"tax_id"`
	BankAccount string `json:"bank_account"`
	Notes       string `json:"notes"`
}

type UpdateCustomerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	AltPhone    string `json:"alt_phone"`
	Company     string `json:"company"`
	Address     string `json:"address"`
	City        string `json:"city"`
	TaxID       string `json:"tax_id"`
	BankAccount string `json:"bank_account"`
	Notes       string `json:"notes"`
}

type UpdateCustomerStatusRequest struct {
	Status domain.CustomerStatus `json:"status" validate:"required,oneof=active archived"`
}

type AddCustomerServiceRequest struct {
	ServiceID int64      `json:"service_id" validate:"required"`
	Price     float64    `json:"price" validate:"gte=0"`
	StartDate *time.Time `json:"start_date"`
}

type UpdateCustomerServiceRequest struct {
	Status domain.CustomerServiceStatus `json:"status" validate:"omitempty,oneof=active inactive expired"`
	Price  *float64                     `json:"price" validate:"omitempty,gte=0"`
}

type CustomerListResponse struct {
	Customers []domain.Customer `json:"customers"`
	Total     int64             `json:"total"`
}
