package domain

import "time"

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerArchived CustomerStatus = "archived"
)

type Customer struct {
	ID       int64  `json:"id"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	AltPhone string `json:"alt_phone,omitempty"`

	Company string `json:"company,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`

	// Statutory / banking
	TaxID       string `json:"tax_id,omitempty"`
	BankAccount string `json:"bank_account,omitempty"`

	Notes  string         `json:"notes,omitempty" gorm:"type:text"`
	Status CustomerStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Services []CustomerService `json:"services,omitempty" gorm:"foreignKey:CustomerID"`
}

func (Customer) TableName() string { return "customers" }

type CustomerServiceStatus string

const (
	CustomerServiceActive   CustomerServiceStatus = "active"
	CustomerServiceInactive CustomerServiceStatus = "inactive"
	CustomerServiceExpired  CustomerServiceStatus = "expired"
)

// CustomerService links a customer to a catalog service with a price.
type CustomerService struct {
	ID         int64                 `json:"id"`
	CustomerID int64                 `json:"customer_id"`
	ServiceID  int64                 `json:"service_id" validate:"required"`
	Status     CustomerServiceStatus `json:"status"`
	Price      float64               `json:"price"`
	StartDate  *time.Time            `json:"start_date,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

func (CustomerService) TableName() string { return "customer_services" }
