package domain

import "time"

type LeadStatus string

const (
	LeadNew         LeadStatus = "new"
	LeadContacted   LeadStatus = "contacted"
	LeadQualified   LeadStatus = "qualified"
	LeadProposal    LeadStatus = "proposal"
	LeadNegotiation LeadStatus = "negotiation"
	LeadLost        LeadStatus = "lost"
	LeadConverted   LeadStatus = "converted"
)

type Lead struct {
	ID       int64  `json:"id"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	AltPhone string `json:"alt_phone,omitempty"`

	Company string `json:"company,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`

	Notes  string     `json:"notes,omitempty" gorm:"type:text"`
	Status LeadStatus `json:"status"`
	Source string     `json:"source,omitempty"`

	AssignedTo *int64 `json:"assigned_to,omitempty"`

	ConvertedToCustomerID *int64     `json:"converted_to_customer_id,omitempty"`
	ConvertedAt           *time.Time `json:"converted_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Services []LeadService `json:"services,omitempty" gorm:"foreignKey:LeadID"`
}

func (Lead) TableName() string { return "leads" }

// IsConverted returns true if the lead already produced a customer.
func (l *Lead) IsConverted() bool {
	return l.Status == LeadConverted || l.ConvertedToCustomerID != nil
}

// LeadService links a lead to a catalog service it is interested in.
// ServiceName is denormalized for display.
type LeadService struct {
	ID          int64     `json:"id"`
	LeadID      int64     `json:"lead_id" gorm:"uniqueIndex:idx_lead_service"`
	ServiceID   int64     `json:"service_id" gorm:"uniqueIndex:idx_lead_service" validate:"required"`
	ServiceName string    `json:"service_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func (LeadService) TableName() string { return "lead_services" }
