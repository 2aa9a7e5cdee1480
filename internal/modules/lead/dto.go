package lead

import (
	"time"

	"opsdesk/internal/domain"
)

type CreateLeadRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	AltPhone string `json:"alt_phone"`
	Company  string `json:"company"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Notes    string `json:"notes"`
	Source   string `json:"source"`

	ServiceIDs []int64 `json:"service_ids"`
}

type UpdateLeadRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	AltPhone string `json:"alt_phone"`
	Company  string `json:"company"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Notes    string `json:"notes"`
}

type UpdateLeadStatusRequest struct {
	Status domain.LeadStatus `json:"status" validate:"required,oneof=new contacted qualified proposal negotiation lost"`
}

type AssignLeadRequest struct {
	StaffID *int64 `json:"staff_id"`
}

type AddLeadServiceRequest struct {
	ServiceID int64 `json:"service_id" validate:"required"`
}

type LeadListResponse struct {
	Leads []domain.Lead `json:"leads"`
	Total int64         `json:"total"`
}

// CustomerFields is the editable customer form pre-populated from the lead.
type CustomerFields struct {
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

type WorkDraftInput struct {
	ServiceID   int64               `json:"service_id" validate:"required"`
	Title       string              `json:"title" validate:"required"`
	Description string              `json:"description"`
	Priority    domain.WorkPriority `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time          `json:"due_date"`
	AssignedTo  *int64              `json:"assigned_to"`
}

type ConvertLeadRequest struct {
	Customer    CustomerFields   `json:"customer"`
	CreateWorks *bool            `json:"create_works"`                   // defaults to true
	Works       []WorkDraftInput `json:"works" validate:"omitempty,dive"` // overrides the prefilled drafts when present
}

type ConvertPreviewResponse struct {
	Customer CustomerFields `json:"customer"`
	Drafts   []WorkDraft    `json:"drafts"`
}
