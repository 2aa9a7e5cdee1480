package work

import (
	"time"

	"opsdesk/internal/domain"
)

type CreateWorkRequest struct {
	CustomerID  int64               `json:"customer_id" validate:"required"`
	ServiceID   int64               `json:"service_id" validate:"required"`
	Title       string              `json:"title" validate:"required"`
	Description string              `json:"description"`
	Priority    domain.WorkPriority `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time          `json:"due_date"`
	AssignedTo  *int64              `json:"assigned_to"`
}

type UpdateWorkRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    domain.WorkPriority `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time          `json:"due_date"`
	AssignedTo  *int64              `json:"assigned_to"`
}

type UpdateWorkStatusRequest struct {
	Status domain.WorkStatus `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
}

type WorkListResponse struct {
	Works []domain.Work `json:"works"`
	Total int64         `json:"total"`
}
