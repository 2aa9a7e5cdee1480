package domain

import "time"

type WorkStatus string

const (
	WorkPending    WorkStatus = "pending"
	WorkInProgress WorkStatus = "in_progress"
	WorkCompleted  WorkStatus = "completed"
	WorkCancelled  WorkStatus = "cancelled"
)

type WorkPriority string

const (
	PriorityLow    WorkPriority = "low"
	PriorityMedium WorkPriority = "medium"
	PriorityHigh   WorkPriority = "high"
	PriorityUrgent WorkPriority = "urgent"
)

type Work struct {
	ID          int64        `json:"id"`
	CustomerID  int64        `json:"customer_id" validate:"required"`
	ServiceID   int64        `json:"service_id" validate:"required"`
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description,omitempty" gorm:"type:text"`
	Priority    WorkPriority `json:"priority"`
	Status      WorkStatus   `json:"status"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	AssignedTo  *int64       `json:"assigned_to,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

func (Work) TableName() string { return "works" }

// IsTerminal reports whether no further status transitions are allowed.
func (w *Work) IsTerminal() bool {
	return w.Status == WorkCompleted || w.Status == WorkCancelled
}
