package staff

import "opsdesk/internal/domain"

type CreateStaffRequest struct {
	Name     string           `json:"name" validate:"required"`
	Email    string           `json:"email" validate:"required,email"`
	Password string           `json:"password" validate:"required,min=8"`
	Role     domain.StaffRole `json:"role" validate:"required,oneof=admin manager technician"`
	Phone    string           `json:"phone"`
}

type UpdateStaffRequest struct {
	Name  string           `json:"name"`
	Phone string           `json:"phone"`
	Role  domain.StaffRole `json:"role" validate:"omitempty,oneof=admin manager technician"`
}
