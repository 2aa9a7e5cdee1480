package auth

import (
	"context"
	"time"

	"opsdesk/internal/domain"
)

type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	GetByEmail(ctx context.Context, email string) (*domain.Staff, error)
	UpdateLoginState(ctx context.Context, id int64, failedAttempts int, lockedUntil *time.Time) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type TokenIssuer interface {
	GenerateToken(staffID int64, role string) (string, error)
}
