package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxFailedAttempts = 5
	lockoutDuration   = 15 * time.Minute
)

// Service handles staff authentication
type Service struct {
	repo   StaffRepository
	tokens TokenIssuer
}

func NewService(repo StaffRepository, tokens TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Login verifies credentials and issues a JWT. After five consecutive
// failures the account is locked for fifteen minutes.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	staff, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !staff.Active {
		return nil, ErrAccountInactive
	}

	if staff.LockedUntil != nil && staff.LockedUntil.After(time.Now()) {
		return nil, ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)); err != nil {
		attempts := staff.FailedLoginAttempts + 1
		var lockedUntil *time.Time
		if attempts >= maxFailedAttempts {
			until := time.Now().Add(lockoutDuration)
			lockedUntil = &until
		}
		// Best effort; the login already failed.
		_ = s.repo.UpdateLoginState(ctx, staff.ID, attempts, lockedUntil)
		return nil, ErrInvalidCredentials
	}

	if staff.FailedLoginAttempts > 0 || staff.LockedUntil != nil {
		if err := s.repo.UpdateLoginState(ctx, staff.ID, 0, nil); err != nil {
			return nil, err
		}
	}

	token, err := s.tokens.GenerateToken(staff.ID, string(staff.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token, Staff: staff}, nil
}

func (s *Service) Me(ctx context.Context, staffID int64) (*LoginResponse, error) {
	staff, err := s.repo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return &LoginResponse{Staff: staff}, nil
}

func (s *Service) ChangePassword(ctx context.Context, staffID int64, req ChangePasswordRequest) error {
	staff, err := s.repo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStaffNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, staffID, string(hash))
}
