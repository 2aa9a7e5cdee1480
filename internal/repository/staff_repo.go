package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"opsdesk/internal/domain"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) DB() *gorm.DB { return r.db }

func (r *StaffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	staff.Email = strings.ToLower(strings.TrimSpace(staff.Email))
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *StaffRepository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	var staff domain.Staff
	err := r.db.WithContext(ctx).First(&staff, id).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *StaffRepository) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	var staff domain.Staff
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *StaffRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Staff{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

func (r *StaffRepository) List(ctx context.Context, activeOnly bool) ([]domain.Staff, error) {
	var members []domain.Staff

	q := r.db.WithContext(ctx).Model(&domain.Staff{})
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	err := q.Order("name ASC").Find(&members).Error
	return members, err
}

func (r *StaffRepository) Update(ctx context.Context, staff *domain.Staff) error {
	return r.db.WithContext(ctx).Save(staff).Error
}

func (r *StaffRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.db.WithContext(ctx).Model(&domain.Staff{}).
		Where("id = ?", id).
		Updates(map[string]any{"active": active, "updated_at": time.Now()}).Error
}

func (r *StaffRepository) UpdateLoginState(ctx context.Context, id int64, failedAttempts int, lockedUntil *time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Staff{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"failed_login_attempts": failedAttempts,
			"locked_until":          lockedUntil,
		}).Error
}

func (r *StaffRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&domain.Staff{}).
		Where("id = ?", id).
		Updates(map[string]any{"password_hash": passwordHash, "updated_at": time.Now()}).Error
}
