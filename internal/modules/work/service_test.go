package work

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"opsdesk/internal/domain"
	"opsdesk/internal/repository"
)

type MockWorkRepository struct {
	mock.Mock
}

func (m *MockWorkRepository) Create(ctx context.Context, work *domain.Work) error {
	args := m.Called(ctx, work)
	if work != nil && args.Error(0) == nil {
		work.ID = 1
	}
	return args.Error(0)
}

func (m *MockWorkRepository) GetByID(ctx context.Context, id int64) (*domain.Work, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Work), args.Error(1)
}

func (m *MockWorkRepository) List(ctx context.Context, f repository.WorkFilter) ([]domain.Work, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Work), args.Get(1).(int64), args.Error(2)
}

func (m *MockWorkRepository) Update(ctx context.Context, work *domain.Work) error {
	args := m.Called(ctx, work)
	return args.Error(0)
}

func (m *MockWorkRepository) UpdateStatus(ctx context.Context, id int64, status domain.WorkStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockWorkRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCustomerReader struct {
	mock.Mock
}

func (m *MockCustomerReader) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func TestCreate_DefaultsToPendingMediumPriority(t *testing.T) {
	repo := new(MockWorkRepository)
	customers := new(MockCustomerReader)
	catalog := new(MockCatalog)

	customers.On("GetByID", mock.Anything, int64(3)).Return(&domain.Customer{ID: 3}, nil)
	catalog.On("GetByID", mock.Anything, int64(7)).Return(&domain.Service{ID: 7}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(w *domain.Work) bool {
		return w.Status == domain.WorkPending && w.Priority == domain.PriorityMedium
	})).Return(nil)

	service := NewService(repo, customers, catalog)

	work, err := service.Create(context.Background(), CreateWorkRequest{
		CustomerID: 3,
		ServiceID:  7,
		Title:      "Quarterly inspection",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), work.ID)
	repo.AssertExpectations(t)
}

func TestCreate_UnknownCustomer(t *testing.T) {
	repo := new(MockWorkRepository)
	customers := new(MockCustomerReader)
	catalog := new(MockCatalog)

	customers.On("GetByID", mock.Anything, int64(3)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(repo, customers, catalog)

	_, err := service.Create(context.Background(), CreateWorkRequest{
		CustomerID: 3,
		ServiceID:  7,
		Title:      "Quarterly inspection",
	})

	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	cases := []struct {
		name    string
		from    domain.WorkStatus
		to      domain.WorkStatus
		wantErr error
	}{
		{"pending to in_progress", domain.WorkPending, domain.WorkInProgress, nil},
		{"pending to cancelled", domain.WorkPending, domain.WorkCancelled, nil},
		{"pending to completed", domain.WorkPending, domain.WorkCompleted, ErrInvalidTransition},
		{"in_progress to completed", domain.WorkInProgress, domain.WorkCompleted, nil},
		{"in_progress to cancelled", domain.WorkInProgress, domain.WorkCancelled, nil},
		{"in_progress to pending", domain.WorkInProgress, domain.WorkPending, ErrInvalidTransition},
		{"completed is terminal", domain.WorkCompleted, domain.WorkPending, ErrTerminalStatus},
		{"cancelled is terminal", domain.WorkCancelled, domain.WorkInProgress, ErrTerminalStatus},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockWorkRepository)
			customers := new(MockCustomerReader)
			catalog := new(MockCatalog)

			repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Work{ID: 1, Status: tc.from}, nil)
			if tc.wantErr == nil {
				repo.On("UpdateStatus", mock.Anything, int64(1), tc.to).Return(nil)
			}

			service := NewService(repo, customers, catalog)

			err := service.UpdateStatus(context.Background(), 1, tc.to)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				repo.AssertExpectations(t)
			}
		})
	}
}

func TestUpdate_TerminalWorkRejected(t *testing.T) {
	repo := new(MockWorkRepository)
	customers := new(MockCustomerReader)
	catalog := new(MockCatalog)

	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Work{ID: 1, Status: domain.WorkCompleted}, nil)

	service := NewService(repo, customers, catalog)

	_, err := service.Update(context.Background(), 1, UpdateWorkRequest{Title: "New title"})

	assert.ErrorIs(t, err, ErrTerminalStatus)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
