package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"opsdesk/internal/domain"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	if customer != nil && args.Error(0) == nil {
		customer.ID = 1
	}
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) List(ctx context.Context, status *domain.CustomerStatus, limit, offset int) ([]domain.Customer, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]domain.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateStatus(ctx context.Context, id int64, status domain.CustomerStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockCustomerRepository) AddService(ctx context.Context, cs *domain.CustomerService) error {
	args := m.Called(ctx, cs)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateService(ctx context.Context, cs *domain.CustomerService) error {
	args := m.Called(ctx, cs)
	return args.Error(0)
}

func (m *MockCustomerRepository) RemoveService(ctx context.Context, customerID, serviceID int64) error {
	args := m.Called(ctx, customerID, serviceID)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetServices(ctx context.Context, customerID int64) ([]domain.CustomerService, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.CustomerService), args.Error(1)
}

func (m *MockCustomerRepository) GetService(ctx context.Context, customerID, serviceID int64) (*domain.CustomerService, error) {
	args := m.Called(ctx, customerID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerService), args.Error(1)
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

func TestCreate_NormalizesEmail(t *testing.T) {
	repo := new(MockCustomerRepository)
	catalog := new(MockCatalog)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
		return c.Email == "info@acme.test" && c.Status == domain.CustomerActive
	})).Return(nil)

	service := NewService(repo, catalog)

	customer, err := service.Create(context.Background(), CreateCustomerRequest{
		Name:  "Acme Co",
		Email: "  Info@Acme.TEST ",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), customer.ID)
	repo.AssertExpectations(t)
}

func TestAddService_UnknownCatalogService(t *testing.T) {
	repo := new(MockCustomerRepository)
	catalog := new(MockCatalog)

	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Customer{ID: 1, Name: "Acme Co"}, nil)
	catalog.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(repo, catalog)

	_, err := service.AddService(context.Background(), 1, AddCustomerServiceRequest{ServiceID: 99})

	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "AddService", mock.Anything, mock.Anything)
}

func TestAddService_AlreadySubscribed(t *testing.T) {
	repo := new(MockCustomerRepository)
	catalog := new(MockCatalog)

	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Customer{ID: 1, Name: "Acme Co"}, nil)
	catalog.On("GetByID", mock.Anything, int64(7)).Return(&domain.Service{ID: 7, Name: "Cleaning"}, nil)
	repo.On("GetService", mock.Anything, int64(1), int64(7)).Return(&domain.CustomerService{ID: 3}, nil)

	service := NewService(repo, catalog)

	_, err := service.AddService(context.Background(), 1, AddCustomerServiceRequest{ServiceID: 7})

	assert.ErrorIs(t, err, ErrServiceAlreadySubscribed)
	repo.AssertNotCalled(t, "AddService", mock.Anything, mock.Anything)
}

func TestAddService_Success(t *testing.T) {
	repo := new(MockCustomerRepository)
	catalog := new(MockCatalog)

	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Customer{ID: 1, Name: "Acme Co"}, nil)
	catalog.On("GetByID", mock.Anything, int64(7)).Return(&domain.Service{ID: 7, Name: "Cleaning"}, nil)
	repo.On("GetService", mock.Anything, int64(1), int64(7)).Return(nil, gorm.ErrRecordNotFound)
	repo.On("AddService", mock.Anything, mock.MatchedBy(func(cs *domain.CustomerService) bool {
		return cs.CustomerID == 1 && cs.ServiceID == 7 && cs.Price == 150 && cs.Status == domain.CustomerServiceActive
	})).Return(nil)

	service := NewService(repo, catalog)

	cs, err := service.AddService(context.Background(), 1, AddCustomerServiceRequest{ServiceID: 7, Price: 150})

	assert.NoError(t, err)
	assert.Equal(t, float64(150), cs.Price)
	repo.AssertExpectations(t)
}

func TestUpdateService_NotSubscribed(t *testing.T) {
	repo := new(MockCustomerRepository)
	catalog := new(MockCatalog)

	repo.On("GetService", mock.Anything, int64(1), int64(7)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(repo, catalog)

	_, err := service.UpdateService(context.Background(), 1, 7, UpdateCustomerServiceRequest{
		Status: domain.CustomerServiceInactive,
	})

	assert.ErrorIs(t, err, ErrServiceNotSubscribed)
}
