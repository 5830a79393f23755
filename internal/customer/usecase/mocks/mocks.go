// Package mocks provides mock implementations of the customer use case and repository.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	customerDomain "github.com/invoicedash/dashboard/internal/customer/domain"
	"github.com/invoicedash/dashboard/internal/form"
)

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *customerDomain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) ListFiltered(
	ctx context.Context,
	query string,
	limit, offset int,
) ([]*customerDomain.CustomerListItem, error) {
	args := m.Called(ctx, query, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*customerDomain.CustomerListItem), args.Error(1)
}

func (m *MockCustomerRepository) CountFiltered(ctx context.Context, query string) (int, error) {
	args := m.Called(ctx, query)
	return args.Int(0), args.Error(1)
}

func (m *MockCustomerRepository) ListOptions(ctx context.Context) ([]*customerDomain.CustomerOption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*customerDomain.CustomerOption), args.Error(1)
}

// MockCustomerUseCase is a mock implementation of CustomerUseCase.
type MockCustomerUseCase struct {
	mock.Mock
}

func (m *MockCustomerUseCase) Create(ctx context.Context, values form.Values) (form.Result, error) {
	args := m.Called(ctx, values)
	return args.Get(0).(form.Result), args.Error(1)
}

func (m *MockCustomerUseCase) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerUseCase) List(
	ctx context.Context,
	query string,
	page int,
) (*customerDomain.CustomerPage, error) {
	args := m.Called(ctx, query, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customerDomain.CustomerPage), args.Error(1)
}

func (m *MockCustomerUseCase) Options(ctx context.Context) ([]*customerDomain.CustomerOption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*customerDomain.CustomerOption), args.Error(1)
}
