// Package mocks provides mock implementations of the invoice use case and repository.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/invoicedash/dashboard/internal/form"
	invoiceDomain "github.com/invoicedash/dashboard/internal/invoice/domain"
)

// MockInvoiceRepository is a mock implementation of InvoiceRepository.
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *invoiceDomain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, invoice *invoiceDomain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, invoiceID uuid.UUID) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ListFiltered(
	ctx context.Context,
	query string,
	limit, offset int,
) ([]*invoiceDomain.InvoiceListItem, error) {
	args := m.Called(ctx, query, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*invoiceDomain.InvoiceListItem), args.Error(1)
}

func (m *MockInvoiceRepository) CountFiltered(ctx context.Context, query string) (int, error) {
	args := m.Called(ctx, query)
	return args.Int(0), args.Error(1)
}

// MockInvoiceUseCase is a mock implementation of InvoiceUseCase.
type MockInvoiceUseCase struct {
	mock.Mock
}

func (m *MockInvoiceUseCase) Create(ctx context.Context, values form.Values) (form.Result, error) {
	args := m.Called(ctx, values)
	return args.Get(0).(form.Result), args.Error(1)
}

func (m *MockInvoiceUseCase) Update(
	ctx context.Context,
	invoiceID uuid.UUID,
	values form.Values,
) (form.Result, error) {
	args := m.Called(ctx, invoiceID, values)
	return args.Get(0).(form.Result), args.Error(1)
}

func (m *MockInvoiceUseCase) Delete(ctx context.Context, invoiceID uuid.UUID) (form.Result, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).(form.Result), args.Error(1)
}

func (m *MockInvoiceUseCase) List(
	ctx context.Context,
	query string,
	page int,
) (*invoiceDomain.InvoicePage, error) {
	args := m.Called(ctx, query, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoiceDomain.InvoicePage), args.Error(1)
}
