package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	customerMocks "github.com/invoicedash/dashboard/internal/customer/usecase/mocks"
	"github.com/invoicedash/dashboard/internal/form"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectRecord(m *mockBusinessMetrics, ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "customers", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "customers", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestMetricsDecorator_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		result form.Result
		err    error
		status string
	}{
		{name: "success", result: form.Success("/dashboard/customers"), status: "success"},
		{name: "invalid", result: form.Invalid(map[string][]string{"email": {"x"}}, "m"), status: "invalid"},
		{name: "error", result: form.Failed("m"), err: errors.New("db"), status: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := &customerMocks.MockCustomerUseCase{}
			m := &mockBusinessMetrics{}
			values := form.Values{"name": "A"}

			useCase.On("Create", ctx, values).Return(tt.result, tt.err).Once()
			expectRecord(m, ctx, "customer_create", tt.status)

			result, err := NewCustomerUseCaseWithMetrics(useCase, m).Create(ctx, values)

			assert.Equal(t, tt.result, result)
			assert.Equal(t, tt.err, err)
			m.AssertExpectations(t)
		})
	}
}

func TestMetricsDecorator_IsEmailAvailable(t *testing.T) {
	ctx := context.Background()
	useCase := &customerMocks.MockCustomerUseCase{}
	m := &mockBusinessMetrics{}

	useCase.On("IsEmailAvailable", ctx, "a@b.com").Return(false, errors.New("db")).Once()
	expectRecord(m, ctx, "customer_email_check", "error")

	available, err := NewCustomerUseCaseWithMetrics(useCase, m).IsEmailAvailable(ctx, "a@b.com")

	assert.False(t, available)
	assert.Error(t, err)
	m.AssertExpectations(t)
}
