package usecase

import (
	"context"
	"time"

	authDomain "github.com/invoicedash/dashboard/internal/auth/domain"
	"github.com/invoicedash/dashboard/internal/form"
	"github.com/invoicedash/dashboard/internal/metrics"
)

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *authUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, status string) {
	a.metrics.RecordOperation(ctx, "auth", operation, status)
	a.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}

// Authenticate records metrics for sign-in attempts. Rejected credentials are labeled "rejected".
func (a *authUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	fields form.Values,
) (*authDomain.Session, string, error) {
	start := time.Now()
	session, message, err := a.next.Authenticate(ctx, fields)

	status := "success"
	switch {
	case err != nil:
		status = "error"
	case message != "":
		status = "rejected"
	}
	a.record(ctx, "sign_in", start, status)

	return session, message, err
}

// ValidateSession records metrics for session checks.
func (a *authUseCaseWithMetrics) ValidateSession(ctx context.Context, token string) (*authDomain.Session, error) {
	start := time.Now()
	session, err := a.next.ValidateSession(ctx, token)

	status := "success"
	if err != nil {
		status = "error"
	}
	a.record(ctx, "session_validate", start, status)

	return session, err
}

// CreateUser records metrics for user registration.
func (a *authUseCaseWithMetrics) CreateUser(
	ctx context.Context,
	input *authDomain.CreateUserInput,
) (*authDomain.User, error) {
	start := time.Now()
	user, err := a.next.CreateUser(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}
	a.record(ctx, "user_create", start, status)

	return user, err
}
