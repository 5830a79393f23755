package commands

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/invoicedash/dashboard/internal/auth/domain"
	authMocks "github.com/invoicedash/dashboard/internal/auth/usecase/mocks"
	customerDomain "github.com/invoicedash/dashboard/internal/customer/domain"
	customerMocks "github.com/invoicedash/dashboard/internal/customer/usecase/mocks"
	"github.com/invoicedash/dashboard/internal/database"
	invoiceDomain "github.com/invoicedash/dashboard/internal/invoice/domain"
	invoiceMocks "github.com/invoicedash/dashboard/internal/invoice/usecase/mocks"
)

const seedFixture = `{
  "users": [
    {"id": "410544b2-4001-4271-9855-fec4b6a6442a", "name": "User", "email": "user@nextmail.com", "password": "123456"},
    {"name": "Legacy", "email": "legacy@nextmail.com", "password": "$2b$10$abcdefghijklmnopqrstuv"}
  ],
  "customers": [
    {"id": "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", "name": "Evil Rabbit", "email": "evil@rabbit.com", "image_url": "/customers/evil-rabbit.png"},
    {"id": "3958dc9e-712f-4377-85e9-fec4b6a6442a", "name": " Delba ", "email": "delba@oliveira.com"}
  ],
  "invoices": [
    {"customer_id": "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", "amount": 15795, "status": "pending", "date": "2022-12-06"}
  ]
}`

type seedFixtureMocks struct {
	users     *authMocks.MockUserRepository
	customers *customerMocks.MockCustomerRepository
	invoices  *invoiceMocks.MockInvoiceRepository
	passwords *authMocks.MockPasswordService
}

func newSeedFixtureMocks() *seedFixtureMocks {
	return &seedFixtureMocks{
		users:     &authMocks.MockUserRepository{},
		customers: &customerMocks.MockCustomerRepository{},
		invoices:  &invoiceMocks.MockInvoiceRepository{},
		passwords: &authMocks.MockPasswordService{},
	}
}

func (m *seedFixtureMocks) repos() SeedRepositories {
	return SeedRepositories{Users: m.users, Customers: m.customers, Invoices: m.invoices}
}

func TestRunSeed(t *testing.T) {
	logger := slog.Default()

	t.Run("success", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		m := newSeedFixtureMocks()
		m.passwords.On("Hash", "123456").Return("$argon2id$hashed", nil).Once()

		m.users.On("Create", mock.Anything, mock.MatchedBy(func(u *authDomain.User) bool {
			return u.Email == "user@nextmail.com" &&
				u.Password == "$argon2id$hashed" &&
				u.ID == uuid.MustParse("410544b2-4001-4271-9855-fec4b6a6442a")
		})).Return(nil).Once()
		m.users.On("Create", mock.Anything, mock.MatchedBy(func(u *authDomain.User) bool {
			return u.Email == "legacy@nextmail.com" &&
				u.Password == "$2b$10$abcdefghijklmnopqrstuv" &&
				u.ID != uuid.Nil
		})).Return(nil).Once()

		m.customers.On("Create", mock.Anything, mock.MatchedBy(func(c *customerDomain.Customer) bool {
			return c.Email == "evil@rabbit.com" && c.ImageURL == "/customers/evil-rabbit.png"
		})).Return(nil).Once()
		m.customers.On("Create", mock.Anything, mock.MatchedBy(func(c *customerDomain.Customer) bool {
			return c.Name == "Delba" && c.ImageURL == customerDomain.DefaultImageURL
		})).Return(nil).Once()

		m.invoices.On("Create", mock.Anything, mock.MatchedBy(func(i *invoiceDomain.Invoice) bool {
			return i.Amount == 15795 &&
				i.Status == invoiceDomain.StatusPending &&
				i.Date.Equal(time.Date(2022, 12, 6, 0, 0, 0, 0, time.UTC))
		})).Return(nil).Once()

		var out bytes.Buffer
		err = RunSeed(context.Background(), database.NewTxManager(db), m.repos(), m.passwords, logger,
			IOTuple{Reader: strings.NewReader(seedFixture), Writer: &out})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Seeded 2 users, 2 customers and 1 invoices.")
		m.users.AssertExpectations(t)
		m.customers.AssertExpectations(t)
		m.invoices.AssertExpectations(t)
		m.passwords.AssertExpectations(t)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("repository failure rolls back", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		m := newSeedFixtureMocks()
		m.passwords.On("Hash", "123456").Return("$argon2id$hashed", nil)
		m.users.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.customers.On("Create", mock.Anything, mock.Anything).
			Return(customerDomain.ErrCustomerAlreadyExists).Once()

		var out bytes.Buffer
		err = RunSeed(context.Background(), database.NewTxManager(db), m.repos(), m.passwords, logger,
			IOTuple{Reader: strings.NewReader(seedFixture), Writer: &out})

		require.Error(t, err)
		assert.True(t, errors.Is(err, customerDomain.ErrCustomerAlreadyExists))
		assert.Empty(t, out.String())
		m.invoices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid fixture", func(t *testing.T) {
		tests := []struct {
			name    string
			fixture string
			errMsg  string
		}{
			{name: "malformed json", fixture: `{"users": [`, errMsg: "failed to parse seed data"},
			{
				name:    "unknown status",
				fixture: `{"invoices": [{"customer_id": "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", "amount": 1, "status": "void", "date": "2022-12-06"}]}`,
				errMsg:  "invoice 0",
			},
			{
				name:    "bad date",
				fixture: `{"invoices": [{"customer_id": "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", "amount": 1, "status": "paid", "date": "06/12/2022"}]}`,
				errMsg:  "invoice 0",
			},
			{
				name:    "missing customer",
				fixture: `{"invoices": [{"amount": 1, "status": "paid", "date": "2022-12-06"}]}`,
				errMsg:  "customer_id",
			},
			{
				name:    "user without password",
				fixture: `{"users": [{"name": "User", "email": "user@nextmail.com"}]}`,
				errMsg:  "user 0",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				db, sqlMock, err := sqlmock.New()
				require.NoError(t, err)
				defer func() { _ = db.Close() }()

				m := newSeedFixtureMocks()
				err = RunSeed(context.Background(), database.NewTxManager(db), m.repos(), m.passwords, logger,
					IOTuple{Reader: strings.NewReader(tt.fixture), Writer: &bytes.Buffer{}})

				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.NoError(t, sqlMock.ExpectationsWereMet())
			})
		}
	})
}

func TestIsPasswordHash(t *testing.T) {
	assert.True(t, isPasswordHash("$2a$10$abc"))
	assert.True(t, isPasswordHash("$2b$10$abc"))
	assert.True(t, isPasswordHash("$argon2id$v=19$m=65536,t=3,p=4$abc"))
	assert.False(t, isPasswordHash("123456"))
	assert.False(t, isPasswordHash(""))
}
