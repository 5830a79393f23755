package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authDomain "github.com/invoicedash/dashboard/internal/auth/domain"
	authService "github.com/invoicedash/dashboard/internal/auth/service"
	authUseCase "github.com/invoicedash/dashboard/internal/auth/usecase"
	customerDomain "github.com/invoicedash/dashboard/internal/customer/domain"
	customerUseCase "github.com/invoicedash/dashboard/internal/customer/usecase"
	"github.com/invoicedash/dashboard/internal/database"
	invoiceDomain "github.com/invoicedash/dashboard/internal/invoice/domain"
	invoiceUseCase "github.com/invoicedash/dashboard/internal/invoice/usecase"
)

// SeedData is the fixture loaded by the seed command.
type SeedData struct {
	Users     []SeedUser     `json:"users"`
	Customers []SeedCustomer `json:"customers"`
	Invoices  []SeedInvoice  `json:"invoices"`
}

// SeedUser is a user fixture. Password is either plain text or an existing
// bcrypt or Argon2id hash, which is stored as is.
type SeedUser struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
}

// SeedCustomer is a customer fixture.
type SeedCustomer struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	ImageURL string    `json:"image_url"`
}

// SeedInvoice is an invoice fixture. Amount is in cents and Date is YYYY-MM-DD.
type SeedInvoice struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Amount     int64     `json:"amount"`
	Status     string    `json:"status"`
	Date       string    `json:"date"`
}

// SeedRepositories groups the stores the seed command writes to.
type SeedRepositories struct {
	Users     authUseCase.UserRepository
	Customers customerUseCase.CustomerRepository
	Invoices  invoiceUseCase.InvoiceRepository
}

// RunSeed loads users, customers and invoices from a JSON fixture in a single
// transaction. Any failure rolls the whole fixture back.
//
// Requirements: Database must be migrated and accessible.
func RunSeed(
	ctx context.Context,
	txManager database.TxManager,
	repos SeedRepositories,
	passwordService authService.PasswordService,
	logger *slog.Logger,
	io IOTuple,
) error {
	var data SeedData
	if err := json.NewDecoder(io.Reader).Decode(&data); err != nil {
		return fmt.Errorf("failed to parse seed data: %w", err)
	}

	if err := validateSeedData(&data); err != nil {
		return fmt.Errorf("invalid seed data: %w", err)
	}

	logger.Info("seeding database",
		slog.Int("users", len(data.Users)),
		slog.Int("customers", len(data.Customers)),
		slog.Int("invoices", len(data.Invoices)),
	)

	err := txManager.WithTx(ctx, func(ctx context.Context) error {
		for _, u := range data.Users {
			user, err := seedUser(u, passwordService)
			if err != nil {
				return err
			}
			if err := repos.Users.Create(ctx, user); err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
			}
		}

		for _, c := range data.Customers {
			if err := repos.Customers.Create(ctx, seedCustomer(c)); err != nil {
				return fmt.Errorf("failed to seed customer %s: %w", c.Email, err)
			}
		}

		for i, inv := range data.Invoices {
			invoice, err := seedInvoice(inv)
			if err != nil {
				return err
			}
			if err := repos.Invoices.Create(ctx, invoice); err != nil {
				return fmt.Errorf("failed to seed invoice %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(io.Writer, "Seeded %d users, %d customers and %d invoices.\n",
		len(data.Users), len(data.Customers), len(data.Invoices))
	logger.Info("database seeded successfully")

	return nil
}

func validateSeedData(data *SeedData) error {
	for i := range data.Users {
		u := &data.Users[i]
		if err := validation.ValidateStruct(u,
			validation.Field(&u.Name, validation.Required),
			validation.Field(&u.Email, validation.Required),
			validation.Field(&u.Password, validation.Required),
		); err != nil {
			return fmt.Errorf("user %d: %w", i, err)
		}
	}

	for i := range data.Customers {
		c := &data.Customers[i]
		if err := validation.ValidateStruct(c,
			validation.Field(&c.Name, validation.Required),
			validation.Field(&c.Email, validation.Required),
		); err != nil {
			return fmt.Errorf("customer %d: %w", i, err)
		}
	}

	for i := range data.Invoices {
		inv := &data.Invoices[i]
		if err := validation.ValidateStruct(inv,
			validation.Field(&inv.CustomerID, validation.By(notNilUUID)),
			validation.Field(&inv.Amount, validation.Min(int64(0))),
			validation.Field(&inv.Status, validation.Required,
				validation.In(string(invoiceDomain.StatusPending), string(invoiceDomain.StatusPaid))),
			validation.Field(&inv.Date, validation.Required, validation.Date(invoiceDomain.DateLayout)),
		); err != nil {
			return fmt.Errorf("invoice %d: %w", i, err)
		}
	}

	return nil
}

// isPasswordHash reports whether password is already a bcrypt or Argon2id hash.
func isPasswordHash(password string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$", "$argon2id$"} {
		if strings.HasPrefix(password, prefix) {
			return true
		}
	}
	return false
}

func seedUser(u SeedUser, passwordService authService.PasswordService) (*authDomain.User, error) {
	password := u.Password
	if !isPasswordHash(password) {
		hashed, err := passwordService.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password of %s: %w", u.Email, err)
		}
		password = hashed
	}

	return &authDomain.User{
		ID:       idOrNew(u.ID),
		Name:     strings.TrimSpace(u.Name),
		Email:    u.Email,
		Password: password,
	}, nil
}

func seedCustomer(c SeedCustomer) *customerDomain.Customer {
	imageURL := c.ImageURL
	if imageURL == "" {
		imageURL = customerDomain.DefaultImageURL
	}
	return &customerDomain.Customer{
		ID:       idOrNew(c.ID),
		Name:     strings.TrimSpace(c.Name),
		Email:    c.Email,
		ImageURL: imageURL,
	}
}

func seedInvoice(inv SeedInvoice) (*invoiceDomain.Invoice, error) {
	date, err := time.ParseInLocation(invoiceDomain.DateLayout, inv.Date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid invoice date %q: %w", inv.Date, err)
	}
	return &invoiceDomain.Invoice{
		ID:         uuid.Must(uuid.NewV7()),
		CustomerID: inv.CustomerID,
		Amount:     inv.Amount,
		Status:     invoiceDomain.Status(inv.Status),
		Date:       date,
	}, nil
}

func notNilUUID(value interface{}) error {
	if id, _ := value.(uuid.UUID); id == uuid.Nil {
		return errors.New("cannot be blank")
	}
	return nil
}

func idOrNew(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.Must(uuid.NewV7())
	}
	return id
}
