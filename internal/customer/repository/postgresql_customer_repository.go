// Package repository implements customer persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	customerDomain "github.com/invoicedash/dashboard/internal/customer/domain"
	"github.com/invoicedash/dashboard/internal/database"
	apperrors "github.com/invoicedash/dashboard/internal/errors"
)

// PostgreSQLCustomerRepository implements Customer persistence for PostgreSQL databases.
type PostgreSQLCustomerRepository struct {
	db *sql.DB
}

// Create inserts a new customer. A duplicate email is reported as ErrCustomerAlreadyExists.
func (p *PostgreSQLCustomerRepository) Create(ctx context.Context, customer *customerDomain.Customer) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO customers (id, name, email, image_url)
			  VALUES ($1, $2, $3, $4)`

	_, err := querier.ExecContext(ctx, query, customer.ID, customer.Name, customer.Email, customer.ImageURL)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return customerDomain.ErrCustomerAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create customer")
	}
	return nil
}

// EmailExists reports whether a customer with exactly this email exists.
func (p *PostgreSQLCustomerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT email FROM customers WHERE email = $1 LIMIT 1`

	var found string
	err := querier.QueryRowContext(ctx, query, email).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, apperrors.Wrap(err, "failed to look up customer email")
	}
	return true, nil
}

// ListFiltered returns customers whose name or email matches query, with their
// invoice totals, ordered by name.
func (p *PostgreSQLCustomerRepository) ListFiltered(
	ctx context.Context,
	query string,
	limit, offset int,
) ([]*customerDomain.CustomerListItem, error) {
	querier := database.GetTx(ctx, p.db)

	sqlQuery := `SELECT customers.id, customers.name, customers.email, customers.image_url,
			  COUNT(invoices.id) AS total_invoices,
			  COALESCE(SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END), 0) AS total_pending,
			  COALESCE(SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END), 0) AS total_paid
			  FROM customers
			  LEFT JOIN invoices ON customers.id = invoices.customer_id
			  WHERE customers.name ILIKE $1 OR customers.email ILIKE $1
			  GROUP BY customers.id, customers.name, customers.email, customers.image_url
			  ORDER BY customers.name ASC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, sqlQuery, database.ContainsPattern(query), limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list customers")
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]*customerDomain.CustomerListItem, 0)
	for rows.Next() {
		var item customerDomain.CustomerListItem
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Email,
			&item.ImageURL,
			&item.TotalInvoices,
			&item.TotalPending,
			&item.TotalPaid,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan customer")
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate customers")
	}

	return items, nil
}

// CountFiltered counts the customers ListFiltered would page through.
func (p *PostgreSQLCustomerRepository) CountFiltered(ctx context.Context, query string) (int, error) {
	querier := database.GetTx(ctx, p.db)

	sqlQuery := `SELECT COUNT(*) FROM customers WHERE name ILIKE $1 OR email ILIKE $1`

	var count int
	if err := querier.QueryRowContext(ctx, sqlQuery, database.ContainsPattern(query)).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count customers")
	}
	return count, nil
}

// ListOptions returns the id and name of every customer, ordered by name.
func (p *PostgreSQLCustomerRepository) ListOptions(ctx context.Context) ([]*customerDomain.CustomerOption, error) {
	querier := database.GetTx(ctx, p.db)

	rows, err := querier.QueryContext(ctx, `SELECT id, name FROM customers ORDER BY name ASC`)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list customer options")
	}
	defer func() {
		_ = rows.Close()
	}()

	options := make([]*customerDomain.CustomerOption, 0)
	for rows.Next() {
		var option customerDomain.CustomerOption
		if err := rows.Scan(&option.ID, &option.Name); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan customer option")
		}
		options = append(options, &option)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate customer options")
	}

	return options, nil
}

// NewPostgreSQLCustomerRepository creates a new PostgreSQL Customer repository.
func NewPostgreSQLCustomerRepository(db *sql.DB) *PostgreSQLCustomerRepository {
	return &PostgreSQLCustomerRepository{db: db}
}
