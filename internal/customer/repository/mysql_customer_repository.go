package repository

import (
	"context"
	"database/sql"
	"errors"

	customerDomain "github.com/invoicedash/dashboard/internal/customer/domain"
	"github.com/invoicedash/dashboard/internal/database"
	apperrors "github.com/invoicedash/dashboard/internal/errors"
)

// MySQLCustomerRepository implements Customer persistence for MySQL databases.
// Ids are stored as BINARY(16).
type MySQLCustomerRepository struct {
	db *sql.DB
}

// Create inserts a new customer. A duplicate email is reported as ErrCustomerAlreadyExists.
func (m *MySQLCustomerRepository) Create(ctx context.Context, customer *customerDomain.Customer) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO customers (id, name, email, image_url)
			  VALUES (?, ?, ?, ?)`

	id, err := customer.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal customer id")
	}

	_, err = querier.ExecContext(ctx, query, id, customer.Name, customer.Email, customer.ImageURL)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return customerDomain.ErrCustomerAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create customer")
	}
	return nil
}

// EmailExists reports whether a customer with exactly this email exists.
// BINARY forces a case-sensitive comparison regardless of the column collation.
func (m *MySQLCustomerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT email FROM customers WHERE email = BINARY ? LIMIT 1`

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
func (m *MySQLCustomerRepository) ListFiltered(
	ctx context.Context,
	query string,
	limit, offset int,
) ([]*customerDomain.CustomerListItem, error) {
	querier := database.GetTx(ctx, m.db)

	sqlQuery := `SELECT customers.id, customers.name, customers.email, customers.image_url,
			  COUNT(invoices.id) AS total_invoices,
			  COALESCE(SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END), 0) AS total_pending,
			  COALESCE(SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END), 0) AS total_paid
			  FROM customers
			  LEFT JOIN invoices ON customers.id = invoices.customer_id
			  WHERE customers.name LIKE ? OR customers.email LIKE ?
			  GROUP BY customers.id, customers.name, customers.email, customers.image_url
			  ORDER BY customers.name ASC
			  LIMIT ? OFFSET ?`

	pattern := database.ContainsPattern(query)
	rows, err := querier.QueryContext(ctx, sqlQuery, pattern, pattern, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list customers")
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]*customerDomain.CustomerListItem, 0)
	for rows.Next() {
		var item customerDomain.CustomerListItem
		var id []byte
		if err := rows.Scan(
			&id,
			&item.Name,
			&item.Email,
			&item.ImageURL,
			&item.TotalInvoices,
			&item.TotalPending,
			&item.TotalPaid,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan customer")
		}
		if err := item.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal customer id")
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate customers")
	}

	return items, nil
}

// CountFiltered counts the customers ListFiltered would page through.
func (m *MySQLCustomerRepository) CountFiltered(ctx context.Context, query string) (int, error) {
	querier := database.GetTx(ctx, m.db)

	sqlQuery := `SELECT COUNT(*) FROM customers WHERE name LIKE ? OR email LIKE ?`

	pattern := database.ContainsPattern(query)
	var count int
	if err := querier.QueryRowContext(ctx, sqlQuery, pattern, pattern).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count customers")
	}
	return count, nil
}

// ListOptions returns the id and name of every customer, ordered by name.
func (m *MySQLCustomerRepository) ListOptions(ctx context.Context) ([]*customerDomain.CustomerOption, error) {
	querier := database.GetTx(ctx, m.db)

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
		var id []byte
		if err := rows.Scan(&id, &option.Name); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan customer option")
		}
		if err := option.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal customer id")
		}
		options = append(options, &option)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate customer options")
	}

	return options, nil
}

// NewMySQLCustomerRepository creates a new MySQL Customer repository.
func NewMySQLCustomerRepository(db *sql.DB) *MySQLCustomerRepository {
	return &MySQLCustomerRepository{db: db}
}
