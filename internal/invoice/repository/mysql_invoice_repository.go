package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/invoicedash/dashboard/internal/database"
	apperrors "github.com/invoicedash/dashboard/internal/errors"
	invoiceDomain "github.com/invoicedash/dashboard/internal/invoice/domain"
)

const mysqlFilter = `customers.name LIKE ? OR
			  customers.email LIKE ? OR
			  CAST(invoices.amount AS CHAR) LIKE ? OR
			  CAST(invoices.date AS CHAR) LIKE ? OR
			  invoices.status LIKE ?`

// MySQLInvoiceRepository implements Invoice persistence for MySQL databases.
// Ids are stored as BINARY(16).
type MySQLInvoiceRepository struct {
	db *sql.DB
}

func filterArgs(query string) []any {
	pattern := database.ContainsPattern(query)
	return []any{pattern, pattern, pattern, pattern, pattern}
}

// Create inserts a new invoice.
func (m *MySQLInvoiceRepository) Create(ctx context.Context, invoice *invoiceDomain.Invoice) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO invoices (id, customer_id, amount, status, date)
			  VALUES (?, ?, ?, ?, ?)`

	id, err := invoice.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal invoice id")
	}

	customerID, err := invoice.CustomerID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal customer id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		customerID,
		invoice.Amount,
		string(invoice.Status),
		invoice.Date,
	)
	if database.IsForeignKeyViolation(err) {
		return invoiceDomain.ErrUnknownCustomer
	}
	if err != nil {
		return apperrors.Wrap(err, "failed to create invoice")
	}
	return nil
}

// Update overwrites customer, amount and status. The date is never changed.
func (m *MySQLInvoiceRepository) Update(ctx context.Context, invoice *invoiceDomain.Invoice) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE invoices
			  SET customer_id = ?, amount = ?, status = ?
			  WHERE id = ?`

	id, err := invoice.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal invoice id")
	}

	customerID, err := invoice.CustomerID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal customer id")
	}

	_, err = querier.ExecContext(ctx, query, customerID, invoice.Amount, string(invoice.Status), id)
	if database.IsForeignKeyViolation(err) {
		return invoiceDomain.ErrUnknownCustomer
	}
	if err != nil {
		return apperrors.Wrap(err, "failed to update invoice")
	}
	return nil
}

// Delete removes an invoice by id.
func (m *MySQLInvoiceRepository) Delete(ctx context.Context, invoiceID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM invoices WHERE id = ?`

	id, err := invoiceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal invoice id")
	}

	if _, err := querier.ExecContext(ctx, query, id); err != nil {
		return apperrors.Wrap(err, "failed to delete invoice")
	}
	return nil
}

// ListFiltered returns invoices whose customer, amount, date or status matches query,
// newest first.
func (m *MySQLInvoiceRepository) ListFiltered(
	ctx context.Context,
	query string,
	limit, offset int,
) ([]*invoiceDomain.InvoiceListItem, error) {
	querier := database.GetTx(ctx, m.db)

	sqlQuery := `SELECT invoices.id, invoices.customer_id, customers.name, customers.email,
			  customers.image_url, invoices.amount, invoices.status, invoices.date
			  FROM invoices
			  JOIN customers ON invoices.customer_id = customers.id
			  WHERE ` + mysqlFilter + `
			  ORDER BY invoices.date DESC, invoices.id DESC
			  LIMIT ? OFFSET ?`

	args := append(filterArgs(query), limit, offset)
	rows, err := querier.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list invoices")
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]*invoiceDomain.InvoiceListItem, 0)
	for rows.Next() {
		var item invoiceDomain.InvoiceListItem
		var id, customerID []byte
		var status string
		if err := rows.Scan(
			&id,
			&customerID,
			&item.Name,
			&item.Email,
			&item.ImageURL,
			&item.Amount,
			&status,
			&item.Date,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan invoice")
		}

		if err := item.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal invoice id")
		}
		if err := item.CustomerID.UnmarshalBinary(customerID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal customer id")
		}
		item.Status = invoiceDomain.Status(status)
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate invoices")
	}

	return items, nil
}

// CountFiltered counts the invoices ListFiltered would page through.
func (m *MySQLInvoiceRepository) CountFiltered(ctx context.Context, query string) (int, error) {
	querier := database.GetTx(ctx, m.db)

	sqlQuery := `SELECT COUNT(*)
			  FROM invoices
			  JOIN customers ON invoices.customer_id = customers.id
			  WHERE ` + mysqlFilter

	var count int
	if err := querier.QueryRowContext(ctx, sqlQuery, filterArgs(query)...).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count invoices")
	}
	return count, nil
}

// NewMySQLInvoiceRepository creates a new MySQL Invoice repository.
func NewMySQLInvoiceRepository(db *sql.DB) *MySQLInvoiceRepository {
	return &MySQLInvoiceRepository{db: db}
}
