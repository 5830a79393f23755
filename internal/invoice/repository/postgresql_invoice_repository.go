// Package repository implements invoice persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/invoicedash/dashboard/internal/database"
	apperrors "github.com/invoicedash/dashboard/internal/errors"
	invoiceDomain "github.com/invoicedash/dashboard/internal/invoice/domain"
)

const postgresFilter = `customers.name ILIKE $1 OR
			  customers.email ILIKE $1 OR
			  invoices.amount::text ILIKE $1 OR
			  invoices.date::text ILIKE $1 OR
			  invoices.status ILIKE $1`

// PostgreSQLInvoiceRepository implements Invoice persistence for PostgreSQL databases.
type PostgreSQLInvoiceRepository struct {
	db *sql.DB
}

// Create inserts a new invoice.
func (p *PostgreSQLInvoiceRepository) Create(ctx context.Context, invoice *invoiceDomain.Invoice) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO invoices (id, customer_id, amount, status, date)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		invoice.ID,
		invoice.CustomerID,
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
func (p *PostgreSQLInvoiceRepository) Update(ctx context.Context, invoice *invoiceDomain.Invoice) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE invoices
			  SET customer_id = $1, amount = $2, status = $3
			  WHERE id = $4`

	_, err := querier.ExecContext(
		ctx,
		query,
		invoice.CustomerID,
		invoice.Amount,
		string(invoice.Status),
		invoice.ID,
	)
	if database.IsForeignKeyViolation(err) {
		return invoiceDomain.ErrUnknownCustomer
	}
	if err != nil {
		return apperrors.Wrap(err, "failed to update invoice")
	}
	return nil
}

// Delete removes an invoice by id.
func (p *PostgreSQLInvoiceRepository) Delete(ctx context.Context, invoiceID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM invoices WHERE id = $1`

	if _, err := querier.ExecContext(ctx, query, invoiceID); err != nil {
		return apperrors.Wrap(err, "failed to delete invoice")
	}
	return nil
}

// ListFiltered returns invoices whose customer, amount, date or status matches query,
// newest first.
func (p *PostgreSQLInvoiceRepository) ListFiltered(
	ctx context.Context,
	query string,
	limit, offset int,
) ([]*invoiceDomain.InvoiceListItem, error) {
	querier := database.GetTx(ctx, p.db)

	sqlQuery := `SELECT invoices.id, invoices.customer_id, customers.name, customers.email,
			  customers.image_url, invoices.amount, invoices.status, invoices.date
			  FROM invoices
			  JOIN customers ON invoices.customer_id = customers.id
			  WHERE ` + postgresFilter + `
			  ORDER BY invoices.date DESC, invoices.id DESC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, sqlQuery, database.ContainsPattern(query), limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list invoices")
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]*invoiceDomain.InvoiceListItem, 0)
	for rows.Next() {
		var item invoiceDomain.InvoiceListItem
		var status string
		if err := rows.Scan(
			&item.ID,
			&item.CustomerID,
			&item.Name,
			&item.Email,
			&item.ImageURL,
			&item.Amount,
			&status,
			&item.Date,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan invoice")
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
func (p *PostgreSQLInvoiceRepository) CountFiltered(ctx context.Context, query string) (int, error) {
	querier := database.GetTx(ctx, p.db)

	sqlQuery := `SELECT COUNT(*)
			  FROM invoices
			  JOIN customers ON invoices.customer_id = customers.id
			  WHERE ` + postgresFilter

	var count int
	if err := querier.QueryRowContext(ctx, sqlQuery, database.ContainsPattern(query)).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count invoices")
	}
	return count, nil
}

// NewPostgreSQLInvoiceRepository creates a new PostgreSQL Invoice repository.
func NewPostgreSQLInvoiceRepository(db *sql.DB) *PostgreSQLInvoiceRepository {
	return &PostgreSQLInvoiceRepository{db: db}
}
