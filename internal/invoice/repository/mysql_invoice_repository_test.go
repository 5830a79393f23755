package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invoiceDomain "github.com/invoicedash/dashboard/internal/invoice/domain"
)

func mustBinary(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	b, err := id.MarshalBinary()
	require.NoError(t, err)
	return b
}

func TestMySQLInvoiceRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewMySQLInvoiceRepository(db)
	invoice := newTestInvoice()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO invoices (id, customer_id, amount, status, date)")).
		WithArgs(mustBinary(t, invoice.ID), mustBinary(t, invoice.CustomerID), int64(5000), "paid", invoice.Date).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(context.Background(), invoice)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLInvoiceRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewMySQLInvoiceRepository(db)
	invoice := newTestInvoice()

	mock.ExpectExec(regexp.QuoteMeta("SET customer_id = ?, amount = ?, status = ?")).
		WithArgs(mustBinary(t, invoice.CustomerID), int64(5000), "paid", mustBinary(t, invoice.ID)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Update(context.Background(), invoice)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLInvoiceRepository_Update_UnknownCustomer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewMySQLInvoiceRepository(db)

	mock.ExpectExec("UPDATE invoices").
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})

	err = repo.Update(context.Background(), newTestInvoice())
	assert.ErrorIs(t, err, invoiceDomain.ErrUnknownCustomer)
}

func TestMySQLInvoiceRepository_Delete_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewMySQLInvoiceRepository(db)
	invoiceID := uuid.Must(uuid.NewV7())
	dbErr := errors.New("lock wait timeout")

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM invoices WHERE id = ?")).
		WithArgs(mustBinary(t, invoiceID)).
		WillReturnError(dbErr)

	err = repo.Delete(context.Background(), invoiceID)
	assert.ErrorIs(t, err, dbErr)
}

func TestMySQLInvoiceRepository_ListFiltered(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewMySQLInvoiceRepository(db)
	id := uuid.Must(uuid.NewV7())
	customerID := uuid.Must(uuid.NewV7())
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "customer_id", "name", "email", "image_url", "amount", "status", "date",
	}).AddRow(mustBinary(t, id), mustBinary(t, customerID), "Amy Burns", "amy@burns.com", "/customers/amy.png",
		int64(2000), "paid", date)

	mock.ExpectQuery("SELECT invoices.id").
		WithArgs("%amy%", "%amy%", "%amy%", "%amy%", "%amy%", 6, 0).
		WillReturnRows(rows)

	items, err := repo.ListFiltered(context.Background(), "amy", 6, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	assert.Equal(t, customerID, items[0].CustomerID)
	assert.Equal(t, invoiceDomain.StatusPaid, items[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLInvoiceRepository_CountFiltered(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewMySQLInvoiceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("%%", "%%", "%%", "%%", "%%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.CountFiltered(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}
