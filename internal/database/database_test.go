package database

import (
	"errors"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/invoicedash/dashboard/internal/errors"
)

func TestConnect_Error(t *testing.T) {
	cfg := Config{
		Driver:             "invalid",
		ConnectionString:   "invalid",
		MaxOpenConnections: 10,
		MaxIdleConnections: 5,
		ConnMaxLifetime:    time.Hour,
	}

	db, err := Connect(cfg)
	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "sql: unknown driver")
}

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres"))
	assert.True(t, IsPostgres("pgx"))
	assert.False(t, IsPostgres("mysql"))
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil", err: nil, expected: false},
		{name: "plain error", err: errors.New("boom"), expected: false},
		{name: "pq unique", err: &pq.Error{Code: pq.ErrorCode(pgerrcode.UniqueViolation)}, expected: true},
		{name: "pq other", err: &pq.Error{Code: pq.ErrorCode(pgerrcode.NotNullViolation)}, expected: false},
		{name: "pgx unique", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, expected: true},
		{
			name:     "wrapped pgx unique",
			err:      apperrors.Wrap(&pgconn.PgError{Code: pgerrcode.UniqueViolation}, "insert"),
			expected: true,
		},
		{name: "mysql duplicate", err: &mysql.MySQLError{Number: 1062}, expected: true},
		{name: "mysql other", err: &mysql.MySQLError{Number: 1452}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsUniqueViolation(tt.err))
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: pq.ErrorCode(pgerrcode.ForeignKeyViolation)}))
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}))
	assert.True(t, IsForeignKeyViolation(&mysql.MySQLError{Number: 1452}))
	assert.False(t, IsForeignKeyViolation(&mysql.MySQLError{Number: 1062}))
	assert.False(t, IsForeignKeyViolation(nil))
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%%", ContainsPattern(""))
	assert.Equal(t, "%lee%", ContainsPattern("lee"))
	assert.Equal(t, `%50\%\_off\\%`, ContainsPattern(`50%_off\`))
}
